package types

import (
	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/mapstate"
)

type ClientMessage struct {
	Type     string `json:"type"`
	County   string `json:"county,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Category string `json:"category,omitempty"`
}

type ServerMessage struct {
	Type    string                          `json:"type"` // "StateSnapshot" | "Error"
	Version int                             `json:"version,omitempty"`
	State   *engine.State                   `json:"state,omitempty"`
	Owners  map[string]mapstate.CountyOwner `json:"county_owners,omitempty"`
	Events  []engine.Event                  `json:"events,omitempty"`
	Error   string                          `json:"error,omitempty"`
}
