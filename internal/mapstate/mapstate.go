// Package mapstate derives the per-client read-model from the canonical
// ownership payload: county -> (owner, color). The derivation is pure and
// total, so every client that sees the same payload computes the same map.
package mapstate

import "github.com/triviador-game/triviador-backend/internal/engine"

// FallbackColor is used when a payload references a player missing from
// the roster, so rendering never blocks on a stale roster.
const FallbackColor = "#808080"

type CountyOwner struct {
	PlayerID string `json:"user_id"`
	Color    string `json:"color"`
}

// Derive computes the county read-model from an ownership payload and the
// player -> color roster. Counties absent from the payload have no entry.
// Duplicate codes across records (an invalid payload) resolve to the last
// record, keeping the output deterministic.
func Derive(payload engine.OwnershipPayload, colors map[string]string) map[string]CountyOwner {
	owners := make(map[string]CountyOwner)
	for _, rec := range payload {
		color, ok := colors[rec.PlayerID]
		if !ok {
			color = FallbackColor
		}
		for _, county := range rec.Counties {
			owners[county] = CountyOwner{PlayerID: rec.PlayerID, Color: color}
		}
	}
	return owners
}

// Colors extracts the player -> color roster from a player list.
func Colors(players []engine.Player) map[string]string {
	colors := make(map[string]string, len(players))
	for _, p := range players {
		colors[p.ID] = p.Color
	}
	return colors
}
