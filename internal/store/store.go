// Package store is the durable side of the game: room and player CRUD
// plus the per-room ownership payload, which is the single source of
// truth for who holds which county. Writes to the payload carry an
// optimistic-concurrency version so concurrent captures cannot silently
// overwrite each other.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/triviador-game/triviador-backend/internal/engine"
)

var ErrNotFound = errors.New("not found")
var ErrNotOwner = errors.New("only the room owner may do that")
var ErrAlreadyJoined = errors.New("player already in room")
var ErrNoColors = errors.New("no colors left in room")
var ErrRoomNotWaiting = errors.New("room is not waiting for players")
var ErrVersionConflict = errors.New("ownership version conflict")

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomPlayer struct {
	RoomID   string    `json:"room_id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joined_at"`
}

// Store is the full persistence contract. The room actor only touches
// ReadOwnership/WriteOwnership; httpapi uses the rest.
type Store interface {
	CreateRoom(ctx context.Context, name, ownerID string) (Room, error)
	GetRoom(ctx context.Context, roomID string) (Room, error)
	ListRooms(ctx context.Context, ownerID string) ([]Room, error)

	// JoinRoom adds userID to the room, assigning the first palette
	// color not already taken. Fails with ErrAlreadyJoined on a
	// duplicate join and ErrNoColors when the palette is exhausted.
	JoinRoom(ctx context.Context, roomID, userID, name string) (RoomPlayer, error)

	// Roster lists the room's players in join order.
	Roster(ctx context.Context, roomID string) ([]RoomPlayer, error)

	// StartRoom moves the room to active and writes the initial
	// ownership payload. Owner-only.
	StartRoom(ctx context.Context, roomID, ownerID string, payload engine.OwnershipPayload) error

	FinishRoom(ctx context.Context, roomID string) error

	// ReadOwnership returns the payload and its version token.
	ReadOwnership(ctx context.Context, roomID string) (engine.OwnershipPayload, int64, error)

	// WriteOwnership persists payload if the stored version still equals
	// expected; otherwise ErrVersionConflict and the caller re-reads.
	WriteOwnership(ctx context.Context, roomID string, payload engine.OwnershipPayload, expected int64) error
}

// FirstFreeColor picks the first palette color not present in taken.
func FirstFreeColor(taken []string) (string, bool) {
	used := make(map[string]bool, len(taken))
	for _, c := range taken {
		used[c] = true
	}
	for _, c := range engine.ColorPalette {
		if !used[c] {
			return c, true
		}
	}
	return "", false
}
