package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/triviador-game/triviador-backend/internal/engine"
)

type memoryRoom struct {
	room    Room
	players []RoomPlayer
	payload engine.OwnershipPayload
	version int64
}

// Memory is an in-process Store with the same semantics as Postgres,
// including the version CAS. Used in tests and when no DATABASE_URL is
// configured.
type Memory struct {
	mu    sync.RWMutex
	rooms map[string]*memoryRoom
}

func NewMemory() *Memory {
	return &Memory{rooms: make(map[string]*memoryRoom)}
}

func (m *Memory) CreateRoom(_ context.Context, name, ownerID string) (Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := Room{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    StatusWaiting,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	m.rooms[room.ID] = &memoryRoom{room: room, payload: engine.OwnershipPayload{}}
	return room, nil
}

func (m *Memory) GetRoom(_ context.Context, roomID string) (Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return Room{}, ErrNotFound
	}
	return r.room, nil
}

func (m *Memory) ListRooms(_ context.Context, ownerID string) ([]Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rooms []Room
	for _, r := range m.rooms {
		if ownerID == "" || r.room.OwnerID == ownerID {
			rooms = append(rooms, r.room)
		}
	}
	return rooms, nil
}

func (m *Memory) JoinRoom(_ context.Context, roomID, userID, name string) (RoomPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return RoomPlayer{}, ErrNotFound
	}
	if r.room.Status != StatusWaiting {
		return RoomPlayer{}, ErrRoomNotWaiting
	}

	taken := make([]string, 0, len(r.players))
	for _, pl := range r.players {
		if pl.UserID == userID {
			return RoomPlayer{}, ErrAlreadyJoined
		}
		taken = append(taken, pl.Color)
	}
	color, ok := FirstFreeColor(taken)
	if !ok {
		return RoomPlayer{}, ErrNoColors
	}

	player := RoomPlayer{RoomID: roomID, UserID: userID, Name: name, Color: color, JoinedAt: time.Now()}
	r.players = append(r.players, player)
	return player, nil
}

func (m *Memory) Roster(_ context.Context, roomID string) ([]RoomPlayer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	players := make([]RoomPlayer, len(r.players))
	copy(players, r.players)
	return players, nil
}

func (m *Memory) StartRoom(_ context.Context, roomID, ownerID string, payload engine.OwnershipPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	if r.room.OwnerID != ownerID {
		return ErrNotOwner
	}
	if r.room.Status != StatusWaiting {
		return ErrRoomNotWaiting
	}

	r.room.Status = StatusActive
	r.payload = payload.Clone()
	r.version++
	return nil
}

func (m *Memory) FinishRoom(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	r.room.Status = StatusFinished
	return nil
}

func (m *Memory) ReadOwnership(_ context.Context, roomID string) (engine.OwnershipPayload, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return nil, 0, ErrNotFound
	}
	return r.payload.Clone(), r.version, nil
}

func (m *Memory) WriteOwnership(_ context.Context, roomID string, payload engine.OwnershipPayload, expected int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	if r.version != expected {
		return ErrVersionConflict
	}
	r.payload = payload.Clone()
	r.version++
	return nil
}
