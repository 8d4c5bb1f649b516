package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/triviador-game/triviador-backend/internal/engine"
)

type roomRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Status    string `gorm:"not null;default:waiting"`
	OwnerID   string `gorm:"not null;index"`
	MapState  []byte `gorm:"type:jsonb"`
	Version   int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (roomRow) TableName() string { return "rooms" }

type roomPlayerRow struct {
	RoomID   string `gorm:"primaryKey"`
	UserID   string `gorm:"primaryKey"`
	Name     string
	Color    string    `gorm:"not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (roomPlayerRow) TableName() string { return "room_players" }

// Postgres implements Store on gorm/postgres.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&roomRow{}, &roomPlayerRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) CreateRoom(ctx context.Context, name, ownerID string) (Room, error) {
	row := roomRow{
		ID:       uuid.NewString(),
		Name:     name,
		Status:   StatusWaiting,
		OwnerID:  ownerID,
		MapState: []byte("[]"),
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Room{}, fmt.Errorf("create room: %w", err)
	}
	return row.toRoom(), nil
}

func (p *Postgres) GetRoom(ctx context.Context, roomID string) (Room, error) {
	var row roomRow
	err := p.db.WithContext(ctx).First(&row, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Room{}, ErrNotFound
	}
	if err != nil {
		return Room{}, fmt.Errorf("get room: %w", err)
	}
	return row.toRoom(), nil
}

func (p *Postgres) ListRooms(ctx context.Context, ownerID string) ([]Room, error) {
	q := p.db.WithContext(ctx).Order("created_at")
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	var rows []roomRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms := make([]Room, len(rows))
	for i, row := range rows {
		rooms[i] = row.toRoom()
	}
	return rooms, nil
}

func (p *Postgres) JoinRoom(ctx context.Context, roomID, userID, name string) (RoomPlayer, error) {
	var joined roomPlayerRow
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room roomRow
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if room.Status != StatusWaiting {
			return ErrRoomNotWaiting
		}

		var existing []roomPlayerRow
		if err := tx.Where("room_id = ?", roomID).Order("joined_at").Find(&existing).Error; err != nil {
			return err
		}
		taken := make([]string, 0, len(existing))
		for _, pl := range existing {
			if pl.UserID == userID {
				return ErrAlreadyJoined
			}
			taken = append(taken, pl.Color)
		}
		color, ok := FirstFreeColor(taken)
		if !ok {
			return ErrNoColors
		}

		joined = roomPlayerRow{RoomID: roomID, UserID: userID, Name: name, Color: color}
		return tx.Create(&joined).Error
	})
	if err != nil {
		return RoomPlayer{}, err
	}
	return joined.toPlayer(), nil
}

func (p *Postgres) Roster(ctx context.Context, roomID string) ([]RoomPlayer, error) {
	var rows []roomPlayerRow
	err := p.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at, user_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	players := make([]RoomPlayer, len(rows))
	for i, row := range rows {
		players[i] = row.toPlayer()
	}
	return players, nil
}

func (p *Postgres) StartRoom(ctx context.Context, roomID, ownerID string, payload engine.OwnershipPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room roomRow
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if room.OwnerID != ownerID {
			return ErrNotOwner
		}
		if room.Status != StatusWaiting {
			return ErrRoomNotWaiting
		}
		return tx.Model(&roomRow{}).Where("id = ?", roomID).
			Updates(map[string]any{
				"status":    StatusActive,
				"map_state": raw,
				"version":   room.Version + 1,
			}).Error
	})
}

func (p *Postgres) FinishRoom(ctx context.Context, roomID string) error {
	res := p.db.WithContext(ctx).Model(&roomRow{}).
		Where("id = ?", roomID).
		Update("status", StatusFinished)
	if res.Error != nil {
		return fmt.Errorf("finish room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ReadOwnership(ctx context.Context, roomID string) (engine.OwnershipPayload, int64, error) {
	var row roomRow
	err := p.db.WithContext(ctx).First(&row, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read ownership: %w", err)
	}

	payload := engine.OwnershipPayload{}
	if len(row.MapState) > 0 {
		if err := json.Unmarshal(row.MapState, &payload); err != nil {
			return nil, 0, fmt.Errorf("decode map_state: %w", err)
		}
	}
	return payload, row.Version, nil
}

func (p *Postgres) WriteOwnership(ctx context.Context, roomID string, payload engine.OwnershipPayload, expected int64) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	res := p.db.WithContext(ctx).Model(&roomRow{}).
		Where("id = ? AND version = ?", roomID, expected).
		Updates(map[string]any{"map_state": raw, "version": expected + 1})
	if res.Error != nil {
		return fmt.Errorf("write ownership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing room from a lost race.
		var count int64
		if err := p.db.WithContext(ctx).Model(&roomRow{}).Where("id = ?", roomID).Count(&count).Error; err != nil {
			return fmt.Errorf("write ownership: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (r roomRow) toRoom() Room {
	return Room{ID: r.ID, Name: r.Name, Status: r.Status, OwnerID: r.OwnerID, CreatedAt: r.CreatedAt}
}

func (r roomPlayerRow) toPlayer() RoomPlayer {
	return RoomPlayer{RoomID: r.RoomID, UserID: r.UserID, Name: r.Name, Color: r.Color, JoinedAt: r.JoinedAt}
}
