// Package hub keeps the registry of live room actors. It is itself an
// actor so registry access is race-free without locks.
package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/questions"
	"github.com/triviador-game/triviador-backend/internal/room"
	"github.com/triviador-game/triviador-backend/internal/store"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	ID    string
	State engine.State
	Reply chan *room.Room
}

type GetRoom struct {
	ID    string
	Reply chan *room.Room
}

type EnsureRoom struct {
	ID    string
	State engine.State // only used if creation happens
	Reply chan *room.Room
}

type RemoveRoom struct {
	ID string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox    chan HubMsg
	rooms    map[string]*room.Room
	store    store.Store
	provider questions.Provider
	tick     time.Duration
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, st store.Store, qp questions.Provider, tick time.Duration, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		rooms:    make(map[string]*room.Room),
		store:    st,
		provider: qp,
		tick:     tick,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) spawn(id string, state engine.State) *room.Room {
	return room.New(h.ctx, id, state, h.store, h.provider, h.tick, h.log)
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if r := h.rooms[msg.ID]; r != nil {
					msg.Reply <- r
					break
				}
				r := h.spawn(msg.ID, msg.State)
				h.rooms[msg.ID] = r
				msg.Reply <- r

			case GetRoom:
				msg.Reply <- h.rooms[msg.ID] // May be nil

			case EnsureRoom:
				if r := h.rooms[msg.ID]; r != nil {
					msg.Reply <- r
					break
				}
				r := h.spawn(msg.ID, msg.State)
				h.rooms[msg.ID] = r
				msg.Reply <- r

			case RemoveRoom:
				delete(h.rooms, msg.ID)

			case ShutdownHub:
				for _, r := range h.rooms {
					r.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}
