// Package room hosts one actor goroutine per live game. The actor owns
// the engine state, runs the battle countdown, persists captures to the
// ownership store and fans out versioned snapshots to every subscribed
// client. Because it is the single writer for its room, snapshot order
// equals write order and all clients converge on the same final state.
package room

import (
	"context"
	"errors"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/mapstate"
	"github.com/triviador-game/triviador-backend/internal/questions"
	"github.com/triviador-game/triviador-backend/internal/store"
)

// ErrPersistFailed is surfaced to the acting client when a capture could
// not be written after retries. Local state stays ahead of the store
// until the next successful write.
var ErrPersistFailed = errors.New("could not persist capture")

const persistRetries = 3

type Msg interface{ isRoomMsg() }

type Join struct {
	ClientID string
	Outbox   chan Snapshot
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

type FromClient struct {
	ClientID string
	Cmd      engine.Command
	Reply    chan<- error // optional; receives nil on accept
}

func (FromClient) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type timerFire struct{ gen int }

func (timerFire) isRoomMsg() {}

// Snapshot is what clients receive on every state change: the full
// engine state plus the derived county read-model.
type Snapshot struct {
	Version int
	State   engine.State
	Owners  map[string]mapstate.CountyOwner
	Events  []engine.Event
}

// View reflects internal state without data races; test-only.
type View struct {
	Version    int
	NumClients int
	State      engine.State
}

type Room struct {
	id       string
	inbox    chan Msg
	state    engine.State
	version  int
	clients  map[string]chan Snapshot
	store    store.Store
	provider questions.Provider
	tick     time.Duration
	timerGen int // bumping it invalidates in-flight fires
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent context.Context, id string, initial engine.State, st store.Store, qp questions.Provider, tick time.Duration, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	if tick <= 0 {
		tick = time.Second
	}
	r := &Room{
		id:       id,
		inbox:    make(chan Msg, 64),
		state:    initial,
		clients:  make(map[string]chan Snapshot),
		store:    st,
		provider: qp,
		tick:     tick,
		log:      log.With(zap.String("room", id)),
		ctx:      ctx,
		cancel:   cancel,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				if old, ok := r.clients[msg.ClientID]; ok {
					close(old)
				}
				r.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- r.snapshot(nil)

			case Leave:
				if ch, ok := r.clients[msg.ClientID]; ok {
					close(ch)
					delete(r.clients, msg.ClientID)
				}

			case FromClient:
				r.handleCommand(msg)

			case timerFire:
				r.handleTimerFire(msg.gen)

			case GetState:
				msg.Reply <- View{Version: r.version, NumClients: len(r.clients), State: r.state}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleCommand(msg FromClient) {
	cmd := msg.Cmd
	if cmd.Type == engine.CmdSelectCounty {
		cmd.Question = r.provider.Next(cmd.Category)
	}

	events, next, err := engine.Apply(r.state, cmd)
	if err != nil {
		reply(msg.Reply, err)
		return
	}
	r.commit(next, events)

	var result error
	for _, evt := range events {
		switch evt.Type {
		case engine.EvtBattleStarted:
			r.armTimer()

		case engine.EvtCountyCaptured:
			r.disarmTimer()
			if err := r.persistCapture(evt.PlayerID, evt.County); err != nil {
				r.log.Error("capture persist failed", zap.String("county", evt.County), zap.Error(err))
				result = ErrPersistFailed
			}
			r.conclude()

		case engine.EvtBattleLost:
			r.disarmTimer()
			r.conclude()

		case engine.EvtGameEnded:
			r.disarmTimer()
			if err := r.finishRoom(); err != nil {
				r.log.Error("finish room failed", zap.Error(err))
			}
		}
	}
	reply(msg.Reply, result)
}

func (r *Room) handleTimerFire(gen int) {
	if gen != r.timerGen || r.state.Phase != engine.PhaseQuestion {
		return // stale fire from a battle that already resolved
	}

	events, next, err := engine.Apply(r.state, engine.Command{Type: engine.CmdTimerTick})
	if err != nil {
		return
	}
	r.commit(next, events)

	if engine.ContainsEvent(events, engine.EvtBattleLost) {
		r.disarmTimer()
		r.conclude()
		return
	}
	r.armTick(gen)
}

// conclude drives resolving -> idle, advancing the turn pointer.
func (r *Room) conclude() {
	events, next, err := engine.Apply(r.state, engine.Command{Type: engine.CmdConcludeBattle})
	if err != nil {
		return
	}
	r.commit(next, events)
}

func (r *Room) commit(next engine.State, events []engine.Event) {
	r.state = next
	r.version++
	r.broadcast(r.snapshot(events))
}

func (r *Room) armTimer() {
	r.timerGen++
	r.armTick(r.timerGen)
}

func (r *Room) disarmTimer() {
	r.timerGen++
}

func (r *Room) armTick(gen int) {
	time.AfterFunc(r.tick, func() {
		select {
		case r.inbox <- timerFire{gen: gen}:
		case <-r.ctx.Done():
		}
	})
}

// persistCapture runs the read-modify-write cycle against the store with
// the version token as an optimistic-concurrency guard.
func (r *Room) persistCapture(attackerID, county string) error {
	ctx, cancel := context.WithTimeout(r.ctx, 5*time.Second)
	defer cancel()

	for attempt := 0; attempt < persistRetries; attempt++ {
		payload, version, err := r.store.ReadOwnership(ctx, r.id)
		if err != nil {
			return err
		}
		next := payload.Capture(attackerID, county)
		if reflect.DeepEqual(next, payload) {
			return nil // replayed capture, already persisted
		}
		err = r.store.WriteOwnership(ctx, r.id, next, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return err
		}
		r.log.Warn("ownership write lost race, retrying", zap.Int("attempt", attempt+1))
	}
	return store.ErrVersionConflict
}

func (r *Room) finishRoom() error {
	ctx, cancel := context.WithTimeout(r.ctx, 5*time.Second)
	defer cancel()
	return r.store.FinishRoom(ctx, r.id)
}

func (r *Room) snapshot(events []engine.Event) Snapshot {
	return Snapshot{
		Version: r.version,
		State:   r.state,
		Owners:  mapstate.Derive(r.state.Ownership, mapstate.Colors(r.state.Players)),
		Events:  events,
	}
}

func (r *Room) broadcast(snap Snapshot) {
	for id, ch := range r.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func reply(ch chan<- error, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
