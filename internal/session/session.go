// Package session is the per-client side of a live game. Every
// participant owns a Controller: it enforces turn ownership at the input
// boundary (a non-attacker's command is rejected locally, nothing reaches
// the room or the store), keeps a local view of the in-progress battle,
// and folds inbound snapshots into its read-model. Controllers never talk
// to each other; they converge because the room broadcasts snapshots in
// write order. This is the embeddable client side for Go clients and
// bots; the server never imports it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/mapstate"
	"github.com/triviador-game/triviador-backend/internal/room"
)

var ErrRoomUnresponsive = errors.New("room did not answer in time")

const replyTimeout = 5 * time.Second

type Controller struct {
	playerID  string
	roomInbox chan<- room.Msg

	mu        sync.Mutex
	version   int
	state     engine.State
	owners    map[string]mapstate.CountyOwner
	battle    *engine.Battle // local view, authoritative for this client while battling
	ticksLeft int            // cosmetic countdown; the room's timer decides
}

func New(playerID string, roomInbox chan<- room.Msg) *Controller {
	return &Controller{
		playerID:  playerID,
		roomInbox: roomInbox,
		owners:    map[string]mapstate.CountyOwner{},
	}
}

// Run folds snapshots into the controller until the channel closes or
// ctx is cancelled.
func (c *Controller) Run(ctx context.Context, snapshots <-chan room.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			c.Observe(snap)
		}
	}
}

// Observe merges one inbound snapshot. Delivery is at-least-once, so
// stale or duplicate versions are dropped; an update arriving while this
// client's own battle is active refreshes the read-model but does not
// cancel the battle.
func (c *Controller) Observe(snap room.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap.Version < c.version || (snap.Version == c.version && c.version != 0) {
		return
	}
	c.version = snap.Version
	c.state = snap.State
	c.owners = snap.Owners

	if c.battle != nil {
		if snap.State.Battle == nil || snap.State.Battle.AttackerID != c.playerID {
			// Our battle resolved (or was never ours to begin with).
			c.battle = nil
			c.ticksLeft = 0
		}
	}
}

// SelectCounty starts a battle for county. Rejected locally with
// ErrWrongTurn when this client is not the current attacker.
func (c *Controller) SelectCounty(county, category string) error {
	c.mu.Lock()
	if c.state.AttackerID() != c.playerID {
		c.mu.Unlock()
		return engine.ErrWrongTurn
	}
	if c.battle != nil {
		c.mu.Unlock()
		return engine.ErrBattleActive
	}
	ticks := c.state.QuestionTicks
	if ticks <= 0 {
		ticks = engine.DefaultQuestionTicks
	}
	c.mu.Unlock()

	err := c.send(engine.Command{
		Type:     engine.CmdSelectCounty,
		PlayerID: c.playerID,
		County:   county,
		Category: category,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.battle = &engine.Battle{AttackerID: c.playerID, County: county, TicksLeft: ticks}
	c.ticksLeft = ticks
	c.mu.Unlock()
	return nil
}

// SubmitAnswer answers the active question. Rejected locally when this
// client is not the battling attacker.
func (c *Controller) SubmitAnswer(answer string) error {
	c.mu.Lock()
	if c.battle == nil {
		c.mu.Unlock()
		return engine.ErrNoBattle
	}
	if c.battle.AttackerID != c.playerID {
		c.mu.Unlock()
		return engine.ErrWrongTurn
	}
	c.mu.Unlock()

	err := c.send(engine.Command{
		Type:     engine.CmdSubmitAnswer,
		PlayerID: c.playerID,
		Answer:   answer,
	})
	if err != nil && !errors.Is(err, room.ErrPersistFailed) {
		return err
	}

	c.mu.Lock()
	c.battle = nil
	c.ticksLeft = 0
	c.mu.Unlock()
	return err
}

// EndGame asks the room to finish the game.
func (c *Controller) EndGame() error {
	return c.send(engine.Command{Type: engine.CmdEndGame, PlayerID: c.playerID})
}

// Tick decrements the local cosmetic countdown. The authoritative timer
// runs in the room; a client that stops ticking simply stops rendering.
func (c *Controller) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.battle == nil {
		return 0
	}
	if c.ticksLeft > 0 {
		c.ticksLeft--
	}
	return c.ticksLeft
}

// Owner reports the read-model entry for a county.
func (c *Controller) Owner(county string) (mapstate.CountyOwner, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner, ok := c.owners[county]
	return owner, ok
}

// View returns the current converged state and version.
func (c *Controller) View() (engine.State, map[string]mapstate.CountyOwner, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owners := make(map[string]mapstate.CountyOwner, len(c.owners))
	for k, v := range c.owners {
		owners[k] = v
	}
	return c.state, owners, c.version
}

func (c *Controller) send(cmd engine.Command) error {
	reply := make(chan error, 1)
	c.roomInbox <- room.FromClient{ClientID: c.playerID, Cmd: cmd, Reply: reply}
	select {
	case err := <-reply:
		return err
	case <-time.After(replyTimeout):
		return ErrRoomUnresponsive
	}
}
