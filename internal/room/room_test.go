package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/questions"
	"github.com/triviador-game/triviador-backend/internal/store"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func recvReply(t *testing.T, ch <-chan error, within time.Duration) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(within):
		t.Fatalf("timed out waiting for command reply")
		return nil // unreachable
	}
}

var capitalQuestion = engine.Question{
	Prompt:  "What is the capital of Romania?",
	Options: []string{"Bucharest", "Paris", "Berlin", "Madrid"},
	Answer:  "Bucharest",
}

// newTestRoom seeds a started two-player game (A attacks first) backed
// by the in-memory store.
func newTestRoom(t *testing.T, ctx context.Context, qp questions.Provider, tick time.Duration) (*Room, *store.Memory) {
	t.Helper()

	m := store.NewMemory()
	created, err := m.CreateRoom(ctx, "Test Room", "A")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := m.JoinRoom(ctx, created.ID, "A", "Ana"); err != nil {
		t.Fatalf("join A: %v", err)
	}
	if _, err := m.JoinRoom(ctx, created.ID, "B", "Bogdan"); err != nil {
		t.Fatalf("join B: %v", err)
	}

	payload := engine.OwnershipPayload{
		{PlayerID: "A", Counties: []string{"ROCJ"}},
		{PlayerID: "B", Counties: []string{"ROB"}},
	}
	if err := m.StartRoom(ctx, created.ID, "A", payload); err != nil {
		t.Fatalf("start room: %v", err)
	}

	initial := engine.NewState([]engine.Player{
		{ID: "A", Name: "Ana", Color: "red"},
		{ID: "B", Name: "Bogdan", Color: "blue"},
	}, payload)
	initial.QuestionTicks = 2

	return New(ctx, created.ID, initial, m, qp, tick, zap.NewNop()), m
}

func TestRoom_JoinSendsCurrentSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, _ := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}

	first := recvSnapshot(t, out, 100*time.Millisecond)
	if first.Version != 0 {
		t.Fatalf("after join: want version=0, got %d", first.Version)
	}
	if first.Owners["ROB"].PlayerID != "B" {
		t.Fatalf("read-model missing ROB owner: %+v", first.Owners)
	}
}

func TestRoom_CorrectAnswerCapturesAndPersists(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, m := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	out := make(chan Snapshot, 8)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond) // version 0

	errs := make(chan error, 1)
	r.Inbox() <- FromClient{ClientID: "A", Cmd: engine.Command{Type: engine.CmdSelectCounty, PlayerID: "A", County: "ROB"}, Reply: errs}
	if err := recvReply(t, errs, 100*time.Millisecond); err != nil {
		t.Fatalf("select county rejected: %v", err)
	}

	battle := recvSnapshot(t, out, 100*time.Millisecond)
	if battle.State.Phase != engine.PhaseQuestion || battle.State.Battle == nil {
		t.Fatalf("expected question phase, got %+v", battle.State)
	}
	if battle.State.Battle.DefenderID != "B" {
		t.Fatalf("want defender B, got %s", battle.State.Battle.DefenderID)
	}

	r.Inbox() <- FromClient{ClientID: "A", Cmd: engine.Command{Type: engine.CmdSubmitAnswer, PlayerID: "A", Answer: "Bucharest"}, Reply: errs}
	if err := recvReply(t, errs, 200*time.Millisecond); err != nil {
		t.Fatalf("answer rejected: %v", err)
	}

	resolved := recvSnapshot(t, out, 200*time.Millisecond)
	if !engine.ContainsEvent(resolved.Events, engine.EvtCountyCaptured) {
		t.Fatalf("expected capture event, got %+v", resolved.Events)
	}
	idle := recvSnapshot(t, out, 200*time.Millisecond)
	if idle.State.Phase != engine.PhaseIdle || idle.State.AttackerID() != "B" {
		t.Fatalf("expected idle with attacker B, got phase=%s attacker=%s", idle.State.Phase, idle.State.AttackerID())
	}
	if idle.Owners["ROB"].PlayerID != "A" {
		t.Fatalf("read-model not updated: %+v", idle.Owners["ROB"])
	}

	rooms, err := m.ListRooms(ctx, "")
	if err != nil || len(rooms) != 1 {
		t.Fatalf("list rooms: %v", err)
	}
	payload, version, err := m.ReadOwnership(ctx, rooms[0].ID)
	if err != nil {
		t.Fatalf("read ownership: %v", err)
	}
	if owner, _ := payload.Owner("ROB"); owner != "A" {
		t.Fatalf("store not updated, ROB owner=%s", owner)
	}
	if version != 2 {
		t.Fatalf("want version 2 after capture write, got %d", version)
	}
}

func TestRoom_WrongTurnRejectedWithoutBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, _ := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	errs := make(chan error, 1)
	r.Inbox() <- FromClient{ClientID: "B", Cmd: engine.Command{Type: engine.CmdSelectCounty, PlayerID: "B", County: "ROCJ"}, Reply: errs}
	if err := recvReply(t, errs, 100*time.Millisecond); !errors.Is(err, engine.ErrWrongTurn) {
		t.Fatalf("want ErrWrongTurn, got %v", err)
	}
	recvNoSnapshot(t, out, 100*time.Millisecond)
}

func TestRoom_TimerExpiryAdvancesTurnWithoutCapture(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, m := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, 10*time.Millisecond)

	out := make(chan Snapshot, 8)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- FromClient{ClientID: "A", Cmd: engine.Command{Type: engine.CmdSelectCounty, PlayerID: "A", County: "ROB"}}
	_ = recvSnapshot(t, out, 100*time.Millisecond) // battle started

	// Two ticks at 10ms each resolve the battle as an automatic miss.
	var idle Snapshot
	deadline := time.After(time.Second)
	for {
		select {
		case snap := <-out:
			if snap.State.Phase == engine.PhaseIdle && snap.State.Battle == nil {
				idle = snap
			}
		case <-deadline:
			t.Fatalf("battle never resolved")
		}
		if idle.Version != 0 {
			break
		}
	}

	if idle.State.AttackerID() != "B" {
		t.Fatalf("turn must advance after expiry, attacker=%s", idle.State.AttackerID())
	}
	if idle.Owners["ROB"].PlayerID != "B" {
		t.Fatalf("ownership must not change on expiry: %+v", idle.Owners["ROB"])
	}

	rooms, err := m.ListRooms(ctx, "")
	if err != nil || len(rooms) != 1 {
		t.Fatalf("list rooms: %v", err)
	}
	payload, _, err := m.ReadOwnership(ctx, rooms[0].ID)
	if err != nil {
		t.Fatalf("read ownership: %v", err)
	}
	if owner, _ := payload.Owner("ROB"); owner != "B" {
		t.Fatalf("store changed on expiry, ROB owner=%s", owner)
	}
}

func TestRoom_DropSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, _ := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	// Buffer of 1 is filled by the join snapshot; the next broadcast
	// cannot be delivered and the client is dropped.
	out := make(chan Snapshot, 1)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}

	r.Inbox() <- FromClient{ClientID: "A", Cmd: engine.Command{Type: engine.CmdSelectCounty, PlayerID: "A", County: "ROB"}}

	reply := make(chan View, 1)
	r.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}

func TestRoom_EndGameFinishesRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, m := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	out := make(chan Snapshot, 4)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	errs := make(chan error, 1)
	r.Inbox() <- FromClient{ClientID: "B", Cmd: engine.Command{Type: engine.CmdEndGame, PlayerID: "B"}, Reply: errs}
	if err := recvReply(t, errs, 100*time.Millisecond); err != nil {
		t.Fatalf("end game: %v", err)
	}

	done := recvSnapshot(t, out, 100*time.Millisecond)
	if done.State.Phase != engine.PhaseDone {
		t.Fatalf("want done phase, got %s", done.State.Phase)
	}

	rooms, _ := m.ListRooms(ctx, "")
	got, err := m.GetRoom(ctx, rooms[0].ID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if got.Status != store.StatusFinished {
		t.Fatalf("want finished room, got %s", got.Status)
	}
}

func TestRoom_LeaveClosesOutbox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, _ := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	// The ws writer goroutine ranges over the outbox; Leave must close
	// it or the goroutine outlives the connection.
	r.Inbox() <- Leave{ClientID: "c1"}

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected outbox close after leave, got snapshot")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("outbox never closed after leave")
	}
}

func TestRoom_RejoinClosesDisplacedOutbox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, _ := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	stale := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: stale}
	_ = recvSnapshot(t, stale, 100*time.Millisecond)

	// Same client reconnects before the old connection sent Leave.
	fresh := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: fresh}
	_ = recvSnapshot(t, fresh, 100*time.Millisecond)

	select {
	case _, ok := <-stale:
		if ok {
			t.Fatalf("expected displaced outbox close, got snapshot")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("displaced outbox never closed")
	}
}

func TestRoom_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, _ := newTestRoom(t, ctx, questions.Fixed{Question: capitalQuestion}, time.Second)

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- Shutdown{}

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected outbox close, got snapshot")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("outbox never closed")
	}
}
