package engine

import "errors"

var ErrWrongTurn = errors.New("not your turn")
var ErrNoPlayers = errors.New("no players in room")
var ErrNotInRoom = errors.New("player not in room")
var ErrUnknownCounty = errors.New("unknown county")
var ErrOwnCounty = errors.New("county already owned by attacker")
var ErrBattleActive = errors.New("battle already in progress")
var ErrNoBattle = errors.New("no battle in progress")
var ErrGameOver = errors.New("game already over")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseQuestion  Phase = "question"
	PhaseResolving Phase = "resolving"
	PhaseDone      Phase = "done"
)

// DefaultQuestionTicks is the battle countdown: one tick per time unit.
const DefaultQuestionTicks = 15

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

type Question struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"-"` // never serialized to clients
	Category string   `json:"category,omitempty"`
}

// Battle is the ephemeral duel over one contested county. It exists only
// between county selection and resolution and is never persisted.
type Battle struct {
	AttackerID string   `json:"attacker_id"`
	DefenderID string   `json:"defender_id"`
	County     string   `json:"county"`
	Question   Question `json:"question"`
	TicksLeft  int      `json:"ticks_left"`
	Won        bool     `json:"won"`
}

type State struct {
	Players       []Player         `json:"players"` // join order
	Turn          int              `json:"turn"`    // attacker index into Players
	Phase         Phase            `json:"phase"`
	Battle        *Battle          `json:"battle,omitempty"`
	Ownership     OwnershipPayload `json:"ownership"`
	QuestionTicks int              `json:"question_ticks"`
}

type CommandType string

const (
	CmdSelectCounty   CommandType = "SelectCounty"
	CmdSubmitAnswer   CommandType = "SubmitAnswer"
	CmdTimerTick      CommandType = "TimerTick"
	CmdConcludeBattle CommandType = "ConcludeBattle"
	CmdEndGame        CommandType = "EndGame"
)

type Command struct {
	Type     CommandType
	PlayerID string
	County   string
	Answer   string
	Category string   // optional question category filter
	Question Question // filled in by the room, not by clients
}

type EventType string

const (
	EvtBattleStarted  EventType = "BattleStarted"
	EvtCountyCaptured EventType = "CountyCaptured"
	EvtBattleLost     EventType = "BattleLost"
	EvtTimerExpired   EventType = "TimerExpired"
	EvtTurnAdvanced   EventType = "TurnAdvanced"
	EvtGameEnded      EventType = "GameEnded"
)

type Event struct {
	Type     EventType `json:"type"`
	PlayerID string    `json:"player_id,omitempty"`
	County   string    `json:"county,omitempty"`
}

// AttackerID is the player whose turn it is to pick a county.
func (s State) AttackerID() string {
	if len(s.Players) == 0 {
		return ""
	}
	return s.Players[s.Turn%len(s.Players)].ID
}

// DefenderID is the next player in rotation. The pair advances together
// after every resolution, independent of who owns the contested county.
func (s State) DefenderID() string {
	if len(s.Players) < 2 {
		return ""
	}
	return s.Players[(s.Turn+1)%len(s.Players)].ID
}

func (s State) hasPlayer(id string) bool {
	for _, p := range s.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Winner returns the player holding the most counties. Ties break toward
// join order.
func (s State) Winner() string {
	best := ""
	bestCount := -1
	for _, p := range s.Players {
		if n := s.Ownership.CountyCount(p.ID); n > bestCount {
			best = p.ID
			bestCount = n
		}
	}
	return best
}

func (s State) clone() State {
	ns := s
	ns.Players = make([]Player, len(s.Players))
	copy(ns.Players, s.Players)
	ns.Ownership = s.Ownership.Clone()
	if s.Battle != nil {
		b := *s.Battle
		ns.Battle = &b
	}
	return ns
}

// Apply runs one command against the state machine. It never mutates s;
// on error the returned state is s unchanged.
//
// Phase transitions:
//
//	idle      --SelectCounty-->            question
//	question  --SubmitAnswer / tick to 0-> resolving
//	resolving --ConcludeBattle-->          idle (turn advanced)
func Apply(s State, cmd Command) ([]Event, State, error) {
	if len(s.Players) == 0 {
		return nil, s, ErrNoPlayers
	}
	if s.Phase == PhaseDone {
		return nil, s, ErrGameOver
	}

	ns := s.clone()

	switch cmd.Type {
	case CmdSelectCounty:
		if s.Phase != PhaseIdle {
			return nil, s, ErrBattleActive
		}
		if cmd.PlayerID != s.AttackerID() {
			return nil, s, ErrWrongTurn
		}
		if !IsCounty(cmd.County) {
			return nil, s, ErrUnknownCounty
		}
		// Attacking a county you already hold is rejected outright:
		// a battle needs a contestable target.
		if owner, ok := s.Ownership.Owner(cmd.County); ok && owner == cmd.PlayerID {
			return nil, s, ErrOwnCounty
		}

		ticks := s.QuestionTicks
		if ticks <= 0 {
			ticks = DefaultQuestionTicks
		}
		ns.Phase = PhaseQuestion
		ns.Battle = &Battle{
			AttackerID: cmd.PlayerID,
			DefenderID: s.DefenderID(),
			County:     cmd.County,
			Question:   cmd.Question,
			TicksLeft:  ticks,
		}
		return []Event{{Type: EvtBattleStarted, PlayerID: cmd.PlayerID, County: cmd.County}}, ns, nil

	case CmdSubmitAnswer:
		if s.Phase != PhaseQuestion {
			return nil, s, ErrNoBattle
		}
		if cmd.PlayerID != s.Battle.AttackerID {
			return nil, s, ErrWrongTurn
		}

		ns.Phase = PhaseResolving
		if cmd.Answer != s.Battle.Question.Answer {
			ns.Battle.Won = false
			return []Event{{Type: EvtBattleLost, PlayerID: cmd.PlayerID, County: s.Battle.County}}, ns, nil
		}

		ns.Battle.Won = true
		ns.Ownership = ns.Ownership.Capture(cmd.PlayerID, s.Battle.County)
		for i := range ns.Players {
			if ns.Players[i].ID == cmd.PlayerID {
				ns.Players[i].Score++
			}
		}
		return []Event{{Type: EvtCountyCaptured, PlayerID: cmd.PlayerID, County: s.Battle.County}}, ns, nil

	case CmdTimerTick:
		if s.Phase != PhaseQuestion {
			return nil, s, ErrNoBattle
		}
		ns.Battle.TicksLeft--
		if ns.Battle.TicksLeft > 0 {
			return nil, ns, nil
		}
		// Expiry is an automatic incorrect answer, not an error.
		ns.Phase = PhaseResolving
		ns.Battle.Won = false
		return []Event{
			{Type: EvtTimerExpired, PlayerID: s.Battle.AttackerID, County: s.Battle.County},
			{Type: EvtBattleLost, PlayerID: s.Battle.AttackerID, County: s.Battle.County},
		}, ns, nil

	case CmdConcludeBattle:
		if s.Phase != PhaseResolving {
			return nil, s, ErrNoBattle
		}
		ns.Battle = nil
		ns.Phase = PhaseIdle
		ns.Turn = (s.Turn + 1) % len(s.Players)
		return []Event{{Type: EvtTurnAdvanced, PlayerID: ns.AttackerID()}}, ns, nil

	case CmdEndGame:
		if !s.hasPlayer(cmd.PlayerID) {
			return nil, s, ErrNotInRoom
		}
		ns.Phase = PhaseDone
		ns.Battle = nil
		return []Event{{Type: EvtGameEnded, PlayerID: ns.Winner()}}, ns, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}
