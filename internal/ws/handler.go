package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/hub"
	"github.com/triviador-game/triviador-backend/internal/room"
	"github.com/triviador-game/triviador-backend/internal/types"
)

// Handler upgrades to a websocket and bridges one client into its room
// actor: snapshots flow out as StateSnapshot messages, client messages
// flow in as engine commands. This is the subscription primitive of the
// sync channel; updates for a room arrive in write order because the
// room broadcasts from a single goroutine.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		playerID := r.URL.Query().Get("player")
		if roomID == "" || playerID == "" {
			http.Error(w, "missing room or player", http.StatusBadRequest)
			return
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{ID: roomID, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not live", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan room.Snapshot, 8)
		rm.Inbox() <- room.Join{ClientID: playerID, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: playerID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{
					Type:    "StateSnapshot",
					Version: snap.Version,
					State:   &snap.State,
					Owners:  snap.Owners,
					Events:  snap.Events,
				}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		errs := make(chan error, 1)

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toCommand(cm, playerID)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			rm.Inbox() <- room.FromClient{ClientID: playerID, Cmd: cmd, Reply: errs}
			select {
			case cmdErr := <-errs:
				if cmdErr != nil {
					log.Debug("command rejected",
						zap.String("room", roomID),
						zap.String("player", playerID),
						zap.Error(cmdErr))
					writeError(r.Context(), conn, cmdErr.Error())
				}
			case <-time.After(5 * time.Second):
				writeError(r.Context(), conn, "room unresponsive")
			}
		}
	}
}

func toCommand(m types.ClientMessage, playerID string) (engine.Command, bool) {
	switch m.Type {
	case "SelectCounty":
		return engine.Command{Type: engine.CmdSelectCounty, PlayerID: playerID, County: m.County, Category: m.Category}, true
	case "SubmitAnswer":
		return engine.Command{Type: engine.CmdSubmitAnswer, PlayerID: playerID, Answer: m.Answer}, true
	case "EndGame":
		return engine.Command{Type: engine.CmdEndGame, PlayerID: playerID}, true
	default:
		return engine.Command{}, false
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}
