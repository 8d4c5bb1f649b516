package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/triviador-game/triviador-backend/internal/engine"
	"github.com/triviador-game/triviador-backend/internal/hub"
	"github.com/triviador-game/triviador-backend/internal/mapstate"
	"github.com/triviador-game/triviador-backend/internal/room"
	"github.com/triviador-game/triviador-backend/internal/store"
)

// Identity is established upstream; handlers only need the caller's id.
const playerHeader = "X-Player-ID"

type API struct {
	store store.Store
	hub   *hub.Hub
	log   *zap.Logger
}

func NewAPI(st store.Store, h *hub.Hub, log *zap.Logger) *API {
	return &API{store: st, hub: h, log: log}
}

func (a *API) CreateRoom(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get(playerHeader)
	if callerID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "room name is required")
		return
	}

	created, err := a.store.CreateRoom(r.Context(), body.Name, callerID)
	if err != nil {
		a.log.Error("create room failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not create room")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.store.ListRooms(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		a.log.Error("list rooms failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not list rooms")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Rooms []store.Room `json:"rooms"`
	}{Rooms: rooms})
}

// GetRoom returns the room, its roster and the ownership payload plus
// the derived county read-model, which is everything a client needs to
// render the map before subscribing.
func (a *API) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	rm, err := a.store.GetRoom(r.Context(), roomID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	roster, err := a.store.Roster(r.Context(), roomID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	payload, version, err := a.store.ReadOwnership(r.Context(), roomID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	colors := make(map[string]string, len(roster))
	for _, p := range roster {
		colors[p.UserID] = p.Color
	}

	writeJSON(w, http.StatusOK, struct {
		Room    store.Room                      `json:"room"`
		Players []store.RoomPlayer              `json:"players"`
		Payload engine.OwnershipPayload         `json:"map_state"`
		Version int64                           `json:"version"`
		Owners  map[string]mapstate.CountyOwner `json:"county_owners"`
	}{Room: rm, Players: roster, Payload: payload, Version: version, Owners: mapstate.Derive(payload, colors)})
}

func (a *API) JoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	callerID := r.Header.Get(playerHeader)
	if callerID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	player, err := a.store.JoinRoom(r.Context(), roomID, callerID, body.Name)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// StartRoom deals every county to the joined players, persists the
// initial ownership payload and brings the live room actor up.
func (a *API) StartRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	callerID := r.Header.Get(playerHeader)
	if callerID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	roster, err := a.store.Roster(r.Context(), roomID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	if len(roster) < 2 {
		writeError(w, http.StatusBadRequest, "need at least two players to start")
		return
	}

	playerIDs := make([]string, len(roster))
	players := make([]engine.Player, len(roster))
	for i, p := range roster {
		playerIDs[i] = p.UserID
		players[i] = engine.Player{ID: p.UserID, Name: p.Name, Color: p.Color}
	}

	payload := engine.AssignCounties(playerIDs)
	if err := a.store.StartRoom(r.Context(), roomID, callerID, payload); err != nil {
		a.writeStoreError(w, err)
		return
	}

	reply := make(chan *room.Room, 1)
	a.hub.Inbox() <- hub.EnsureRoom{ID: roomID, State: engine.NewState(players, payload), Reply: reply}
	if <-reply == nil {
		writeError(w, http.StatusInternalServerError, "could not start live room")
		return
	}

	a.log.Info("room started", zap.String("room", roomID), zap.Int("players", len(players)))
	writeJSON(w, http.StatusOK, struct {
		Payload engine.OwnershipPayload `json:"map_state"`
	}{Payload: payload})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (a *API) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, store.ErrNotOwner):
		writeError(w, http.StatusForbidden, "only the room owner can do that")
	case errors.Is(err, store.ErrAlreadyJoined):
		writeError(w, http.StatusConflict, "player already in room")
	case errors.Is(err, store.ErrNoColors):
		writeError(w, http.StatusConflict, "room is full, no colors left")
	case errors.Is(err, store.ErrRoomNotWaiting):
		writeError(w, http.StatusConflict, "game already started")
	default:
		a.log.Error("store error", zap.Error(err))
		writeError(w, http.StatusBadGateway, "storage failure")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
