package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/triviador-game/triviador-backend/internal/hub"
	"github.com/triviador-game/triviador-backend/internal/store"
	"github.com/triviador-game/triviador-backend/internal/ws"
)

func SetupRoutes(st store.Store, h *hub.Hub, log *zap.Logger) http.Handler {
	api := NewAPI(st, h, log)

	r := chi.NewRouter()
	r.Post("/rooms", api.CreateRoom)
	r.Get("/rooms", api.ListRooms)
	r.Get("/rooms/{roomID}", api.GetRoom)
	r.Post("/rooms/{roomID}/join", api.JoinRoom)
	r.Post("/rooms/{roomID}/start", api.StartRoom)
	r.Get("/ws", ws.Handler(h, log))
	r.Get("/healthz", Healthz)
	return r
}
