package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmarek/bowldraft/internal/room"
	"github.com/jmarek/bowldraft/internal/ws"
)

func SetupRoutes(rm *room.Room, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/draft", GetDraft(rm))
	r.Post("/api/draft/pick", PostPick(rm))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(rm, log))
	return r
}
