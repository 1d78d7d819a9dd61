package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	dialogueHandler "github.com/neo-arclight/roundtable/internal/handler/dialogue"
	"github.com/neo-arclight/roundtable/internal/handler/generate"
	personaHandler "github.com/neo-arclight/roundtable/internal/handler/persona"
	"github.com/neo-arclight/roundtable/internal/handler/ws"
	middlewarePkg "github.com/neo-arclight/roundtable/internal/middleware"
	personaModel "github.com/neo-arclight/roundtable/internal/model/persona"
	dialogueService "github.com/neo-arclight/roundtable/internal/service/dialogue"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, orchestrator *dialogueService.Orchestrator, replier generate.Replier, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		dialogueHandler.New(orchestrator).RegisterRoutes(api)
		generate.New(replier, personas).RegisterRoutes(api)

		if hub != nil {
			hub.RegisterRoutes(api)
		}
	})

	return r
}
