package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deniscmrg/investia-api/internal/auth"
)

func NewRouter(h *Handlers, hub *Hub, jwtSvc *auth.JWTService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Post("/auth/token", h.IssueToken)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(jwtSvc))
		r.Get("/status", h.Status)
		r.Get("/cotacao/{ticker}", h.Cotacao)
		r.Get("/validar-ordem", h.ValidarOrdem)
		r.Post("/ordem", h.Ordem)
		r.Post("/ajustar-stop", h.AjustarStop)
		r.Post("/fechar/{ticket}", h.Fechar)
		r.Get("/posicoes", h.Posicoes)
		r.Get("/ordens-pendentes", h.OrdensPendentes)
		r.Get("/historico", h.Historico)
	})

	r.Get("/ws", ServeWS(hub, h.logger))

	return r
}
