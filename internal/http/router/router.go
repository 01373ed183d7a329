package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mogilev-express/internal/http/handlers"
	mw "mogilev-express/internal/http/middleware"
	"mogilev-express/internal/http/middleware/ratelimit"
	"mogilev-express/internal/http/pprofserver"
	"mogilev-express/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	base *handlers.Handlers,
	orderH *handlers.OrderHandler,
	authH *handlers.AuthHandler,
	streamH *handlers.StreamHandler,
	rl *ratelimit.Middleware,
	pprofCfg pprofserver.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.Observability(logger))
	r.Use(rl.Handler())

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/debug/pprof/*", pprofserver.Handler(pprofCfg))

	r.Route("/api", func(api chi.Router) {
		// стрим живет дольше любого таймаута
		api.Get("/orders/stream", streamH.Stream)

		api.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(5 * time.Second))

			g.Post("/orders", orderH.Create)
			g.Post("/orders/accept", orderH.Accept)
			g.Get("/orders/pending", orderH.ListPending)
			g.Get("/orders/{id}", orderH.Get)

			g.Post("/auth/contact", authH.Contact)
			g.Post("/auth", authH.Login)
		})
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
