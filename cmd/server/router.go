package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/folio/portfolio-cms/internal/config"
	"github.com/folio/portfolio-cms/internal/handler"
	"github.com/folio/portfolio-cms/internal/middleware"
)

const adminLoginPath = "/admin/login"

type routerDeps struct {
	storage handler.StorageStatus
	// redis stays nil when challenges live in memory.
	redis      handler.Pinger
	challenges handler.Authenticator
	content    handler.ContentStore
	inbox      handler.Inbox
}

func newRouter(cfg *config.Config, deps routerDeps) http.Handler {
	secureCookie := !cfg.IsDevelopment()

	gate := middleware.NewGate(cfg.AdminSecret, adminLoginPath)
	bodyLimit := middleware.NewBodyLimitMiddleware(0)
	securityHeaders := middleware.NewSecurityHeaders(secureCookie)
	publicCORS := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	authHandler := handler.NewAuthHandler(deps.challenges, secureCookie)
	contentHandler := handler.NewContentHandler(deps.content, gate.API)
	messageHandler := handler.NewMessageHandler(deps.inbox, gate.API)
	healthHandler := handler.NewHealthHandler(deps.storage, deps.redis)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimit.Handler)

	r.Method(http.MethodGet, "/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/", http.StatusFound)
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", authHandler.Routes())

		r.Route("/content", func(r chi.Router) {
			r.Use(publicCORS)
			r.Mount("/", contentHandler.Routes())
		})
		r.Route("/contact", func(r chi.Router) {
			r.Use(publicCORS)
			r.Mount("/", messageHandler.ContactRoutes())
		})
		r.Mount("/messages", messageHandler.Routes())
	})

	r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/", http.StatusMovedPermanently)
	})
	r.Route("/admin/", func(r chi.Router) {
		r.Use(securityHeaders.Handler)
		r.Use(gate.Browser)
		r.Handle("/*", handler.StaticFileServer(cfg.AdminStaticDir))
	})

	return r
}
