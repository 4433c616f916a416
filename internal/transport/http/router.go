package http

import (
	"net/http"

	"github.com/frontdoor-labs/frontdoor-api/internal/application/attachment"
	"github.com/frontdoor-labs/frontdoor-api/internal/application/inbox"
	"github.com/frontdoor-labs/frontdoor-api/internal/application/intake"
	"github.com/frontdoor-labs/frontdoor-api/internal/application/settings"
	"github.com/frontdoor-labs/frontdoor-api/internal/config"
	s3infra "github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/s3"
	"github.com/frontdoor-labs/frontdoor-api/internal/transport/http/handler"
	appmiddleware "github.com/frontdoor-labs/frontdoor-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the public intake endpoints.
	intakeRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	intakeSvc := intake.NewService(intake.ServiceDeps{
		PingeeRepo:    deps.PingeeRepo,
		RequestRepo:   deps.RequestRepo,
		TypeRepo:      deps.RequestTypeRepo,
		Codes:         deps.Codes,
		Mailer:        deps.Mailer,
		SMSSender:     deps.SMSSender,
		NotifyTimeout: cfg.NotifyTimeout,
	})
	inboxSvc := inbox.NewService(inbox.ServiceDeps{
		RequestRepo: deps.RequestRepo,
		PingeeRepo:  deps.PingeeRepo,
		ContactRepo: deps.ContactRepo,
	})
	attachmentSvc := attachment.NewService(deps.AttachmentStore, s3infra.ContentTypeFor)
	settingsSvc := settings.NewService(settings.ServiceDeps{PingeeRepo: deps.PingeeRepo})

	healthH := handler.NewHealthHandler()
	pingerH := handler.NewPingerHandler(intakeSvc)
	requestH := handler.NewRequestHandler(inboxSvc)
	attachmentH := handler.NewAttachmentHandler(attachmentSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.Get("/pinger/{linkID}", pingerH.GetPingee)
		r.With(intakeRL.Limit).Get("/pinger/require-verification", pingerH.RequireVerification)
		r.With(intakeRL.Limit).Post("/pinger/request/{linkID}", pingerH.Submit)
		r.With(intakeRL.Limit).Post("/pinger/attachments", attachmentH.Upload)
		r.Get("/pinger/requests/{id}/status", requestH.PublicStatus)

		// ── Authenticated routes (pingee inbox) ──────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/requests", requestH.List)
			r.Get("/requests/{id}", requestH.Get)
			r.Post("/requests/{id}/reply", requestH.Reply)
			r.Post("/requests/{id}/close", requestH.Close)
			r.Get("/attachments/*", attachmentH.Download)

			r.Get("/settings", settingsH.Get)
			r.Patch("/settings/trust", settingsH.UpdateTrust)
			r.Patch("/settings/reply-windows", settingsH.UpdateReplyWindows)
		})
	})

	return r
}
