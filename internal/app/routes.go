package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Garridot/portfolio-email-center-api/internal/handler"
	"github.com/Garridot/portfolio-email-center-api/internal/metrics"
	"github.com/Garridot/portfolio-email-center-api/internal/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()

	// Only resolve X-Forwarded-For when explicitly behind a trusted proxy;
	// otherwise the rate-limit key must be the socket peer address.
	if app.config.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)

	r.Get("/api/health", handler.Health(app.store))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	send := handler.NewSendHandler(app.logger, app.mailer, app.config.MailSender, app.config.RecipientEmail)
	r.Group(func(r chi.Router) {
		// Order matters: auth rejections must not be charged against
		// quota, and both gates run before any body parsing.
		r.Use(middleware.APIKey(app.config.APIKey))
		r.Use(middleware.RateLimit(app.limiter, app.logger))

		r.Post("/send_email_api", send.Send)
	})

	return r
}
