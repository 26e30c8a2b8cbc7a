package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Garridot/portfolio-email-center-api/internal/mailer"
	"github.com/Garridot/portfolio-email-center-api/internal/metrics"
	"github.com/Garridot/portfolio-email-center-api/internal/validate"
)

// SendHandler relays a validated contact message to the fixed recipient.
// Authentication and rate-limit admission run earlier in the middleware
// chain; by the time Send executes the request is authenticated and charged.
type SendHandler struct {
	BaseHandler
	mailer    mailer.Mailer
	sender    string
	recipient string
}

func NewSendHandler(logger *slog.Logger, m mailer.Mailer, sender, recipient string) *SendHandler {
	return &SendHandler{
		BaseHandler: BaseHandler{Logger: logger},
		mailer:      m,
		sender:      sender,
		recipient:   recipient,
	}
}

// emailRequest is the body of POST /send_email_api.
type emailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *SendHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.readJSON(w, r, &req); err != nil {
		metrics.Requests.WithLabelValues(metrics.OutcomeValidationError).Inc()
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// An absent or empty-string field is "missing"; an all-whitespace
	// message passes this check and fails the emptiness check below.
	if req.Email == "" || req.Message == "" {
		metrics.Requests.WithLabelValues(metrics.OutcomeValidationError).Inc()
		h.errorResponse(w, r, http.StatusBadRequest, "All fields are required.")
		return
	}

	if !validate.IsValidEmail(req.Email) {
		metrics.Requests.WithLabelValues(metrics.OutcomeValidationError).Inc()
		h.errorResponse(w, r, http.StatusBadRequest, "The email address is invalid.")
		return
	}

	if !validate.NonEmptyMessage(req.Message) {
		metrics.Requests.WithLabelValues(metrics.OutcomeValidationError).Inc()
		h.errorResponse(w, r, http.StatusBadRequest, "The message cannot be empty.")
		return
	}

	msg := mailer.Message{
		Subject: fmt.Sprintf("Email from %s", req.Email),
		From:    h.sender,
		To:      []string{h.recipient},
		Body:    validate.Sanitize(req.Message),
	}

	if err := h.mailer.Send(r.Context(), msg); err != nil {
		// Log the transport detail internally; the caller gets a
		// generic message so SMTP internals never leak.
		h.logError(r, fmt.Errorf("mail dispatch failed: %w", err))
		metrics.Requests.WithLabelValues(metrics.OutcomeTransportError).Inc()
		h.errorResponse(w, r, http.StatusInternalServerError, "The email could not be sent.")
		return
	}

	metrics.Requests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.EmailsSent.Inc()
	h.Logger.Info("email relayed", "remote_addr", r.RemoteAddr, "from", req.Email)

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": "The email was sent successfully."}, nil)
}
