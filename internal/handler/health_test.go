package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthOK(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(stubPinger{})(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
}

func TestHealthDegradedWhenStoreUnreachable(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(stubPinger{err: errors.New("connection refused")})(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status": "degraded"}`, rr.Body.String())
}
