package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testKey = "sekrit-test-key-0123456789"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyMissingHeader(t *testing.T) {
	h := APIKey(testKey)(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/send_email_api", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "Unauthorized access"}`, rr.Body.String())
}

func TestAPIKeyWrongKey(t *testing.T) {
	h := APIKey(testKey)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/send_email_api", nil)
	req.Header.Set("x-api-key", "wrong-key")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "Unauthorized access"}`, rr.Body.String())
}

func TestAPIKeyValid(t *testing.T) {
	h := APIKey(testKey)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/send_email_api", nil)
	req.Header.Set("x-api-key", testKey)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAPIKeyHeaderIsCaseInsensitive(t *testing.T) {
	h := APIKey(testKey)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/send_email_api", nil)
	req.Header.Set("X-Api-Key", testKey)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
