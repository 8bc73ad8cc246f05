package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
)

// LoggerMiddleware est branché sur le routeur racine: il enveloppe aussi les
// routes publiques et ne doit altérer ni le status ni le corps.
func TestLoggerMiddlewarePassesResponseThrough(t *testing.T) {
	wrapped := middleware.LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/community/posts", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
