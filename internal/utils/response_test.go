package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestCreatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestErrorEnvelopeHidesInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusInternalServerError, "could not create user", assertableError("pq: secret detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "could not create user", resp.Error)
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestValidationErrorListsFields(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, "missing required fields", []string{"email", "password"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"email", "password"}, resp.Errors)
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 20, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"capped", "limit=500", 100, 0},
		{"garbage", "limit=abc&offset=-5", 20, 0},
		{"zero limit falls back", "limit=0", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			limit, offset := ParseLimitOffset(r, 20, 100)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
