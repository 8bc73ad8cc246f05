package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/api"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// setupRouter connecte la base de test (TEST_DATABASE_URL) et applique le
// schéma. Les tests sont sautés quand la variable n'est pas définie.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	database.DB = pool
	require.NoError(t, database.Migrate(context.Background()))

	return api.SetupRouter()
}

// doJSON exécute une requête JSON contre le routeur, avec token optionnel
func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeData désérialise le champ data de l'enveloppe de réponse
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "expected success envelope, got error: %s", resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s%s@test.local", prefix, uuid.NewString()[:8])
}

// registerAndLogin crée un compte et retourne (userID, token)
func registerAndLogin(t *testing.T, router http.Handler, email string) (string, string) {
	t.Helper()

	password := "longenoughpassword"

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"fullName": "Test User",
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registerData struct {
		UserData struct {
			ID string `json:"id"`
		} `json:"userData"`
	}
	decodeData(t, rec, &registerData)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loginData struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &loginData)
	require.NotEmpty(t, loginData.Token)

	return registerData.UserData.ID, loginData.Token
}

// createExercise insère une entrée de catalogue au nom unique
func createExercise(t *testing.T, router http.Handler, token, namePrefix string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/exercises", token, map[string]string{
		"name":     namePrefix + " " + uuid.NewString()[:8],
		"category": "strength",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &data)
	return data.ID
}

func countRows(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, database.DB.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}
