package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := setupRouter(t)
	email := uniqueEmail("dup")

	body := map[string]interface{}{
		"fullName": "First User",
		"email":    email,
		"password": "longenoughpassword",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	before := countRows(t, `SELECT COUNT(*) FROM users WHERE email=$1`, email)
	require.Equal(t, 1, before)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	// Le conflit nomme le bon champ, pas une collision de username
	assert.Contains(t, rec.Body.String(), "email already registered")

	after := countRows(t, `SELECT COUNT(*) FROM users WHERE email=$1`, email)
	assert.Equal(t, before, after)
}

func TestRegisterValidation(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"fullName": "",
		"email":    "",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fullName")
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "password")
}

func TestRegisterUsernameCollisionGetsSuffix(t *testing.T) {
	router := setupRouter(t)

	local := "casey" + uuid.NewString()[:8]

	for i, domain := range []string{"one.test", "two.test"} {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
			"fullName": "Casey",
			"email":    local + "@" + domain,
			"password": "longenoughpassword",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var data struct {
			UserData struct {
				Username string `json:"username"`
			} `json:"userData"`
		}
		decodeData(t, rec, &data)

		if i == 0 {
			assert.Equal(t, local, data.UserData.Username)
		} else {
			assert.Equal(t, local+"1", data.UserData.Username)
		}
	}
}

func TestRegisterSeedsDefaultSettings(t *testing.T) {
	router := setupRouter(t)

	userID, _ := registerAndLogin(t, router, uniqueEmail("seed"))

	n := countRows(t, `SELECT COUNT(*) FROM user_settings WHERE user_id=$1`, userID)
	assert.Equal(t, 3, n)
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupRouter(t)
	email := uniqueEmail("login")

	registerAndLogin(t, router, email)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	router := setupRouter(t)

	userID, token := registerAndLogin(t, router, uniqueEmail("logout"))

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+userID+"/workouts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Token invalidé: les routes authentifiées répondent 401
	rec = doJSON(t, router, http.MethodGet, "/api/users/"+userID+"/workouts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Deuxième logout: la session n'existe plus
	rec = doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
