package handler_test

import (
	"net/http"
	"testing"
	"time"

	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSessionComputesVolume(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("session"))

	bench := createExercise(t, router, token, "Bench Press")
	pullup := createExercise(t, router, token, "Pull Up")

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", token, map[string]interface{}{
		"workoutName": "Evening Session",
		"startTime":   time.Now().Add(-time.Hour).Format(time.RFC3339),
		"exercises": []map[string]interface{}{
			{
				"exerciseId": bench,
				"sets": []map[string]interface{}{
					{"setNumber": 1, "weight": "100", "reps": "5"},
				},
			},
			{
				"exerciseId": pullup,
				"sets": []map[string]interface{}{
					{"setNumber": 1, "weight": "BW", "reps": "10"},
				},
			},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID                    string  `json:"id"`
		CalculatedTotalVolume float64 `json:"calculatedTotalVolume"`
	}
	decodeData(t, rec, &created)

	// Seul 100x5 compte, la série au poids du corps vaut 0
	assert.Equal(t, 500.0, created.CalculatedTotalVolume)

	rec = doJSON(t, router, http.MethodGet, "/api/workouts/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session model.WorkoutSession
	decodeData(t, rec, &session)

	assert.Equal(t, 500.0, session.TotalVolume)
	require.Len(t, session.Exercises, 2)
	assert.Equal(t, 0, session.Exercises[0].OrderIndex)
	assert.Equal(t, 1, session.Exercises[1].OrderIndex)
	require.Len(t, session.Exercises[0].Sets, 1)
	assert.Equal(t, "100", session.Exercises[0].Sets[0].Weight)
	assert.Equal(t, "BW", session.Exercises[1].Sets[0].Weight)
}

func TestSessionHistoryIsOwnerOnly(t *testing.T) {
	router := setupRouter(t)
	_, ownerToken := registerAndLogin(t, router, uniqueEmail("sessowner"))
	_, otherToken := registerAndLogin(t, router, uniqueEmail("sessother"))

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", ownerToken, map[string]interface{}{
		"workoutName": "Secret Session",
		"startTime":   time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)

	// L'historique n'est jamais visible par un tiers, réponse 404
	rec = doJSON(t, router, http.MethodGet, "/api/workouts/"+created.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/workouts/"+created.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionListNewestFirst(t *testing.T) {
	router := setupRouter(t)
	userID, token := registerAndLogin(t, router, uniqueEmail("history"))

	for _, offset := range []time.Duration{-48 * time.Hour, -24 * time.Hour, -time.Hour} {
		rec := doJSON(t, router, http.MethodPost, "/api/workouts", token, map[string]interface{}{
			"workoutName": "Session",
			"startTime":   time.Now().Add(offset).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+userID+"/workouts?limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessions []model.WorkoutSession
	decodeData(t, rec, &sessions)

	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].StartTime.After(sessions[1].StartTime))
}
