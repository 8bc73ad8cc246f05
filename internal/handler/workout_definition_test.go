package handler_test

import (
	"net/http"
	"testing"

	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWorkout(t *testing.T, router http.Handler, token string, body map[string]interface{}) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/workout-definitions", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &data)
	return data.ID
}

func TestWorkoutDefinitionDefaultsAndOrder(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("workout"))

	squat := createExercise(t, router, token, "Squat")
	bench := createExercise(t, router, token, "Bench Press")

	workoutID := createWorkout(t, router, token, map[string]interface{}{
		"name": "Push Day",
		"type": "strength",
		"exercises": []map[string]interface{}{
			{"exerciseId": squat},
			{"exerciseId": bench, "sets": 5, "reps": "5", "restSeconds": 180},
		},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/workout-definitions/"+workoutID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var def model.WorkoutDefinition
	decodeData(t, rec, &def)

	require.Len(t, def.Exercises, 2)

	// Prescription omise: defaults sets=3, reps="10", rest=60
	assert.Equal(t, 0, def.Exercises[0].OrderIndex)
	assert.Equal(t, 3, def.Exercises[0].Sets)
	assert.Equal(t, "10", def.Exercises[0].Reps)
	assert.Equal(t, 60, def.Exercises[0].RestSeconds)

	assert.Equal(t, 1, def.Exercises[1].OrderIndex)
	assert.Equal(t, 5, def.Exercises[1].Sets)
	assert.Equal(t, "5", def.Exercises[1].Reps)
	assert.Equal(t, 180, def.Exercises[1].RestSeconds)
}

func TestWorkoutDefinitionFullReplace(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("replace"))

	squat := createExercise(t, router, token, "Squat")
	deadlift := createExercise(t, router, token, "Deadlift")

	workoutID := createWorkout(t, router, token, map[string]interface{}{
		"name": "Leg Day",
		"type": "strength",
		"exercises": []map[string]interface{}{
			{"exerciseId": squat},
			{"exerciseId": deadlift},
		},
	})

	// Remplacement complet: une seule ligne, le deadlift passe en tête
	rec := doJSON(t, router, http.MethodPut, "/api/workout-definitions/"+workoutID, token, map[string]interface{}{
		"name": "Leg Day v2",
		"type": "strength",
		"exercises": []map[string]interface{}{
			{"exerciseId": deadlift, "sets": 3, "reps": "5"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/workout-definitions/"+workoutID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var def model.WorkoutDefinition
	decodeData(t, rec, &def)

	assert.Equal(t, "Leg Day v2", def.Name)
	require.Len(t, def.Exercises, 1)
	assert.Equal(t, deadlift, def.Exercises[0].ExerciseID)
	assert.Equal(t, 0, def.Exercises[0].OrderIndex)
}

func TestWorkoutDefinitionOwnership(t *testing.T) {
	router := setupRouter(t)
	_, ownerToken := registerAndLogin(t, router, uniqueEmail("owner"))
	_, otherToken := registerAndLogin(t, router, uniqueEmail("other"))

	squat := createExercise(t, router, ownerToken, "Squat")

	privateID := createWorkout(t, router, ownerToken, map[string]interface{}{
		"name":      "Private Workout",
		"type":      "strength",
		"exercises": []map[string]interface{}{{"exerciseId": squat}},
	})
	publicID := createWorkout(t, router, ownerToken, map[string]interface{}{
		"name":      "Public Workout",
		"type":      "strength",
		"isPublic":  true,
		"exercises": []map[string]interface{}{{"exerciseId": squat}},
	})

	// Lecture d'une séance privée par un tiers: 404, pas 403
	rec := doJSON(t, router, http.MethodGet, "/api/workout-definitions/"+privateID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Séance publique lisible par tous
	rec = doJSON(t, router, http.MethodGet, "/api/workout-definitions/"+publicID, otherToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Mutation par un tiers, même sur du public: 403
	rec = doJSON(t, router, http.MethodPut, "/api/workout-definitions/"+publicID, otherToken, map[string]interface{}{
		"name": "Hijacked", "type": "strength",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/workout-definitions/"+publicID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteWorkoutCascadesExercises(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("cascade"))

	squat := createExercise(t, router, token, "Squat")
	workoutID := createWorkout(t, router, token, map[string]interface{}{
		"name":      "Doomed",
		"type":      "strength",
		"exercises": []map[string]interface{}{{"exerciseId": squat}},
	})

	require.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM workout_definition_exercises WHERE workout_id=$1`, workoutID))

	rec := doJSON(t, router, http.MethodDelete, "/api/workout-definitions/"+workoutID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM workout_definition_exercises WHERE workout_id=$1`, workoutID))
}
