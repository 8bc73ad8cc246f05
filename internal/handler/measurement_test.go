package handler_test

import (
	"net/http"
	"testing"

	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementLifecycle(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("measure"))

	rec := doJSON(t, router, http.MethodPost, "/api/measurements", token, map[string]interface{}{
		"date":   "2026-08-01",
		"weight": 82.5,
		"bodyParts": []map[string]interface{}{
			{"name": "chest", "value": 104.0},
			{"name": "waist", "value": 84.5},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)

	rec = doJSON(t, router, http.MethodGet, "/api/measurements", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.Measurement
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Weight)
	assert.Equal(t, 82.5, *list[0].Weight)
	require.Len(t, list[0].BodyParts, 2)
	assert.Equal(t, "chest", list[0].BodyParts[0].Name)

	// Update: les bodyParts sont remplacées, pas fusionnées
	rec = doJSON(t, router, http.MethodPut, "/api/measurements/"+created.ID, token, map[string]interface{}{
		"date":      "2026-08-02",
		"weight":    82.0,
		"bodyParts": []map[string]interface{}{{"name": "waist", "value": 84.0}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/measurements", token, nil)
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	require.Len(t, list[0].BodyParts, 1)
	assert.Equal(t, "waist", list[0].BodyParts[0].Name)

	rec = doJSON(t, router, http.MethodDelete, "/api/measurements/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/measurements", token, nil)
	decodeData(t, rec, &list)
	assert.Empty(t, list)
}

func TestMeasurementIsPrivate(t *testing.T) {
	router := setupRouter(t)
	_, ownerToken := registerAndLogin(t, router, uniqueEmail("mowner"))
	_, otherToken := registerAndLogin(t, router, uniqueEmail("mother"))

	rec := doJSON(t, router, http.MethodPost, "/api/measurements", ownerToken, map[string]interface{}{
		"date":   "2026-08-01",
		"weight": 90.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)

	rec = doJSON(t, router, http.MethodDelete, "/api/measurements/"+created.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/measurements", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.Measurement
	decodeData(t, rec, &list)
	assert.Empty(t, list)
}
