package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/scanner"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/gorilla/mux"
)

type MeasurementRequest struct {
	Date      string           `json:"date"`
	Weight    *float64         `json:"weight,omitempty"`
	BodyParts []model.BodyPart `json:"bodyParts"`
	Notes     string           `json:"notes,omitempty"`
}

// GetMeasurements liste les relevés corporels de l'appelant, plus récent d'abord
func GetMeasurements(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()
	limit, offset := utils.ParseLimitOffset(r, 50, 200)

	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, taken_on, weight, body_parts, notes, created_at
		FROM measurements
		WHERE user_id=$1
		ORDER BY taken_on DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`, user.ID, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query measurements", err)
		return
	}
	defer rows.Close()

	measurements := []model.Measurement{}
	for rows.Next() {
		m, err := scanner.ScanMeasurement(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan measurement", err)
			return
		}
		measurements = append(measurements, *m)
	}

	utils.Success(w, measurements)
}

// CreateMeasurement enregistre un relevé; les mensurations par partie du
// corps sont stockées en JSONB.
func CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	var req MeasurementRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	takenOn, err := parseMeasurementDate(req.Date)
	if err != nil {
		utils.ValidationError(w, "invalid date, expected YYYY-MM-DD", []string{"date"})
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	bodyParts, err := marshalBodyParts(req.BodyParts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not encode body parts", err)
		return
	}

	var id string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO measurements(user_id, taken_on, weight, body_parts, notes, created_at)
		VALUES($1, $2, $3, $4, NULLIF($5, ''), NOW())
		RETURNING id
	`, user.ID, takenOn, req.Weight, bodyParts, req.Notes).Scan(&id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create measurement", err)
		return
	}

	utils.Created(w, map[string]string{"id": id})
}

// UpdateMeasurement remplace un relevé existant de l'appelant
func UpdateMeasurement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	measurementID := vars["measurementId"]

	var req MeasurementRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	takenOn, err := parseMeasurementDate(req.Date)
	if err != nil {
		utils.ValidationError(w, "invalid date, expected YYYY-MM-DD", []string{"date"})
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "measurements", measurementID, user.ID, false); err != nil {
		respondOwnershipError(w, "measurement", err)
		return
	}

	bodyParts, err := marshalBodyParts(req.BodyParts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not encode body parts", err)
		return
	}

	if _, err := database.DB.Exec(ctx, `
		UPDATE measurements
		SET taken_on=$1, weight=$2, body_parts=$3, notes=NULLIF($4, '')
		WHERE id=$5
	`, takenOn, req.Weight, bodyParts, req.Notes, measurementID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update measurement", err)
		return
	}

	utils.Message(w, "measurement updated")
}

// DeleteMeasurement supprime un relevé de l'appelant
func DeleteMeasurement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	measurementID := vars["measurementId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "measurements", measurementID, user.ID, false); err != nil {
		respondOwnershipError(w, "measurement", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`DELETE FROM measurements WHERE id=$1`,
		measurementID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete measurement", err)
		return
	}

	utils.Message(w, "measurement deleted")
}

func parseMeasurementDate(date string) (time.Time, error) {
	if date == "" {
		return time.Now().Truncate(24 * time.Hour), nil
	}
	return time.Parse("2006-01-02", date)
}

func marshalBodyParts(parts []model.BodyPart) ([]byte, error) {
	if parts == nil {
		parts = []model.BodyPart{}
	}
	return json.Marshal(parts)
}
