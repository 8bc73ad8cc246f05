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

type PersonalBestRequest struct {
	ExerciseID string          `json:"exerciseId"`
	RecordType string          `json:"recordType"`
	Value      json.RawMessage `json:"value"`
	AchievedOn string          `json:"achievedOn"`
}

// GetPersonalBests liste les records de l'appelant, joints au catalogue
func GetPersonalBests(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT pb.id, pb.user_id, pb.exercise_id, e.name,
			pb.record_type, pb.value, pb.achieved_on, pb.updated_at
		FROM personal_bests pb
		JOIN exercises e ON pb.exercise_id = e.id
		WHERE pb.user_id=$1
		ORDER BY e.name, pb.record_type
	`, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query personal bests", err)
		return
	}
	defer rows.Close()

	bests := []model.PersonalBest{}
	for rows.Next() {
		pb, err := scanner.ScanPersonalBest(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan personal best", err)
			return
		}
		bests = append(bests, *pb)
	}

	utils.Success(w, bests)
}

// UpsertPersonalBest crée ou remplace le record (user, exercise, recordType).
// Un seul record par triplet, le nouveau écrase l'ancien.
func UpsertPersonalBest(w http.ResponseWriter, r *http.Request) {
	var req PersonalBestRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var missing []string
	if req.ExerciseID == "" {
		missing = append(missing, "exerciseId")
	}
	if len(req.Value) == 0 {
		missing = append(missing, "value")
	}
	if len(missing) > 0 {
		utils.ValidationError(w, "missing required fields", missing)
		return
	}

	if !model.ValidRecordType(req.RecordType) {
		utils.ValidationError(w, "unknown recordType", []string{"recordType"})
		return
	}

	achievedOn := time.Now()
	if req.AchievedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.AchievedOn)
		if err != nil {
			utils.ValidationError(w, "invalid achievedOn, expected YYYY-MM-DD", []string{"achievedOn"})
			return
		}
		achievedOn = parsed
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var id string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO personal_bests(user_id, exercise_id, record_type, value, achieved_on, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id, exercise_id, record_type)
		DO UPDATE SET value=EXCLUDED.value, achieved_on=EXCLUDED.achieved_on, updated_at=NOW()
		RETURNING id
	`, user.ID, req.ExerciseID, req.RecordType, []byte(req.Value), achievedOn).Scan(&id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save personal best", err)
		return
	}

	utils.Success(w, map[string]string{"id": id})
}

// DeletePersonalBest supprime un record de l'appelant
func DeletePersonalBest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID := vars["recordId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "personal_bests", recordID, user.ID, false); err != nil {
		respondOwnershipError(w, "personal best", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`DELETE FROM personal_bests WHERE id=$1`,
		recordID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete personal best", err)
		return
	}

	utils.Message(w, "personal best deleted")
}
