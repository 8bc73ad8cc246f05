package handler

import (
	"context"
	"net/http"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/scanner"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

type WorkoutDefinitionRequest struct {
	Name        string                     `json:"name"`
	Type        string                     `json:"type"`
	Description string                     `json:"description"`
	IsPublic    bool                       `json:"isPublic"`
	Exercises   []ExerciseInWorkoutRequest `json:"exercises"`
}

type ExerciseInWorkoutRequest struct {
	ExerciseID  string   `json:"exerciseId"`
	Sets        *int     `json:"sets,omitempty"`
	Reps        *string  `json:"reps,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
	TargetRPE   *float64 `json:"targetRpe,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// GetWorkoutDefinition récupère une séance type avec sa liste d'exercices
// ordonnée. Accessible au propriétaire, ou à tous si publique; sinon 404
// (l'existence d'une séance privée n'est pas révélée en lecture).
func GetWorkoutDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workoutID := vars["workoutId"]

	ctx := context.Background()

	user, _ := middleware.GetUserFromContext(r)

	row := database.DB.QueryRow(ctx, `
		SELECT id, user_id, name, type, description, is_public, created_at, updated_at
		FROM workout_definitions
		WHERE id=$1 AND (user_id=$2 OR is_public=true)
	`, workoutID, user.ID)

	def, err := scanner.ScanWorkoutDefinition(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "workout definition not found")
		return
	}

	exercises, err := loadWorkoutExercises(ctx, workoutID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load exercises", err)
		return
	}
	def.Exercises = exercises

	utils.Success(w, def)
}

// GetWorkoutDefinitions liste les séances types de l'appelant + publiques
func GetWorkoutDefinitions(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := utils.ParseLimitOffset(r, 50, 200)

	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, name, type, description, is_public, created_at, updated_at
		FROM workout_definitions
		WHERE user_id=$1 OR is_public=true
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, user.ID, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query workout definitions", err)
		return
	}
	defer rows.Close()

	defs := []model.WorkoutDefinition{}
	for rows.Next() {
		def, err := scanner.ScanWorkoutDefinition(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan workout definition", err)
			return
		}
		def.Exercises = []model.ExerciseInWorkout{}
		defs = append(defs, *def)
	}

	utils.Success(w, defs)
}

// CreateWorkoutDefinition crée une séance type et ses exercices dans une
// transaction, order_index = position dans le tableau.
func CreateWorkoutDefinition(w http.ResponseWriter, r *http.Request) {
	var req WorkoutDefinitionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name == "" {
		utils.ValidationError(w, "missing required fields", []string{"name"})
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var workoutID string
	err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO workout_definitions(user_id, name, type, description, is_public, created_at, updated_at)
			VALUES($1, $2, $3, NULLIF($4, ''), $5, NOW(), NOW())
			RETURNING id
		`, user.ID, req.Name, req.Type, req.Description, req.IsPublic).Scan(&workoutID)
		if err != nil {
			return err
		}

		return insertWorkoutExercises(ctx, tx, workoutID, req.Exercises)
	})

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create workout definition", err)
		return
	}

	utils.Created(w, map[string]string{"id": workoutID})
}

// UpdateWorkoutDefinition applique la stratégie full-replace: mise à jour
// des champs scalaires, suppression de tous les exercices existants puis
// réinsertion depuis le body, le tout dans une seule transaction.
func UpdateWorkoutDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workoutID := vars["workoutId"]

	var req WorkoutDefinitionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "workout_definitions", workoutID, user.ID, false); err != nil {
		respondOwnershipError(w, "workout definition", err)
		return
	}

	err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE workout_definitions
			SET name=$1, type=$2, description=NULLIF($3, ''), is_public=$4, updated_at=NOW()
			WHERE id=$5
		`, req.Name, req.Type, req.Description, req.IsPublic, workoutID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM workout_definition_exercises WHERE workout_id=$1`,
			workoutID,
		); err != nil {
			return err
		}

		return insertWorkoutExercises(ctx, tx, workoutID, req.Exercises)
	})

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update workout definition", err)
		return
	}

	utils.Message(w, "workout definition updated")
}

// DeleteWorkoutDefinition supprime la séance; les exercices suivent via
// ON DELETE CASCADE.
func DeleteWorkoutDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workoutID := vars["workoutId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "workout_definitions", workoutID, user.ID, false); err != nil {
		respondOwnershipError(w, "workout definition", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`DELETE FROM workout_definitions WHERE id=$1`,
		workoutID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete workout definition", err)
		return
	}

	utils.Message(w, "workout definition deleted")
}

// insertWorkoutExercises réinsère la liste avec order_index contigu depuis 0
func insertWorkoutExercises(ctx context.Context, tx pgx.Tx, workoutID string, exercises []ExerciseInWorkoutRequest) error {
	for i, ex := range exercises {
		if _, err := tx.Exec(ctx, `
			INSERT INTO workout_definition_exercises(
				workout_id, exercise_id, order_index, sets, reps, rest_seconds, target_rpe, notes
			) VALUES($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		`, workoutID, ex.ExerciseID, i, ex.Sets, ex.Reps, ex.RestSeconds, ex.TargetRPE, ex.Notes); err != nil {
			return err
		}
	}
	return nil
}

// loadWorkoutExercises charge la liste ordonnée avec les noms du catalogue
func loadWorkoutExercises(ctx context.Context, workoutID string) ([]model.ExerciseInWorkout, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT wde.exercise_id, e.name, wde.order_index,
			wde.sets, wde.reps, wde.rest_seconds, wde.target_rpe, wde.notes
		FROM workout_definition_exercises wde
		JOIN exercises e ON wde.exercise_id = e.id
		WHERE wde.workout_id=$1
		ORDER BY wde.order_index
	`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []model.ExerciseInWorkout{}
	for rows.Next() {
		ex, err := scanner.ScanExerciseInWorkout(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *ex)
	}

	return exercises, rows.Err()
}
