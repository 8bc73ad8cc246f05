package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

type ExerciseRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GetExercises liste le catalogue global, filtrable par catégorie
func GetExercises(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	category := r.URL.Query().Get("category")

	query := `SELECT id, name, category FROM exercises ORDER BY name`
	args := []interface{}{}
	if category != "" {
		query = `SELECT id, name, category FROM exercises WHERE category=$1 ORDER BY name`
		args = append(args, category)
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query exercises", err)
		return
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		var ex model.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Category); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan exercise", err)
			return
		}
		exercises = append(exercises, ex)
	}

	utils.Success(w, exercises)
}

// CreateExercise ajoute une entrée au catalogue. Le nom est unique.
func CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		utils.ValidationError(w, "missing required fields", missing)
		return
	}

	ctx := context.Background()

	var id string
	err := database.DB.QueryRow(ctx, `
		INSERT INTO exercises(name, category, created_at)
		VALUES($1, $2, NOW())
		RETURNING id
	`, req.Name, req.Category).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.ErrorSimple(w, http.StatusConflict, "exercise already exists")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not create exercise", err)
		return
	}

	utils.Created(w, map[string]string{"id": id})
}
