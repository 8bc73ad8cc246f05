package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/scanner"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

type TrainingPlanRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Goal          string           `json:"goal"`
	DurationWeeks int              `json:"duration"`
	IsPublic      bool             `json:"isPublic"`
	StartDate     string           `json:"startDate"`
	EndDate       string           `json:"endDate"`
	Schedule      []PlanDayRequest `json:"schedule"`
}

type PlanDayRequest struct {
	DayName             string  `json:"dayName"`
	IsRestDay           bool    `json:"isRestDay"`
	AssignedWorkoutID   *string `json:"assignedWorkoutId,omitempty"`
	AssignedWorkoutName string  `json:"assignedWorkoutName,omitempty"`
	TemplateRef         string  `json:"templateRef,omitempty"`
	Notes               string  `json:"notes,omitempty"`
}

const planWithAuthorQuery = `
	SELECT p.id, p.user_id, p.name, p.description, p.goal, p.duration_weeks,
		p.is_public, p.start_date, p.end_date, p.created_at, p.updated_at,
		u.id, u.username, u.full_name, u.avatar_url
	FROM training_plans p
	LEFT JOIN users u ON p.user_id = u.id AND u.deleted_at IS NULL
`

// GetTrainingPlan retourne un plan avec son auteur et son planning ordonné.
// Propriétaire ou plan public; sinon 404.
func GetTrainingPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["planId"]

	ctx := context.Background()

	user, _ := middleware.GetUserFromContext(r)

	row := database.DB.QueryRow(ctx,
		planWithAuthorQuery+` WHERE p.id=$1 AND (p.user_id=$2 OR p.is_public=true)`,
		planID, user.ID)

	plan, err := scanner.ScanTrainingPlanWithAuthor(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "training plan not found")
		return
	}

	schedule, err := loadPlanSchedule(ctx, planID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load plan schedule", err)
		return
	}
	plan.Schedule = schedule

	utils.Success(w, plan)
}

// GetTrainingPlans liste les plans de l'appelant + publics
func GetTrainingPlans(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := utils.ParseLimitOffset(r, 50, 200)

	rows, err := database.DB.Query(ctx,
		planWithAuthorQuery+`
		WHERE p.user_id=$1 OR p.is_public=true
		ORDER BY p.updated_at DESC
		LIMIT $2 OFFSET $3`,
		user.ID, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query training plans", err)
		return
	}
	defer rows.Close()

	plans := []model.TrainingPlan{}
	for rows.Next() {
		plan, err := scanner.ScanTrainingPlanWithAuthor(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan training plan", err)
			return
		}
		plan.Schedule = []model.PlanDay{}
		plans = append(plans, *plan)
	}

	utils.Success(w, plans)
}

// CreateTrainingPlan crée le plan et son planning dans une transaction
func CreateTrainingPlan(w http.ResponseWriter, r *http.Request) {
	var req TrainingPlanRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name == "" {
		utils.ValidationError(w, "missing required fields", []string{"name"})
		return
	}

	startDate, endDate, err := parsePlanDates(req.StartDate, req.EndDate)
	if err != nil {
		utils.ValidationError(w, "invalid date, expected YYYY-MM-DD", []string{"startDate", "endDate"})
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var planID string
	err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO training_plans(user_id, name, description, goal, duration_weeks,
				is_public, start_date, end_date, created_at, updated_at)
			VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, NOW(), NOW())
			RETURNING id
		`, user.ID, req.Name, req.Description, req.Goal, req.DurationWeeks,
			req.IsPublic, startDate, endDate).Scan(&planID)
		if err != nil {
			return err
		}

		return insertPlanDays(ctx, tx, planID, req.Schedule)
	})

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create training plan", err)
		return
	}

	utils.Created(w, map[string]string{"id": planID})
}

// UpdateTrainingPlan remplace le plan entier: scalaires mis à jour, planning
// supprimé puis réinséré depuis le body, dans une seule transaction. Un
// update qui passe de 2 jours à 1 laisse exactement 1 jour.
func UpdateTrainingPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["planId"]

	var req TrainingPlanRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	startDate, endDate, err := parsePlanDates(req.StartDate, req.EndDate)
	if err != nil {
		utils.ValidationError(w, "invalid date, expected YYYY-MM-DD", []string{"startDate", "endDate"})
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "training_plans", planID, user.ID, false); err != nil {
		respondOwnershipError(w, "training plan", err)
		return
	}

	err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE training_plans
			SET name=$1, description=NULLIF($2, ''), goal=NULLIF($3, ''),
				duration_weeks=$4, is_public=$5, start_date=$6, end_date=$7, updated_at=NOW()
			WHERE id=$8
		`, req.Name, req.Description, req.Goal, req.DurationWeeks,
			req.IsPublic, startDate, endDate, planID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM training_plan_days WHERE plan_id=$1`,
			planID,
		); err != nil {
			return err
		}

		return insertPlanDays(ctx, tx, planID, req.Schedule)
	})

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update training plan", err)
		return
	}

	utils.Message(w, "training plan updated")
}

// DeleteTrainingPlan supprime le plan; les jours suivent via CASCADE
func DeleteTrainingPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["planId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "training_plans", planID, user.ID, false); err != nil {
		respondOwnershipError(w, "training plan", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`DELETE FROM training_plans WHERE id=$1`,
		planID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete training plan", err)
		return
	}

	utils.Message(w, "training plan deleted")
}

// insertPlanDays réinsère le planning avec order_index = position.
// Exclusivité jour de repos: is_rest_day=true efface la séance assignée.
func insertPlanDays(ctx context.Context, tx pgx.Tx, planID string, schedule []PlanDayRequest) error {
	for i, day := range schedule {
		assignedID := day.AssignedWorkoutID
		assignedName := day.AssignedWorkoutName
		if day.IsRestDay {
			assignedID = nil
			assignedName = ""
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO training_plan_days(
				plan_id, day_name, order_index, is_rest_day,
				assigned_workout_id, assigned_workout_name, template_ref, notes
			) VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		`, planID, day.DayName, i, day.IsRestDay,
			assignedID, assignedName, day.TemplateRef, day.Notes); err != nil {
			return err
		}
	}
	return nil
}

// loadPlanSchedule charge les jours du plan triés par order_index
func loadPlanSchedule(ctx context.Context, planID string) ([]model.PlanDay, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT day_name, order_index, is_rest_day,
			assigned_workout_id, assigned_workout_name, template_ref, notes
		FROM training_plan_days
		WHERE plan_id=$1
		ORDER BY order_index
	`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedule := []model.PlanDay{}
	for rows.Next() {
		day, err := scanner.ScanPlanDay(rows)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, *day)
	}

	return schedule, rows.Err()
}

// parsePlanDates parse les bornes optionnelles du plan (YYYY-MM-DD)
func parsePlanDates(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, err
		}
		startDate = &parsed
	}
	if end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, err
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}
