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

type WorkoutSessionRequest struct {
	WorkoutID        *string                  `json:"workoutId,omitempty"`
	WorkoutName      string                   `json:"workoutName"`
	WorkoutType      string                   `json:"workoutType,omitempty"`
	StartTime        time.Time                `json:"startTime"`
	EndTime          *time.Time               `json:"endTime,omitempty"`
	TotalTimeSeconds int                      `json:"totalTimeSeconds"`
	Difficulty       string                   `json:"difficulty,omitempty"`
	GeneralNotes     string                   `json:"generalNotes,omitempty"`
	Exercises        []SessionExerciseRequest `json:"exercises"`
}

type SessionExerciseRequest struct {
	ExerciseID string              `json:"exerciseId"`
	Sets       []model.RecordedSet `json:"sets"`
}

// SaveWorkoutSession enregistre une séance effectuée. Écriture unique:
// l'historique n'expose pas de PUT. Le volume total est calculé côté serveur
// (seuls poids et reps numériques positifs comptent, "BW" vaut 0) et persisté.
func SaveWorkoutSession(w http.ResponseWriter, r *http.Request) {
	var req WorkoutSessionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var missing []string
	if req.WorkoutName == "" {
		missing = append(missing, "workoutName")
	}
	if req.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	if len(missing) > 0 {
		utils.ValidationError(w, "missing required fields", missing)
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	totalVolume := 0.0
	for _, ex := range req.Exercises {
		totalVolume += utils.ExerciseVolume(ex.Sets)
	}

	var sessionID string
	err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO workout_sessions(user_id, workout_id, workout_name, workout_type,
				start_time, end_time, total_time_seconds, difficulty, general_notes,
				total_volume, created_at)
			VALUES($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, NOW())
			RETURNING id
		`, user.ID, req.WorkoutID, req.WorkoutName, req.WorkoutType,
			req.StartTime, req.EndTime, req.TotalTimeSeconds, req.Difficulty,
			req.GeneralNotes, totalVolume).Scan(&sessionID)
		if err != nil {
			return err
		}

		for i, ex := range req.Exercises {
			var sessionExerciseID string
			err := tx.QueryRow(ctx, `
				INSERT INTO session_exercises(session_id, exercise_id, order_index)
				VALUES($1, $2, $3)
				RETURNING id
			`, sessionID, ex.ExerciseID, i).Scan(&sessionExerciseID)
			if err != nil {
				return err
			}

			for j, set := range ex.Sets {
				if _, err := tx.Exec(ctx, `
					INSERT INTO recorded_sets(session_exercise_id, set_number, weight, reps, rpe, notes)
					VALUES($1, $2, $3, $4, $5, NULLIF($6, ''))
				`, sessionExerciseID, j+1, set.Weight, set.Reps, set.RPE, set.Notes); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save workout session", err)
		return
	}

	utils.Created(w, map[string]interface{}{
		"id":                    sessionID,
		"calculatedTotalVolume": totalVolume,
	})
}

// GetWorkoutSession retourne une séance de l'historique avec ses exercices
// et séries ordonnés. Strictement réservée au propriétaire (404 sinon).
func GetWorkoutSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	session, err := loadSession(ctx, sessionID, user.ID)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "workout session not found")
		return
	}

	utils.Success(w, session)
}

// GetUserWorkoutSessions liste l'historique d'un utilisateur, plus récent
// d'abord. L'historique est privé: propriétaire ou admin seulement.
func GetUserWorkoutSessions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "workout history is private")
		return
	}

	ctx := context.Background()
	limit, offset := utils.ParseLimitOffset(r, 50, 200)

	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, workout_id, workout_name, workout_type,
			start_time, end_time, total_time_seconds, difficulty, general_notes,
			total_volume, created_at
		FROM workout_sessions
		WHERE user_id=$1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query workout sessions", err)
		return
	}
	defer rows.Close()

	sessions := []model.WorkoutSession{}
	for rows.Next() {
		session, err := scanSessionRow(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan workout session", err)
			return
		}
		session.Exercises = []model.SessionExercise{}
		sessions = append(sessions, *session)
	}

	utils.Success(w, sessions)
}

// loadSession charge la séance complète avec exercices et séries ordonnés
func loadSession(ctx context.Context, sessionID, userID string) (*model.WorkoutSession, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, user_id, workout_id, workout_name, workout_type,
			start_time, end_time, total_time_seconds, difficulty, general_notes,
			total_volume, created_at
		FROM workout_sessions
		WHERE id=$1 AND user_id=$2
	`, sessionID, userID)

	session, err := scanSessionRow(row)
	if err != nil {
		return nil, err
	}

	exRows, err := database.DB.Query(ctx, `
		SELECT se.id, se.exercise_id, e.name, se.order_index
		FROM session_exercises se
		JOIN exercises e ON se.exercise_id = e.id
		WHERE se.session_id=$1
		ORDER BY se.order_index
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer exRows.Close()

	session.Exercises = []model.SessionExercise{}
	exerciseIDs := []string{}
	for exRows.Next() {
		var rowID string
		var ex model.SessionExercise
		if err := exRows.Scan(&rowID, &ex.ExerciseID, &ex.ExerciseName, &ex.OrderIndex); err != nil {
			return nil, err
		}
		ex.Sets = []model.RecordedSet{}
		session.Exercises = append(session.Exercises, ex)
		exerciseIDs = append(exerciseIDs, rowID)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	for i, rowID := range exerciseIDs {
		sets, err := loadRecordedSets(ctx, rowID)
		if err != nil {
			return nil, err
		}
		session.Exercises[i].Sets = sets
	}

	// Backfill pour les lignes historiques sans volume persisté
	if session.TotalVolume == 0 {
		session.TotalVolume = utils.SessionVolume(session.Exercises)
	}

	return session, nil
}

func loadRecordedSets(ctx context.Context, sessionExerciseID string) ([]model.RecordedSet, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT set_number, COALESCE(weight, ''), COALESCE(reps, ''), rpe, COALESCE(notes, '')
		FROM recorded_sets
		WHERE session_exercise_id=$1
		ORDER BY set_number
	`, sessionExerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := []model.RecordedSet{}
	for rows.Next() {
		var set model.RecordedSet
		if err := rows.Scan(&set.SetNumber, &set.Weight, &set.Reps, &set.RPE, &set.Notes); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

func scanSessionRow(row scanner.RowScanner) (*model.WorkoutSession, error) {
	var session model.WorkoutSession
	var workoutID, workoutType, difficulty, generalNotes *string
	var endTime *time.Time
	var totalVolume *float64

	err := row.Scan(
		&session.ID, &session.UserID, &workoutID, &session.WorkoutName, &workoutType,
		&session.StartTime, &endTime, &session.TotalTimeSeconds, &difficulty,
		&generalNotes, &totalVolume, &session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.WorkoutID = workoutID
	session.EndTime = endTime
	if workoutType != nil {
		session.WorkoutType = *workoutType
	}
	if difficulty != nil {
		session.Difficulty = *difficulty
	}
	if generalNotes != nil {
		session.GeneralNotes = *generalNotes
	}
	if totalVolume != nil {
		session.TotalVolume = *totalVolume
	}

	return &session, nil
}
