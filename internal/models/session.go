package model

import "time"

// WorkoutSession est l'historique d'une séance effectuée.
// Immuable après création: lecture seule côté API.
type WorkoutSession struct {
	ID               string            `json:"id"`
	UserID           string            `json:"userId"`
	WorkoutID        *string           `json:"workoutId,omitempty"`
	WorkoutName      string            `json:"workoutName"`
	WorkoutType      string            `json:"workoutType,omitempty"`
	StartTime        time.Time         `json:"startTime"`
	EndTime          *time.Time        `json:"endTime,omitempty"`
	TotalTimeSeconds int               `json:"totalTimeSeconds"`
	Difficulty       string            `json:"difficulty,omitempty"`
	GeneralNotes     string            `json:"generalNotes,omitempty"`
	TotalVolume      float64           `json:"calculatedTotalVolume"`
	Exercises        []SessionExercise `json:"exercises"`
	CreatedAt        time.Time         `json:"createdAt"`
}

type SessionExercise struct {
	ExerciseID   string        `json:"exerciseId"`
	ExerciseName string        `json:"exerciseName,omitempty"`
	OrderIndex   int           `json:"orderIndex"`
	Sets         []RecordedSet `json:"sets"`
}

// RecordedSet: weight et reps restent des chaînes ("100", "BW", "8-10"),
// seules les valeurs numériques positives comptent dans le volume.
type RecordedSet struct {
	SetNumber int      `json:"setNumber"`
	Weight    string   `json:"weight"`
	Reps      string   `json:"reps"`
	RPE       *float64 `json:"rpe,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}
