package model

import "time"

// WorkoutDefinition est un modèle de séance réutilisable avec sa liste
// d'exercices ordonnée (order_index contigu à partir de 0).
type WorkoutDefinition struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	IsPublic    bool                `json:"isPublic"`
	Exercises   []ExerciseInWorkout `json:"exercises"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// Prescription par défaut quand la colonne est NULL
const (
	DefaultSets        = 3
	DefaultReps        = "10"
	DefaultRestSeconds = 60
)

type ExerciseInWorkout struct {
	ExerciseID   string   `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName,omitempty"`
	OrderIndex   int      `json:"orderIndex"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	RestSeconds  int      `json:"restSeconds"`
	TargetRPE    *float64 `json:"targetRpe,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}
