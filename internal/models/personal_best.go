package model

import (
	"encoding/json"
	"time"
)

// Types de records supportés
const (
	RecordTypeWeightReps  = "weight_reps"
	RecordTypeMaxReps     = "max_reps"
	RecordTypeTimeSeconds = "time_seconds"
	RecordTypeDistanceKm  = "distance_km"
)

// ValidRecordType vérifie qu'un recordType fait partie des types connus.
func ValidRecordType(t string) bool {
	switch t {
	case RecordTypeWeightReps, RecordTypeMaxReps, RecordTypeTimeSeconds, RecordTypeDistanceKm:
		return true
	}
	return false
}

// PersonalBest: un record par (user, exercise, recordType), la valeur est
// un payload JSON dont la forme dépend du type (ex: {"weight":100,"reps":5}).
type PersonalBest struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	ExerciseID   string          `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName,omitempty"`
	RecordType   string          `json:"recordType"`
	Value        json.RawMessage `json:"value"`
	AchievedOn   time.Time       `json:"achievedOn"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
