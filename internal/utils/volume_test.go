package utils

import (
	"testing"

	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSetVolume(t *testing.T) {
	tests := []struct {
		name   string
		weight string
		reps   string
		want   float64
	}{
		{"numeric", "100", "5", 500},
		{"decimal weight", "62.5", "8", 500},
		{"bodyweight", "BW", "10", 0},
		{"rep range", "80", "8-10", 0},
		{"empty weight", "", "5", 0},
		{"empty reps", "100", "", 0},
		{"zero weight", "0", "5", 0},
		{"negative weight", "-50", "5", 0},
		{"zero reps", "100", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SetVolume(tt.weight, tt.reps))
		})
	}
}

func TestExerciseVolume(t *testing.T) {
	sets := []model.RecordedSet{
		{SetNumber: 1, Weight: "100", Reps: "5"},
		{SetNumber: 2, Weight: "BW", Reps: "10"},
	}

	assert.Equal(t, 500.0, ExerciseVolume(sets))
}

func TestSessionVolume(t *testing.T) {
	exercises := []model.SessionExercise{
		{
			ExerciseID: "a",
			Sets: []model.RecordedSet{
				{SetNumber: 1, Weight: "100", Reps: "5"},
				{SetNumber: 2, Weight: "100", Reps: "3"},
			},
		},
		{
			ExerciseID: "b",
			Sets: []model.RecordedSet{
				{SetNumber: 1, Weight: "BW", Reps: "12"},
			},
		},
	}

	assert.Equal(t, 800.0, SessionVolume(exercises))
	assert.Equal(t, 0.0, SessionVolume(nil))
}
