package utils

import (
	"strconv"

	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
)

// SetVolume calcule weight*reps pour une série. Les valeurs non numériques
// ou négatives ("BW", "8-10", "") comptent pour 0.
func SetVolume(weight, reps string) float64 {
	w, err := strconv.ParseFloat(weight, 64)
	if err != nil || w <= 0 {
		return 0
	}
	r, err := strconv.ParseFloat(reps, 64)
	if err != nil || r <= 0 {
		return 0
	}
	return w * r
}

// ExerciseVolume somme le volume de toutes les séries d'un exercice.
func ExerciseVolume(sets []model.RecordedSet) float64 {
	var total float64
	for _, s := range sets {
		total += SetVolume(s.Weight, s.Reps)
	}
	return total
}

// SessionVolume somme le volume de tous les exercices d'une séance.
func SessionVolume(exercises []model.SessionExercise) float64 {
	var total float64
	for _, ex := range exercises {
		total += ExerciseVolume(ex.Sets)
	}
	return total
}
