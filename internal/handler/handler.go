package handler

import (
	"errors"
	"net/http"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// respondOwnershipError mappe le résultat du guard de propriété:
// ligne absente => 404, présente mais pas à l'appelant => 403.
func respondOwnershipError(w http.ResponseWriter, resource string, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.ErrorSimple(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, utils.ErrForbidden):
		utils.ErrorSimple(w, http.StatusForbidden, "you do not own this "+resource)
	default:
		utils.Error(w, http.StatusInternalServerError, "could not check "+resource+" ownership", err)
	}
}
