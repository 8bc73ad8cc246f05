package api

import (
	"net/http"
	"strings"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/handler"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	root := mux.NewRouter()
	root.Use(middleware.LoggerMiddleware)
	root.Use(middleware.OptionalAuth)

	r := root.PathPrefix("/api").Subrouter()

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	// Root - API documentation
	root.HandleFunc("/api", handler.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Users
	authenticatedRoutes.HandleFunc("/users/{userId}/settings", handler.GetUserSettings).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{userId}/settings/{category}", handler.UpdateUserSettings).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/users/{userId}/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/users/{userId}/progress-photos", handler.GetProgressPhotos).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{userId}/progress-photos", handler.UploadProgressPhoto).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/users/{userId}/progress-photos/{photoId}", handler.DeleteProgressPhoto).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/users/{userId}/workouts", handler.GetUserWorkoutSessions).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{userId}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{userId}", handler.UpdateUser).Methods(http.MethodPut)

	// Workout definitions
	authenticatedRoutes.HandleFunc("/workout-definitions", handler.GetWorkoutDefinitions).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/workout-definitions", handler.CreateWorkoutDefinition).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/workout-definitions/{workoutId}", handler.GetWorkoutDefinition).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/workout-definitions/{workoutId}", handler.UpdateWorkoutDefinition).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/workout-definitions/{workoutId}", handler.DeleteWorkoutDefinition).Methods(http.MethodDelete)

	// Training plans
	authenticatedRoutes.HandleFunc("/training-plans", handler.GetTrainingPlans).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/training-plans", handler.CreateTrainingPlan).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/training-plans/{planId}", handler.GetTrainingPlan).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/training-plans/{planId}", handler.UpdateTrainingPlan).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/training-plans/{planId}", handler.DeleteTrainingPlan).Methods(http.MethodDelete)

	// Workout sessions (historique, écriture unique: pas de PUT)
	authenticatedRoutes.HandleFunc("/workouts", handler.SaveWorkoutSession).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/workouts/{sessionId}", handler.GetWorkoutSession).Methods(http.MethodGet)

	// Measurements
	authenticatedRoutes.HandleFunc("/measurements", handler.GetMeasurements).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/measurements", handler.CreateMeasurement).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/measurements/{measurementId}", handler.UpdateMeasurement).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/measurements/{measurementId}", handler.DeleteMeasurement).Methods(http.MethodDelete)

	// Personal bests
	authenticatedRoutes.HandleFunc("/personal-bests", handler.GetPersonalBests).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/personal-bests", handler.UpsertPersonalBest).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/personal-bests/{recordId}", handler.DeletePersonalBest).Methods(http.MethodDelete)

	// Exercise catalog
	r.HandleFunc("/exercises", handler.GetExercises).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/exercises", handler.CreateExercise).Methods(http.MethodPost)

	// Community
	r.HandleFunc("/community/posts", handler.GetCommunityPosts).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/community/posts", handler.CreateCommunityPost).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/community/posts/{postId}", handler.DeleteCommunityPost).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/community/posts/{postId}/like", handler.ToggleLikePost).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/community/posts/{postId}/comments", handler.CreatePostComment).Methods(http.MethodPost)

	// Admin
	authenticatedRoutes.HandleFunc("/admin/stats", handler.GetAdminStats).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/admin/health/db", handler.DatabaseHealth).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	// Les subrouters imbriqués ne laissent pas toujours remonter
	// ErrMethodMismatch jusqu'au MethodNotAllowedHandler: les deux fallbacks
	// passent donc par le même handler, qui re-matche le chemin pour chaque
	// méthode et tranche entre 405+Allow et 404.
	fallback := routeFallbackHandler(root)
	root.NotFoundHandler = fallback
	root.MethodNotAllowedHandler = fallback

	return root
}

// routeFallbackHandler répond 405 avec l'en-tête Allow quand le chemin existe
// sous une autre méthode, 404 sinon.
func routeFallbackHandler(router *mux.Router) http.Handler {
	methods := []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := []string{}
		for _, method := range methods {
			if method == r.Method {
				continue
			}
			probe := r.Clone(r.Context())
			probe.Method = method
			var match mux.RouteMatch
			if router.Match(probe, &match) && match.MatchErr == nil {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			utils.ErrorSimple(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.ErrorSimple(w, http.StatusNotFound, "route not found")
	})
}
