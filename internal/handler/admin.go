package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
)

// AdminStats agrège les compteurs globaux de la plateforme
type AdminStats struct {
	TotalUsers        int       `json:"totalUsers"`
	ActiveSessions    int       `json:"activeSessions"`
	TotalWorkouts     int       `json:"totalWorkouts"`
	TotalPlans        int       `json:"totalPlans"`
	SessionsLast7Days int       `json:"sessionsLast7Days"`
	TotalPosts        int       `json:"totalPosts"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

// GetAdminStats retourne les statistiques de la plateforme (admin seulement)
func GetAdminStats(w http.ResponseWriter, r *http.Request) {
	if !middleware.RequireAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin access required")
		return
	}

	ctx := context.Background()
	stats := AdminStats{GeneratedAt: time.Now()}

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM sessions WHERE is_active=true AND expires_at > NOW() AND deleted_at IS NULL`, &stats.ActiveSessions},
		{`SELECT COUNT(*) FROM workout_definitions`, &stats.TotalWorkouts},
		{`SELECT COUNT(*) FROM training_plans`, &stats.TotalPlans},
		{`SELECT COUNT(*) FROM workout_sessions WHERE start_time > NOW() - INTERVAL '7 days'`, &stats.SessionsLast7Days},
		{`SELECT COUNT(*) FROM community_posts`, &stats.TotalPosts},
	}

	for _, q := range queries {
		if err := database.DB.QueryRow(ctx, q.query).Scan(q.dest); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not compute stats", err)
			return
		}
	}

	utils.Success(w, stats)
}

// DatabaseHealth vérifie la connexion à la base (admin seulement)
func DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	if !middleware.RequireAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin access required")
		return
	}

	ctx := context.Background()

	start := time.Now()
	if err := database.DB.Ping(ctx); err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"status":    "up",
		"pingMs":    time.Since(start).Milliseconds(),
		"poolTotal": database.DB.Stat().TotalConns(),
		"poolIdle":  database.DB.Stat().IdleConns(),
	})
}
