package middleware

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/jackc/pgx/v5"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// AuthMiddleware valide le token de session et injecte l'utilisateur dans
// le contexte. Toute route de mutation passe par ici.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "invalid token", err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		ctx = context.WithValue(ctx, tokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth injecte l'utilisateur si un token valide est présent, sans
// bloquer la requête sinon. Utilisé sur les lectures publiques
// (plans/séances publics, fil communautaire).
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token != "" {
			if user, err := validateTokenAndGetUser(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), userContextKey, *user)
				ctx = context.WithValue(ctx, tokenContextKey, token)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// validateTokenAndGetUser valide le token et retourne l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.UserProfile, error) {
	var user model.UserProfile
	var gender, fitnessLevel, avatarURL, bio sql.NullString
	var weight, height sql.NullFloat64
	var dateOfBirth sql.NullTime

	query := `
	SELECT
		u.id, u.email, u.username, u.full_name, u.date_of_birth, u.gender,
		u.weight, u.height, u.fitness_level, u.role, u.avatar_url, u.bio,
		u.join_date, u.created_at, u.updated_at
	FROM users u
	JOIN sessions s ON u.id = s.user_id
	WHERE s.token = $1
		AND s.is_active = true
		AND s.expires_at > NOW()
		AND s.deleted_at IS NULL
		AND u.deleted_at IS NULL`

	err := database.DB.QueryRow(ctx, query, token).Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &dateOfBirth, &gender,
		&weight, &height, &fitnessLevel, &user.Role, &avatarURL, &bio,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.DateOfBirth = utils.NullTimeToPointer(dateOfBirth)
	user.Gender = utils.NullStringToString(gender)
	user.FitnessLevel = utils.NullStringToString(fitnessLevel)
	user.AvatarURL = utils.NullStringToString(avatarURL)
	user.Bio = utils.NullStringToString(bio)
	user.Weight = utils.NullFloat64ToFloat64(weight)
	user.Height = utils.NullFloat64ToFloat64(height)

	return &user, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}

// IsOwnerOrAdmin vérifie que l'appelant est le propriétaire de la ressource
// ou a le rôle admin.
func IsOwnerOrAdmin(r *http.Request, ownerID string) bool {
	user, err := GetUserFromContext(r)
	if err != nil {
		return false
	}
	return user.ID == ownerID || user.Role == model.RoleAdmin
}

// RequireAdmin vérifie le rôle admin depuis le contexte.
func RequireAdmin(r *http.Request) bool {
	user, err := GetUserFromContext(r)
	if err != nil {
		return false
	}
	return user.Role == model.RoleAdmin
}
