package utils

import (
	"context"
	"errors"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// AddLike ajoute un like pour une entité (idempotent)
func AddLike(ctx context.Context, userID string, entityType model.EntityType, entityID string) error {
	_, err := database.DB.Exec(ctx, `
		INSERT INTO likes (user_id, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, entity_type, entity_id) DO NOTHING
	`, userID, entityType, entityID)

	return err
}

// RemoveLike retire un like pour une entité
func RemoveLike(ctx context.Context, userID string, entityType model.EntityType, entityID string) error {
	_, err := database.DB.Exec(ctx, `
		DELETE FROM likes
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
	`, userID, entityType, entityID)

	return err
}

// ToggleLike ajoute ou retire un like selon l'état actuel
// (retourne true si liked, false si unliked)
func ToggleLike(ctx context.Context, userID string, entityType model.EntityType, entityID string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM likes
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
		)
	`, userID, entityType, entityID).Scan(&exists)

	if err != nil {
		return false, err
	}

	if exists {
		return false, RemoveLike(ctx, userID, entityType, entityID)
	}
	return true, AddLike(ctx, userID, entityType, entityID)
}

// GetLikeInfo récupère le total de likes et l'état pour l'utilisateur courant
func GetLikeInfo(ctx context.Context, userID *string, entityType model.EntityType, entityID string) (*model.LikeInfo, error) {
	var info model.LikeInfo

	err := database.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes
		WHERE entity_type = $1 AND entity_id = $2
	`, entityType, entityID).Scan(&info.TotalLikes)

	if err != nil {
		return nil, err
	}

	if userID != nil && *userID != "" {
		var liked bool
		err = database.DB.QueryRow(ctx, `
			SELECT TRUE FROM likes
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
			LIMIT 1
		`, *userID, entityType, entityID).Scan(&liked)

		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}

		info.UserLiked = liked
	}

	return &info, nil
}
