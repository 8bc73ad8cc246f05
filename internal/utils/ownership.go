package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/jackc/pgx/v5"
)

// Résultats du guard de propriété. NotFound et Forbidden doivent rester
// distincts: 404 quand la ligne n'existe pas, 403 quand elle existe mais
// n'appartient pas à l'appelant.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("resource not owned by caller")
)

// ownerQueries: requêtes de propriété par table. Les tables sans notion de
// visibilité publique retournent toujours is_public=false.
var ownerQueries = map[string]string{
	"workout_definitions": `SELECT user_id, is_public FROM workout_definitions WHERE id=$1`,
	"training_plans":      `SELECT user_id, is_public FROM training_plans WHERE id=$1`,
	"workout_sessions":    `SELECT user_id, FALSE FROM workout_sessions WHERE id=$1`,
	"measurements":        `SELECT user_id, FALSE FROM measurements WHERE id=$1`,
	"personal_bests":      `SELECT user_id, FALSE FROM personal_bests WHERE id=$1`,
	"community_posts":     `SELECT user_id, FALSE FROM community_posts WHERE id=$1`,
	"progress_photos":     `SELECT user_id, FALSE FROM progress_photos WHERE id=$1`,
}

// CheckOwnership vérifie que la ressource (table, id) appartient à userID.
// allowPublic autorise la lecture d'une ressource publique par un tiers.
// Retourne ErrNotFound, ErrForbidden ou nil.
func CheckOwnership(ctx context.Context, table, id, userID string, allowPublic bool) error {
	query, ok := ownerQueries[table]
	if !ok {
		return fmt.Errorf("no ownership query for table %s", table)
	}

	var ownerID string
	var isPublic bool
	err := database.DB.QueryRow(ctx, query, id).Scan(&ownerID, &isPublic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if ownerID == userID {
		return nil
	}
	if allowPublic && isPublic {
		return nil
	}
	return ErrForbidden
}
