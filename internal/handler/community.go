package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/scanner"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

type CommunityPostRequest struct {
	Content        string          `json:"content"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	PostType       string          `json:"postType,omitempty"`
	WorkoutSummary json.RawMessage `json:"workoutSummaryDetails,omitempty"`
}

type PostCommentRequest struct {
	Content string `json:"content"`
}

// GetCommunityPosts retourne le fil paginé, plus récent d'abord. Le compteur
// de likes et likedByCurrentUser sont résolus en sous-requêtes corrélées;
// l'appelant est optionnel (fil public), likedByCurrentUser vaut alors false.
func GetCommunityPosts(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	user, _ := middleware.GetUserFromContext(r)

	limit, offset := utils.ParseLimitOffset(r, 20, 100)

	rows, err := database.DB.Query(ctx, `
		SELECT p.id, p.user_id, p.content, p.image_url, p.post_type, p.workout_summary,
			(SELECT COUNT(*) FROM likes l WHERE l.entity_type='post' AND l.entity_id=p.id),
			EXISTS(SELECT 1 FROM likes l WHERE l.entity_type='post' AND l.entity_id=p.id AND l.user_id::text=$1),
			p.created_at,
			u.id, u.username, u.full_name, u.avatar_url
		FROM community_posts p
		LEFT JOIN users u ON p.user_id = u.id AND u.deleted_at IS NULL
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, user.ID, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query community posts", err)
		return
	}
	defer rows.Close()

	posts := []model.CommunityPost{}
	for rows.Next() {
		post, err := scanner.ScanCommunityPost(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan community post", err)
			return
		}
		posts = append(posts, *post)
	}
	rows.Close()

	// Commentaires chargés par post, ordre chronologique
	for i := range posts {
		comments, err := loadPostComments(ctx, posts[i].ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load comments", err)
			return
		}
		posts[i].Comments = comments
	}

	utils.Success(w, posts)
}

// CreateCommunityPost publie un post dans le fil
func CreateCommunityPost(w http.ResponseWriter, r *http.Request) {
	var req CommunityPostRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Content == "" {
		utils.ValidationError(w, "missing required fields", []string{"content"})
		return
	}

	postType := req.PostType
	if postType == "" {
		postType = "general"
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var summary []byte
	if len(req.WorkoutSummary) > 0 {
		summary = []byte(req.WorkoutSummary)
	}

	var id string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO community_posts(user_id, content, image_url, post_type, workout_summary, created_at)
		VALUES($1, $2, NULLIF($3, ''), $4, $5, NOW())
		RETURNING id
	`, user.ID, req.Content, req.ImageURL, postType, summary).Scan(&id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create post", err)
		return
	}

	utils.Created(w, map[string]string{"id": id})
}

// ToggleLikePost like/unlike un post et retourne le nouvel état
func ToggleLikePost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["postId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var exists bool
	if err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM community_posts WHERE id=$1)`,
		postID,
	).Scan(&exists); err != nil || !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "post not found")
		return
	}

	liked, err := utils.ToggleLike(ctx, user.ID, model.EntityTypePost, postID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not toggle like", err)
		return
	}

	info, err := utils.GetLikeInfo(ctx, &user.ID, model.EntityTypePost, postID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch like info", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"liked":      liked,
		"totalLikes": info.TotalLikes,
	})
}

// CreatePostComment ajoute un commentaire sous un post
func CreatePostComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["postId"]

	var req PostCommentRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Content == "" {
		utils.ValidationError(w, "missing required fields", []string{"content"})
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var exists bool
	if err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM community_posts WHERE id=$1)`,
		postID,
	).Scan(&exists); err != nil || !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "post not found")
		return
	}

	var id string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO post_comments(post_id, user_id, content, created_at)
		VALUES($1, $2, $3, NOW())
		RETURNING id
	`, postID, user.ID, req.Content).Scan(&id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create comment", err)
		return
	}

	utils.Created(w, map[string]string{"id": id})
}

// DeleteCommunityPost supprime un post de l'appelant (admin inclus).
// Commentaires en CASCADE, likes purgés dans la même transaction.
func DeleteCommunityPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["postId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	if user.Role != model.RoleAdmin {
		if err := utils.CheckOwnership(ctx, "community_posts", postID, user.ID, false); err != nil {
			respondOwnershipError(w, "post", err)
			return
		}
	}

	err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM likes WHERE entity_type='post' AND entity_id=$1`,
			postID,
		); err != nil {
			return err
		}

		res, err := tx.Exec(ctx,
			`DELETE FROM community_posts WHERE id=$1`,
			postID,
		)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, utils.ErrNotFound) {
		utils.ErrorSimple(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete post", err)
		return
	}

	utils.Message(w, "post deleted")
}

// loadPostComments charge les commentaires d'un post, plus ancien d'abord
func loadPostComments(ctx context.Context, postID string) ([]model.PostComment, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
			u.id, u.username, u.full_name, u.avatar_url
		FROM post_comments c
		LEFT JOIN users u ON c.user_id = u.id AND u.deleted_at IS NULL
		WHERE c.post_id=$1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.PostComment{}
	for rows.Next() {
		comment, err := scanner.ScanPostComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}

	return comments, rows.Err()
}
