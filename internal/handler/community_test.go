package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, router http.Handler, token, content string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/community/posts", token, map[string]interface{}{
		"content": content,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &data)
	return data.ID
}

func findPost(t *testing.T, router http.Handler, token, postID string) *model.CommunityPost {
	t.Helper()

	rec := doJSON(t, router, http.MethodGet, "/api/community/posts?limit=50", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var posts []model.CommunityPost
	decodeData(t, rec, &posts)

	for i := range posts {
		if posts[i].ID == postID {
			return &posts[i]
		}
	}
	return nil
}

func TestLikedByCurrentUserIsPerCaller(t *testing.T) {
	router := setupRouter(t)
	_, authorToken := registerAndLogin(t, router, uniqueEmail("author"))
	_, likerToken := registerAndLogin(t, router, uniqueEmail("liker"))

	postID := createPost(t, router, authorToken, "New squat PR today")

	rec := doJSON(t, router, http.MethodPost, "/api/community/posts/"+postID+"/like", likerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var toggle struct {
		Liked      bool `json:"liked"`
		TotalLikes int  `json:"totalLikes"`
	}
	decodeData(t, rec, &toggle)
	assert.True(t, toggle.Liked)
	assert.Equal(t, 1, toggle.TotalLikes)

	// Le flag dépend de l'appelant
	asLiker := findPost(t, router, likerToken, postID)
	require.NotNil(t, asLiker)
	assert.True(t, asLiker.LikedByCurrentUser)
	assert.Equal(t, 1, asLiker.LikesCount)

	asAuthor := findPost(t, router, authorToken, postID)
	require.NotNil(t, asAuthor)
	assert.False(t, asAuthor.LikedByCurrentUser)

	// Appelant anonyme: fil visible, flag toujours false
	asAnonymous := findPost(t, router, "", postID)
	require.NotNil(t, asAnonymous)
	assert.False(t, asAnonymous.LikedByCurrentUser)
	assert.Equal(t, 1, asAnonymous.LikesCount)
}

func TestToggleLikeTwiceUnlikes(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("toggle"))

	postID := createPost(t, router, token, "Toggle me")

	rec := doJSON(t, router, http.MethodPost, "/api/community/posts/"+postID+"/like", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/community/posts/"+postID+"/like", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggle struct {
		Liked      bool `json:"liked"`
		TotalLikes int  `json:"totalLikes"`
	}
	decodeData(t, rec, &toggle)
	assert.False(t, toggle.Liked)
	assert.Equal(t, 0, toggle.TotalLikes)
}

func TestPostCommentsChronological(t *testing.T) {
	router := setupRouter(t)
	_, token := registerAndLogin(t, router, uniqueEmail("comments"))

	postID := createPost(t, router, token, "Comment thread")

	for _, content := range []string{"first", "second"} {
		rec := doJSON(t, router, http.MethodPost, "/api/community/posts/"+postID+"/comments", token,
			map[string]string{"content": content})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	post := findPost(t, router, token, postID)
	require.NotNil(t, post)
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "first", post.Comments[0].Content)
	assert.Equal(t, "second", post.Comments[1].Content)
	require.NotNil(t, post.Comments[0].Author)
}

func TestDeletePostOwnershipAndCleanup(t *testing.T) {
	router := setupRouter(t)
	_, authorToken := registerAndLogin(t, router, uniqueEmail("deleter"))
	_, otherToken := registerAndLogin(t, router, uniqueEmail("intruder"))

	postID := createPost(t, router, authorToken, "Ephemeral")

	rec := doJSON(t, router, http.MethodPost, "/api/community/posts/"+postID+"/like", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/community/posts/"+postID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/community/posts/"+postID, authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM likes WHERE entity_type='post' AND entity_id=$1`, postID))
	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM post_comments WHERE post_id=$1`, postID))
}

func TestAdminDeleteUnknownPostRollsBack(t *testing.T) {
	router := setupRouter(t)
	adminID, adminToken := registerAndLogin(t, router, uniqueEmail("moderator"))

	_, err := database.DB.Exec(context.Background(),
		`UPDATE users SET role='admin' WHERE id=$1`, adminID)
	require.NoError(t, err)

	// L'admin contourne le check de propriété: la suppression d'un post
	// inexistant doit annuler la transaction entière et répondre 404
	before := countRows(t, `SELECT COUNT(*) FROM likes WHERE entity_type='post'`)

	rec := doJSON(t, router, http.MethodDelete, "/api/community/posts/"+uuid.NewString(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	assert.Equal(t, before, countRows(t, `SELECT COUNT(*) FROM likes WHERE entity_type='post'`))
}
