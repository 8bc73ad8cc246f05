package model

import (
	"encoding/json"
	"time"
)

// EntityType représente les types d'entités qui peuvent être likées
type EntityType string

const (
	EntityTypePost    EntityType = "post"
	EntityTypeComment EntityType = "comment"
)

type CommunityPost struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	Author             *UserAuthor     `json:"author,omitempty"`
	Content            string          `json:"content"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	PostType           string          `json:"postType"`
	WorkoutSummary     json.RawMessage `json:"workoutSummaryDetails,omitempty"`
	LikesCount         int             `json:"likesCount"`
	LikedByCurrentUser bool            `json:"likedByCurrentUser"`
	Comments           []PostComment   `json:"comments"`
	CreatedAt          time.Time       `json:"createdAt"`
}

type PostComment struct {
	ID        string      `json:"id"`
	PostID    string      `json:"postId"`
	UserID    string      `json:"userId"`
	Author    *UserAuthor `json:"author,omitempty"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

// LikeInfo contient l'état de like d'une entité pour un utilisateur donné
type LikeInfo struct {
	TotalLikes int  `json:"totalLikes"`
	UserLiked  bool `json:"userLiked"`
}
