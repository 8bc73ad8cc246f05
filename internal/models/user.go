package model

import (
	"time"
)

// Roles possibles d'un utilisateur
const (
	RoleClient  = "client"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

type UserProfile struct {
	ID           string     `json:"id,omitempty"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FullName     string     `json:"fullName"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Weight       float64    `json:"weight,omitempty"`
	Height       float64    `json:"height,omitempty"`
	FitnessLevel string     `json:"fitnessLevel,omitempty"`
	Role         string     `json:"role"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	JoinDate     time.Time  `json:"joinDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt,omitempty"`
}

// UserAuthor version réduite pour les jointures (posts, plans publics)
type UserAuthor struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Catégories de settings seedées à l'inscription
const (
	SettingsCategoryPrivacy   = "privacy"
	SettingsCategoryApp       = "app"
	SettingsCategoryHydration = "hydration"
)

type UserSettings struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Category  string                 `json:"category"`
	Settings  map[string]interface{} `json:"settings"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type ProgressPhoto struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PhotoURL  string    `json:"photoUrl"`
	Caption   string    `json:"caption,omitempty"`
	TakenOn   time.Time `json:"takenOn"`
	CreatedAt time.Time `json:"createdAt"`
}
