package utils

import (
	"context"
	"strconv"
	"strings"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
)

// SlugFromEmail dérive un nom d'utilisateur depuis la partie locale de
// l'email: minuscules, caractères hors [a-z0-9._-] supprimés.
func SlugFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, c := range strings.ToLower(local) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '.' || c == '_' || c == '-' {
			b.WriteRune(c)
		}
	}

	slug := b.String()
	if slug == "" {
		slug = "user"
	}
	return slug
}

// UsernameCandidate retourne le n-ième candidat pour un slug donné
// (slug, slug1, slug2, ...).
func UsernameCandidate(slug string, attempt int) string {
	if attempt == 0 {
		return slug
	}
	return slug + strconv.Itoa(attempt)
}

// GenerateUsername trouve le premier candidat libre en base avec retry
// à suffixe numérique.
func GenerateUsername(ctx context.Context, email string) (string, error) {
	slug := SlugFromEmail(email)

	for attempt := 0; ; attempt++ {
		candidate := UsernameCandidate(slug, attempt)

		var exists bool
		err := database.DB.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`,
			candidate,
		).Scan(&exists)
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}
	}
}
