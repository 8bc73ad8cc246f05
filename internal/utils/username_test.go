package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane.doe@example.com", "jane.doe"},
		{"Jane.Doe@example.com", "jane.doe"},
		{"user+tag@example.com", "usertag"},
		{"émile@example.com", "mile"},
		{"++@example.com", "user"},
		{"no-at-sign", "no-at-sign"},
		{"under_score@x.y", "under_score"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugFromEmail(tt.email))
		})
	}
}

func TestUsernameCandidate(t *testing.T) {
	assert.Equal(t, "jane", UsernameCandidate("jane", 0))
	assert.Equal(t, "jane1", UsernameCandidate("jane", 1))
	assert.Equal(t, "jane7", UsernameCandidate("jane", 7))
}
