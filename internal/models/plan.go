package model

import "time"

// TrainingPlan est un plan nommé avec son planning ordonné de jours.
type TrainingPlan struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Goal          string      `json:"goal,omitempty"`
	DurationWeeks int         `json:"duration"`
	IsPublic      bool        `json:"isPublic"`
	StartDate     *time.Time  `json:"startDate,omitempty"`
	EndDate       *time.Time  `json:"endDate,omitempty"`
	Author        *UserAuthor `json:"author,omitempty"`
	Schedule      []PlanDay   `json:"schedule"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// PlanDay: soit jour de repos, soit séance assignée. L'exclusivité est
// normalisée à l'écriture (un jour de repos n'a jamais de séance assignée).
type PlanDay struct {
	DayName             string  `json:"dayName"`
	OrderIndex          int     `json:"orderIndex"`
	IsRestDay           bool    `json:"isRestDay"`
	AssignedWorkoutID   *string `json:"assignedWorkoutId,omitempty"`
	AssignedWorkoutName string  `json:"assignedWorkoutName,omitempty"`
	TemplateRef         string  `json:"templateRef,omitempty"`
	Notes               string  `json:"notes,omitempty"`
}
