package model

import "time"

// Measurement est un relevé corporel daté.
type Measurement struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	TakenOn   time.Time  `json:"date"`
	Weight    *float64   `json:"weight,omitempty"`
	BodyParts []BodyPart `json:"bodyParts"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type BodyPart struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
