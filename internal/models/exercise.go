package model

// Exercise est une entrée du catalogue global, partagée entre utilisateurs.
type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
