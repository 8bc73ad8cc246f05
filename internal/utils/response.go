package utils

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Created répond 201 avec les données créées
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, APIResponse{Success: true, Data: data})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}

// Error log l'erreur interne côté serveur et répond avec le message public.
// L'erreur brute n'est jamais exposée au client.
func Error(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		LogError("[%d] %s: %v", status, msg, err)
	} else {
		LogError("[%d] %s", status, msg)
	}
	JSON(w, status, APIResponse{Success: false, Error: msg, Message: msg})
}

func ErrorSimple(w http.ResponseWriter, status int, msg string) {
	Error(w, status, msg, nil)
}

// ValidationError répond 400 avec le détail des champs invalides
func ValidationError(w http.ResponseWriter, msg string, fields []string) {
	JSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: msg, Message: msg, Errors: fields})
}
