package handler

import (
	"net/http"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "WorkoutWise API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/api/auth/register", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/api/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/api/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/api/users/{userId}", "description": "Récupérer un profil"},
				{"method": "PUT", "path": "/api/users/{userId}", "description": "Mettre à jour son profil"},
				{"method": "POST", "path": "/api/users/{userId}/avatar", "description": "Upload avatar"},
				{"method": "GET", "path": "/api/users/{userId}/settings", "description": "Réglages par catégorie"},
				{"method": "PUT", "path": "/api/users/{userId}/settings/{category}", "description": "Mettre à jour une catégorie de réglages"},
				{"method": "GET", "path": "/api/users/{userId}/progress-photos", "description": "Photos de progression"},
				{"method": "POST", "path": "/api/users/{userId}/progress-photos", "description": "Ajouter une photo de progression"},
				{"method": "DELETE", "path": "/api/users/{userId}/progress-photos/{photoId}", "description": "Supprimer une photo"},
				{"method": "GET", "path": "/api/users/{userId}/workouts", "description": "Historique des séances effectuées"},
			},
			"workout-definitions": []map[string]string{
				{"method": "GET", "path": "/api/workout-definitions", "description": "Séances types (perso + publiques)"},
				{"method": "POST", "path": "/api/workout-definitions", "description": "Créer une séance type"},
				{"method": "GET", "path": "/api/workout-definitions/{workoutId}", "description": "Récupérer une séance type"},
				{"method": "PUT", "path": "/api/workout-definitions/{workoutId}", "description": "Remplacer une séance type"},
				{"method": "DELETE", "path": "/api/workout-definitions/{workoutId}", "description": "Supprimer une séance type"},
			},
			"training-plans": []map[string]string{
				{"method": "GET", "path": "/api/training-plans", "description": "Plans d'entraînement (perso + publics)"},
				{"method": "POST", "path": "/api/training-plans", "description": "Créer un plan"},
				{"method": "GET", "path": "/api/training-plans/{planId}", "description": "Récupérer un plan avec son planning"},
				{"method": "PUT", "path": "/api/training-plans/{planId}", "description": "Remplacer un plan"},
				{"method": "DELETE", "path": "/api/training-plans/{planId}", "description": "Supprimer un plan"},
			},
			"workouts": []map[string]string{
				{"method": "POST", "path": "/api/workouts", "description": "Enregistrer une séance effectuée"},
				{"method": "GET", "path": "/api/workouts/{sessionId}", "description": "Détail d'une séance effectuée"},
			},
			"measurements": []map[string]string{
				{"method": "GET", "path": "/api/measurements", "description": "Relevés corporels"},
				{"method": "POST", "path": "/api/measurements", "description": "Ajouter un relevé"},
				{"method": "PUT", "path": "/api/measurements/{measurementId}", "description": "Modifier un relevé"},
				{"method": "DELETE", "path": "/api/measurements/{measurementId}", "description": "Supprimer un relevé"},
			},
			"personal-bests": []map[string]string{
				{"method": "GET", "path": "/api/personal-bests", "description": "Records personnels"},
				{"method": "POST", "path": "/api/personal-bests", "description": "Créer ou remplacer un record"},
				{"method": "DELETE", "path": "/api/personal-bests/{recordId}", "description": "Supprimer un record"},
			},
			"exercises": []map[string]string{
				{"method": "GET", "path": "/api/exercises", "description": "Catalogue d'exercices (param: category)"},
				{"method": "POST", "path": "/api/exercises", "description": "Ajouter un exercice au catalogue"},
			},
			"community": []map[string]string{
				{"method": "GET", "path": "/api/community/posts", "description": "Fil communautaire paginé"},
				{"method": "POST", "path": "/api/community/posts", "description": "Publier un post"},
				{"method": "DELETE", "path": "/api/community/posts/{postId}", "description": "Supprimer son post"},
				{"method": "POST", "path": "/api/community/posts/{postId}/like", "description": "Like/unlike un post"},
				{"method": "POST", "path": "/api/community/posts/{postId}/comments", "description": "Commenter un post"},
			},
			"admin": []map[string]string{
				{"method": "GET", "path": "/api/admin/stats", "description": "Statistiques de la plateforme"},
				{"method": "GET", "path": "/api/admin/health/db", "description": "État de la base de données"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/api/health", "description": "Health check"},
			},
		},
	}

	utils.Success(w, routes)
}
