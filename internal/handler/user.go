package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/scanner"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/services"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// cloudinaryService est injecté au démarrage; nil quand la config manque,
// les routes d'upload répondent alors 503.
var cloudinaryService *services.CloudinaryService

// SetCloudinaryService branche le service d'upload d'images
func SetCloudinaryService(s *services.CloudinaryService) {
	cloudinaryService = s
}

const maxUploadSize = 10 << 20 // 10 MB

type UpdateUserRequest struct {
	FullName     string   `json:"fullName"`
	DateOfBirth  string   `json:"dateOfBirth,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	FitnessLevel string   `json:"fitnessLevel,omitempty"`
	Bio          string   `json:"bio,omitempty"`
}

const userProfileColumns = `
	id, email, username, full_name, date_of_birth, gender,
	weight, height, fitness_level, role, avatar_url, bio,
	join_date, created_at, updated_at
`

// GetUser retourne un profil. Le profil complet pour soi-même (ou un admin),
// une version publique réduite pour les autres.
func GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+userProfileColumns+` FROM users WHERE id=$1 AND deleted_at IS NULL`,
		userID)

	profile, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	if middleware.IsOwnerOrAdmin(r, userID) {
		utils.Success(w, profile)
		return
	}

	// Vue publique: pas d'email, pas de données corporelles
	utils.Success(w, model.UserAuthor{
		ID:        profile.ID,
		Username:  profile.Username,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
	})
}

// UpdateUser met à jour son propre profil
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only update your own profile")
		return
	}

	var req UpdateUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.FullName == "" {
		utils.ValidationError(w, "missing required fields", []string{"fullName"})
		return
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			utils.ValidationError(w, "invalid dateOfBirth, expected YYYY-MM-DD", []string{"dateOfBirth"})
			return
		}
		dateOfBirth = &parsed
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		UPDATE users
		SET full_name=$1, date_of_birth=$2, gender=NULLIF($3, ''), weight=$4, height=$5,
			fitness_level=NULLIF($6, ''), bio=NULLIF($7, ''), updated_at=NOW()
		WHERE id=$8 AND deleted_at IS NULL
		RETURNING `+userProfileColumns,
		req.FullName, dateOfBirth, req.Gender, req.Weight, req.Height,
		req.FitnessLevel, req.Bio, userID)

	profile, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	utils.Success(w, profile)
}

// UploadAvatar remplace l'avatar d'un utilisateur (multipart, champ "image")
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only update your own avatar")
		return
	}

	if cloudinaryService == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	ctx := context.Background()

	url, err := cloudinaryService.UploadAvatar(ctx, file, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`UPDATE users SET avatar_url=$1, updated_at=NOW() WHERE id=$2`,
		url, userID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar url", err)
		return
	}

	utils.Success(w, map[string]string{"avatarUrl": url})
}

// GetProgressPhotos liste les photos de progression d'un utilisateur.
// Les photos sont privées: propriétaire ou admin seulement.
func GetProgressPhotos(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "progress photos are private")
		return
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, photo_url, COALESCE(caption, ''), taken_on, created_at
		FROM progress_photos
		WHERE user_id=$1
		ORDER BY taken_on DESC, created_at DESC
	`, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query progress photos", err)
		return
	}
	defer rows.Close()

	photos := []model.ProgressPhoto{}
	for rows.Next() {
		var p model.ProgressPhoto
		if err := rows.Scan(&p.ID, &p.UserID, &p.PhotoURL, &p.Caption, &p.TakenOn, &p.CreatedAt); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan progress photo", err)
			return
		}
		photos = append(photos, p)
	}

	utils.Success(w, photos)
}

// UploadProgressPhoto ajoute une photo datée (multipart, champ "image",
// champ "caption" optionnel).
func UploadProgressPhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only add photos to your own gallery")
		return
	}

	if cloudinaryService == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	ctx := context.Background()

	photoID := uuid.NewString()
	url, err := cloudinaryService.UploadProgressPhoto(ctx, file, userID, photoID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload progress photo", err)
		return
	}

	caption := r.FormValue("caption")

	var id string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO progress_photos(id, user_id, photo_url, caption, taken_on, created_at)
		VALUES($1, $2, $3, NULLIF($4, ''), CURRENT_DATE, NOW())
		RETURNING id
	`, photoID, userID, url, caption).Scan(&id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save progress photo", err)
		return
	}

	utils.Created(w, map[string]string{"id": id, "photoUrl": url})
}

// DeleteProgressPhoto supprime une photo de l'appelant
func DeleteProgressPhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	photoID := vars["photoId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only delete your own photos")
		return
	}

	ctx := context.Background()

	if err := utils.CheckOwnership(ctx, "progress_photos", photoID, userID, false); err != nil {
		respondOwnershipError(w, "progress photo", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`DELETE FROM progress_photos WHERE id=$1`,
		photoID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete progress photo", err)
		return
	}

	if cloudinaryService != nil {
		// Best effort, l'image orpheline sur le CDN n'est pas bloquante
		_ = cloudinaryService.DeleteImage(ctx, "workoutwise/progress/"+userID+"/"+photoID)
	}

	utils.Message(w, "progress photo deleted")
}

// GetUserSettings retourne les réglages d'un utilisateur groupés par
// catégorie. Propriétaire ou admin seulement.
func GetUserSettings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "settings are private")
		return
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT category, settings
		FROM user_settings
		WHERE user_id=$1
		ORDER BY category
	`, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query settings", err)
		return
	}
	defer rows.Close()

	settings := map[string]json.RawMessage{}
	for rows.Next() {
		var category string
		var raw []byte
		if err := rows.Scan(&category, &raw); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan settings", err)
			return
		}
		settings[category] = json.RawMessage(raw)
	}

	utils.Success(w, settings)
}

// UpdateUserSettings remplace les réglages d'une catégorie
func UpdateUserSettings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	category := vars["category"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "settings are private")
		return
	}

	switch category {
	case model.SettingsCategoryPrivacy, model.SettingsCategoryApp, model.SettingsCategoryHydration:
	default:
		utils.ValidationError(w, "unknown settings category", []string{"category"})
		return
	}

	var settings map[string]interface{}
	if err := utils.DecodeJSON(r, &settings); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()

	raw, err := json.Marshal(settings)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not encode settings", err)
		return
	}

	if _, err := database.DB.Exec(ctx, `
		INSERT INTO user_settings(user_id, category, settings, created_at, updated_at)
		VALUES($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, category)
		DO UPDATE SET settings=EXCLUDED.settings, updated_at=NOW()
	`, userID, category, raw); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save settings", err)
		return
	}

	utils.Message(w, "settings updated")
}
