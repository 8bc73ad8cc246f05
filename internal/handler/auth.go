package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/scanner"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"golang.org/x/crypto/bcrypt"
)

// SessionDuration durée de validité d'une session (24h)
const SessionDuration = 24 * time.Hour

type RegisterRequest struct {
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	DateOfBirth  string   `json:"dateOfBirth"`
	Gender       string   `json:"gender"`
	Weight       *float64 `json:"weight,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	FitnessLevel string   `json:"fitnessLevel"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// defaultSettings: lignes de réglages seedées pour chaque nouveau compte
var defaultSettings = map[string]string{
	model.SettingsCategoryPrivacy:   `{"profileVisible": true, "showWeight": false, "showPhotos": false}`,
	model.SettingsCategoryApp:       `{"theme": "system", "units": "metric", "language": "en"}`,
	model.SettingsCategoryHydration: `{"dailyGoalMl": 2000, "remindersEnabled": false}`,
}

// Register crée un compte: hash du mot de passe, username unique dérivé de
// l'email, utilisateur + réglages par défaut insérés dans une seule
// transaction. Email déjà utilisé => 409 sans création de ligne.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if len(req.Password) < 8 {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		utils.ValidationError(w, "missing or invalid required fields", missing)
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

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	// La génération du username est un check-then-insert: deux inscriptions
	// concurrentes avec la même partie locale peuvent obtenir le même
	// candidat. Le perdant retente avec le candidat suivant, la violation
	// sur l'email reste un 409 immédiat.
	var user model.UserProfile
	for attempt := 0; ; attempt++ {
		username, err := utils.GenerateUsername(ctx, req.Email)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not generate username", err)
			return
		}

		err = pgx.BeginFunc(ctx, database.DB, func(tx pgx.Tx) error {
			err := tx.QueryRow(ctx, `
				INSERT INTO users(email, username, password_hash, full_name, date_of_birth, gender,
					weight, height, fitness_level, role, join_date, created_at, updated_at)
				VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, 'client', NOW(), NOW(), NOW())
				RETURNING id, email, username, full_name, role, join_date, created_at, updated_at
			`,
				req.Email, username, string(hashed), req.FullName, dateOfBirth, req.Gender,
				req.Weight, req.Height, req.FitnessLevel,
			).Scan(&user.ID, &user.Email, &user.Username, &user.FullName, &user.Role,
				&user.JoinDate, &user.CreatedAt, &user.UpdatedAt)
			if err != nil {
				return err
			}

			// Seed des réglages par défaut, dans la même transaction
			for category, settings := range defaultSettings {
				if _, err := tx.Exec(ctx, `
					INSERT INTO user_settings(user_id, category, settings, created_at, updated_at)
					VALUES($1, $2, $3, NOW(), NOW())
				`, user.ID, category, settings); err != nil {
					return err
				}
			}

			return nil
		})
		if err == nil {
			break
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				utils.ErrorSimple(w, http.StatusConflict, "email already registered")
				return
			case "users_username_key":
				if attempt < 2 {
					continue
				}
				utils.ErrorSimple(w, http.StatusConflict, "could not allocate a unique username")
				return
			}
		}
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	user.Gender = req.Gender
	user.FitnessLevel = req.FitnessLevel
	user.DateOfBirth = dateOfBirth
	if req.Weight != nil {
		user.Weight = *req.Weight
	}
	if req.Height != nil {
		user.Height = *req.Height
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "account created",
		Data:    map[string]interface{}{"userData": user},
	})
}

// Login vérifie le mot de passe et ouvre une session avec token opaque
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	var hashedPassword string

	row := database.DB.QueryRow(ctx, `
		SELECT id, email, username, full_name, date_of_birth, gender,
			weight, height, fitness_level, role, avatar_url, bio,
			join_date, created_at, updated_at, password_hash
		FROM users WHERE email=$1 AND deleted_at IS NULL
	`, req.Email)

	user, err := scanUserWithPassword(row, &hashedPassword)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := createSession(ctx, user.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout invalide la session courante (soft delete)
func Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx, `
		UPDATE sessions
		SET is_active=false, expires_at=NOW(), deleted_at=NOW()
		WHERE token=$1 AND is_active=true AND deleted_at IS NULL
	`, token)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not logout", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found or already logged out")
		return
	}

	utils.Message(w, "logged out")
}

// createSession insère une session avec un token uuid et expiration 24h
func createSession(ctx context.Context, userID, ipAddress, userAgent string) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	_, err := database.DB.Exec(ctx, `
		INSERT INTO sessions(user_id, token, ip_address, user_agent, is_active, created_at, expires_at)
		VALUES($1, $2, $3, $4, true, $5, $6)
	`, userID, token, ipAddress, userAgent, now, now.Add(SessionDuration))
	if err != nil {
		return "", err
	}

	return token, nil
}

// scanUserWithPassword scanne le profil + le hash en fin de ligne
func scanUserWithPassword(row scanner.RowScanner, hashedPassword *string) (*model.UserProfile, error) {
	wrapped := &passwordRowScanner{row: row, hash: hashedPassword}
	return scanner.ScanUserProfile(wrapped)
}

type passwordRowScanner struct {
	row  scanner.RowScanner
	hash *string
}

func (s *passwordRowScanner) Scan(dest ...interface{}) error {
	dest = append(dest, s.hash)
	return s.row.Scan(dest...)
}
