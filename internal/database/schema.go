package database

import (
	"context"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/logger"
)

// schemaStatements contient le schéma complet, idempotent.
// Les sous-collections ordonnées (exercices d'une séance type, jours d'un plan)
// sont en ON DELETE CASCADE: la suppression du parent emporte les enfants.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		date_of_birth DATE,
		gender TEXT,
		weight DOUBLE PRECISION,
		height DOUBLE PRECISION,
		fitness_level TEXT,
		role TEXT NOT NULL DEFAULT 'client',
		avatar_url TEXT,
		bio TEXT,
		join_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS user_settings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category TEXT NOT NULL,
		settings JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, category)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token TEXT NOT NULL UNIQUE,
		ip_address TEXT,
		user_agent TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS workout_definitions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'strength',
		description TEXT,
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS workout_definition_exercises (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		workout_id UUID NOT NULL REFERENCES workout_definitions(id) ON DELETE CASCADE,
		exercise_id UUID NOT NULL REFERENCES exercises(id),
		order_index INT NOT NULL,
		sets INT,
		reps TEXT,
		rest_seconds INT,
		target_rpe DOUBLE PRECISION,
		notes TEXT,
		UNIQUE (workout_id, order_index)
	)`,
	`CREATE TABLE IF NOT EXISTS training_plans (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		goal TEXT,
		duration_weeks INT,
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		start_date DATE,
		end_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS training_plan_days (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		plan_id UUID NOT NULL REFERENCES training_plans(id) ON DELETE CASCADE,
		day_name TEXT NOT NULL,
		order_index INT NOT NULL,
		is_rest_day BOOLEAN NOT NULL DEFAULT FALSE,
		assigned_workout_id UUID REFERENCES workout_definitions(id) ON DELETE SET NULL,
		assigned_workout_name TEXT,
		template_ref TEXT,
		notes TEXT,
		UNIQUE (plan_id, order_index)
	)`,
	`CREATE TABLE IF NOT EXISTS workout_sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workout_id UUID REFERENCES workout_definitions(id) ON DELETE SET NULL,
		workout_name TEXT NOT NULL,
		workout_type TEXT,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ,
		total_time_seconds INT NOT NULL DEFAULT 0,
		difficulty TEXT,
		general_notes TEXT,
		total_volume DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS session_exercises (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
		exercise_id UUID NOT NULL REFERENCES exercises(id),
		order_index INT NOT NULL,
		UNIQUE (session_id, order_index)
	)`,
	`CREATE TABLE IF NOT EXISTS recorded_sets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_exercise_id UUID NOT NULL REFERENCES session_exercises(id) ON DELETE CASCADE,
		set_number INT NOT NULL,
		weight TEXT,
		reps TEXT,
		rpe DOUBLE PRECISION,
		notes TEXT,
		UNIQUE (session_exercise_id, set_number)
	)`,
	`CREATE TABLE IF NOT EXISTS measurements (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		taken_on DATE NOT NULL,
		weight DOUBLE PRECISION,
		body_parts JSONB NOT NULL DEFAULT '[]',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS personal_bests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		exercise_id UUID NOT NULL REFERENCES exercises(id),
		record_type TEXT NOT NULL,
		value JSONB NOT NULL,
		achieved_on DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, exercise_id, record_type)
	)`,
	`CREATE TABLE IF NOT EXISTS community_posts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		image_url TEXT,
		post_type TEXT NOT NULL DEFAULT 'general',
		workout_summary JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS post_comments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		post_id UUID NOT NULL REFERENCES community_posts(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, entity_type, entity_id)
	)`,
	`CREATE TABLE IF NOT EXISTS progress_photos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		photo_url TEXT NOT NULL,
		caption TEXT,
		taken_on DATE NOT NULL DEFAULT CURRENT_DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_days_plan ON training_plan_days(plan_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_def_exercises_workout ON workout_definition_exercises(workout_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_start ON workout_sessions(user_id, start_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created ON community_posts(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_entity ON likes(entity_type, entity_id)`,
}

// Migrate applique le schéma au démarrage.
func Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Success("Database schema up to date (%d statements)", len(schemaStatements))
	return nil
}
