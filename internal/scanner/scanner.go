package scanner

import (
	"database/sql"
	"encoding/json"

	model "github.com/WorkoutWise/WorkoutWise-backend/internal/models"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/utils"
)

// RowScanner couvre pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile.
// Ordre des colonnes: id, email, username, full_name, date_of_birth, gender,
// weight, height, fitness_level, role, avatar_url, bio, join_date,
// created_at, updated_at.
func ScanUserProfile(row RowScanner) (*model.UserProfile, error) {
	var user model.UserProfile
	var gender, fitnessLevel, avatarURL, bio sql.NullString
	var weight, height sql.NullFloat64
	var dateOfBirth sql.NullTime

	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &dateOfBirth, &gender,
		&weight, &height, &fitnessLevel, &user.Role, &avatarURL, &bio,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.DateOfBirth = utils.NullTimeToPointer(dateOfBirth)
	user.Gender = utils.NullStringToString(gender)
	user.FitnessLevel = utils.NullStringToString(fitnessLevel)
	user.AvatarURL = utils.NullStringToString(avatarURL)
	user.Bio = utils.NullStringToString(bio)
	user.Weight = utils.NullFloat64ToFloat64(weight)
	user.Height = utils.NullFloat64ToFloat64(height)

	return &user, nil
}

// ScanWorkoutDefinition scanne les colonnes scalaires d'une séance type
// (sans la liste d'exercices, chargée séparément).
func ScanWorkoutDefinition(row RowScanner) (*model.WorkoutDefinition, error) {
	var def model.WorkoutDefinition
	var description sql.NullString

	err := row.Scan(
		&def.ID, &def.UserID, &def.Name, &def.Type, &description, &def.IsPublic,
		&def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	def.Description = utils.NullStringToString(description)
	return &def, nil
}

// ScanExerciseInWorkout scanne une ligne de workout_definition_exercises
// jointe au catalogue, en appliquant les prescriptions par défaut quand la
// colonne est NULL (sets=3, reps="10", rest=60).
func ScanExerciseInWorkout(row RowScanner) (*model.ExerciseInWorkout, error) {
	var ex model.ExerciseInWorkout
	var sets sql.NullInt64
	var reps, notes sql.NullString
	var restSeconds sql.NullInt64
	var targetRPE sql.NullFloat64

	err := row.Scan(
		&ex.ExerciseID, &ex.ExerciseName, &ex.OrderIndex,
		&sets, &reps, &restSeconds, &targetRPE, &notes,
	)
	if err != nil {
		return nil, err
	}

	ex.Sets = utils.NullIntWithDefault(sets, model.DefaultSets)
	ex.Reps = utils.NullStringWithDefault(reps, model.DefaultReps)
	ex.RestSeconds = utils.NullIntWithDefault(restSeconds, model.DefaultRestSeconds)
	ex.TargetRPE = utils.NullFloat64ToPointer(targetRPE)
	ex.Notes = utils.NullStringToString(notes)

	return &ex, nil
}

// ScanTrainingPlanWithAuthor scanne un plan joint (LEFT JOIN) à son auteur.
// Les colonnes auteur peuvent être NULL quand le compte a disparu.
func ScanTrainingPlanWithAuthor(row RowScanner) (*model.TrainingPlan, error) {
	var plan model.TrainingPlan
	var description, goal sql.NullString
	var durationWeeks sql.NullInt64
	var startDate, endDate sql.NullTime
	var authorID, authorUsername, authorFullName, authorAvatar sql.NullString

	err := row.Scan(
		&plan.ID, &plan.UserID, &plan.Name, &description, &goal, &durationWeeks,
		&plan.IsPublic, &startDate, &endDate, &plan.CreatedAt, &plan.UpdatedAt,
		&authorID, &authorUsername, &authorFullName, &authorAvatar,
	)
	if err != nil {
		return nil, err
	}

	plan.Description = utils.NullStringToString(description)
	plan.Goal = utils.NullStringToString(goal)
	plan.DurationWeeks = utils.NullInt64ToInt(durationWeeks)
	plan.StartDate = utils.NullTimeToPointer(startDate)
	plan.EndDate = utils.NullTimeToPointer(endDate)

	if authorID.Valid {
		plan.Author = &model.UserAuthor{
			ID:        authorID.String,
			Username:  utils.NullStringToString(authorUsername),
			FullName:  utils.NullStringToString(authorFullName),
			AvatarURL: utils.NullStringToString(authorAvatar),
		}
	}

	return &plan, nil
}

// ScanPlanDay scanne une ligne de training_plan_days
func ScanPlanDay(row RowScanner) (*model.PlanDay, error) {
	var day model.PlanDay
	var assignedWorkoutID sql.NullString
	var assignedWorkoutName, templateRef, notes sql.NullString

	err := row.Scan(
		&day.DayName, &day.OrderIndex, &day.IsRestDay,
		&assignedWorkoutID, &assignedWorkoutName, &templateRef, &notes,
	)
	if err != nil {
		return nil, err
	}

	day.AssignedWorkoutID = utils.NullStringToPointer(assignedWorkoutID)
	day.AssignedWorkoutName = utils.NullStringToString(assignedWorkoutName)
	day.TemplateRef = utils.NullStringToString(templateRef)
	day.Notes = utils.NullStringToString(notes)

	return &day, nil
}

// ScanMeasurement scanne un relevé corporel; body_parts est du JSONB.
func ScanMeasurement(row RowScanner) (*model.Measurement, error) {
	var m model.Measurement
	var weight sql.NullFloat64
	var notes sql.NullString
	var bodyPartsJSON []byte

	err := row.Scan(&m.ID, &m.UserID, &m.TakenOn, &weight, &bodyPartsJSON, &notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.Weight = utils.NullFloat64ToPointer(weight)
	m.Notes = utils.NullStringToString(notes)

	m.BodyParts = []model.BodyPart{}
	if len(bodyPartsJSON) > 0 {
		json.Unmarshal(bodyPartsJSON, &m.BodyParts)
	}

	return &m, nil
}

// ScanPersonalBest scanne un record joint au catalogue d'exercices
func ScanPersonalBest(row RowScanner) (*model.PersonalBest, error) {
	var pb model.PersonalBest
	var value []byte

	err := row.Scan(
		&pb.ID, &pb.UserID, &pb.ExerciseID, &pb.ExerciseName,
		&pb.RecordType, &value, &pb.AchievedOn, &pb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pb.Value = json.RawMessage(value)
	return &pb, nil
}

// ScanCommunityPost scanne un post avec auteur, likes_count et
// liked_by_current_user (sous-requêtes corrélées).
func ScanCommunityPost(row RowScanner) (*model.CommunityPost, error) {
	var post model.CommunityPost
	var imageURL sql.NullString
	var workoutSummary []byte
	var authorID, authorUsername, authorFullName, authorAvatar sql.NullString

	err := row.Scan(
		&post.ID, &post.UserID, &post.Content, &imageURL, &post.PostType,
		&workoutSummary, &post.LikesCount, &post.LikedByCurrentUser, &post.CreatedAt,
		&authorID, &authorUsername, &authorFullName, &authorAvatar,
	)
	if err != nil {
		return nil, err
	}

	post.ImageURL = utils.NullStringToString(imageURL)
	if len(workoutSummary) > 0 {
		post.WorkoutSummary = json.RawMessage(workoutSummary)
	}

	if authorID.Valid {
		post.Author = &model.UserAuthor{
			ID:        authorID.String,
			Username:  utils.NullStringToString(authorUsername),
			FullName:  utils.NullStringToString(authorFullName),
			AvatarURL: utils.NullStringToString(authorAvatar),
		}
	}

	post.Comments = []model.PostComment{}
	return &post, nil
}

// ScanPostComment scanne un commentaire joint à son auteur
func ScanPostComment(row RowScanner) (*model.PostComment, error) {
	var c model.PostComment
	var authorID, authorUsername, authorFullName, authorAvatar sql.NullString

	err := row.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt,
		&authorID, &authorUsername, &authorFullName, &authorAvatar,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		c.Author = &model.UserAuthor{
			ID:        authorID.String,
			Username:  utils.NullStringToString(authorUsername),
			FullName:  utils.NullStringToString(authorFullName),
			AvatarURL: utils.NullStringToString(authorAvatar),
		}
	}

	return &c, nil
}
