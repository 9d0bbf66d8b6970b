package database

import (
	"time"

	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/util"
	"gorm.io/gorm"
)

// User CRUD
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateUser(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

// Contest CRUD

// ContestStatus filters contest listings by lifecycle phase.
type ContestStatus string

const (
	ContestScheduled ContestStatus = "scheduled"
	ContestRunning   ContestStatus = "running"
	ContestFinished  ContestStatus = "finished"
)

func CreateContest(db *gorm.DB, contest *models.Contest) error {
	return db.Create(contest).Error
}

func GetContest(db *gorm.DB, id string) (*models.Contest, error) {
	var contest models.Contest
	if err := db.Where("id = ?", id).First(&contest).Error; err != nil {
		return nil, err
	}
	return &contest, nil
}

func UpdateContest(db *gorm.DB, contest *models.Contest) error {
	return db.Save(contest).Error
}

// ListContests returns one page of contests ordered by start time
// descending, newest first, plus the unpaginated total. Unpublished contests
// are only included when includeUnpublished is set.
func ListContests(db *gorm.DB, includeUnpublished bool, status ContestStatus, now time.Time, p util.Pagination) ([]models.Contest, int64, error) {
	q := db.Model(&models.Contest{})
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	switch status {
	case ContestScheduled:
		q = q.Where("start_time > ?", now)
	case ContestRunning:
		q = q.Where("start_time <= ? AND end_time > ?", now, now)
	case ContestFinished:
		q = q.Where("end_time <= ?", now)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []models.Contest
	err := q.Order("start_time desc").
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&contests).Error
	if err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}

// Problem CRUD
func CreateProblem(db *gorm.DB, problem *models.Problem) error {
	return db.Create(problem).Error
}

func GetProblem(db *gorm.DB, contestID, id string) (*models.Problem, error) {
	var problem models.Problem
	if err := db.Where("contest_id = ? AND id = ?", contestID, id).First(&problem).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

func ListProblems(db *gorm.DB, contestID string) ([]models.Problem, error) {
	var problems []models.Problem
	if err := db.Where("contest_id = ?", contestID).Order("id asc").Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func UpdateProblem(db *gorm.DB, problem *models.Problem) error {
	return db.Save(problem).Error
}

func DeleteProblem(db *gorm.DB, contestID, id string) error {
	return db.Where("contest_id = ? AND id = ?", contestID, id).Delete(&models.Problem{}).Error
}

// Environment CRUD
func CreateEnvironment(db *gorm.DB, env *models.Environment) error {
	return db.Create(env).Error
}

func GetEnvironment(db *gorm.DB, id uint) (*models.Environment, error) {
	var env models.Environment
	if err := db.Where("id = ?", id).First(&env).Error; err != nil {
		return nil, err
	}
	return &env, nil
}

func ListEnvironments(db *gorm.DB, activeOnly bool) ([]models.Environment, error) {
	q := db.Model(&models.Environment{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var envs []models.Environment
	if err := q.Order("id asc").Find(&envs).Error; err != nil {
		return nil, err
	}
	return envs, nil
}

func UpdateEnvironment(db *gorm.DB, env *models.Environment) error {
	return db.Save(env).Error
}

// Submission CRUD
func CreateSubmission(db *gorm.DB, sub *models.Submission) error {
	return db.Create(sub).Error
}

func GetSubmission(db *gorm.DB, id string) (*models.Submission, error) {
	var sub models.Submission
	if err := db.Preload("User").Preload("JudgeResults").Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubmissions returns one page of a contest's submissions, newest first,
// optionally narrowed to a problem or user, plus the unpaginated total.
func ListSubmissions(db *gorm.DB, contestID, problemID, userID string, p util.Pagination) ([]models.Submission, int64, error) {
	q := db.Model(&models.Submission{}).Where("contest_id = ?", contestID)
	if problemID != "" {
		q = q.Where("problem_id = ?", problemID)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []models.Submission
	err := q.Preload("User").Order("created_at desc").
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func UpdateSubmissionStatus(db *gorm.DB, id string, status models.JudgeStatus) error {
	return db.Model(&models.Submission{}).Where("id = ?", id).Update("status", status).Error
}

// ResetSubmissionsForRejudge wipes the judge results of every submission for
// one (contest, problem) pair, resets their status to Waiting and returns the
// affected submission ids so the caller can re-enqueue them.
func ResetSubmissionsForRejudge(db *gorm.DB, contestID, problemID string) ([]string, error) {
	var ids []string
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contest_id = ? AND problem_id = ?", contestID, problemID).
			Delete(&models.JudgeResult{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Submission{}).
			Where("contest_id = ? AND problem_id = ?", contestID, problemID).
			Update("status", models.StatusWaiting).Error; err != nil {
			return err
		}
		return tx.Model(&models.Submission{}).
			Where("contest_id = ? AND problem_id = ?", contestID, problemID).
			Order("created_at asc").
			Pluck("id", &ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
