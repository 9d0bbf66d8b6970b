package database

import (
	"errors"
	"time"

	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/ranking"
	"gorm.io/gorm"
)

// RankingStore adapts a gorm handle to the ranking engine's snapshot reads.
// Hand it a transaction so all four reads see one consistent view.
type RankingStore struct {
	tx *gorm.DB
}

var _ ranking.Store = (*RankingStore)(nil)

func NewRankingStore(tx *gorm.DB) *RankingStore {
	return &RankingStore{tx: tx}
}

func (s *RankingStore) GetContest(id string) (*ranking.Contest, error) {
	var contest models.Contest
	if err := s.tx.Where("id = ?", id).First(&contest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ranking.ErrNotFound
		}
		return nil, err
	}
	return &ranking.Contest{
		ID:        contest.ID,
		StartTime: contest.StartTime,
		EndTime:   contest.EndTime,
		Penalty:   contest.Penalty(),
	}, nil
}

func (s *RankingStore) ListProblems(contestID string) ([]ranking.Problem, error) {
	var problems []models.Problem
	if err := s.tx.Where("contest_id = ?", contestID).Order("id asc").Find(&problems).Error; err != nil {
		return nil, err
	}
	out := make([]ranking.Problem, 0, len(problems))
	for _, p := range problems {
		out = append(out, ranking.Problem{ID: p.ID, Score: p.Score})
	}
	return out, nil
}

func (s *RankingStore) ListParticipants() ([]ranking.Participant, error) {
	// Registration order; the ranking engine relies on this being stable
	// between runs.
	var users []models.User
	if err := s.tx.Order("created_at asc, id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]ranking.Participant, 0, len(users))
	for _, u := range users {
		out = append(out, ranking.Participant{ID: u.ID, Name: u.Name, Admin: u.Admin})
	}
	return out, nil
}

func (s *RankingStore) ListJudgments(contestID string, windowStart, windowEnd time.Time) ([]ranking.Judgment, error) {
	// Pre-filtering to [start, end) here is an optimization only; the
	// engine re-applies the boundary.
	var subs []models.Submission
	err := s.tx.Where("contest_id = ? AND created_at >= ? AND created_at < ?",
		contestID, windowStart, windowEnd).
		Order("created_at asc, id asc").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	out := make([]ranking.Judgment, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ranking.Judgment{
			UserID:    sub.UserID,
			ProblemID: sub.ProblemID,
			Status:    sub.Status,
			Created:   sub.CreatedAt,
		})
	}
	return out, nil
}

// ComputeRanking runs the ranking engine against a snapshot taken in a
// single read transaction.
func ComputeRanking(db *gorm.DB, contestID string, now time.Time) ([]ranking.Entry, error) {
	var entries []ranking.Entry
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		entries, err = ranking.Compute(NewRankingStore(tx), contestID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
