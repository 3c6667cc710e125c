package repository

import (
	"award_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankingRepository interface {
	UpsertJuryScore(score *model.JuryScore) error
	FindJuryScoreByID(id string) (*model.JuryScore, error)
	ListJuryScoresBySession(sessionID uint) ([]model.JuryScore, error)
	UpsertRanking(ranking *model.AwardRanking) error
	FindBySession(sessionID uint) (*model.AwardRanking, error)
	FindByID(id string) (*model.AwardRanking, error)
	ListByGroup(groupID uint) ([]model.AwardRanking, error)
	ListGroupIDs() ([]uint, error)
	UpdateRanks(rankings []model.AwardRanking) error
}

type rankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

// UpsertJuryScore is the atomic insert-or-update keyed on the
// (session_id, jury_id) unique index. Concurrent resubmission by the same
// juror can never produce a duplicate row.
func (r *rankingRepository) UpsertJuryScore(score *model.JuryScore) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "jury_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"scores", "comments", "updated_at"}),
	}).Create(score).Error
}

func (r *rankingRepository) FindJuryScoreByID(id string) (*model.JuryScore, error) {
	var s model.JuryScore
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *rankingRepository) ListJuryScoresBySession(sessionID uint) ([]model.JuryScore, error) {
	var ss []model.JuryScore
	err := r.db.Where("session_id = ?", sessionID).Order("created_at asc").Find(&ss).Error
	return ss, err
}

func (r *rankingRepository) UpsertRanking(ranking *model.AwardRanking) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"average_scores", "overall", "juror_count", "submitted_at", "updated_at",
		}),
	}).Create(ranking).Error
}

func (r *rankingRepository) FindBySession(sessionID uint) (*model.AwardRanking, error) {
	var ar model.AwardRanking
	err := r.db.Where("session_id = ?", sessionID).First(&ar).Error
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

func (r *rankingRepository) FindByID(id string) (*model.AwardRanking, error) {
	var ar model.AwardRanking
	err := r.db.Where("id = ?", id).First(&ar).Error
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

// ListByGroup returns the group's rankings in leaderboard order: overall
// descending, earliest submission first on ties.
func (r *rankingRepository) ListByGroup(groupID uint) ([]model.AwardRanking, error) {
	var ars []model.AwardRanking
	err := r.db.Where("group_id = ?", groupID).
		Order("overall desc, submitted_at asc, session_id asc").
		Find(&ars).Error
	return ars, err
}

func (r *rankingRepository) ListGroupIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.AwardRanking{}).Distinct("group_id").Pluck("group_id", &ids).Error
	return ids, err
}

// UpdateRanks persists the materialized rank positions in one transaction.
func (r *rankingRepository) UpdateRanks(rankings []model.AwardRanking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range rankings {
			if err := tx.Model(&model.AwardRanking{}).
				Where("id = ?", rankings[i].ID).
				Update("rank_position", rankings[i].Rank).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
