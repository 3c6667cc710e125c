package repository

import (
	"award_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(c *model.ReviewComment) error
	FindByID(id string) (*model.ReviewComment, error)
	ListBySession(sessionID uint, stage model.ReviewStage) ([]model.ReviewComment, error)
	MarkResolved(id string) error
	CountUnresolvedCritical(sessionID uint) (int64, error)
	CreateBatch(comments []model.ReviewComment) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(c *model.ReviewComment) error {
	return r.db.Create(c).Error
}

func (r *reviewRepository) FindByID(id string) (*model.ReviewComment, error) {
	var c model.ReviewComment
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *reviewRepository) ListBySession(sessionID uint, stage model.ReviewStage) ([]model.ReviewComment, error) {
	var cs []model.ReviewComment
	query := r.db.Where("session_id = ?", sessionID)
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}
	err := query.Order("created_at asc").Find(&cs).Error
	return cs, err
}

func (r *reviewRepository) MarkResolved(id string) error {
	return r.db.Model(&model.ReviewComment{}).Where("id = ?", id).
		Update("is_resolved", true).Error
}

// CountUnresolvedCritical is the needs_revision predicate: the number of
// admin_validation comments that are critical and unresolved.
func (r *reviewRepository) CountUnresolvedCritical(sessionID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.ReviewComment{}).
		Where("session_id = ? AND stage = ? AND is_critical = ? AND is_resolved = ?",
			sessionID, model.StageAdminValidation, true, false).
		Count(&n).Error
	return n, err
}

// CreateBatch inserts all comments in one transaction. Existing rows are
// untouched: a batch only ever appends, it never replaces the session's
// comment set.
func (r *reviewRepository) CreateBatch(comments []model.ReviewComment) error {
	if len(comments) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range comments {
			if err := tx.Create(&comments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
