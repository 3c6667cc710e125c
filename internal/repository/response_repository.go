package repository

import (
	"time"

	"award_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository interface {
	FindBySessionAndQuestion(sessionID, questionID uint) (*model.Response, error)
	ListBySession(sessionID uint) ([]model.Response, error)
	Create(resp *model.Response) error
	Update(resp *model.Response) error
	FinalizeAll(sessionID uint, at time.Time) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindBySessionAndQuestion(sessionID, questionID uint) (*model.Response, error) {
	var resp model.Response
	err := r.db.Where("session_id = ? AND question_id = ?", sessionID, questionID).First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) ListBySession(sessionID uint) ([]model.Response, error) {
	var resps []model.Response
	err := r.db.Where("session_id = ?", sessionID).Find(&resps).Error
	return resps, err
}

func (r *responseRepository) Create(resp *model.Response) error {
	return r.db.Create(resp).Error
}

func (r *responseRepository) Update(resp *model.Response) error {
	return r.db.Save(resp).Error
}

// FinalizeAll stamps finalized_at and clears the draft flag on every
// response of a session. Called when the session leaves its editable state.
func (r *responseRepository) FinalizeAll(sessionID uint, at time.Time) error {
	return r.db.Model(&model.Response{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{"finalized_at": at, "is_draft": false}).Error
}
