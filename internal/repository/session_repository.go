package repository

import (
	"award_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(s *model.Session) error
	FindByID(id uint) (*model.Session, error)
	FindByUserAndGroup(userID, groupID uint) (*model.Session, error)
	Update(s *model.Session) error
	List(page, limit int, groupID uint, status model.SessionStatus) ([]model.Session, int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(s *model.Session) error {
	return r.db.Create(s).Error
}

func (r *sessionRepository) FindByID(id uint) (*model.Session, error) {
	var s model.Session
	if err := r.db.Preload("User").Preload("Group").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) FindByUserAndGroup(userID, groupID uint) (*model.Session, error) {
	var s model.Session
	err := r.db.Where("user_id = ? AND group_id = ?", userID, groupID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Update(s *model.Session) error {
	return r.db.Save(s).Error
}

func (r *sessionRepository) List(page, limit int, groupID uint, status model.SessionStatus) ([]model.Session, int64, error) {
	var ss []model.Session
	var total int64

	query := r.db.Model(&model.Session{})
	if groupID > 0 {
		query = query.Where("group_id = ?", groupID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("User").Preload("Group").
		Order("submitted_at asc, created_at asc").
		Offset(offset).Limit(limit).
		Find(&ss).Error
	return ss, total, err
}
