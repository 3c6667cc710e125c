package repository

import (
	"award_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(q *model.Question) error
	FindByID(id uint) (*model.Question, error)
	ListAll() ([]model.Question, error)
	Update(q *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(q *model.Question) error {
	return r.db.Create(q).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.order_number asc")
	}).Preload("Category").First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListAll returns the whole catalog in section and question order, with
// options and scoring categories eager loaded.
func (r *questionRepository) ListAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.order_number asc")
	}).Preload("Category").
		Order("section_title asc, order_number asc").
		Find(&qs).Error
	return qs, err
}

func (r *questionRepository) Update(q *model.Question) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(q).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}
