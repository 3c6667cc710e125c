package repository

import (
	"award_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(c *model.Category) error
	FindByID(id uint) (*model.Category, error)
	FindByName(name string) (*model.Category, error)
	List() ([]model.Category, error)
	Update(c *model.Category) error
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(c *model.Category) error {
	return r.db.Create(c).Error
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var c model.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByName(name string) (*model.Category, error) {
	var c model.Category
	err := r.db.Where("name = ?", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List() ([]model.Category, error) {
	var cs []model.Category
	err := r.db.Order("name asc").Find(&cs).Error
	return cs, err
}

func (r *categoryRepository) Update(c *model.Category) error {
	return r.db.Save(c).Error
}

func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.Category{}, id).Error
}
