package repository

import (
	"award_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(g *model.Group) error
	FindByID(id uint) (*model.Group, error)
	FindByName(name string) (*model.Group, error)
	ListActive() ([]model.Group, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(g *model.Group) error {
	return r.db.Create(g).Error
}

func (r *groupRepository) FindByID(id uint) (*model.Group, error) {
	var g model.Group
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) FindByName(name string) (*model.Group, error) {
	var g model.Group
	err := r.db.Where("name = ?", name).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) ListActive() ([]model.Group, error) {
	var gs []model.Group
	err := r.db.Where("is_active = ?", true).Order("name asc").Find(&gs).Error
	return gs, err
}
