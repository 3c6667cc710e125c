package service

import (
	"award_backend/internal/model"
	"award_backend/internal/repository"
	"award_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService manages the question catalog and its scoring categories.
// Questions assigned to sessions are immutable from the participant's side;
// only this admin surface changes them.
type CatalogService struct {
	Questions  repository.QuestionRepository
	Categories repository.CategoryRepository
	Groups     repository.GroupRepository
}

func NewCatalogService(questions repository.QuestionRepository, categories repository.CategoryRepository, groups repository.GroupRepository) *CatalogService {
	return &CatalogService{Questions: questions, Categories: categories, Groups: groups}
}

type QuestionOptionRequest struct {
	Text        string `json:"text" binding:"required"`
	Value       string `json:"value"`
	OrderNumber int    `json:"orderNumber"`
}

type QuestionRequest struct {
	Text         string                  `json:"text" binding:"required"`
	Description  string                  `json:"description"`
	InputType    model.QuestionInputType `json:"inputType" binding:"required"`
	IsRequired   bool                    `json:"isRequired"`
	SectionTitle string                  `json:"sectionTitle"`
	Subsection   string                  `json:"subsection"`
	OrderNumber  int                     `json:"orderNumber"`
	CategoryID   *uint                   `json:"categoryId"`
	Options      []QuestionOptionRequest `json:"options"`
}

func (s *CatalogService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if req.CategoryID != nil {
		if _, err := s.Categories.FindByID(*req.CategoryID); err != nil {
			return nil, util.ErrCategoryNotFound
		}
	}

	q := &model.Question{
		Text:         req.Text,
		Description:  req.Description,
		InputType:    req.InputType,
		IsRequired:   req.IsRequired,
		SectionTitle: req.SectionTitle,
		Subsection:   req.Subsection,
		OrderNumber:  req.OrderNumber,
		CategoryID:   req.CategoryID,
	}
	for _, opt := range req.Options {
		q.Options = append(q.Options, model.QuestionOption{
			Text:        opt.Text,
			Value:       opt.Value,
			OrderNumber: opt.OrderNumber,
		})
	}
	if err := s.Questions.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CatalogService) ListQuestions() ([]model.Question, error) {
	return s.Questions.ListAll()
}

func (s *CatalogService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.Questions.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	return q, nil
}

func (s *CatalogService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Questions.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if req.CategoryID != nil {
		if _, err := s.Categories.FindByID(*req.CategoryID); err != nil {
			return nil, util.ErrCategoryNotFound
		}
	}

	q.Text = req.Text
	q.Description = req.Description
	q.InputType = req.InputType
	q.IsRequired = req.IsRequired
	q.SectionTitle = req.SectionTitle
	q.Subsection = req.Subsection
	q.OrderNumber = req.OrderNumber
	q.CategoryID = req.CategoryID
	if err := s.Questions.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CatalogService) DeleteQuestion(id uint) error {
	if _, err := s.Questions.FindByID(id); err != nil {
		return util.ErrQuestionNotFound
	}
	return s.Questions.Delete(id)
}

type CategoryRequest struct {
	Name      string          `json:"name" binding:"required"`
	Weight    float64         `json:"weight"`
	MinValue  float64         `json:"minValue"`
	MaxValue  float64         `json:"maxValue"`
	ScoreType model.ScoreType `json:"scoreType"`
}

// CreateCategory rejects duplicate names with a conflict, the boundary the
// frontend turns into its 409 toast.
func (s *CatalogService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	if _, err := s.Categories.FindByName(req.Name); err == nil {
		return nil, util.ErrCategoryNameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cat := &model.Category{
		Name:      req.Name,
		Weight:    req.Weight,
		MinValue:  req.MinValue,
		MaxValue:  req.MaxValue,
		ScoreType: req.ScoreType,
	}
	if cat.ScoreType == "" {
		cat.ScoreType = model.ScoreTypeNumber
	}
	if err := s.Categories.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) ListCategories() ([]model.Category, error) {
	return s.Categories.List()
}

func (s *CatalogService) UpdateCategory(id uint, req CategoryRequest) (*model.Category, error) {
	cat, err := s.Categories.FindByID(id)
	if err != nil {
		return nil, util.ErrCategoryNotFound
	}

	if req.Name != cat.Name {
		if _, err := s.Categories.FindByName(req.Name); err == nil {
			return nil, util.ErrCategoryNameTaken
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	cat.Name = req.Name
	cat.Weight = req.Weight
	cat.MinValue = req.MinValue
	cat.MaxValue = req.MaxValue
	if req.ScoreType != "" {
		cat.ScoreType = req.ScoreType
	}
	if err := s.Categories.Update(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(id uint) error {
	if _, err := s.Categories.FindByID(id); err != nil {
		return util.ErrCategoryNotFound
	}
	return s.Categories.Delete(id)
}

type GroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

func (s *CatalogService) CreateGroup(req GroupRequest) (*model.Group, error) {
	if _, err := s.Groups.FindByName(req.Name); err == nil {
		return nil, util.ErrGroupNameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	g := &model.Group{
		Name:        req.Name,
		Description: req.Description,
		Year:        req.Year,
		IsActive:    true,
	}
	if err := s.Groups.Create(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *CatalogService) ListGroups() ([]model.Group, error) {
	return s.Groups.ListActive()
}
