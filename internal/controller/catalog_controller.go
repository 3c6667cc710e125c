package controller

import (
	"strconv"

	"award_backend/internal/service"
	"award_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

func idParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// @Summary Create a question
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Question catalog in section order
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	qs, err := c.Service.ListQuestions()
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, qs)
}

// @Summary Question detail
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *CatalogController) GetQuestion(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	q, err := c.Service.GetQuestion(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a question
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *CatalogController) UpdateQuestion(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(id, req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete a question
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *CatalogController) DeleteQuestion(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(id); err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Create a scoring category
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CategoryRequest true "category"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.Service.CreateCategory(req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Created(ctx, cat)
}

// @Summary List scoring categories
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	cats, err := c.Service.ListCategories()
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, cats)
}

// @Summary Update a scoring category
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "category id"
// @Param body body service.CategoryRequest true "category"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [put]
func (c *CatalogController) UpdateCategory(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.Service.UpdateCategory(id, req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, cat)
}

// @Summary Delete a scoring category
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "category id"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [delete]
func (c *CatalogController) DeleteCategory(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteCategory(id); err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Create a nomination group
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GroupRequest true "group"
// @Success 201 {object} util.Response
// @Router /api/admin/groups [post]
func (c *CatalogController) CreateGroup(ctx *gin.Context) {
	var req service.GroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	g, err := c.Service.CreateGroup(req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Created(ctx, g)
}

// @Summary List active nomination groups
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/groups [get]
func (c *CatalogController) ListGroups(ctx *gin.Context) {
	gs, err := c.Service.ListGroups()
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, gs)
}
