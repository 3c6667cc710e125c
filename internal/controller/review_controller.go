package controller

import (
	"strconv"

	"award_backend/internal/model"
	"award_backend/internal/service"
	"award_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *service.ReviewService
}

func NewReviewController(svc *service.ReviewService) *ReviewController {
	return &ReviewController{Service: svc}
}

// @Summary Attach a stage-scoped comment to a question
// @Tags review
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body service.CommentRequest true "comment"
// @Success 201 {object} util.Response
// @Router /api/admin/sessions/{id}/comments [post]
func (c *ReviewController) AddComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.Service.AddComment(user, uint(id), req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Created(ctx, comment)
}

// @Summary List a session's comments, optionally filtered by stage
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param stage query string false "admin_validation or jury_scoring"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions/{id}/comments [get]
func (c *ReviewController) ListComments(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	comments, err := c.Service.ListComments(uint(id), model.ReviewStage(ctx.Query("stage")))
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, comments)
}

// @Summary Resolve a comment
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "comment id"
// @Success 200 {object} util.Response
// @Router /api/admin/comments/{id}/resolve [patch]
func (c *ReviewController) ResolveComment(ctx *gin.Context) {
	comment, err := c.Service.ResolveComment(ctx.Param("id"))
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, comment)
}

// @Summary Merge a batch of comments into the session's existing set
// @Tags review
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body []service.CommentRequest true "comments to add"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions/{id}/review/batch [post]
func (c *ReviewController) BatchUpdate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var reqs []service.CommentRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comments, err := c.Service.BatchUpdate(user, uint(id), reqs)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, comments)
}
