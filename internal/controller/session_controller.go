package controller

import (
	"strconv"

	"award_backend/internal/model"
	"award_backend/internal/service"
	"award_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Sessions  *service.SessionService
	Responses *service.ResponseService
	Scoring   *service.ScoringService
	Storage   *service.StorageService
}

func NewSessionController(sessions *service.SessionService, responses *service.ResponseService, scoring *service.ScoringService, storage *service.StorageService) *SessionController {
	return &SessionController{Sessions: sessions, Responses: responses, Scoring: scoring, Storage: storage}
}

func sessionIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid session id")
		return 0, false
	}
	return uint(id), true
}

// @Summary Start (or resume) a questionnaire session
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartSessionRequest true "group"
// @Success 201 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Sessions.Start(user, req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// @Summary Session detail with derived status and progress
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	detail, err := c.Sessions.Get(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Auto-save one answer
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body service.AnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/answer [post]
func (c *SessionController) SaveAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Responses.SaveAnswer(user, id, req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary Auto-save a batch of answers
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body []service.AnswerRequest true "answers"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/batch-answer [post]
func (c *SessionController) BatchSaveAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var reqs []service.AnswerRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	saved, err := c.Responses.BatchSave(user, id, reqs)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, saved)
}

// @Summary Submit or resubmit the session
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/submit [post]
func (c *SessionController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	detail, err := c.Sessions.Submit(user, id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Upload an evidence file, returns the URL for the answer
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param file formData file true "evidence file"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/evidence [post]
func (c *SessionController) UploadEvidence(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.Storage.UploadEvidence(ctx.Request.Context(), id, fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// @Summary Session progress percentage
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/progress [get]
func (c *SessionController) Progress(ctx *gin.Context) {
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	progress, err := c.Sessions.Progress(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"progressPercentage": progress})
}

// @Summary List sessions (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Param groupId query int false "group filter"
// @Param status query string false "status filter"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	groupID := uint(0)
	if idStr := ctx.Query("groupId"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil {
			groupID = uint(id)
		}
	}

	sessions, total, err := c.Sessions.List(page, limit, groupID, model.SessionStatus(ctx.Query("status")))
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: sessions, Total: total, Page: page, Limit: limit})
}

// @Summary Weighted admin-stage scores of a session
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions/{id}/scores [get]
func (c *SessionController) Scores(ctx *gin.Context) {
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	scores, err := c.Scoring.ScoreSession(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, scores)
}

// @Summary Approve a validated submission
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions/{id}/approve [post]
func (c *SessionController) Approve(ctx *gin.Context) {
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	detail, err := c.Sessions.Approve(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Reject a submission (terminal)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions/{id}/reject [post]
func (c *SessionController) Reject(ctx *gin.Context) {
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	detail, err := c.Sessions.Reject(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Advance an approved session to its next jury stage
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/admin/sessions/{id}/advance [post]
func (c *SessionController) Advance(ctx *gin.Context) {
	id, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	detail, err := c.Sessions.Advance(id)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
