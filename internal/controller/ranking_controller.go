package controller

import (
	"strconv"

	"award_backend/internal/model"
	"award_backend/internal/service"
	"award_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	Service *service.RankingService
}

func NewRankingController(svc *service.RankingService) *RankingController {
	return &RankingController{Service: svc}
}

// @Summary Record this juror's dimension scores for a submission
// @Tags jury
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.JuryScoreRequest true "dimension scores"
// @Success 200 {object} util.Response
// @Router /api/jury/award-rankings/scoring [post]
func (c *RankingController) RecordScore(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.JuryScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ranking, err := c.Service.RecordJuryScore(ctx.Request.Context(), user, req)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, ranking)
}

type updateScoreRequest struct {
	Scores   model.DimensionScores `json:"scores" binding:"required"`
	Comments string                `json:"comments"`
}

// @Summary Update this juror's previously recorded scores
// @Tags jury
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "jury score id"
// @Param body body updateScoreRequest true "dimension scores"
// @Success 200 {object} util.Response
// @Router /api/jury/award-rankings/scoring/{id} [patch]
func (c *RankingController) UpdateScore(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req updateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ranking, err := c.Service.UpdateJuryScore(ctx.Request.Context(), user, ctx.Param("id"), req.Scores, req.Comments)
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, ranking)
}

// @Summary Leaderboard of a nomination group
// @Tags rankings
// @Produce json
// @Security ApiKeyAuth
// @Param groupId query int true "group id"
// @Success 200 {object} util.Response
// @Router /api/award-rankings [get]
func (c *RankingController) Leaderboard(ctx *gin.Context) {
	groupID, err := strconv.Atoi(ctx.Query("groupId"))
	if err != nil || groupID <= 0 {
		util.BadRequest(ctx, "groupId is required")
		return
	}

	rankings, err := c.Service.Leaderboard(ctx.Request.Context(), uint(groupID))
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, rankings)
}

// @Summary One ranking row
// @Tags rankings
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ranking id"
// @Success 200 {object} util.Response
// @Router /api/award-rankings/{id} [get]
func (c *RankingController) Get(ctx *gin.Context) {
	ranking, err := c.Service.GetRanking(ctx.Param("id"))
	if err != nil {
		util.ErrorJSON(ctx, err)
		return
	}

	util.Success(ctx, ranking)
}
