package util

import (
	"errors"
	"net/http"

	"award_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps paginated list payloads.
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// ErrorJSON maps the domain error taxonomy onto the HTTP boundary:
// state violations and name conflicts answer 409, out-of-bound scores and
// missing required fields 422, missing resources 404.
func ErrorJSON(c *gin.Context, err error) {
	var stateErr *StateViolationError
	var scoreErr *InvalidScoreError
	var validationErr *ValidationError

	switch {
	case errors.As(err, &stateErr):
		Error(c, http.StatusConflict, stateErr.Error())
	case errors.As(err, &scoreErr):
		Error(c, http.StatusUnprocessableEntity, scoreErr.Error())
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, Response{
			Code:    http.StatusUnprocessableEntity,
			Message: validationErr.Error(),
			Data:    gin.H{"missingQuestionIds": validationErr.MissingQuestionIDs},
		})
	case errors.Is(err, ErrCategoryNameTaken),
		errors.Is(err, ErrGroupNameTaken),
		errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrNotSessionOwner):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrRankingNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, err.Error())
	default:
		LogInternalError(c, err)
	}
}
