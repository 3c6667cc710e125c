package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrRankingNotFound   = errors.New("ranking not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrGroupNameTaken    = errors.New("group name already exists")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotSessionOwner   = errors.New("session belongs to another participant")
)

// StateViolationError rejects a write attempted outside an editable session
// state. Writes are refused loudly, never silently dropped.
type StateViolationError struct {
	SessionID uint
	Status    string
	Action    string
}

func (e *StateViolationError) Error() string {
	return fmt.Sprintf("session %d: cannot %s while %s", e.SessionID, e.Action, e.Status)
}

// InvalidScoreError rejects a jury dimension score outside the rubric's
// declared bounds. Scores are never clamped.
type InvalidScoreError struct {
	Dimension string
	Score     float64
	Min       float64
	Max       float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("score %.2f for %q outside rubric bounds [%.0f, %.0f]",
		e.Score, e.Dimension, e.Min, e.Max)
}

// ValidationError carries the questions that block a submit so the caller
// can point the participant at the offending fields.
type ValidationError struct {
	MissingQuestionIDs []uint
}

func (e *ValidationError) Error() string {
	ids := make([]string, len(e.MissingQuestionIDs))
	for i, id := range e.MissingQuestionIDs {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}
	return "required questions unanswered: " + strings.Join(ids, ", ")
}
