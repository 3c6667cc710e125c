package service

import (
	"award_backend/internal/model"
	"award_backend/internal/repository"
	"award_backend/internal/util"
)

type ReviewService struct {
	Reviews  repository.ReviewRepository
	Sessions repository.SessionRepository
}

func NewReviewService(reviews repository.ReviewRepository, sessions repository.SessionRepository) *ReviewService {
	return &ReviewService{Reviews: reviews, Sessions: sessions}
}

type CommentRequest struct {
	QuestionID uint              `json:"questionId" binding:"required"`
	Stage      model.ReviewStage `json:"stage" binding:"required"`
	Comment    string            `json:"comment" binding:"required"`
	IsCritical bool              `json:"isCritical"`
}

// HasUnresolvedCritical is the live needs_revision predicate for a session.
func (s *ReviewService) HasUnresolvedCritical(sessionID uint) (bool, error) {
	n, err := s.Reviews.CountUnresolvedCritical(sessionID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EffectiveStatus resolves the session's externally visible status from the
// stored column and the unresolved-critical predicate. The predicate wins
// whenever the two disagree.
func (s *ReviewService) EffectiveStatus(session *model.Session) (model.SessionStatus, error) {
	unresolved, err := s.HasUnresolvedCritical(session.ID)
	if err != nil {
		return session.Status, err
	}
	return model.EffectiveStatus(session.Status, unresolved), nil
}

// AddComment appends one stage-scoped comment. Terminal sessions are frozen
// for reviewers too. Posting a critical admin_validation comment moves the
// stored status to needs_revision; the derived predicate would show it
// anyway, the column is updated so listings stay cheap.
func (s *ReviewService) AddComment(actor *util.Claims, sessionID uint, req CommentRequest) (*model.ReviewComment, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.Status.IsTerminal() {
		return nil, &util.StateViolationError{
			SessionID: sessionID,
			Status:    string(session.Status),
			Action:    "add comment",
		}
	}

	comment := &model.ReviewComment{
		SessionID:    sessionID,
		QuestionID:   req.QuestionID,
		Comment:      req.Comment,
		IsCritical:   req.IsCritical,
		Stage:        req.Stage,
		ReviewerName: actor.Email,
	}
	if session.ReviewID != nil {
		comment.ReviewID = *session.ReviewID
	}
	if err := s.Reviews.Create(comment); err != nil {
		return nil, err
	}

	if comment.BlocksSubmission() &&
		(session.Status == model.StatusSubmitted || session.Status == model.StatusResubmitted) {
		session.Status = model.StatusNeedsRevision
		if session.ReviewID == nil {
			session.ReviewID = &comment.ID
		}
		if err := s.Sessions.Update(session); err != nil {
			return nil, err
		}
	}

	return comment, nil
}

// ResolveComment marks a comment resolved. Resolving the last critical one
// flips the needs_revision predicate without any status write; the
// participant still has to resubmit explicitly.
func (s *ReviewService) ResolveComment(commentID string) (*model.ReviewComment, error) {
	comment, err := s.Reviews.FindByID(commentID)
	if err != nil {
		return nil, util.ErrCommentNotFound
	}
	session, err := s.Sessions.FindByID(comment.SessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.Status.IsTerminal() {
		return nil, &util.StateViolationError{
			SessionID: session.ID,
			Status:    string(session.Status),
			Action:    "resolve comment",
		}
	}
	if err := s.Reviews.MarkResolved(comment.ID); err != nil {
		return nil, err
	}
	comment.IsResolved = true
	return comment, nil
}

func (s *ReviewService) ListComments(sessionID uint, stage model.ReviewStage) ([]model.ReviewComment, error) {
	if _, err := s.Sessions.FindByID(sessionID); err != nil {
		return nil, util.ErrSessionNotFound
	}
	return s.Reviews.ListBySession(sessionID, stage)
}

// MergeComments unions the existing comment set with the incoming batch.
// Every existing row survives; incoming entries that duplicate an existing
// row (same question, stage and text) are dropped so retried batches stay
// idempotent. The returned slice is existing-first, then the surviving
// newcomers in input order.
func MergeComments(existing, incoming []model.ReviewComment) (merged, created []model.ReviewComment) {
	type key struct {
		questionID uint
		stage      model.ReviewStage
		text       string
	}
	seen := make(map[key]bool, len(existing))
	merged = make([]model.ReviewComment, 0, len(existing)+len(incoming))
	for _, c := range existing {
		seen[key{c.QuestionID, c.Stage, c.Comment}] = true
		merged = append(merged, c)
	}
	for _, c := range incoming {
		k := key{c.QuestionID, c.Stage, c.Comment}
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, c)
		created = append(created, c)
	}
	return merged, created
}

// BatchUpdate appends a batch of comments in one transaction, preserving
// every comment already on the session. Either the whole batch persists or
// none of it does.
func (s *ReviewService) BatchUpdate(actor *util.Claims, sessionID uint, reqs []CommentRequest) ([]model.ReviewComment, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.Status.IsTerminal() {
		return nil, &util.StateViolationError{
			SessionID: sessionID,
			Status:    string(session.Status),
			Action:    "batch update comments",
		}
	}

	existing, err := s.Reviews.ListBySession(sessionID, "")
	if err != nil {
		return nil, err
	}

	incoming := make([]model.ReviewComment, len(reqs))
	for i, req := range reqs {
		incoming[i] = model.ReviewComment{
			SessionID:    sessionID,
			QuestionID:   req.QuestionID,
			Comment:      req.Comment,
			IsCritical:   req.IsCritical,
			Stage:        req.Stage,
			ReviewerName: actor.Email,
		}
		if session.ReviewID != nil {
			incoming[i].ReviewID = *session.ReviewID
		}
	}

	_, created := MergeComments(existing, incoming)
	if err := s.Reviews.CreateBatch(created); err != nil {
		return nil, err
	}

	hasCritical := false
	for _, c := range created {
		if c.BlocksSubmission() {
			hasCritical = true
			break
		}
	}
	if hasCritical &&
		(session.Status == model.StatusSubmitted || session.Status == model.StatusResubmitted) {
		session.Status = model.StatusNeedsRevision
		if err := s.Sessions.Update(session); err != nil {
			return nil, err
		}
	}

	return s.Reviews.ListBySession(sessionID, "")
}
