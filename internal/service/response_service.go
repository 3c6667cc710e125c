package service

import (
	"time"

	"award_backend/internal/model"
	"award_backend/internal/repository"
	"award_backend/internal/util"

	"gorm.io/gorm"
)

type ResponseService struct {
	Sessions  repository.SessionRepository
	Responses repository.ResponseRepository
	Questions repository.QuestionRepository
	Review    *ReviewService
}

func NewResponseService(
	sessions repository.SessionRepository,
	responses repository.ResponseRepository,
	questions repository.QuestionRepository,
	review *ReviewService,
) *ResponseService {
	return &ResponseService{
		Sessions:  sessions,
		Responses: responses,
		Questions: questions,
		Review:    review,
	}
}

// AnswerRequest is one debounced auto-save write. AutoSaveVersion makes
// the write idempotent: a duplicate retry of an already applied version is
// acknowledged without touching the row.
type AnswerRequest struct {
	QuestionID      uint              `json:"questionId" binding:"required"`
	Value           model.AnswerValue `json:"value"`
	IsComplete      bool              `json:"isComplete"`
	IsSkipped       bool              `json:"isSkipped"`
	AutoSaveVersion int64             `json:"autoSaveVersion"`
}

// ShouldApplyAutoSave decides whether an incoming auto-save write applies
// over the stored version. Writes without a version (0) always apply;
// replayed or stale versions are acknowledged as no-ops.
func ShouldApplyAutoSave(storedVersion, incomingVersion int64) bool {
	if incomingVersion == 0 {
		return true
	}
	return incomingVersion > storedVersion
}

// checkEditable loads the session and rejects the write unless the actor
// owns it and either the stored or the effective status is editable. The
// stored status keeps a needs_revision session writable after its last
// critical comment is resolved, when the derived view already reads
// submitted; the effective status opens a stored submitted session the
// moment a critical comment lands on it.
func (s *ResponseService) checkEditable(actor *util.Claims, sessionID uint) (*model.Session, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != actor.UserID {
		return nil, util.ErrNotSessionOwner
	}

	effective, err := s.Review.EffectiveStatus(session)
	if err != nil {
		return nil, err
	}
	if !session.Status.CanEdit() && !effective.CanEdit() {
		return nil, &util.StateViolationError{
			SessionID: sessionID,
			Status:    string(effective),
			Action:    "write response",
		}
	}
	return session, nil
}

// SaveAnswer stores one answer. A first write on a draft session moves it
// to in_progress.
func (s *ResponseService) SaveAnswer(actor *util.Claims, sessionID uint, req AnswerRequest) (*model.Response, error) {
	session, err := s.checkEditable(actor, sessionID)
	if err != nil {
		return nil, err
	}
	if err := req.Value.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Questions.FindByID(req.QuestionID); err != nil {
		return nil, util.ErrQuestionNotFound
	}

	resp, err := s.saveOne(session, req)
	if err != nil {
		return nil, err
	}
	if err := s.touch(session); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ResponseService) saveOne(session *model.Session, req AnswerRequest) (*model.Response, error) {
	now := time.Now()

	existing, err := s.Responses.FindBySessionAndQuestion(session.ID, req.QuestionID)
	if err == gorm.ErrRecordNotFound {
		resp := &model.Response{
			SessionID:       session.ID,
			QuestionID:      req.QuestionID,
			Value:           req.Value,
			IsDraft:         true,
			IsComplete:      req.IsComplete,
			IsSkipped:       req.IsSkipped,
			AutoSaveVersion: maxVersion(1, req.AutoSaveVersion),
			FirstAnsweredAt: now,
			LastModifiedAt:  now,
		}
		if err := s.Responses.Create(resp); err != nil {
			return nil, err
		}
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	if !ShouldApplyAutoSave(existing.AutoSaveVersion, req.AutoSaveVersion) {
		// replayed retry, already applied
		return existing, nil
	}

	existing.Value = req.Value
	existing.IsComplete = req.IsComplete
	existing.IsSkipped = req.IsSkipped
	existing.AutoSaveVersion = maxVersion(existing.AutoSaveVersion+1, req.AutoSaveVersion)
	existing.LastModifiedAt = now
	if err := s.Responses.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// BatchSave applies many auto-save writes in one call. Each item is
// validated and applied independently; a bad item fails the call before
// anything else about it is special-cased.
func (s *ResponseService) BatchSave(actor *util.Claims, sessionID uint, reqs []AnswerRequest) ([]model.Response, error) {
	session, err := s.checkEditable(actor, sessionID)
	if err != nil {
		return nil, err
	}

	saved := make([]model.Response, 0, len(reqs))
	for _, req := range reqs {
		if err := req.Value.Validate(); err != nil {
			return nil, err
		}
		if _, err := s.Questions.FindByID(req.QuestionID); err != nil {
			return nil, util.ErrQuestionNotFound
		}
		resp, err := s.saveOne(session, req)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *resp)
	}

	if err := s.touch(session); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *ResponseService) ListBySession(sessionID uint) ([]model.Response, error) {
	if _, err := s.Sessions.FindByID(sessionID); err != nil {
		return nil, util.ErrSessionNotFound
	}
	return s.Responses.ListBySession(sessionID)
}

// touch records activity and flips draft -> in_progress on the first write.
func (s *ResponseService) touch(session *model.Session) error {
	session.LastActivityAt = time.Now()
	if session.Status == model.StatusDraft {
		session.Status = model.StatusInProgress
	}
	return s.Sessions.Update(session)
}

func maxVersion(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
