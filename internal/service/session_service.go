package service

import (
	"time"

	"award_backend/internal/model"
	"award_backend/internal/repository"
	"award_backend/internal/util"
	"award_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type SessionService struct {
	Sessions  repository.SessionRepository
	Responses repository.ResponseRepository
	Questions repository.QuestionRepository
	Groups    repository.GroupRepository
	Review    *ReviewService
}

func NewSessionService(
	sessions repository.SessionRepository,
	responses repository.ResponseRepository,
	questions repository.QuestionRepository,
	groups repository.GroupRepository,
	review *ReviewService,
) *SessionService {
	return &SessionService{
		Sessions:  sessions,
		Responses: responses,
		Questions: questions,
		Groups:    groups,
		Review:    review,
	}
}

type StartSessionRequest struct {
	GroupID uint `json:"groupId" binding:"required"`
}

// Start opens the participant's questionnaire session for a group, or
// returns the one already open; a participant has at most one session per
// group.
func (s *SessionService) Start(actor *util.Claims, req StartSessionRequest) (*model.Session, error) {
	if _, err := s.Groups.FindByID(req.GroupID); err != nil {
		return nil, util.ErrGroupNotFound
	}

	existing, err := s.Sessions.FindByUserAndGroup(actor.UserID, req.GroupID)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		UserID:         actor.UserID,
		GroupID:        req.GroupID,
		Status:         model.StatusDraft,
		StartedAt:      now,
		LastActivityAt: now,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SessionDetail is a session with its derived fields substituted in: the
// effective status and the live progress percentage.
type SessionDetail struct {
	*model.Session
	EffectiveStatus model.SessionStatus `json:"effectiveStatus"`
	CanEdit         bool                `json:"canEdit"`
}

func (s *SessionService) Get(sessionID uint) (*SessionDetail, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}

	effective, err := s.Review.EffectiveStatus(session)
	if err != nil {
		return nil, err
	}

	progress, err := s.Progress(sessionID)
	if err != nil {
		return nil, err
	}
	session.ProgressPercentage = progress

	return &SessionDetail{
		Session:         session,
		EffectiveStatus: effective,
		CanEdit:         session.Status.CanEdit() || effective.CanEdit(),
	}, nil
}

// MissingRequired returns the ids of required questions without a usable
// answer. Questions in the Pengusulan section are exempt.
func MissingRequired(questions []model.Question, responses []model.Response) []uint {
	byQuestion := make(map[uint]model.Response, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}

	var missing []uint
	for _, q := range questions {
		if !q.IsRequired || q.SectionTitle == model.SectionPengusulan {
			continue
		}
		resp, ok := byQuestion[q.ID]
		if !ok || !resp.Answered() {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Submit moves the session out of its editable state. A first submission
// goes draft/in_progress -> submitted; a session sent back for revision
// goes needs_revision -> resubmitted once every critical comment is
// resolved and every required field validates again. Branching is on the
// stored status: the derived view of a revised-but-not-resubmitted session
// already reads submitted, and that display value must not eat the
// participant's resubmit. Submission is the act that puts the revision back
// in front of the admin; resolving comments alone never does.
func (s *SessionService) Submit(actor *util.Claims, sessionID uint) (*SessionDetail, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != actor.UserID {
		return nil, util.ErrNotSessionOwner
	}

	var next model.SessionStatus
	switch {
	case session.Status.CanSubmit():
		next = model.StatusSubmitted
	case session.Status.CanResubmit():
		unresolved, err := s.Review.HasUnresolvedCritical(sessionID)
		if err != nil {
			return nil, err
		}
		if unresolved {
			return nil, &util.StateViolationError{
				SessionID: sessionID,
				Status:    string(session.Status),
				Action:    "resubmit with unresolved critical comments",
			}
		}
		next = model.StatusResubmitted
	default:
		return nil, &util.StateViolationError{
			SessionID: sessionID,
			Status:    string(session.Status),
			Action:    "submit",
		}
	}

	questions, err := s.Questions.ListAll()
	if err != nil {
		return nil, err
	}
	responses, err := s.Responses.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if missing := MissingRequired(questions, responses); len(missing) > 0 {
		return nil, &util.ValidationError{MissingQuestionIDs: missing}
	}

	now := time.Now()
	session.Status = next
	session.SubmittedAt = &now
	session.LastActivityAt = now
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	if err := s.Responses.FinalizeAll(sessionID, now); err != nil {
		return nil, err
	}

	if next == model.StatusResubmitted {
		monitoring.SubmissionCounter.WithLabelValues("resubmit").Inc()
	} else {
		monitoring.SubmissionCounter.WithLabelValues("submit").Inc()
	}

	return s.Get(sessionID)
}

// transition applies one admin-driven state change after checking the
// transition table.
func (s *SessionService) transition(sessionID uint, next model.SessionStatus) (*SessionDetail, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}

	if !session.Status.CanTransitionTo(next) {
		return nil, &util.StateViolationError{
			SessionID: sessionID,
			Status:    string(session.Status),
			Action:    "transition to " + string(next),
		}
	}

	session.Status = next
	session.LastActivityAt = time.Now()
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return s.Get(sessionID)
}

// Approve accepts a validated submission. A session still showing
// needs_revision (live predicate) cannot be approved.
func (s *SessionService) Approve(sessionID uint) (*SessionDetail, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	effective, err := s.Review.EffectiveStatus(session)
	if err != nil {
		return nil, err
	}
	if effective == model.StatusNeedsRevision {
		return nil, &util.StateViolationError{
			SessionID: sessionID,
			Status:    string(effective),
			Action:    "approve",
		}
	}
	return s.transition(sessionID, model.StatusApproved)
}

func (s *SessionService) Reject(sessionID uint) (*SessionDetail, error) {
	return s.transition(sessionID, model.StatusRejected)
}

// juryStageOrder is the forward path after approval.
var juryStageOrder = []model.SessionStatus{
	model.StatusApproved,
	model.StatusJuryScoring,
	model.StatusJuryDeliberation,
	model.StatusFinalDecision,
	model.StatusCompleted,
}

// Advance moves an approved session to its next jury stage.
func (s *SessionService) Advance(sessionID uint) (*SessionDetail, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	for i, stage := range juryStageOrder[:len(juryStageOrder)-1] {
		if session.Status == stage {
			return s.transition(sessionID, juryStageOrder[i+1])
		}
	}
	return nil, &util.StateViolationError{
		SessionID: sessionID,
		Status:    string(session.Status),
		Action:    "advance",
	}
}

// Progress is the share of required questions already answered, derived on
// read and never trusted from storage. The denominator uses the same
// question set MissingRequired validates against, so a session with no
// missing answers always reads 100.
func (s *SessionService) Progress(sessionID uint) (float64, error) {
	questions, err := s.Questions.ListAll()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, q := range questions {
		if q.IsRequired && q.SectionTitle != model.SectionPengusulan {
			total++
		}
	}
	if total == 0 {
		return 0, nil
	}
	responses, err := s.Responses.ListBySession(sessionID)
	if err != nil {
		return 0, err
	}
	missing := len(MissingRequired(questions, responses))
	pct := float64(total-missing) / float64(total) * 100
	return Round2(pct), nil
}

func (s *SessionService) List(page, limit int, groupID uint, status model.SessionStatus) ([]SessionDetail, int64, error) {
	sessions, total, err := s.Sessions.List(page, limit, groupID, status)
	if err != nil {
		return nil, 0, err
	}
	details := make([]SessionDetail, len(sessions))
	for i := range sessions {
		effective, err := s.Review.EffectiveStatus(&sessions[i])
		if err != nil {
			return nil, 0, err
		}
		details[i] = SessionDetail{
			Session:         &sessions[i],
			EffectiveStatus: effective,
			CanEdit:         sessions[i].Status.CanEdit() || effective.CanEdit(),
		}
	}
	return details, total, nil
}
