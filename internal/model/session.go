package model

import "time"

type SessionStatus string

const (
	StatusDraft            SessionStatus = "draft"
	StatusInProgress       SessionStatus = "in_progress"
	StatusSubmitted        SessionStatus = "submitted"
	StatusNeedsRevision    SessionStatus = "needs_revision"
	StatusResubmitted      SessionStatus = "resubmitted"
	StatusApproved         SessionStatus = "approved"
	StatusJuryScoring      SessionStatus = "jury_scoring"
	StatusJuryDeliberation SessionStatus = "jury_deliberation"
	StatusFinalDecision    SessionStatus = "final_decision"
	StatusCompleted        SessionStatus = "completed"
	StatusRejected         SessionStatus = "rejected"
)

// transitions is the legal successor set per state. completed and rejected
// are absorbing.
var transitions = map[SessionStatus][]SessionStatus{
	StatusDraft:            {StatusInProgress, StatusSubmitted},
	StatusInProgress:       {StatusSubmitted},
	StatusSubmitted:        {StatusNeedsRevision, StatusApproved, StatusRejected},
	StatusNeedsRevision:    {StatusResubmitted, StatusRejected},
	StatusResubmitted:      {StatusNeedsRevision, StatusApproved, StatusRejected},
	StatusApproved:         {StatusJuryScoring},
	StatusJuryScoring:      {StatusJuryDeliberation},
	StatusJuryDeliberation: {StatusFinalDecision},
	StatusFinalDecision:    {StatusCompleted},
	StatusCompleted:        {},
	StatusRejected:         {},
}

func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanEdit reports whether the participant may still write responses.
func (s SessionStatus) CanEdit() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusNeedsRevision:
		return true
	}
	return false
}

func (s SessionStatus) CanSubmit() bool {
	return s == StatusDraft || s == StatusInProgress
}

func (s SessionStatus) CanResubmit() bool {
	return s == StatusNeedsRevision
}

// Terminal states freeze every write, reviewer comments included.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// needs_revision is not authoritative as a stored column: the source of
// truth is whether an unresolved critical admin_validation comment exists.
// EffectiveStatus folds that predicate back over the persisted status so a
// stale column can never show the wrong lifecycle state. Only statuses in
// the validation window are affected.
func EffectiveStatus(stored SessionStatus, hasUnresolvedCritical bool) SessionStatus {
	switch stored {
	case StatusSubmitted, StatusResubmitted, StatusNeedsRevision:
		if hasUnresolvedCritical {
			return StatusNeedsRevision
		}
		if stored == StatusNeedsRevision {
			// All critical comments are resolved but the participant has
			// not resubmitted yet. The submission is back on the admin's
			// desk as submitted.
			return StatusSubmitted
		}
	}
	return stored
}

// swagger:model Session
type Session struct {
	BaseModel
	UserID             uint          `gorm:"index;not null" json:"userId"`
	User               *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GroupID            uint          `gorm:"index;not null" json:"groupId"`
	Group              *Group        `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Status             SessionStatus `gorm:"size:30;default:'draft'" json:"status"`
	ProgressPercentage float64       `gorm:"default:0" json:"progressPercentage"` // derived, not authoritative
	StartedAt          time.Time     `json:"startedAt"`
	SubmittedAt        *time.Time    `json:"submittedAt,omitempty"`
	LastActivityAt     time.Time     `json:"lastActivityAt"`
	ReviewID           *string       `gorm:"type:varchar(36)" json:"reviewId,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}
