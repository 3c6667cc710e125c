package model

import "time"

// Response is the stored answer for one (session, question) pair. Rows are
// created on the first debounced auto-save and mutated by the owning
// participant until the session leaves an editable state; afterwards they
// are read-only, enforced by the state machine rather than by storage.
// swagger:model Response
type Response struct {
	BaseModel
	SessionID       uint        `gorm:"uniqueIndex:idx_session_question;not null" json:"sessionId"`
	QuestionID      uint        `gorm:"uniqueIndex:idx_session_question;not null" json:"questionId"`
	Value           AnswerValue `gorm:"serializer:json;type:json" json:"value"`
	IsDraft         bool        `gorm:"default:true" json:"isDraft"`
	IsComplete      bool        `gorm:"default:false" json:"isComplete"`
	IsSkipped       bool        `gorm:"default:false" json:"isSkipped"`
	AutoSaveVersion int64       `gorm:"default:0" json:"autoSaveVersion"`
	FirstAnsweredAt time.Time   `json:"firstAnsweredAt"`
	LastModifiedAt  time.Time   `json:"lastModifiedAt"`
	FinalizedAt     *time.Time  `json:"finalizedAt,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

// Answered reports whether the response carries a usable answer: not
// skipped and with some variant set.
func (r *Response) Answered() bool {
	return !r.IsSkipped && !r.Value.IsZero()
}
