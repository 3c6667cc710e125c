package model

type ReviewStage string

const (
	StageAdminValidation ReviewStage = "admin_validation"
	StageJuryScoring     ReviewStage = "jury_scoring"
)

// ReviewComment is an append-only annotation a reviewer attaches to a
// question of a submission. Corrections are posted as new comments, the
// original row is never edited.
// swagger:model ReviewComment
type ReviewComment struct {
	UUIDBase
	SessionID    uint        `gorm:"index;not null" json:"sessionId"`
	QuestionID   uint        `gorm:"index;not null" json:"questionId"`
	ReviewID     string      `gorm:"type:varchar(36);index" json:"reviewId"`
	Comment      string      `gorm:"type:text;not null" json:"comment"`
	IsCritical   bool        `gorm:"default:false" json:"isCritical"`
	Stage        ReviewStage `gorm:"size:30;not null" json:"stage"`
	IsResolved   bool        `gorm:"default:false" json:"isResolved"`
	ReviewerName string      `gorm:"size:100" json:"reviewerName"`
}

func (ReviewComment) TableName() string {
	return "review_comments"
}

// BlocksSubmission reports whether this comment keeps the session in the
// needs_revision state.
func (c *ReviewComment) BlocksSubmission() bool {
	return c.Stage == StageAdminValidation && c.IsCritical && !c.IsResolved
}
