package model

// DimensionScores maps rubric dimension name to the score one juror gave,
// e.g. {"relevance": 4, "impact": 5}.
type DimensionScores map[string]float64

// JuryScore holds one juror's complete scoring of a submission. The
// (session, jury) pair is unique: resubmission by the same juror updates
// the existing row instead of adding a second contribution.
// swagger:model JuryScore
type JuryScore struct {
	UUIDBase
	SessionID uint            `gorm:"uniqueIndex:idx_session_jury;not null" json:"sessionId"`
	JuryID    uint            `gorm:"uniqueIndex:idx_session_jury;not null" json:"juryId"`
	Scores    DimensionScores `gorm:"serializer:json;type:json" json:"scores"`
	Comments  string          `gorm:"type:text" json:"comments"`
}

func (JuryScore) TableName() string {
	return "jury_scores"
}
