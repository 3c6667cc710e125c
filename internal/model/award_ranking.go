package model

import "time"

// AwardRanking is a derived row per session: the per-dimension means across
// all jurors who scored it, the overall sortable key and the materialized
// rank within the session's group. It is recomputed from jury_scores on
// every insert or update and never edited by hand.
// swagger:model AwardRanking
type AwardRanking struct {
	UUIDBase
	SessionID     uint            `gorm:"uniqueIndex;not null" json:"sessionId"`
	GroupID       uint            `gorm:"index;not null" json:"groupId"`
	AverageScores DimensionScores `gorm:"serializer:json;type:json" json:"averageScores"`
	Overall       float64         `gorm:"default:0" json:"overall"`
	JurorCount    int             `gorm:"default:0" json:"jurorCount"`
	Rank          int             `gorm:"default:0;column:rank_position" json:"rank"`
	SubmittedAt   time.Time       `json:"submittedAt"` // tie-break key, copied from the session
}

func (AwardRanking) TableName() string {
	return "award_rankings"
}
