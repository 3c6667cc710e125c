package service

import (
	"math"

	"award_backend/internal/model"
	"award_backend/internal/repository"
	"award_backend/internal/util"
)

type ScoreRange string

const (
	RangeUnder   ScoreRange = "under"
	RangeInRange ScoreRange = "in-range"
	RangeOver    ScoreRange = "over"
)

// ScoreResult is the outcome of scoring one question. Range is advisory
// display metadata and never blocks a submission.
type ScoreResult struct {
	QuestionID uint       `json:"questionId"`
	Raw        float64    `json:"raw"`
	Weighted   float64    `json:"weighted"`
	Range      ScoreRange `json:"range,omitempty"`
	Scored     bool       `json:"scored"`
}

// Round2 rounds to 2 decimal places, half away from zero. Scores are
// non-negative here so this is plain half-up; the rule is pinned by tests.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeScore applies the category weight to the raw numeric answer and
// classifies it against the normalized min/max bounds. A nil category means
// the question is informational and carries no score.
func ComputeScore(questionID uint, value model.AnswerValue, cat *model.Category) ScoreResult {
	result := ScoreResult{QuestionID: questionID}
	if cat == nil {
		return result
	}

	raw, ok := value.AsNumeric()
	if !ok {
		return result
	}

	result.Raw = raw
	result.Weighted = Round2(raw * cat.Weight)
	result.Scored = true

	min, max := cat.NormalizedRange()
	switch {
	case raw < min:
		result.Range = RangeUnder
	case raw > max:
		result.Range = RangeOver
	default:
		result.Range = RangeInRange
	}
	return result
}

// SumScores totals the weighted results of the scored questions.
func SumScores(results []ScoreResult) float64 {
	var total float64
	for _, r := range results {
		if r.Scored {
			total += r.Weighted
		}
	}
	return Round2(total)
}

type ScoringService struct {
	Questions repository.QuestionRepository
	Responses repository.ResponseRepository
	Sessions  repository.SessionRepository
}

func NewScoringService(questions repository.QuestionRepository, responses repository.ResponseRepository, sessions repository.SessionRepository) *ScoringService {
	return &ScoringService{Questions: questions, Responses: responses, Sessions: sessions}
}

type SessionScores struct {
	SessionID uint          `json:"sessionId"`
	Results   []ScoreResult `json:"results"`
	Total     float64       `json:"total"`
}

// ScoreSession computes the per-question weighted scores for the admin
// validation stage. Jury totals come from the ranking engine and are never
// mixed into this sum.
func (s *ScoringService) ScoreSession(sessionID uint) (*SessionScores, error) {
	if _, err := s.Sessions.FindByID(sessionID); err != nil {
		return nil, util.ErrSessionNotFound
	}

	questions, err := s.Questions.ListAll()
	if err != nil {
		return nil, err
	}
	responses, err := s.Responses.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uint]model.Response, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}

	var results []ScoreResult
	for _, q := range questions {
		resp, ok := byQuestion[q.ID]
		if !ok || !resp.Answered() {
			continue
		}
		results = append(results, ComputeScore(q.ID, resp.Value, q.Category))
	}

	return &SessionScores{
		SessionID: sessionID,
		Results:   results,
		Total:     SumScores(results),
	}, nil
}
