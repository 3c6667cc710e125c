package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"award_backend/internal/config"
	"award_backend/internal/model"
	"award_backend/internal/repository"
	"award_backend/internal/util"
	"award_backend/pkg/logger"
	"award_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheTTL = 5 * time.Minute

type RankingService struct {
	Rankings repository.RankingRepository
	Sessions repository.SessionRepository
	Redis    *redis.Client

	mu     sync.Mutex
	rubric config.RubricConfig
	locks  map[uint]*sync.Mutex // per-session recompute locks
}

func NewRankingService(rankings repository.RankingRepository, sessions repository.SessionRepository, rdb *redis.Client, rubric config.RubricConfig) *RankingService {
	return &RankingService{
		Rankings: rankings,
		Sessions: sessions,
		Redis:    rdb,
		rubric:   rubric,
		locks:    make(map[uint]*sync.Mutex),
	}
}

// SetRubric swaps the scoring rubric at runtime; config reload calls this
// so jurors validate against the bounds currently on disk.
func (s *RankingService) SetRubric(r config.RubricConfig) {
	s.mu.Lock()
	s.rubric = r
	s.mu.Unlock()
}

func (s *RankingService) currentRubric() config.RubricConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rubric
}

// sessionLock returns the mutex guarding one session's recomputation.
// Recomputation is independent across sessions and may run in parallel;
// only the per-session granularity is serialized.
func (s *RankingService) sessionLock(sessionID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[sessionID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[sessionID] = l
	return l
}

type JuryScoreRequest struct {
	SessionID uint                  `json:"sessionId" binding:"required"`
	Scores    model.DimensionScores `json:"scores" binding:"required"`
	Comments  string                `json:"comments"`
}

// ValidateDimensionScores rejects any dimension outside the rubric's
// declared bounds or absent from the rubric. Scores are never clamped.
func ValidateDimensionScores(scores model.DimensionScores, rubric config.RubricConfig) error {
	declared := make(map[string]bool, len(rubric.Dimensions))
	for _, d := range rubric.Dimensions {
		declared[d] = true
	}
	for dim, score := range scores {
		if !declared[dim] {
			return fmt.Errorf("unknown rubric dimension %q", dim)
		}
		if score < rubric.MinScore || score > rubric.MaxScore {
			return &util.InvalidScoreError{
				Dimension: dim,
				Score:     score,
				Min:       rubric.MinScore,
				Max:       rubric.MaxScore,
			}
		}
	}
	return nil
}

// AverageDimensions recomputes the per-dimension mean over every juror's
// scores from scratch. Full recomputation on each change avoids the drift
// an incrementally maintained mean accumulates across deletions.
func AverageDimensions(scores []model.JuryScore) model.DimensionScores {
	if len(scores) == 0 {
		return model.DimensionScores{}
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, js := range scores {
		for dim, v := range js.Scores {
			sums[dim] += v
			counts[dim]++
		}
	}
	avgs := make(model.DimensionScores, len(sums))
	for dim, sum := range sums {
		avgs[dim] = Round2(sum / float64(counts[dim]))
	}
	return avgs
}

// OverallScore is the sortable ranking key: the sum of the per-dimension
// averages.
func OverallScore(avgs model.DimensionScores) float64 {
	var total float64
	for _, v := range avgs {
		total += v
	}
	return Round2(total)
}

// SortLeaderboard orders rankings by overall descending with ties broken
// by earliest submission, then session id. The order is fully determined
// by the data, reruns always reproduce it.
func SortLeaderboard(rankings []model.AwardRanking) {
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Overall != rankings[j].Overall {
			return rankings[i].Overall > rankings[j].Overall
		}
		if !rankings[i].SubmittedAt.Equal(rankings[j].SubmittedAt) {
			return rankings[i].SubmittedAt.Before(rankings[j].SubmittedAt)
		}
		return rankings[i].SessionID < rankings[j].SessionID
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
}

// RecordJuryScore upserts one juror's scoring of a submission and
// recomputes the affected ranking. The (session, jury) key means a juror
// resubmitting replaces their own prior contribution and can never touch
// another juror's.
func (s *RankingService) RecordJuryScore(ctx context.Context, actor *util.Claims, req JuryScoreRequest) (*model.AwardRanking, error) {
	session, err := s.Sessions.FindByID(req.SessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.Status != model.StatusJuryScoring && session.Status != model.StatusJuryDeliberation {
		return nil, &util.StateViolationError{
			SessionID: req.SessionID,
			Status:    string(session.Status),
			Action:    "record jury score",
		}
	}
	if err := ValidateDimensionScores(req.Scores, s.currentRubric()); err != nil {
		return nil, err
	}

	score := &model.JuryScore{
		SessionID: req.SessionID,
		JuryID:    actor.UserID,
		Scores:    req.Scores,
		Comments:  req.Comments,
	}
	if err := s.Rankings.UpsertJuryScore(score); err != nil {
		return nil, err
	}
	monitoring.JuryScoreCounter.Inc()

	return s.Recompute(ctx, session)
}

// UpdateJuryScore rewrites an existing jury score row by id. Only the juror
// who created it may update it, and only during the same stages that accept
// a new score. A session past final_decision keeps its leaderboard frozen.
func (s *RankingService) UpdateJuryScore(ctx context.Context, actor *util.Claims, scoreID string, scores model.DimensionScores, comments string) (*model.AwardRanking, error) {
	existing, err := s.Rankings.FindJuryScoreByID(scoreID)
	if err != nil {
		return nil, util.ErrRankingNotFound
	}
	if existing.JuryID != actor.UserID {
		return nil, util.ErrPermissionDenied
	}
	session, err := s.Sessions.FindByID(existing.SessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.Status != model.StatusJuryScoring && session.Status != model.StatusJuryDeliberation {
		return nil, &util.StateViolationError{
			SessionID: session.ID,
			Status:    string(session.Status),
			Action:    "update jury score",
		}
	}
	if err := ValidateDimensionScores(scores, s.currentRubric()); err != nil {
		return nil, err
	}

	existing.Scores = scores
	existing.Comments = comments
	if err := s.Rankings.UpsertJuryScore(existing); err != nil {
		return nil, err
	}

	return s.Recompute(ctx, session)
}

// Recompute rebuilds the session's ranking row from all its jury scores
// and refreshes the materialized ranks of its group.
func (s *RankingService) Recompute(ctx context.Context, session *model.Session) (*model.AwardRanking, error) {
	lock := s.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	defer func() {
		monitoring.RankingRecomputeDuration.Observe(time.Since(start).Seconds())
	}()

	scores, err := s.Rankings.ListJuryScoresBySession(session.ID)
	if err != nil {
		return nil, err
	}

	avgs := AverageDimensions(scores)
	submittedAt := session.CreatedAt
	if session.SubmittedAt != nil {
		submittedAt = *session.SubmittedAt
	}

	ranking := &model.AwardRanking{
		SessionID:     session.ID,
		GroupID:       session.GroupID,
		AverageScores: avgs,
		Overall:       OverallScore(avgs),
		JurorCount:    len(scores),
		SubmittedAt:   submittedAt,
	}
	if err := s.Rankings.UpsertRanking(ranking); err != nil {
		return nil, err
	}

	if err := s.refreshGroupRanks(ctx, session.GroupID); err != nil {
		return nil, err
	}

	return s.Rankings.FindBySession(session.ID)
}

func (s *RankingService) refreshGroupRanks(ctx context.Context, groupID uint) error {
	rankings, err := s.Rankings.ListByGroup(groupID)
	if err != nil {
		return err
	}
	SortLeaderboard(rankings)
	if err := s.Rankings.UpdateRanks(rankings); err != nil {
		return err
	}
	s.invalidateCache(ctx, groupID)
	return nil
}

// Leaderboard serves a group's ranking, redis-cached between score writes.
func (s *RankingService) Leaderboard(ctx context.Context, groupID uint) ([]model.AwardRanking, error) {
	key := leaderboardKey(groupID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var rankings []model.AwardRanking
			if err := json.Unmarshal([]byte(cached), &rankings); err == nil {
				return rankings, nil
			}
		}
	}

	rankings, err := s.Rankings.ListByGroup(groupID)
	if err != nil {
		return nil, err
	}
	SortLeaderboard(rankings)

	if s.Redis != nil {
		if payload, err := json.Marshal(rankings); err == nil {
			s.Redis.Set(ctx, key, payload, leaderboardCacheTTL)
		}
	}
	return rankings, nil
}

func (s *RankingService) GetRanking(id string) (*model.AwardRanking, error) {
	ranking, err := s.Rankings.FindByID(id)
	if err != nil {
		return nil, util.ErrRankingNotFound
	}
	return ranking, nil
}

// RefreshAll rebuilds the ranks of every group that has rankings. Run
// periodically as a safety net against missed invalidations.
func (s *RankingService) RefreshAll(ctx context.Context) error {
	groupIDs, err := s.Rankings.ListGroupIDs()
	if err != nil {
		return err
	}
	for _, groupID := range groupIDs {
		if err := s.refreshGroupRanks(ctx, groupID); err != nil {
			logger.Log.Error("ranking refresh failed",
				zap.Uint("groupId", groupID), zap.Error(err))
		}
	}
	return nil
}

func (s *RankingService) invalidateCache(ctx context.Context, groupID uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, leaderboardKey(groupID))
	}
}

func leaderboardKey(groupID uint) string {
	return fmt.Sprintf("award:leaderboard:%d", groupID)
}
