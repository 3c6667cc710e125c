package service

import (
	"time"

	"award_backend/internal/model"

	"gorm.io/gorm"
)

// In-memory repository fakes so service behavior is testable without a
// database. Each fake keeps the same not-found semantics as the real
// implementation: gorm.ErrRecordNotFound on a miss.

type fakeSessionRepo struct {
	sessions map[uint]*model.Session
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uint]*model.Session), nextID: 1}
}

func (r *fakeSessionRepo) Create(s *model.Session) error {
	s.ID = r.nextID
	r.nextID++
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) FindByID(id uint) (*model.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) FindByUserAndGroup(userID, groupID uint) (*model.Session, error) {
	for _, s := range r.sessions {
		if s.UserID == userID && s.GroupID == groupID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) Update(s *model.Session) error {
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) List(page, limit int, groupID uint, status model.SessionStatus) ([]model.Session, int64, error) {
	var out []model.Session
	for _, s := range r.sessions {
		if groupID > 0 && s.GroupID != groupID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeResponseRepo struct {
	responses map[uint]map[uint]*model.Response // sessionID -> questionID
	nextID    uint
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: make(map[uint]map[uint]*model.Response), nextID: 1}
}

func (r *fakeResponseRepo) FindBySessionAndQuestion(sessionID, questionID uint) (*model.Response, error) {
	resp, ok := r.responses[sessionID][questionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *resp
	return &copied, nil
}

func (r *fakeResponseRepo) ListBySession(sessionID uint) ([]model.Response, error) {
	var out []model.Response
	for _, resp := range r.responses[sessionID] {
		out = append(out, *resp)
	}
	return out, nil
}

func (r *fakeResponseRepo) Create(resp *model.Response) error {
	resp.ID = r.nextID
	r.nextID++
	if r.responses[resp.SessionID] == nil {
		r.responses[resp.SessionID] = make(map[uint]*model.Response)
	}
	copied := *resp
	r.responses[resp.SessionID][resp.QuestionID] = &copied
	return nil
}

func (r *fakeResponseRepo) Update(resp *model.Response) error {
	copied := *resp
	r.responses[resp.SessionID][resp.QuestionID] = &copied
	return nil
}

func (r *fakeResponseRepo) FinalizeAll(sessionID uint, at time.Time) error {
	for _, resp := range r.responses[sessionID] {
		resp.IsDraft = false
		t := at
		resp.FinalizedAt = &t
	}
	return nil
}

type fakeQuestionRepo struct {
	questions []model.Question
}

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for i := range r.questions {
		if r.questions[i].ID == id {
			copied := r.questions[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) ListAll() ([]model.Question, error) {
	return append([]model.Question(nil), r.questions...), nil
}

func (r *fakeQuestionRepo) Update(q *model.Question) error { return nil }
func (r *fakeQuestionRepo) Delete(id uint) error           { return nil }

type fakeGroupRepo struct {
	groups map[uint]*model.Group
}

func (r *fakeGroupRepo) Create(g *model.Group) error { return nil }

func (r *fakeGroupRepo) FindByID(id uint) (*model.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) FindByName(name string) (*model.Group, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGroupRepo) ListActive() ([]model.Group, error) { return nil, nil }

type fakeReviewRepo struct {
	comments []model.ReviewComment
}

func (r *fakeReviewRepo) Create(c *model.ReviewComment) error {
	if c.ID == "" {
		c.ID = "comment-" + time.Now().Format("150405.000000000")
	}
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeReviewRepo) FindByID(id string) (*model.ReviewComment, error) {
	for i := range r.comments {
		if r.comments[i].ID == id {
			copied := r.comments[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) ListBySession(sessionID uint, stage model.ReviewStage) ([]model.ReviewComment, error) {
	var out []model.ReviewComment
	for _, c := range r.comments {
		if c.SessionID != sessionID {
			continue
		}
		if stage != "" && c.Stage != stage {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeReviewRepo) MarkResolved(id string) error {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].IsResolved = true
		}
	}
	return nil
}

func (r *fakeReviewRepo) CountUnresolvedCritical(sessionID uint) (int64, error) {
	var n int64
	for i := range r.comments {
		if r.comments[i].SessionID == sessionID && r.comments[i].BlocksSubmission() {
			n++
		}
	}
	return n, nil
}

func (r *fakeReviewRepo) CreateBatch(comments []model.ReviewComment) error {
	for i := range comments {
		if err := r.Create(&comments[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeRankingRepo struct {
	juryScores map[string]*model.JuryScore
	rankings   map[uint]*model.AwardRanking // keyed by session id
}

func newFakeRankingRepo() *fakeRankingRepo {
	return &fakeRankingRepo{
		juryScores: make(map[string]*model.JuryScore),
		rankings:   make(map[uint]*model.AwardRanking),
	}
}

func (r *fakeRankingRepo) UpsertJuryScore(score *model.JuryScore) error {
	if score.ID == "" {
		score.ID = "score-" + time.Now().Format("150405.000000000")
	}
	copied := *score
	r.juryScores[score.ID] = &copied
	return nil
}

func (r *fakeRankingRepo) FindJuryScoreByID(id string) (*model.JuryScore, error) {
	s, ok := r.juryScores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRankingRepo) ListJuryScoresBySession(sessionID uint) ([]model.JuryScore, error) {
	var out []model.JuryScore
	for _, s := range r.juryScores {
		if s.SessionID == sessionID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRankingRepo) UpsertRanking(ranking *model.AwardRanking) error {
	if existing, ok := r.rankings[ranking.SessionID]; ok {
		ranking.ID = existing.ID
	} else if ranking.ID == "" {
		ranking.ID = "ranking-" + time.Now().Format("150405.000000000")
	}
	copied := *ranking
	r.rankings[ranking.SessionID] = &copied
	return nil
}

func (r *fakeRankingRepo) FindBySession(sessionID uint) (*model.AwardRanking, error) {
	ranking, ok := r.rankings[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ranking
	return &copied, nil
}

func (r *fakeRankingRepo) FindByID(id string) (*model.AwardRanking, error) {
	for _, ranking := range r.rankings {
		if ranking.ID == id {
			copied := *ranking
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRankingRepo) ListByGroup(groupID uint) ([]model.AwardRanking, error) {
	var out []model.AwardRanking
	for _, ranking := range r.rankings {
		if ranking.GroupID == groupID {
			out = append(out, *ranking)
		}
	}
	return out, nil
}

func (r *fakeRankingRepo) ListGroupIDs() ([]uint, error) {
	var ids []uint
	for _, ranking := range r.rankings {
		ids = append(ids, ranking.GroupID)
	}
	return ids, nil
}

func (r *fakeRankingRepo) UpdateRanks(rankings []model.AwardRanking) error {
	for i := range rankings {
		if stored, ok := r.rankings[rankings[i].SessionID]; ok {
			stored.Rank = rankings[i].Rank
		}
	}
	return nil
}
