package service

import (
	"errors"
	"testing"
	"time"

	"award_backend/internal/model"
	"award_backend/internal/util"
)

type lifecycleFixture struct {
	sessions  *fakeSessionRepo
	responses *fakeResponseRepo
	reviews   *fakeReviewRepo
	svc       *SessionService
	respSvc   *ResponseService
	reviewSvc *ReviewService
}

// newLifecycleFixture wires the session, response and review services over
// in-memory repositories, with one required question already answered so
// submission passes validation.
func newLifecycleFixture() *lifecycleFixture {
	sessions := newFakeSessionRepo()
	responses := newFakeResponseRepo()
	reviews := &fakeReviewRepo{}
	questions := &fakeQuestionRepo{questions: []model.Question{
		question(1, true, "Data Program"),
	}}
	groups := &fakeGroupRepo{groups: map[uint]*model.Group{
		1: {BaseModel: model.BaseModel{ID: 1}, Name: "SMK", IsActive: true},
	}}

	reviewSvc := NewReviewService(reviews, sessions)
	return &lifecycleFixture{
		sessions:  sessions,
		responses: responses,
		reviews:   reviews,
		svc:       NewSessionService(sessions, responses, questions, groups, reviewSvc),
		respSvc:   NewResponseService(sessions, responses, questions, reviewSvc),
		reviewSvc: reviewSvc,
	}
}

func (f *lifecycleFixture) seedSession(status model.SessionStatus, userID uint) uint {
	now := time.Now()
	s := &model.Session{
		UserID:         userID,
		GroupID:        1,
		Status:         status,
		StartedAt:      now,
		LastActivityAt: now,
	}
	f.sessions.Create(s)
	f.responses.Create(&model.Response{
		SessionID:  s.ID,
		QuestionID: 1,
		Value:      model.TextAnswer("jawaban"),
		IsComplete: true,
	})
	return s.ID
}

func TestSubmitAfterCriticalResolved(t *testing.T) {
	f := newLifecycleFixture()
	owner := &util.Claims{UserID: 7, Email: "peserta@example.com"}
	admin := &util.Claims{UserID: 2, Email: "admin@example.com"}
	sid := f.seedSession(model.StatusSubmitted, owner.UserID)

	comment, err := f.reviewSvc.AddComment(admin, sid, CommentRequest{
		QuestionID: 1,
		Stage:      model.StageAdminValidation,
		Comment:    "lengkapi data anggaran",
		IsCritical: true,
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if s, _ := f.sessions.FindByID(sid); s.Status != model.StatusNeedsRevision {
		t.Fatalf("status after critical comment = %s, want needs_revision", s.Status)
	}

	if _, err := f.reviewSvc.ResolveComment(comment.ID); err != nil {
		t.Fatalf("ResolveComment: %v", err)
	}

	// The derived status already reads submitted, but the participant must
	// still be able to resubmit from the stored needs_revision state.
	detail, err := f.svc.Submit(owner, sid)
	if err != nil {
		t.Fatalf("Submit after resolving criticals: %v", err)
	}
	if detail.Status != model.StatusResubmitted {
		t.Errorf("status after resubmit = %s, want resubmitted", detail.Status)
	}

	approved, err := f.svc.Approve(sid)
	if err != nil {
		t.Fatalf("Approve after resubmit: %v", err)
	}
	if approved.Status != model.StatusApproved {
		t.Errorf("status after approve = %s, want approved", approved.Status)
	}
}

func TestSubmitBlockedWhileCriticalUnresolved(t *testing.T) {
	f := newLifecycleFixture()
	owner := &util.Claims{UserID: 7, Email: "peserta@example.com"}
	admin := &util.Claims{UserID: 2, Email: "admin@example.com"}
	sid := f.seedSession(model.StatusSubmitted, owner.UserID)

	if _, err := f.reviewSvc.AddComment(admin, sid, CommentRequest{
		QuestionID: 1,
		Stage:      model.StageAdminValidation,
		Comment:    "lengkapi data anggaran",
		IsCritical: true,
	}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	_, err := f.svc.Submit(owner, sid)
	var violation *util.StateViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("Submit with unresolved critical = %v, want StateViolationError", err)
	}
	if s, _ := f.sessions.FindByID(sid); s.Status != model.StatusNeedsRevision {
		t.Errorf("status after blocked resubmit = %s, want needs_revision", s.Status)
	}
}

func TestFirstSubmission(t *testing.T) {
	f := newLifecycleFixture()
	owner := &util.Claims{UserID: 7, Email: "peserta@example.com"}
	sid := f.seedSession(model.StatusInProgress, owner.UserID)

	detail, err := f.svc.Submit(owner, sid)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if detail.Status != model.StatusSubmitted {
		t.Errorf("status = %s, want submitted", detail.Status)
	}
	if detail.CanEdit {
		t.Error("CanEdit = true after submission, want false")
	}
}

func TestSaveAnswerRejectedOutsideEditableState(t *testing.T) {
	f := newLifecycleFixture()
	owner := &util.Claims{UserID: 7, Email: "peserta@example.com"}

	for _, status := range []model.SessionStatus{
		model.StatusSubmitted,
		model.StatusApproved,
		model.StatusCompleted,
		model.StatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			sid := f.seedSession(status, owner.UserID)
			before, _ := f.responses.ListBySession(sid)

			_, err := f.respSvc.SaveAnswer(owner, sid, AnswerRequest{
				QuestionID: 1,
				Value:      model.TextAnswer("terlambat"),
			})
			var violation *util.StateViolationError
			if !errors.As(err, &violation) {
				t.Fatalf("SaveAnswer on %s session = %v, want StateViolationError", status, err)
			}

			after, _ := f.responses.ListBySession(sid)
			if len(after) != len(before) || after[0].Value.Text != before[0].Value.Text {
				t.Error("responses changed by a rejected write")
			}
		})
	}
}

func TestSaveAnswerAllowedAfterCriticalResolved(t *testing.T) {
	f := newLifecycleFixture()
	owner := &util.Claims{UserID: 7, Email: "peserta@example.com"}
	admin := &util.Claims{UserID: 2, Email: "admin@example.com"}
	sid := f.seedSession(model.StatusSubmitted, owner.UserID)

	comment, err := f.reviewSvc.AddComment(admin, sid, CommentRequest{
		QuestionID: 1,
		Stage:      model.StageAdminValidation,
		Comment:    "perbaiki jawaban",
		IsCritical: true,
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := f.reviewSvc.ResolveComment(comment.ID); err != nil {
		t.Fatalf("ResolveComment: %v", err)
	}

	// Stored needs_revision stays writable until the participant resubmits,
	// even though the derived status reads submitted again.
	resp, err := f.respSvc.SaveAnswer(owner, sid, AnswerRequest{
		QuestionID: 1,
		Value:      model.TextAnswer("jawaban revisi"),
		IsComplete: true,
	})
	if err != nil {
		t.Fatalf("SaveAnswer on needs_revision session: %v", err)
	}
	if resp.Value.Text != "jawaban revisi" {
		t.Errorf("saved value = %q, want the revised answer", resp.Value.Text)
	}
}

func TestProgressIgnoresExemptSection(t *testing.T) {
	sessions := newFakeSessionRepo()
	responses := newFakeResponseRepo()
	reviews := &fakeReviewRepo{}
	questions := &fakeQuestionRepo{questions: []model.Question{
		question(1, true, "Data Program"),
		question(2, true, "Data Program"),
		question(3, true, model.SectionPengusulan),
		question(4, false, "Data Program"),
	}}
	groups := &fakeGroupRepo{groups: map[uint]*model.Group{
		1: {BaseModel: model.BaseModel{ID: 1}, Name: "SMK", IsActive: true},
	}}
	reviewSvc := NewReviewService(reviews, sessions)
	svc := NewSessionService(sessions, responses, questions, groups, reviewSvc)

	session := &model.Session{UserID: 7, GroupID: 1, Status: model.StatusInProgress}
	sessions.Create(session)

	responses.Create(&model.Response{SessionID: session.ID, QuestionID: 1, Value: model.TextAnswer("a")})
	responses.Create(&model.Response{SessionID: session.ID, QuestionID: 2, Value: model.NumericAnswer(3)})

	// Question 3 is required but exempt, question 4 optional; neither may
	// hold the percentage under 100.
	pct, err := svc.Progress(session.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if pct != 100 {
		t.Errorf("progress with all non-exempt required answered = %v, want 100", pct)
	}

	half := newFakeSessionRepo()
	halfResponses := newFakeResponseRepo()
	halfSvc := NewSessionService(half, halfResponses, questions, groups, NewReviewService(&fakeReviewRepo{}, half))
	s2 := &model.Session{UserID: 7, GroupID: 1, Status: model.StatusInProgress}
	half.Create(s2)
	halfResponses.Create(&model.Response{SessionID: s2.ID, QuestionID: 1, Value: model.TextAnswer("a")})

	pct, err = halfSvc.Progress(s2.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if pct != 50 {
		t.Errorf("progress with half answered = %v, want 50", pct)
	}
}
