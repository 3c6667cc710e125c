package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"award_backend/internal/config"
	"award_backend/internal/model"
	"award_backend/internal/util"
)

var testRubric = config.RubricConfig{
	Dimensions: []string{"relevance", "impact", "inclusivity", "sustainability", "innovation", "presentation"},
	MinScore:   1,
	MaxScore:   5,
}

func TestValidateDimensionScores(t *testing.T) {
	t.Run("valid scores pass", func(t *testing.T) {
		scores := model.DimensionScores{"relevance": 4, "impact": 1, "innovation": 5}
		if err := ValidateDimensionScores(scores, testRubric); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("out of range is rejected, not clamped", func(t *testing.T) {
		err := ValidateDimensionScores(model.DimensionScores{"impact": 6}, testRubric)
		var scoreErr *util.InvalidScoreError
		if !errors.As(err, &scoreErr) {
			t.Fatalf("want InvalidScoreError, got %v", err)
		}
		if scoreErr.Dimension != "impact" || scoreErr.Score != 6 {
			t.Errorf("got %+v", scoreErr)
		}
	})

	t.Run("below minimum is rejected", func(t *testing.T) {
		err := ValidateDimensionScores(model.DimensionScores{"relevance": 0}, testRubric)
		var scoreErr *util.InvalidScoreError
		if !errors.As(err, &scoreErr) {
			t.Fatalf("want InvalidScoreError, got %v", err)
		}
	})

	t.Run("unknown dimension is rejected", func(t *testing.T) {
		err := ValidateDimensionScores(model.DimensionScores{"vibes": 3}, testRubric)
		if err == nil {
			t.Fatal("want error for undeclared dimension")
		}
		var scoreErr *util.InvalidScoreError
		if errors.As(err, &scoreErr) {
			t.Error("unknown dimension is not a bounds violation")
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		scores := model.DimensionScores{"relevance": 1, "impact": 5}
		if err := ValidateDimensionScores(scores, testRubric); err != nil {
			t.Errorf("boundary scores must pass: %v", err)
		}
	})
}

func TestAverageDimensions(t *testing.T) {
	t.Run("means over two jurors", func(t *testing.T) {
		scores := []model.JuryScore{
			{JuryID: 1, Scores: model.DimensionScores{"impact": 4, "relevance": 3}},
			{JuryID: 2, Scores: model.DimensionScores{"impact": 2, "relevance": 5}},
		}
		avgs := AverageDimensions(scores)
		if avgs["impact"] != 3.0 {
			t.Errorf("impact = %v, want 3.0", avgs["impact"])
		}
		if avgs["relevance"] != 4.0 {
			t.Errorf("relevance = %v, want 4.0", avgs["relevance"])
		}
	})

	t.Run("an updated score replaces, never averages twice", func(t *testing.T) {
		// Juror 1 changed their impact score from 5 to 3. The upsert keeps a
		// single row per juror, so only the final value enters the mean.
		scores := []model.JuryScore{
			{JuryID: 1, Scores: model.DimensionScores{"impact": 3}},
			{JuryID: 2, Scores: model.DimensionScores{"impact": 4}},
		}
		if got := AverageDimensions(scores)["impact"]; got != 3.5 {
			t.Errorf("impact = %v, want 3.5", got)
		}
	})

	t.Run("dimension averaged over jurors that scored it", func(t *testing.T) {
		scores := []model.JuryScore{
			{JuryID: 1, Scores: model.DimensionScores{"impact": 5, "innovation": 2}},
			{JuryID: 2, Scores: model.DimensionScores{"impact": 3}},
		}
		avgs := AverageDimensions(scores)
		if avgs["impact"] != 4.0 {
			t.Errorf("impact = %v, want 4.0", avgs["impact"])
		}
		if avgs["innovation"] != 2.0 {
			t.Errorf("innovation = %v, want 2.0", avgs["innovation"])
		}
	})

	t.Run("no jurors yields empty map", func(t *testing.T) {
		if got := AverageDimensions(nil); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}

func TestOverallScore(t *testing.T) {
	avgs := model.DimensionScores{"impact": 3.5, "relevance": 4.25, "innovation": 2}
	if got := OverallScore(avgs); got != 9.75 {
		t.Errorf("OverallScore = %v, want 9.75", got)
	}
	if got := OverallScore(model.DimensionScores{}); got != 0 {
		t.Errorf("OverallScore(empty) = %v, want 0", got)
	}
}

func TestSortLeaderboard(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("orders by overall descending", func(t *testing.T) {
		rankings := []model.AwardRanking{
			{SessionID: 1, Overall: 12.5, SubmittedAt: base},
			{SessionID: 2, Overall: 20.0, SubmittedAt: base},
			{SessionID: 3, Overall: 15.0, SubmittedAt: base.Add(time.Hour)},
		}
		SortLeaderboard(rankings)
		wantOrder := []uint{2, 3, 1}
		for i, want := range wantOrder {
			if rankings[i].SessionID != want {
				t.Fatalf("position %d = session %d, want %d", i, rankings[i].SessionID, want)
			}
			if rankings[i].Rank != i+1 {
				t.Errorf("session %d rank = %d, want %d", rankings[i].SessionID, rankings[i].Rank, i+1)
			}
		}
	})

	t.Run("ties break by earliest submission then session id", func(t *testing.T) {
		rankings := []model.AwardRanking{
			{SessionID: 9, Overall: 18.0, SubmittedAt: base.Add(time.Hour)},
			{SessionID: 4, Overall: 18.0, SubmittedAt: base},
			{SessionID: 3, Overall: 18.0, SubmittedAt: base.Add(time.Hour)},
		}
		SortLeaderboard(rankings)
		wantOrder := []uint{4, 3, 9}
		for i, want := range wantOrder {
			if rankings[i].SessionID != want {
				t.Fatalf("position %d = session %d, want %d", i, rankings[i].SessionID, want)
			}
		}
	})

	t.Run("rerun reproduces the same order", func(t *testing.T) {
		rankings := []model.AwardRanking{
			{SessionID: 2, Overall: 10, SubmittedAt: base},
			{SessionID: 1, Overall: 10, SubmittedAt: base},
		}
		SortLeaderboard(rankings)
		first := []uint{rankings[0].SessionID, rankings[1].SessionID}
		SortLeaderboard(rankings)
		if rankings[0].SessionID != first[0] || rankings[1].SessionID != first[1] {
			t.Error("sort must be deterministic across reruns")
		}
	})
}

func TestUpdateJuryScoreFrozenAfterScoringStages(t *testing.T) {
	for _, status := range []model.SessionStatus{
		model.StatusFinalDecision,
		model.StatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			sessions := newFakeSessionRepo()
			session := &model.Session{UserID: 7, GroupID: 1, Status: status}
			sessions.Create(session)

			rankings := newFakeRankingRepo()
			original := &model.JuryScore{
				SessionID: session.ID,
				JuryID:    9,
				Scores:    model.DimensionScores{"relevance": 4},
			}
			rankings.UpsertJuryScore(original)

			svc := NewRankingService(rankings, sessions, nil, testRubric)
			juror := &util.Claims{UserID: 9, Email: "juri@example.com"}

			_, err := svc.UpdateJuryScore(context.Background(), juror, original.ID,
				model.DimensionScores{"relevance": 5}, "revised")
			var violation *util.StateViolationError
			if !errors.As(err, &violation) {
				t.Fatalf("UpdateJuryScore on %s session = %v, want StateViolationError", status, err)
			}

			stored, _ := rankings.FindJuryScoreByID(original.ID)
			if stored.Scores["relevance"] != 4 {
				t.Errorf("stored score = %v, want the original 4; the leaderboard must stay frozen", stored.Scores["relevance"])
			}
		})
	}
}

func TestUpdateJuryScoreDuringScoring(t *testing.T) {
	sessions := newFakeSessionRepo()
	session := &model.Session{UserID: 7, GroupID: 1, Status: model.StatusJuryScoring}
	sessions.Create(session)

	rankings := newFakeRankingRepo()
	original := &model.JuryScore{
		SessionID: session.ID,
		JuryID:    9,
		Scores: model.DimensionScores{
			"relevance": 4, "impact": 4, "inclusivity": 4,
			"sustainability": 4, "innovation": 4, "presentation": 4,
		},
	}
	rankings.UpsertJuryScore(original)

	svc := NewRankingService(rankings, sessions, nil, testRubric)
	juror := &util.Claims{UserID: 9, Email: "juri@example.com"}

	if _, err := svc.UpdateJuryScore(context.Background(), juror, original.ID,
		model.DimensionScores{
			"relevance": 5, "impact": 4, "inclusivity": 4,
			"sustainability": 4, "innovation": 4, "presentation": 4,
		}, "revised"); err != nil {
		t.Fatalf("UpdateJuryScore during jury_scoring: %v", err)
	}

	stored, _ := rankings.FindJuryScoreByID(original.ID)
	if stored.Scores["relevance"] != 5 {
		t.Errorf("stored score = %v, want the updated 5", stored.Scores["relevance"])
	}
}
