package service

import (
	"testing"

	"award_backend/internal/model"
)

func TestMergeComments(t *testing.T) {
	existing := []model.ReviewComment{
		{QuestionID: 1, Stage: model.StageAdminValidation, Comment: "budget total does not add up"},
		{QuestionID: 2, Stage: model.StageAdminValidation, Comment: "attach the partnership letter"},
	}

	t.Run("batch appends without dropping existing", func(t *testing.T) {
		incoming := []model.ReviewComment{
			{QuestionID: 3, Stage: model.StageAdminValidation, Comment: "beneficiary count unverified"},
		}
		merged, created := MergeComments(existing, incoming)
		if len(merged) != 3 {
			t.Fatalf("merged = %d comments, want 3", len(merged))
		}
		if len(created) != 1 || created[0].QuestionID != 3 {
			t.Errorf("created = %v, want the one new comment", created)
		}
		// Existing rows stay first and untouched.
		if merged[0].Comment != existing[0].Comment || merged[1].Comment != existing[1].Comment {
			t.Error("existing comments must survive in order")
		}
	})

	t.Run("retried batch is idempotent", func(t *testing.T) {
		incoming := []model.ReviewComment{
			{QuestionID: 1, Stage: model.StageAdminValidation, Comment: "budget total does not add up"},
			{QuestionID: 3, Stage: model.StageAdminValidation, Comment: "beneficiary count unverified"},
		}
		merged, created := MergeComments(existing, incoming)
		if len(merged) != 3 {
			t.Fatalf("merged = %d comments, want 3", len(merged))
		}
		if len(created) != 1 {
			t.Errorf("created = %d, want only the genuinely new comment", len(created))
		}
	})

	t.Run("same text on a different question is a new comment", func(t *testing.T) {
		incoming := []model.ReviewComment{
			{QuestionID: 5, Stage: model.StageAdminValidation, Comment: "budget total does not add up"},
		}
		_, created := MergeComments(existing, incoming)
		if len(created) != 1 {
			t.Errorf("created = %d, want 1", len(created))
		}
	})

	t.Run("same text on a different stage is a new comment", func(t *testing.T) {
		incoming := []model.ReviewComment{
			{QuestionID: 1, Stage: model.StageJuryScoring, Comment: "budget total does not add up"},
		}
		_, created := MergeComments(existing, incoming)
		if len(created) != 1 {
			t.Errorf("created = %d, want 1", len(created))
		}
	})

	t.Run("duplicates within one batch collapse", func(t *testing.T) {
		incoming := []model.ReviewComment{
			{QuestionID: 7, Stage: model.StageAdminValidation, Comment: "typo in summary"},
			{QuestionID: 7, Stage: model.StageAdminValidation, Comment: "typo in summary"},
		}
		merged, created := MergeComments(nil, incoming)
		if len(merged) != 1 || len(created) != 1 {
			t.Errorf("merged = %d, created = %d, want 1 and 1", len(merged), len(created))
		}
	})
}

func TestBlocksSubmission(t *testing.T) {
	tests := []struct {
		name    string
		comment model.ReviewComment
		want    bool
	}{
		{
			"unresolved critical validation comment blocks",
			model.ReviewComment{Stage: model.StageAdminValidation, IsCritical: true},
			true,
		},
		{
			"resolved critical does not block",
			model.ReviewComment{Stage: model.StageAdminValidation, IsCritical: true, IsResolved: true},
			false,
		},
		{
			"non-critical never blocks",
			model.ReviewComment{Stage: model.StageAdminValidation},
			false,
		},
		{
			"jury stage comment never blocks",
			model.ReviewComment{Stage: model.StageJuryScoring, IsCritical: true},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.comment.BlocksSubmission(); got != tt.want {
				t.Errorf("BlocksSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}
