package service

import (
	"reflect"
	"testing"

	"award_backend/internal/model"
)

func question(id uint, required bool, section string) model.Question {
	return model.Question{
		BaseModel:    model.BaseModel{ID: id},
		IsRequired:   required,
		SectionTitle: section,
	}
}

func TestMissingRequired(t *testing.T) {
	questions := []model.Question{
		question(1, true, "Data Program"),
		question(2, true, "Data Program"),
		question(3, false, "Data Program"),
		question(4, true, model.SectionPengusulan),
	}

	t.Run("all required answered", func(t *testing.T) {
		responses := []model.Response{
			{QuestionID: 1, Value: model.TextAnswer("ok")},
			{QuestionID: 2, Value: model.NumericAnswer(10)},
		}
		if got := MissingRequired(questions, responses); got != nil {
			t.Errorf("missing = %v, want none", got)
		}
	})

	t.Run("unanswered required is reported", func(t *testing.T) {
		responses := []model.Response{
			{QuestionID: 1, Value: model.TextAnswer("ok")},
		}
		if got := MissingRequired(questions, responses); !reflect.DeepEqual(got, []uint{2}) {
			t.Errorf("missing = %v, want [2]", got)
		}
	})

	t.Run("skipped counts as missing", func(t *testing.T) {
		responses := []model.Response{
			{QuestionID: 1, Value: model.TextAnswer("ok"), IsSkipped: true},
			{QuestionID: 2, Value: model.NumericAnswer(10)},
		}
		if got := MissingRequired(questions, responses); !reflect.DeepEqual(got, []uint{1}) {
			t.Errorf("missing = %v, want [1]", got)
		}
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		responses := []model.Response{
			{QuestionID: 1, Value: model.AnswerValue{}},
			{QuestionID: 2, Value: model.NumericAnswer(10)},
		}
		if got := MissingRequired(questions, responses); !reflect.DeepEqual(got, []uint{1}) {
			t.Errorf("missing = %v, want [1]", got)
		}
	})

	t.Run("pengusulan section is exempt", func(t *testing.T) {
		responses := []model.Response{
			{QuestionID: 1, Value: model.TextAnswer("ok")},
			{QuestionID: 2, Value: model.NumericAnswer(10)},
		}
		// Question 4 is required but lives in Pengusulan; it never blocks.
		if got := MissingRequired(questions, responses); got != nil {
			t.Errorf("missing = %v, want none", got)
		}
	})

	t.Run("optional questions never block", func(t *testing.T) {
		if got := MissingRequired([]model.Question{question(3, false, "x")}, nil); got != nil {
			t.Errorf("missing = %v, want none", got)
		}
	})
}
