package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerValueAccessors(t *testing.T) {
	if got, ok := TextAnswer("hello").AsText(); !ok || got != "hello" {
		t.Errorf("AsText = %q, %v", got, ok)
	}
	if _, ok := TextAnswer("42").AsNumeric(); ok {
		t.Error("text must not read as numeric")
	}
	if got, ok := NumericAnswer(3.5).AsNumeric(); !ok || got != 3.5 {
		t.Errorf("AsNumeric = %v, %v", got, ok)
	}
	if got, ok := BooleanAnswer(true).AsNumeric(); !ok || got != 1 {
		t.Errorf("boolean true as numeric = %v, %v, want 1", got, ok)
	}
	if got, ok := BooleanAnswer(false).AsNumeric(); !ok || got != 0 {
		t.Errorf("boolean false as numeric = %v, %v, want 0", got, ok)
	}
	if got, ok := ArrayAnswer([]string{"a", "b"}).AsArray(); !ok || !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("AsArray = %v, %v", got, ok)
	}
	answer, url, ok := EvidenceAnswer("program ran in 12 villages", "https://files.example/report.pdf").AsEvidence()
	if !ok || answer != "program ran in 12 villages" || url != "https://files.example/report.pdf" {
		t.Errorf("AsEvidence = %q, %q, %v", answer, url, ok)
	}

	var zero AnswerValue
	if !zero.IsZero() {
		t.Error("zero value must report IsZero")
	}
	if TextAnswer("x").IsZero() {
		t.Error("text answer must not report IsZero")
	}
}

func TestAnswerValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want AnswerValue
	}{
		{"tagged text", `{"kind":"text","text":"abc"}`, TextAnswer("abc")},
		{"tagged numeric", `{"kind":"numeric","number":7}`, NumericAnswer(7)},
		{"legacy string", `"abc"`, TextAnswer("abc")},
		{"legacy number", `12.5`, NumericAnswer(12.5)},
		{"legacy bool", `true`, BooleanAnswer(true)},
		{"legacy array", `["x","y"]`, ArrayAnswer([]string{"x", "y"})},
		{"legacy evidence pair", `{"answer":"done","url":"https://e/x"}`, EvidenceAnswer("done", "https://e/x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AnswerValue
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	var v AnswerValue
	if err := json.Unmarshal([]byte(`{"kind":"banana"}`), &v); err == nil {
		t.Error("unknown kind must fail")
	}
}
