package model

import (
	"encoding/json"
	"fmt"
)

type AnswerKind string

const (
	AnswerNone     AnswerKind = ""
	AnswerText     AnswerKind = "text"
	AnswerNumeric  AnswerKind = "numeric"
	AnswerBoolean  AnswerKind = "boolean"
	AnswerArray    AnswerKind = "array"
	AnswerEvidence AnswerKind = "evidence"
)

// AnswerValue is the tagged union over the answer shapes a question can
// produce: free text, a number, a boolean, a list of selected option values,
// or an {answer, url} pair for questions that need a corroborating link.
// Exactly one variant is set; use the accessors instead of sniffing fields.
type AnswerValue struct {
	Kind    AnswerKind `json:"kind"`
	Text    string     `json:"text,omitempty"`
	Number  float64    `json:"number,omitempty"`
	Bool    bool       `json:"bool,omitempty"`
	Array   []string   `json:"array,omitempty"`
	Answer  string     `json:"answer,omitempty"`
	URL     string     `json:"url,omitempty"`
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Kind: AnswerText, Text: s}
}

func NumericAnswer(n float64) AnswerValue {
	return AnswerValue{Kind: AnswerNumeric, Number: n}
}

func BooleanAnswer(b bool) AnswerValue {
	return AnswerValue{Kind: AnswerBoolean, Bool: b}
}

func ArrayAnswer(vals []string) AnswerValue {
	return AnswerValue{Kind: AnswerArray, Array: vals}
}

func EvidenceAnswer(answer, url string) AnswerValue {
	return AnswerValue{Kind: AnswerEvidence, Answer: answer, URL: url}
}

// IsZero reports whether no variant has been set yet.
func (v AnswerValue) IsZero() bool {
	return v.Kind == AnswerNone
}

func (v AnswerValue) AsText() (string, bool) {
	if v.Kind == AnswerText {
		return v.Text, true
	}
	return "", false
}

// AsNumeric returns the numeric raw score of the answer. Boolean answers
// count as 1/0 so yes-no questions can carry a weighted score.
func (v AnswerValue) AsNumeric() (float64, bool) {
	switch v.Kind {
	case AnswerNumeric:
		return v.Number, true
	case AnswerBoolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (v AnswerValue) AsBoolean() (bool, bool) {
	if v.Kind == AnswerBoolean {
		return v.Bool, true
	}
	return false, false
}

func (v AnswerValue) AsArray() ([]string, bool) {
	if v.Kind == AnswerArray {
		return v.Array, true
	}
	return nil, false
}

func (v AnswerValue) AsEvidence() (answer, url string, ok bool) {
	if v.Kind == AnswerEvidence {
		return v.Answer, v.URL, true
	}
	return "", "", false
}

func (v AnswerValue) Validate() error {
	switch v.Kind {
	case AnswerNone, AnswerText, AnswerNumeric, AnswerBoolean, AnswerArray, AnswerEvidence:
		return nil
	}
	return fmt.Errorf("unknown answer kind %q", v.Kind)
}

// UnmarshalJSON also accepts the legacy bare shapes the old clients sent
// (plain string/number/bool/array or an {answer,url} object) and folds them
// into the tagged form.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	type tagged AnswerValue
	var t tagged
	if err := json.Unmarshal(data, &t); err == nil && t.Kind != AnswerNone {
		*v = AnswerValue(t)
		return v.Validate()
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextAnswer(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumericAnswer(n)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BooleanAnswer(b)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*v = ArrayAnswer(arr)
		return nil
	}
	var pair struct {
		Answer string `json:"answer"`
		URL    string `json:"url"`
	}
	if err := json.Unmarshal(data, &pair); err == nil && (pair.Answer != "" || pair.URL != "") {
		*v = EvidenceAnswer(pair.Answer, pair.URL)
		return nil
	}
	return fmt.Errorf("unsupported answer value: %s", string(data))
}
