package service

import "testing"

func TestShouldApplyAutoSave(t *testing.T) {
	tests := []struct {
		name     string
		stored   int64
		incoming int64
		want     bool
	}{
		{"unversioned write always applies", 5, 0, true},
		{"newer version applies", 5, 6, true},
		{"replayed version is a no-op", 5, 5, false},
		{"stale version is a no-op", 5, 3, false},
		{"first versioned write over fresh row", 0, 1, true},
		{"large jump applies", 5, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldApplyAutoSave(tt.stored, tt.incoming); got != tt.want {
				t.Errorf("ShouldApplyAutoSave(%d, %d) = %v, want %v", tt.stored, tt.incoming, got, tt.want)
			}
		})
	}
}
