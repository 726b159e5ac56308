package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestConfidenceBar(t *testing.T) {
	tests := []struct {
		value      float64
		width      int
		wantFilled int
		wantLabel  string
	}{
		{1.0, 10, 10, " 1.00"},
		{0.85, 10, 9, " 0.85"},
		{0.4, 10, 4, " 0.40"},
		{0, 10, 0, " 0.00"},
		{0.5, 1, 2, " 0.50"}, // width floors at 4
	}
	for _, tt := range tests {
		got := ansi.Strip(NewConfidenceBar(tt.value, tt.width).View())
		if n := strings.Count(got, "█"); n != tt.wantFilled {
			t.Errorf("value %.2f: filled = %d, want %d (%q)", tt.value, n, tt.wantFilled, got)
		}
		if !strings.HasSuffix(got, tt.wantLabel) {
			t.Errorf("value %.2f: %q does not end with %q", tt.value, got, tt.wantLabel)
		}
	}
}
