package common

import (
	"strings"
	"testing"
)

func TestProgramVersion(t *testing.T) {
	v := ProgramVersion{Name: "typosquat-generator", Version: "1.2.0", CommitHash: "abc123", BuildTime: "2024-01-01"}

	if got := v.Short(); got != "typosquat-generator 1.2.0 (abc123)" {
		t.Errorf("Short() = %q", got)
	}
	for _, want := range []string{"Version: 1.2.0", "Commit: abc123", "Build Date: 2024-01-01"} {
		if !strings.Contains(v.String(), want) {
			t.Errorf("String() missing %q", want)
		}
	}
}

func TestBarWidth(t *testing.T) {
	if width := BarWidth(); width < minBarWidth {
		t.Errorf("BarWidth() = %d, want >= %d", width, minBarWidth)
	}
}
