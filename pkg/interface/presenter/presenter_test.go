package presenter

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	tea "github.com/charmbracelet/bubbletea"
)

func waitReturns(t *testing.T, bar *ProgressBar) bool {
	t.Helper()
	done := make(chan struct{})
	go func() {
		bar.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(5 * time.Second):
		return false
	}
}

func TestProgressBar_CountsCompletedDomains(t *testing.T) {
	bar := NewProgressBar(3, io.Discard)
	bar.OnDomainCompleted(&entity.DomainResult{Domain: "example.com", Duration: 10 * time.Millisecond})
	bar.OnDomainCompleted(&entity.DomainResult{Domain: "example.org", Failure: &entity.Failure{Domain: "example.org", Kind: entity.FailureNoMXRecord}})

	if got := bar.Current(); got != 2 {
		t.Errorf("Current() = %d, want 2", got)
	}

	if !waitReturns(t, bar) {
		t.Fatal("Wait() did not return for an incomplete bar")
	}
}

func TestProgressBar_Wait(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
	}{
		{name: "all domains done", total: 2, completed: 2},
		{name: "aborted midway", total: 5, completed: 1},
		{name: "nothing done", total: 5, completed: 0},
		{name: "empty input", total: 0, completed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewProgressBar(tt.total, io.Discard)
			for i := 0; i < tt.completed; i++ {
				bar.OnDomainCompleted(&entity.DomainResult{Domain: "example.com"})
			}
			if !waitReturns(t, bar) {
				t.Fatalf("Wait() blocked with %d of %d domains done", tt.completed, tt.total)
			}
		})
	}
}

func TestDashboard_View(t *testing.T) {
	d := NewDashboard()
	if got := d.View(); got != "Initializing..." {
		t.Errorf("View() before sizing = %q", got)
	}

	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	d.OnMetricsUpdate(&entity.Metrics{
		TotalDomains:  2,
		Processed:     2,
		Succeeded:     1,
		NoMX:          1,
		TotalWorkers:  4,
		DNSQueries:    7,
		StartTime:     time.Now(),
		ActiveDomains: []string{"busy.com"},
	})
	d.OnDomainCompleted(&entity.DomainResult{Domain: "example.com", Variants: make([]entity.Variant, 12)})
	d.OnDomainCompleted(&entity.DomainResult{Domain: "example.org", Failure: &entity.Failure{Domain: "example.org", Kind: entity.FailureNoMXRecord}})

	view := d.View()
	for _, want := range []string{"Typosquat Generator", "example.com (12 variants)", "example.org (no_mx_record)", "busy.com", "queries  7", "no mx      1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestDashboard_RecentIsBounded(t *testing.T) {
	d := NewDashboard()
	for i := 0; i < maxRecent+10; i++ {
		d.OnDomainCompleted(&entity.DomainResult{Domain: "example.com"})
	}
	if len(d.recent) != maxRecent {
		t.Errorf("len(recent) = %d, want %d", len(d.recent), maxRecent)
	}
}

func TestDashboard_Quit(t *testing.T) {
	d := NewDashboard()
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Update(q) returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Update(q) should quit")
	}
}
