package presenter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxRecent    = 50
	refreshEvery = 500 * time.Millisecond
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Dashboard is a bubbletea model showing pipeline progress
type Dashboard struct {
	mu sync.RWMutex

	snapshot *entity.Metrics
	recent   []string // newest last
	bar      progress.Model
	started  time.Time

	width, height int
}

type refreshMsg time.Time

// NewDashboard creates a dashboard with an empty snapshot
func NewDashboard() *Dashboard {
	return &Dashboard{
		snapshot: &entity.Metrics{},
		bar:      progress.New(progress.WithDefaultGradient()),
		started:  time.Now(),
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return refresh()
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key := msg.String(); key == "q" || key == "Q" || key == "ctrl+c" {
			return d, tea.Quit
		}
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
	case refreshMsg:
		return d, refresh()
	}
	return d, nil
}

// View implements tea.Model
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Initializing..."
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	m := d.snapshot
	elapsed := time.Since(d.started)
	inner := max(d.width-4, 10)

	title := titleStyle.Render("Typosquat Generator") +
		dimStyle.Render(fmt.Sprintf("  elapsed %s", elapsed.Truncate(time.Second)))

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		d.box(inner/3, "Pipeline",
			fmt.Sprintf("workers  %d/%d", m.ActiveWorkers, m.TotalWorkers),
			fmt.Sprintf("domains  %d/%d", m.Processed, m.TotalDomains),
			fmt.Sprintf("variants %d", m.VariantsWritten),
		),
		d.box(inner/3, "Outcomes",
			okStyle.Render(fmt.Sprintf("ok         %d", m.Succeeded)),
			failStyle.Render(fmt.Sprintf("invalid    %d", m.InvalidURL)),
			failStyle.Render(fmt.Sprintf("no mx      %d", m.NoMX)),
		),
		d.box(inner-2*(inner/3), "DNS",
			fmt.Sprintf("queries  %d", m.DNSQueries),
			fmt.Sprintf("rate     %s", perSecond(m.DNSQueries, elapsed)),
			fmt.Sprintf("domains  %s", perSecond(m.Processed, elapsed)),
		),
	)

	bar := d.bar
	bar.Width = inner
	fraction := 0.0
	if m.TotalDomains > 0 {
		fraction = float64(m.Processed) / float64(m.TotalDomains)
	}

	sections := []string{title, summary, bar.ViewAs(fraction)}
	if len(m.ActiveDomains) > 0 {
		sections = append(sections, dimStyle.Render("working on "+strings.Join(m.ActiveDomains, ", ")))
	}

	used := lipgloss.Height(strings.Join(sections, "\n")) + 2
	sections = append(sections,
		d.box(inner, "Recent", d.tail(max(d.height-used-4, 1))...),
		dimStyle.Render("q / ctrl+c to quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) box(width int, title string, lines ...string) string {
	body := append([]string{titleStyle.Render(title)}, lines...)
	return boxStyle.Width(max(width-2, 0)).Render(strings.Join(body, "\n"))
}

// tail returns at most n of the newest finished domains
func (d *Dashboard) tail(n int) []string {
	if len(d.recent) == 0 {
		return []string{dimStyle.Render("nothing finished yet")}
	}
	return d.recent[max(len(d.recent)-n, 0):]
}

func perSecond(count int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f/s", float64(count)/elapsed.Seconds())
}

// OnMetricsUpdate implements application.MetricsObserver
func (d *Dashboard) OnMetricsUpdate(metrics *entity.Metrics) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = metrics
	if !metrics.StartTime.IsZero() {
		d.started = metrics.StartTime
	}
}

// OnDomainCompleted implements application.MetricsObserver
func (d *Dashboard) OnDomainCompleted(result *entity.DomainResult) {
	line := okStyle.Render("✔") + fmt.Sprintf(" %s (%d variants)", result.Domain, len(result.Variants))
	if result.Failure != nil {
		line = failStyle.Render("✘") + fmt.Sprintf(" %s (%s)", result.Domain, result.Failure.Kind)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.recent = append(d.recent, line)
	if len(d.recent) > maxRecent {
		d.recent = d.recent[len(d.recent)-maxRecent:]
	}
}
