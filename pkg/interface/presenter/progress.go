package presenter

import (
	"io"

	"github.com/WangYihang/Typosquat-Generator/pkg/common"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressBar renders one bar counting finished input domains
type ProgressBar struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

// NewProgressBar creates a bar for total domains written to out
func NewProgressBar(total int, out io.Writer) *ProgressBar {
	progress := mpb.New(
		mpb.WithOutput(out),
		mpb.WithWidth(common.BarWidth()),
	)

	bar := progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("domains", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("[%d / %d]", decor.WCSyncWidth),
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncSpace), "done",
			),
		),
	)

	return &ProgressBar{progress: progress, bar: bar}
}

// OnMetricsUpdate implements application.MetricsObserver
func (p *ProgressBar) OnMetricsUpdate(metrics *entity.Metrics) {}

// OnDomainCompleted implements application.MetricsObserver
func (p *ProgressBar) OnDomainCompleted(result *entity.DomainResult) {
	p.bar.EwmaIncrement(result.Duration)
}

// Current returns the number of finished domains
func (p *ProgressBar) Current() int64 {
	return p.bar.Current()
}

// Wait flushes the bar. A bar left short by an aborted run is aborted so
// Wait returns.
func (p *ProgressBar) Wait() {
	if !p.bar.Completed() {
		p.bar.Abort(false)
	}
	p.progress.Wait()
}
