package application

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/repository"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/service"
	mapset "github.com/deckarep/golang-set/v2"
)

// PipelineUseCase orchestrates validation, generation and persistence of
// every input domain
type PipelineUseCase struct {
	config Config

	// Services
	validator service.DomainValidator
	generator service.PermutationGenerator
	resolver  service.Resolver

	// Repositories
	taskQueue    repository.TaskQueue
	resultQueue  repository.ResultQueue
	resultWriter repository.ResultWriter
	reportWriter repository.ReportWriter

	logger *slog.Logger

	// State
	metrics          *entity.Metrics
	metricsLock      sync.RWMutex
	workers          []*Worker
	wg               sync.WaitGroup
	metricsObservers []MetricsObserver
	cancel           context.CancelFunc
	fatalOnce        sync.Once
	fatalErr         error
	outputs          mapset.Set[string] // base names already claimed by a worker
}

// Config holds the use case configuration
type Config struct {
	// NumWorkers defaults to the number of logical CPUs
	NumWorkers int
	// Domains are the raw input lines, in dispatch order
	Domains []string
	// CheckRegistered annotates each variant with whether it resolves
	CheckRegistered bool
	// RegisteredConcurrency bounds the lookups in flight per domain
	RegisteredConcurrency int
}

// MetricsObserver observes metrics changes
type MetricsObserver interface {
	OnMetricsUpdate(metrics *entity.Metrics)
	// OnDomainCompleted is called once per finished input domain
	OnDomainCompleted(result *entity.DomainResult)
}

// NewPipelineUseCase creates a new pipeline use case. The resolver is
// only used when Config.CheckRegistered is set and may be nil otherwise.
func NewPipelineUseCase(
	config Config,
	validator service.DomainValidator,
	generator service.PermutationGenerator,
	resolver service.Resolver,
	taskQueue repository.TaskQueue,
	resultQueue repository.ResultQueue,
	resultWriter repository.ResultWriter,
	reportWriter repository.ReportWriter,
	logger *slog.Logger,
) *PipelineUseCase {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.RegisteredConcurrency <= 0 {
		config.RegisteredConcurrency = 8
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PipelineUseCase{
		config:       config,
		validator:    validator,
		generator:    generator,
		resolver:     resolver,
		taskQueue:    taskQueue,
		resultQueue:  resultQueue,
		resultWriter: resultWriter,
		reportWriter: reportWriter,
		logger:       logger,
		metrics: &entity.Metrics{
			TotalDomains: len(config.Domains),
			TotalWorkers: config.NumWorkers,
		},
		metricsObservers: make([]MetricsObserver, 0),
		outputs:          mapset.NewSet[string](),
	}
}

// RegisterMetricsObserver registers a metrics observer
func (uc *PipelineUseCase) RegisterMetricsObserver(observer MetricsObserver) {
	uc.metricsObservers = append(uc.metricsObservers, observer)
}

// notifyMetricsObservers notifies all registered observers
func (uc *PipelineUseCase) notifyMetricsObservers() {
	metrics := uc.GetMetrics()
	for _, observer := range uc.metricsObservers {
		observer.OnMetricsUpdate(metrics)
	}
}

// Execute processes every domain and writes the failure report once all
// of them are done. A write failure aborts the run: no new domain is
// dispatched, in-flight domains finish and the error is returned without
// a report.
func (uc *PipelineUseCase) Execute(ctx context.Context) (*entity.JobReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	uc.cancel = cancel

	uc.metricsLock.Lock()
	uc.metrics.StartTime = time.Now()
	uc.metricsLock.Unlock()

	if err := uc.enqueueDomains(); err != nil {
		return nil, err
	}

	results := make([]*entity.DomainResult, len(uc.config.Domains))
	collected := make(chan struct{})
	go uc.collectResults(results, collected)

	tickerDone := make(chan struct{})
	go uc.updateMetricsPeriodically(ctx, tickerDone)

	uc.startWorkers(ctx)
	uc.wg.Wait()
	uc.resultQueue.Close()
	<-collected
	close(tickerDone)

	uc.notifyMetricsObservers()

	if uc.fatalErr != nil {
		return nil, uc.fatalErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := entity.NewJobReport(results)
	path, err := uc.reportWriter.WriteReport(report)
	if err != nil {
		return nil, fmt.Errorf("failed to write failure report: %w", err)
	}

	uc.logger.Info("pipeline finished",
		slog.Int("domains", report.Total()),
		slog.Int("succeeded", report.Successes),
		slog.Int("failed", len(report.Failures)),
		slog.String("report", path),
		slog.Duration("elapsed", time.Since(uc.metrics.StartTime)),
	)
	return report, nil
}

// enqueueDomains dispatches every input line and closes the queue
func (uc *PipelineUseCase) enqueueDomains() error {
	defer uc.taskQueue.Close()

	for i, domain := range uc.config.Domains {
		task := &entity.Task{Index: i, Domain: domain}
		if !uc.taskQueue.Enqueue(task) {
			return fmt.Errorf("failed to enqueue domain: %s", domain)
		}
	}
	return nil
}

// collectResults stores results by dispatch index until the queue closes
func (uc *PipelineUseCase) collectResults(results []*entity.DomainResult, done chan<- struct{}) {
	defer close(done)

	for {
		result, ok := uc.resultQueue.Receive()
		if !ok {
			return
		}
		if result.Index >= 0 && result.Index < len(results) {
			results[result.Index] = result
		}
		for _, observer := range uc.metricsObservers {
			observer.OnDomainCompleted(result)
		}
	}
}

// updateMetricsPeriodically periodically updates and notifies observers
func (uc *PipelineUseCase) updateMetricsPeriodically(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			uc.notifyMetricsObservers()
		}
	}
}

// startWorkers starts all worker goroutines
func (uc *PipelineUseCase) startWorkers(ctx context.Context) {
	workers := make([]*Worker, uc.config.NumWorkers)
	for i := 0; i < uc.config.NumWorkers; i++ {
		worker := &Worker{
			id:           i,
			useCase:      uc,
			taskQueue:    uc.taskQueue,
			resultQueue:  uc.resultQueue,
			validator:    uc.validator,
			generator:    uc.generator,
			resolver:     uc.resolver,
			resultWriter: uc.resultWriter,
			logger:       uc.logger.With(slog.Int("worker", i)),
		}
		workers[i] = worker
		uc.wg.Add(1)
		go worker.Run(ctx, &uc.wg)
	}

	uc.metricsLock.Lock()
	uc.workers = workers
	uc.metricsLock.Unlock()
}

// abort records the first fatal error and stops dispatching
func (uc *PipelineUseCase) abort(err error) {
	uc.fatalOnce.Do(func() {
		uc.fatalErr = err
		uc.logger.Error("aborting pipeline", slog.Any("error", err))
		uc.cancel()
	})
}

// GetMetrics returns a snapshot of the current metrics
func (uc *PipelineUseCase) GetMetrics() *entity.Metrics {
	uc.metricsLock.RLock()
	startTime := uc.metrics.StartTime
	workers := uc.workers
	uc.metricsLock.RUnlock()

	metrics := &entity.Metrics{
		TotalDomains:    uc.metrics.TotalDomains,
		TotalWorkers:    uc.metrics.TotalWorkers,
		StartTime:       startTime,
		LastUpdateTime:  time.Now(),
		Processed:       atomic.LoadInt64(&uc.metrics.Processed),
		Succeeded:       atomic.LoadInt64(&uc.metrics.Succeeded),
		InvalidURL:      atomic.LoadInt64(&uc.metrics.InvalidURL),
		NoMX:            atomic.LoadInt64(&uc.metrics.NoMX),
		VariantsWritten: atomic.LoadInt64(&uc.metrics.VariantsWritten),
		DNSQueries:      atomic.LoadInt64(&uc.metrics.DNSQueries),
	}

	activeWorkers := 0
	var activeDomains []string
	for _, worker := range workers {
		if worker != nil && worker.IsActive() {
			activeWorkers++
			if domain := worker.GetCurrentDomain(); domain != "" {
				activeDomains = append(activeDomains, domain)
			}
		}
	}
	metrics.ActiveWorkers = activeWorkers
	metrics.ActiveDomains = activeDomains

	return metrics
}

// ObserveQuery counts DNS exchanges for the dashboard
func (uc *PipelineUseCase) ObserveQuery(query *entity.DNSQuery, duration time.Duration) {
	atomic.AddInt64(&uc.metrics.DNSQueries, 1)
}

// recordResult updates the counters for a finished domain
func (uc *PipelineUseCase) recordResult(result *entity.DomainResult) {
	atomic.AddInt64(&uc.metrics.Processed, 1)
	if result.Failure == nil {
		atomic.AddInt64(&uc.metrics.Succeeded, 1)
		atomic.AddInt64(&uc.metrics.VariantsWritten, int64(len(result.Variants)))
		return
	}
	switch result.Failure.Kind {
	case entity.FailureInvalidURL:
		atomic.AddInt64(&uc.metrics.InvalidURL, 1)
	case entity.FailureNoMXRecord:
		atomic.AddInt64(&uc.metrics.NoMX, 1)
	}
}
