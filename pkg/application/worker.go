package application

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/repository"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/service"
	"golang.org/x/sync/errgroup"
)

// Worker processes one input domain at a time
type Worker struct {
	id           int
	useCase      *PipelineUseCase
	taskQueue    repository.TaskQueue
	resultQueue  repository.ResultQueue
	validator    service.DomainValidator
	generator    service.PermutationGenerator
	resolver     service.Resolver
	resultWriter repository.ResultWriter
	logger       *slog.Logger

	currentDomain atomic.Value // stores string
	isActive      atomic.Bool
}

// Run starts the worker processing loop. It stops when the queue is
// drained or ctx is done; a task already dequeued is always finished.
func (w *Worker) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, ok := w.taskQueue.Dequeue()
		if !ok {
			return
		}

		if result := w.processTask(ctx, task); result != nil {
			w.useCase.recordResult(result)
			w.resultQueue.Send(result)
		}
	}
}

// IsActive returns whether the worker is currently processing a task
func (w *Worker) IsActive() bool {
	return w.isActive.Load()
}

// GetCurrentDomain returns the domain currently being processed
func (w *Worker) GetCurrentDomain() string {
	if v := w.currentDomain.Load(); v != nil {
		return v.(string)
	}
	return ""
}

// processTask validates, expands and persists a single domain. It returns
// nil when persisting failed and the run was aborted.
func (w *Worker) processTask(ctx context.Context, task *entity.Task) *entity.DomainResult {
	w.isActive.Store(true)
	w.currentDomain.Store(task.Domain)
	defer func() {
		w.isActive.Store(false)
		w.currentDomain.Store("")
	}()

	start := time.Now()
	result := &entity.DomainResult{
		Index:  task.Index,
		Domain: task.Domain,
	}

	base, failure := w.validator.Validate(ctx, task.Domain)
	if failure != nil {
		result.Failure = failure
		result.Duration = time.Since(start)
		w.logger.Info("domain rejected",
			slog.String("domain", task.Domain),
			slog.String("reason", failure.Kind.String()),
		)
		return result
	}
	result.Base = base

	variants := w.generator.Generate(base)
	if w.useCase.config.CheckRegistered && w.resolver != nil {
		variants = w.keepRegistered(ctx, variants)
		// A canceled run leaves no file behind for this domain
		if ctx.Err() != nil {
			return nil
		}
	}

	// Inputs that normalise to the same name share one file, written once
	path := w.resultWriter.Path(base.Name())
	if w.useCase.outputs.Add(base.Name()) {
		var err error
		if path, err = w.resultWriter.Write(base.Name(), variants); err != nil {
			w.useCase.abort(err)
			return nil
		}
	} else {
		w.logger.Warn("result file already written for this domain",
			slog.String("input", task.Domain),
			slog.String("domain", base.Name()),
			slog.String("output", path),
		)
	}

	result.Variants = variants
	result.OutputPath = path
	result.Duration = time.Since(start)

	w.logger.Info("domain processed",
		slog.String("domain", base.Name()),
		slog.Int("variants", len(variants)),
		slog.String("output", path),
		slog.Duration("elapsed", result.Duration),
	)
	return result
}

// keepRegistered marks variants that resolve and drops the rest. Lookup
// errors count as unregistered.
func (w *Worker) keepRegistered(ctx context.Context, variants []entity.Variant) []entity.Variant {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.useCase.config.RegisteredConcurrency)

	for i := range variants {
		g.Go(func() error {
			exists, err := w.resolver.Exists(ctx, variants[i].Domain)
			if err != nil {
				w.logger.Debug("registration check failed",
					slog.String("variant", variants[i].Domain),
					slog.Any("error", err),
				)
				return nil
			}
			variants[i].Registered = exists
			return nil
		})
	}
	_ = g.Wait()

	registered := make([]entity.Variant, 0, len(variants))
	for _, variant := range variants {
		if variant.Registered {
			registered = append(registered, variant)
		}
	}
	return registered
}
