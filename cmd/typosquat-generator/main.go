package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/WangYihang/Typosquat-Generator/pkg/common"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/metrics"
	"github.com/WangYihang/Typosquat-Generator/pkg/interface/cli"
	"github.com/WangYihang/Typosquat-Generator/pkg/interface/presenter"
	"github.com/WangYihang/Typosquat-Generator/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Parse command line flags
	config, err := cli.ParseFlags(args)
	if errors.Is(err, cli.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if config.Version {
		fmt.Println(common.PV.String())
		return 0
	}

	log := logger.NewLogger(logger.Config{Level: config.LogLevel, Format: config.LogFormat})
	slog.SetDefault(log)

	// Assemble use case with all dependencies
	assembly, err := cli.NewAssembler(config, log).AssembleUseCase()
	if err != nil {
		log.Error("failed to start", slog.Any("error", err))
		return 1
	}

	// Setup context with cancellation on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.MetricsAddr != "" {
		server, err := metrics.NewServer(config.MetricsAddr, assembly.Collector.Registry(), logger.WithComponent(log, "metrics"))
		if err != nil {
			log.Error("failed to start metrics server", slog.Any("error", err))
			return 1
		}
		server.Start(ctx)
		defer server.Shutdown()
	}

	var (
		report  *entity.JobReport
		execErr error
	)

	switch {
	case config.ShowDashboard:
		dashboard := presenter.NewDashboard()
		assembly.UseCase.RegisterMetricsObserver(dashboard)

		// Run dashboard in TUI mode, use case in background
		p := tea.NewProgram(dashboard, tea.WithAltScreen())
		done := make(chan struct{})
		go func() {
			defer close(done)
			report, execErr = assembly.UseCase.Execute(ctx)
			p.Quit()
		}()

		if _, err := p.Run(); err != nil {
			log.Error("dashboard failed", slog.Any("error", err))
			return 1
		}
		// The dashboard also exits on 'q'; stop the pipeline and wait for it
		stop()
		<-done

	case config.NoProgress:
		report, execErr = assembly.UseCase.Execute(ctx)

	default:
		bar := presenter.NewProgressBar(len(assembly.Domains), os.Stdout)
		assembly.UseCase.RegisterMetricsObserver(bar)
		report, execErr = assembly.UseCase.Execute(ctx)
		bar.Wait()
	}

	if execErr != nil {
		log.Error("pipeline failed", slog.Any("error", execErr))
		return 1
	}

	fmt.Fprintf(os.Stderr, "%d succeeded, %d failed\n", report.Successes, len(report.Failures))
	return 0
}
