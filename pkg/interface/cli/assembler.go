package cli

import (
	"fmt"
	"log/slog"

	"github.com/WangYihang/Typosquat-Generator/pkg/application"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/dns"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/domainservice"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/metrics"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/permutation"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/storage"
	"github.com/WangYihang/Typosquat-Generator/pkg/input"
	"github.com/WangYihang/Typosquat-Generator/pkg/logger"
)

// Assembler assembles all components for the application
type Assembler struct {
	config *Config
	logger *slog.Logger
	loader *input.Loader
}

// Assembly is the wired use case plus the components main drives directly
type Assembly struct {
	UseCase   *application.PipelineUseCase
	Collector *metrics.Collector
	Resolver  *dns.Resolver
	Domains   []string
}

// NewAssembler creates a new assembler
func NewAssembler(config *Config, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{
		config: config,
		logger: log,
		loader: input.NewLoader(),
	}
}

// AssembleUseCase assembles the pipeline use case with all dependencies.
// The output directory is checked here so a bad path fails before any
// domain is dispatched.
func (a *Assembler) AssembleUseCase() (*Assembly, error) {
	if err := storage.CheckOutputDir(a.config.OutputDir); err != nil {
		return nil, err
	}

	domains, err := a.loader.Load(a.config.DomainList)
	if err != nil {
		return nil, fmt.Errorf("failed to load domain list: %w", err)
	}

	fuzzer, err := a.assembleFuzzer()
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()

	// Create DNS resolver
	resolver := dns.NewResolver(dns.Config{
		Servers:   a.config.DNSServers,
		Timeout:   a.config.DNSTimeoutDuration,
		RateLimit: a.config.DNSRate,
		Burst:     a.config.DNSParallel,
		Recorder:  collector,
		Logger:    logger.WithComponent(a.logger, "dns"),
	})

	validator := domainservice.NewValidator(
		domainservice.NewParser(),
		resolver,
		logger.WithComponent(a.logger, "validator"),
	)

	useCase := application.NewPipelineUseCase(
		application.Config{
			NumWorkers:            a.config.NumWorkers,
			Domains:               domains,
			CheckRegistered:       a.config.Registered,
			RegisteredConcurrency: a.config.DNSParallel,
		},
		validator,
		fuzzer,
		resolver,
		storage.NewTaskQueue(len(domains)),
		storage.NewResultQueue(len(domains)),
		storage.NewResultWriter(a.config.OutputDir),
		storage.NewReportWriter(a.config.OutputDir),
		logger.WithComponent(a.logger, "pipeline"),
	)
	useCase.RegisterMetricsObserver(collector)
	resolver.AddRecorder(useCase)

	a.logger.Info("pipeline assembled",
		slog.Int("domains", len(domains)),
		slog.String("output_dir", a.config.OutputDir),
		slog.Any("dns_servers", resolver.Servers()),
		slog.Any("fuzzers", fuzzer.Names()),
	)

	return &Assembly{
		UseCase:   useCase,
		Collector: collector,
		Resolver:  resolver,
		Domains:   domains,
	}, nil
}

// assembleFuzzer applies the algorithm selection and list overrides
func (a *Assembler) assembleFuzzer() (*permutation.Fuzzer, error) {
	var opts []permutation.Option

	if len(a.config.Fuzzers) > 0 {
		opts = append(opts, permutation.WithAlgorithms(a.config.Fuzzers...))
	}

	if a.config.TLDFile != "" {
		tlds, err := a.loader.Load(a.config.TLDFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLD list: %w", err)
		}
		opts = append(opts, permutation.WithTLDs(tlds))
	}

	if a.config.Dictionary != "" {
		words, err := a.loader.Load(a.config.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		opts = append(opts, permutation.WithDictionary(words))
	}

	return permutation.NewFuzzer(opts...)
}
