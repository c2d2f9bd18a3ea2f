package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/permutation"
	"github.com/WangYihang/Typosquat-Generator/pkg/logger"
	"github.com/jessevdk/go-flags"
)

// ErrHelp is returned when the help text was printed
var ErrHelp = errors.New("help requested")

// Config holds all application configuration
type Config struct {
	// Input/Output
	DomainList string `short:"d" long:"domain-list" description:"File with one base domain per line"`
	OutputDir  string `short:"o" long:"output-dir" description:"Existing directory receiving {domain}.csv and failed_domains.txt"`

	// Generation
	NumWorkers int      `short:"n" long:"workers" description:"Number of concurrent workers (default: number of CPUs)"`
	Fuzzers    []string `long:"fuzzers" description:"Comma separated algorithms to run (default: all)"`
	TLDFile    string   `long:"tld" description:"File with TLDs replacing the built-in tld-swap list"`
	Dictionary string   `long:"dictionary" description:"File with keywords replacing the built-in dictionary"`

	// DNS
	Registered  bool     `short:"r" long:"registered" description:"Only keep variants that resolve (A, AAAA or NS)"`
	DNSServers  []string `long:"dns-server" description:"DNS server host[:port], repeatable (default: /etc/resolv.conf)"`
	DNSTimeout  int      `long:"dns-timeout" description:"DNS query timeout in seconds" default:"5"`
	DNSRate     float64  `long:"dns-rate" description:"Maximum DNS queries per second, 0 for unlimited" default:"0"`
	DNSParallel int      `long:"dns-parallel" description:"Registration lookups in flight per domain" default:"8"`

	// Real DNS timeout duration
	DNSTimeoutDuration time.Duration

	// UI
	ShowDashboard bool   `long:"dashboard" description:"Show interactive TUI dashboard"`
	NoProgress    bool   `long:"no-progress" description:"Disable the progress bar"`
	MetricsAddr   string `long:"metrics-addr" description:"Serve /metrics and /healthz on this address"`

	// Logging
	LogLevel  string `long:"log-level" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	LogFormat string `long:"log-format" description:"Log format" choice:"text" choice:"json" default:"text"`

	Version bool `short:"v" long:"version" description:"Print version and exit"`
}

// ParseFlags parses command line flags
func ParseFlags(args []string) (*Config, error) {
	cfg := &Config{}

	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "-d domains.txt -o output/ [OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return nil, ErrHelp
		}
		return nil, err
	}

	if cfg.Version {
		return cfg, nil
	}

	// Convert timeouts
	cfg.DNSTimeoutDuration = time.Duration(cfg.DNSTimeout) * time.Second

	// Accept both --fuzzers a,b and repeated --fuzzers
	cfg.Fuzzers = splitList(cfg.Fuzzers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DomainList == "" {
		return fmt.Errorf("the required flag `-d, --domain-list' was not specified")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("the required flag `-o, --output-dir' was not specified")
	}

	if c.NumWorkers < 0 {
		return fmt.Errorf("number of workers must be >= 0, got %d", c.NumWorkers)
	}

	if c.DNSTimeoutDuration <= 0 {
		return fmt.Errorf("DNS timeout must be > 0, got %s", c.DNSTimeoutDuration)
	}

	if c.DNSRate < 0 {
		return fmt.Errorf("DNS rate must be >= 0, got %f", c.DNSRate)
	}

	if c.DNSParallel <= 0 {
		return fmt.Errorf("DNS parallelism must be > 0, got %d", c.DNSParallel)
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if _, err := permutation.NewFuzzer(permutation.WithAlgorithms(c.Fuzzers...)); len(c.Fuzzers) > 0 && err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(permutation.Algorithms(), ", "))
	}

	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
