package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/storage"
	"github.com/WangYihang/Typosquat-Generator/pkg/logger"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}
	return &Config{
		DomainList:         writeFile(t, dir, "domains.txt", "# inputs\nnot a domain!!\n\nhttps://\nnot a domain!!\n"),
		OutputDir:          out,
		NumWorkers:         2,
		DNSServers:         []string{"127.0.0.1:1"},
		DNSTimeoutDuration: 100 * time.Millisecond,
		DNSParallel:        4,
		LogLevel:           "info",
	}
}

func TestAssembler_RunsInvalidOnlyInput(t *testing.T) {
	cfg := testConfig(t)
	assembly, err := NewAssembler(cfg, logger.Discard()).AssembleUseCase()
	if err != nil {
		t.Fatalf("AssembleUseCase() error = %v", err)
	}
	if len(assembly.Domains) != 2 {
		t.Fatalf("Domains = %v, want 2 unique entries", assembly.Domains)
	}
	if servers := assembly.Resolver.Servers(); len(servers) != 1 || servers[0] != "127.0.0.1:1" {
		t.Errorf("Servers() = %v", servers)
	}

	report, err := assembly.UseCase.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if report.Successes != 0 || len(report.Failures) != 2 {
		t.Errorf("report = %+v", report)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, storage.FailedDomainsFile))
	if err != nil {
		t.Fatalf("failure report missing: %v", err)
	}
	if string(data) != "not a domain!! is not a valid URL.\nhttps:// is not a valid URL.\n" {
		t.Errorf("failure report = %q", data)
	}
}

func TestAssembler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, cfg *Config)
		is     error
	}{
		{"missing output dir", func(t *testing.T, cfg *Config) {
			cfg.OutputDir = filepath.Join(t.TempDir(), "missing")
		}, storage.ErrWrite},
		{"missing domain list", func(t *testing.T, cfg *Config) {
			cfg.DomainList = filepath.Join(t.TempDir(), "missing.txt")
		}, os.ErrNotExist},
		{"missing tld file", func(t *testing.T, cfg *Config) {
			cfg.TLDFile = filepath.Join(t.TempDir(), "tlds.txt")
		}, os.ErrNotExist},
		{"unknown fuzzer", func(t *testing.T, cfg *Config) {
			cfg.Fuzzers = []string{"teleport"}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(t, cfg)

			_, err := NewAssembler(cfg, logger.Discard()).AssembleUseCase()
			if err == nil {
				t.Fatal("AssembleUseCase() expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("AssembleUseCase() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestAssembler_ListOverrides(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	cfg.TLDFile = writeFile(t, dir, "tlds.txt", "net\n# comment\norg\n")
	cfg.Dictionary = writeFile(t, dir, "words.txt", "shop\n")
	cfg.Fuzzers = []string{"tld-swap", "dictionary"}

	fuzzer, err := NewAssembler(cfg, logger.Discard()).assembleFuzzer()
	if err != nil {
		t.Fatalf("assembleFuzzer() error = %v", err)
	}
	if names := fuzzer.Names(); len(names) != 2 || names[0] != "dictionary" || names[1] != "tld-swap" {
		t.Errorf("Names() = %v", names)
	}
}
