package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.txt")
	testData := `
example.com
# comment
not a domain!!
  spaces.com  
example.com
`
	if err := os.WriteFile(path, []byte(testData), 0o644); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	domains, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []string{"example.com", "not a domain!!", "spaces.com"}
	if len(domains) != len(expected) {
		t.Fatalf("Load = %v, want %v", domains, expected)
	}
	for i := range expected {
		if domains[i] != expected[i] {
			t.Errorf("domains[%d] = %q, want %q", i, domains[i], expected[i])
		}
	}
}

func TestLoaderLoad_Missing(t *testing.T) {
	if _, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestLoaderRead_Empty(t *testing.T) {
	entries, err := NewLoader().Read(strings.NewReader("\n# only comments\n\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Read = %v, want empty", entries)
	}
}
