package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Loader reads newline-separated lists such as the domain list, TLD
// overrides and dictionary files
type Loader struct {
	dedup bool
}

// NewLoader creates a loader that drops repeated lines
func NewLoader() *Loader {
	return &Loader{dedup: true}
}

// Load reads entries from a file
func (l *Loader) Load(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	entries, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return entries, nil
}

// Read returns trimmed entries in file order. Blank lines and lines
// starting with # are skipped; repeats keep their first position.
func (l *Loader) Read(r io.Reader) ([]string, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	entries := make([]string, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if l.dedup && !seen.Add(line) {
			continue
		}
		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
