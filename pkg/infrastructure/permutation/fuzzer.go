package permutation

import (
	"fmt"
	"strings"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/service"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/domainservice"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/net/idna"
)

// Fuzzer implements service.PermutationGenerator
type Fuzzer struct {
	algorithms []algorithm
	tlds       []string
	dictionary []string
}

// Option configures a Fuzzer
type Option func(*Fuzzer) error

// WithAlgorithms restricts generation to the named algorithms. Catalog order
// is kept regardless of the order given.
func WithAlgorithms(names ...string) Option {
	return func(f *Fuzzer) error {
		wanted := mapset.NewThreadUnsafeSet[string]()
		for _, name := range names {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if !isKnown(name) {
				return fmt.Errorf("unknown fuzzer: %s", name)
			}
			wanted.Add(name)
		}

		selected := make([]algorithm, 0, wanted.Cardinality())
		for _, alg := range catalog {
			if wanted.Contains(alg.name) {
				selected = append(selected, alg)
			}
		}
		f.algorithms = selected
		return nil
	}
}

// WithTLDs replaces the tld-swap list
func WithTLDs(tlds []string) Option {
	return func(f *Fuzzer) error {
		f.tlds = normalizeWords(tlds, ".")
		return nil
	}
}

// WithDictionary replaces the dictionary keywords
func WithDictionary(words []string) Option {
	return func(f *Fuzzer) error {
		f.dictionary = normalizeWords(words, "")
		return nil
	}
}

// NewFuzzer creates a generator running every algorithm by default
func NewFuzzer(opts ...Option) (*Fuzzer, error) {
	f := &Fuzzer{
		algorithms: catalog,
		tlds:       DefaultTLDs,
		dictionary: DefaultDictionary,
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Algorithms returns the full catalog of algorithm names
func Algorithms() []string {
	names := make([]string, 0, len(catalog))
	for _, alg := range catalog {
		names = append(names, alg.name)
	}
	return names
}

// Names returns the algorithms this fuzzer runs
func (f *Fuzzer) Names() []string {
	names := make([]string, 0, len(f.algorithms))
	for _, alg := range f.algorithms {
		names = append(names, alg.name)
	}
	return names
}

// Generate returns the variants of base in algorithm order. Every variant
// is a valid ASCII hostname, appears once (first algorithm wins) and
// differs from the base name.
func (f *Fuzzer) Generate(base *entity.BaseDomain) []entity.Variant {
	label := base.Domain
	if unicode, err := idna.Lookup.ToUnicode(label); err == nil {
		label = unicode
	}

	t := &target{
		subdomain: base.Subdomain,
		label:     []rune(label),
		tld:       base.TLD,
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	seen.Add(base.Name())

	variants := make([]entity.Variant, 0)
	for _, alg := range f.algorithms {
		for _, candidate := range alg.generate(f, t) {
			name, ok := encode(candidate)
			if !ok || !seen.Add(name) {
				continue
			}
			variants = append(variants, entity.Variant{
				Algorithm: alg.name,
				Domain:    name,
			})
		}
	}
	return variants
}

// encode converts a candidate to its lowercase ASCII form and reports
// whether it is a usable hostname
func encode(candidate string) (string, bool) {
	ascii, err := idna.Lookup.ToASCII(candidate)
	if err != nil {
		return "", false
	}
	ascii = strings.ToLower(ascii)
	return ascii, domainservice.IsValidHostname(ascii)
}

func isKnown(name string) bool {
	for _, alg := range catalog {
		if alg.name == name {
			return true
		}
	}
	return false
}

func normalizeWords(words []string, trim string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if trim != "" {
			word = strings.Trim(word, trim)
		}
		if word != "" {
			out = append(out, word)
		}
	}
	return out
}

var _ service.PermutationGenerator = (*Fuzzer)(nil)
