package permutation

import (
	"strings"
	"testing"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/infrastructure/domainservice"
	mapset "github.com/deckarep/golang-set/v2"
)

func exampleBase() *entity.BaseDomain {
	return &entity.BaseDomain{Raw: "example.com", Domain: "example", TLD: "com"}
}

func mustFuzzer(t *testing.T, opts ...Option) *Fuzzer {
	t.Helper()
	f, err := NewFuzzer(opts...)
	if err != nil {
		t.Fatalf("NewFuzzer() error = %v", err)
	}
	return f
}

func byDomain(variants []entity.Variant) map[string]string {
	m := make(map[string]string, len(variants))
	for _, v := range variants {
		m[v.Domain] = v.Algorithm
	}
	return m
}

func TestFuzzer_Generate_Properties(t *testing.T) {
	bases := []*entity.BaseDomain{
		exampleBase(),
		{Domain: "google", TLD: "com"},
		{Subdomain: "www", Domain: "tsinghua", TLD: "edu.cn"},
		{Domain: "my-bank", TLD: "co.uk"},
		{Domain: "xn--bcher-kva", TLD: "de"},
	}
	catalogNames := mapset.NewSet(Algorithms()...)
	f := mustFuzzer(t)

	for _, base := range bases {
		t.Run(base.Name(), func(t *testing.T) {
			variants := f.Generate(base)
			if len(variants) == 0 {
				t.Fatal("Generate() returned no variants")
			}

			seen := mapset.NewSet[string]()
			for _, v := range variants {
				if v.Domain == base.Name() {
					t.Errorf("variant equals the base name: %s", v.Domain)
				}
				if !seen.Add(v.Domain) {
					t.Errorf("duplicate variant: %s", v.Domain)
				}
				if !catalogNames.Contains(v.Algorithm) {
					t.Errorf("unknown algorithm tag %q on %s", v.Algorithm, v.Domain)
				}
				if !domainservice.IsValidHostname(v.Domain) {
					t.Errorf("invalid hostname: %s", v.Domain)
				}
			}
		})
	}
}

func TestFuzzer_Generate_Deterministic(t *testing.T) {
	f := mustFuzzer(t)
	first := f.Generate(exampleBase())
	second := f.Generate(exampleBase())

	if len(first) != len(second) {
		t.Fatalf("len differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("variant %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFuzzer_Generate_KnownVariants(t *testing.T) {
	variants := byDomain(mustFuzzer(t).Generate(exampleBase()))

	tests := []struct {
		domain    string
		algorithm string
	}{
		{"examplea.com", Addition},
		{"xample.com", Omission},
		{"examlpe.com", Transposition},
		{"exampli.com", VowelSwap},
		{"examp1e.com", Homoglyph},
		{"examsple.com", Plural},
		{"eexample.com", Repetition},
		{"ex-ample.com", Hyphenation},
		{"exa.mple.com", SubdomainInsertion},
		{"wwwexample.com", SubdomainInsertion},
		{"example-login.com", Dictionary},
		{"verifyexample.com", Dictionary},
		{"example.net", TLDSwap},
		{"example.co.uk", TLDSwap},
		{"examplecom.com", Various},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			got, ok := variants[tt.domain]
			if !ok {
				t.Fatalf("%s not generated", tt.domain)
			}
			if got != tt.algorithm {
				t.Errorf("%s tagged %s, want %s", tt.domain, got, tt.algorithm)
			}
		})
	}
}

func TestFuzzer_Generate_Bitsquatting(t *testing.T) {
	f := mustFuzzer(t, WithAlgorithms(Bitsquatting))
	base := exampleBase()

	variants := f.Generate(base)
	if len(variants) == 0 {
		t.Fatal("bitsquatting produced no variants")
	}

	for _, v := range variants {
		label := strings.TrimSuffix(v.Domain, ".com")
		if len(label) != len(base.Domain) {
			t.Errorf("%s: label length %d, want %d", v.Domain, len(label), len(base.Domain))
		}
		for _, c := range label {
			if !strings.ContainsRune(bitsquatChars, c) {
				t.Errorf("%s: unexpected character %q", v.Domain, c)
			}
		}
	}
}

func TestFuzzer_Generate_SingleCharOmission(t *testing.T) {
	f := mustFuzzer(t, WithAlgorithms(Omission))
	variants := f.Generate(&entity.BaseDomain{Domain: "a", TLD: "com"})
	if len(variants) != 0 {
		t.Errorf("Generate() = %v, want no variants", variants)
	}
}

func TestFuzzer_Generate_Subdomain(t *testing.T) {
	f := mustFuzzer(t)
	variants := byDomain(f.Generate(&entity.BaseDomain{Subdomain: "www", Domain: "example", TLD: "com"}))

	expected := map[string]string{
		"www.xample.com":     Omission,
		"www.example.net":    TLDSwap,
		"www.wwwexample.com": SubdomainInsertion,
		"wwwexample.com":     Various,
		"www-example.com":    Various,
	}
	for domain, algorithm := range expected {
		if got := variants[domain]; got != algorithm {
			t.Errorf("%s tagged %q, want %q", domain, got, algorithm)
		}
	}
}

func TestFuzzer_Generate_FirstAlgorithmWins(t *testing.T) {
	// "exampla" is both a bit flip and a vowel swap of "example"
	f := mustFuzzer(t, WithAlgorithms(VowelSwap, Bitsquatting))
	variants := byDomain(f.Generate(exampleBase()))

	if got := variants["exampla.com"]; got != Bitsquatting {
		t.Errorf("exampla.com tagged %q, want %q", got, Bitsquatting)
	}
}

func TestWithTLDs(t *testing.T) {
	f := mustFuzzer(t,
		WithAlgorithms(TLDSwap),
		WithTLDs([]string{" NET ", "notarealtld", "com", ".org", ""}),
	)

	got := mapset.NewSet[string]()
	for _, v := range f.Generate(exampleBase()) {
		got.Add(v.Domain)
	}

	expected := mapset.NewSet("example.net", "example.org")
	if !got.Equal(expected) {
		t.Errorf("Generate() = %v, want %v", got, expected)
	}
}

func TestWithDictionary(t *testing.T) {
	f := mustFuzzer(t, WithAlgorithms(Dictionary), WithDictionary([]string{"shop"}))

	got := mapset.NewSet[string]()
	for _, v := range f.Generate(exampleBase()) {
		got.Add(v.Domain)
	}

	expected := mapset.NewSet("example-shop.com", "exampleshop.com", "shop-example.com", "shopexample.com")
	if !got.Equal(expected) {
		t.Errorf("Generate() = %v, want %v", got, expected)
	}
}

func TestWithAlgorithms(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected []string
		wantErr  bool
	}{
		{"catalog order kept", []string{"tld-swap", "Omission"}, []string{Omission, TLDSwap}, false},
		{"blank entries ignored", []string{"", " addition "}, []string{Addition}, false},
		{"unknown name", []string{"omission", "teleport"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFuzzer(WithAlgorithms(tt.names...))
			if tt.wantErr {
				if err == nil {
					t.Error("NewFuzzer() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFuzzer() error = %v", err)
			}

			got := f.Names()
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("Names() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCyrillic(t *testing.T) {
	tests := []struct {
		label    string
		expected []string
	}{
		{"ok", []string{"ок"}},
		{"test1", nil},
		{"fun", nil},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := cyrillic([]rune(tt.label))
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("cyrillic(%s) = %v, want %v", tt.label, got, tt.expected)
			}
		})
	}
}

func TestHomoglyph_Pairs(t *testing.T) {
	got := mapset.NewSet(homoglyph([]rune("modern"))...)
	if !got.Contains("modem") {
		t.Error("homoglyph(modern) should contain modem")
	}
}
