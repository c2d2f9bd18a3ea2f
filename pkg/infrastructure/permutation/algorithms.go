package permutation

import (
	"strings"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"golang.org/x/net/publicsuffix"
)

// Algorithm names, in the order variants are generated
const (
	Addition           = "addition"
	Bitsquatting       = "bitsquatting"
	Cyrillic           = "cyrillic"
	Homoglyph          = "homoglyph"
	Hyphenation        = "hyphenation"
	Insertion          = "insertion"
	Omission           = "omission"
	Plural             = "plural"
	Repetition         = "repetition"
	Replacement        = "replacement"
	SubdomainInsertion = "subdomain-insertion"
	Transposition      = "transposition"
	VowelSwap          = "vowel-swap"
	Dictionary         = "dictionary"
	TLDSwap            = "tld-swap"
	Various            = "various"
)

// target is what an algorithm mutates: the Unicode form of the registrable
// label plus the parts around it
type target struct {
	subdomain string
	label     []rune
	tld       string
}

// with rebuilds the full name around a replacement label
func (t *target) with(label string) string {
	return entity.JoinLabels(t.subdomain, label, t.tld)
}

type algorithm struct {
	name     string
	generate func(f *Fuzzer, t *target) []string
}

// labelAlgorithm lifts a label mutation to a full-name generator
func labelAlgorithm(fn func(label []rune) []string) func(*Fuzzer, *target) []string {
	return func(_ *Fuzzer, t *target) []string {
		labels := fn(t.label)
		names := make([]string, 0, len(labels))
		for _, label := range labels {
			names = append(names, t.with(label))
		}
		return names
	}
}

var catalog = []algorithm{
	{Addition, labelAlgorithm(addition)},
	{Bitsquatting, labelAlgorithm(bitsquatting)},
	{Cyrillic, labelAlgorithm(cyrillic)},
	{Homoglyph, labelAlgorithm(homoglyph)},
	{Hyphenation, labelAlgorithm(hyphenation)},
	{Insertion, labelAlgorithm(insertion)},
	{Omission, labelAlgorithm(omission)},
	{Plural, labelAlgorithm(plural)},
	{Repetition, labelAlgorithm(repetition)},
	{Replacement, labelAlgorithm(replacement)},
	{SubdomainInsertion, labelAlgorithm(subdomainInsertion)},
	{Transposition, labelAlgorithm(transposition)},
	{VowelSwap, labelAlgorithm(vowelSwap)},
	{Dictionary, dictionary},
	{TLDSwap, tldSwap},
	{Various, various},
}

func splice(label []rune, i, j int, insert string) string {
	var b strings.Builder
	b.WriteString(string(label[:i]))
	b.WriteString(insert)
	b.WriteString(string(label[j:]))
	return b.String()
}

func addition(label []rune) []string {
	out := make([]string, 0, 36)
	for _, c := range "abcdefghijklmnopqrstuvwxyz0123456789" {
		out = append(out, string(label)+string(c))
	}
	return out
}

func bitsquatting(label []rune) []string {
	var out []string
	for i, c := range label {
		for mask := rune(1); mask < 256; mask <<= 1 {
			flipped := c ^ mask
			if strings.ContainsRune(bitsquatChars, flipped) {
				out = append(out, splice(label, i, i+1, string(flipped)))
			}
		}
	}
	return out
}

// cyrillic swaps every Latin letter for its Cyrillic twin. Labels with a
// character lacking a twin produce nothing.
func cyrillic(label []rune) []string {
	swapped := make([]rune, len(label))
	for i, c := range label {
		r, ok := latinToCyrillic[c]
		if !ok {
			return nil
		}
		swapped[i] = r
	}
	return []string{string(swapped)}
}

func homoglyph(label []rune) []string {
	var out []string
	for i, c := range label {
		for _, g := range glyphs[c] {
			out = append(out, splice(label, i, i+1, g))
		}
	}
	for i := 0; i+1 < len(label); i++ {
		pair := string(label[i : i+2])
		for _, p := range glyphPairs {
			if pair == p.from {
				out = append(out, splice(label, i, i+2, p.to))
			}
		}
	}
	return out
}

func hyphenation(label []rune) []string {
	var out []string
	for i := 1; i < len(label); i++ {
		if label[i] != '-' && label[i-1] != '-' {
			out = append(out, splice(label, i, i, "-"))
		}
	}
	for i, c := range label {
		if c == '-' {
			out = append(out, splice(label, i, i+1, ""))
		}
	}
	return out
}

func insertion(label []rune) []string {
	var out []string
	for i, c := range label {
		for _, keyboard := range keyboards {
			for _, k := range keyboard[c] {
				out = append(out, splice(label, i, i, string(k)))
				out = append(out, splice(label, i+1, i+1, string(k)))
			}
		}
	}
	return out
}

func omission(label []rune) []string {
	out := make([]string, 0, len(label))
	for i := range label {
		out = append(out, splice(label, i, i+1, ""))
	}
	return out
}

func plural(label []rune) []string {
	var out []string
	for i := 2; i < len(label)-2; i++ {
		suffix := "s"
		if strings.ContainsRune("sxz", label[i]) {
			suffix = "es"
		}
		out = append(out, splice(label, i+1, i+1, suffix))
	}
	return out
}

func repetition(label []rune) []string {
	out := make([]string, 0, len(label))
	for i, c := range label {
		out = append(out, splice(label, i, i, string(c)))
	}
	return out
}

func replacement(label []rune) []string {
	var out []string
	for i, c := range label {
		for _, keyboard := range keyboards {
			for _, k := range keyboard[c] {
				out = append(out, splice(label, i, i+1, string(k)))
			}
		}
	}
	return out
}

// subdomainInsertion splits the label with a dot and glues common
// subdomains onto it as if their dot was forgotten
func subdomainInsertion(label []rune) []string {
	var out []string
	for i := 1; i < len(label)-1; i++ {
		if label[i] != '-' && label[i-1] != '-' {
			out = append(out, splice(label, i, i, "."))
		}
	}
	for _, word := range SubdomainWords {
		out = append(out, word+string(label))
	}
	return out
}

func transposition(label []rune) []string {
	var out []string
	for i := 0; i+1 < len(label); i++ {
		if label[i] == label[i+1] {
			continue
		}
		out = append(out, splice(label, i, i+2, string([]rune{label[i+1], label[i]})))
	}
	return out
}

func vowelSwap(label []rune) []string {
	var out []string
	for i, c := range label {
		if !strings.ContainsRune(vowels, c) {
			continue
		}
		for _, v := range vowels {
			if v != c {
				out = append(out, splice(label, i, i+1, string(v)))
			}
		}
	}
	return out
}

func dictionary(f *Fuzzer, t *target) []string {
	label := string(t.label)
	out := make([]string, 0, 4*len(f.dictionary))
	for _, word := range f.dictionary {
		out = append(out,
			t.with(label+"-"+word),
			t.with(label+word),
			t.with(word+"-"+label),
			t.with(word+label),
		)
	}
	return out
}

// tldSwap keeps the label and replaces the public suffix. Entries that are
// not ICANN-managed suffixes are ignored.
func tldSwap(f *Fuzzer, t *target) []string {
	label := string(t.label)
	var out []string
	for _, tld := range f.tlds {
		if tld == t.tld || !isICANNSuffix(tld) {
			continue
		}
		out = append(out, entity.JoinLabels(t.subdomain, label, tld))
	}
	return out
}

func isICANNSuffix(tld string) bool {
	suffix, icann := publicsuffix.PublicSuffix("example." + tld)
	return icann && suffix == tld
}

// various covers mistakes spanning the label/suffix boundary
func various(_ *Fuzzer, t *target) []string {
	label := string(t.label)
	var out []string

	if i := strings.LastIndex(t.tld, "."); i >= 0 {
		out = append(out,
			entity.JoinLabels(t.subdomain, label, t.tld[i+1:]),
			entity.JoinLabels(t.subdomain, label+t.tld),
		)
	} else {
		out = append(out, entity.JoinLabels(t.subdomain, label+t.tld, t.tld))
	}

	if t.tld != "com" && !strings.Contains(t.tld, ".") {
		out = append(out,
			entity.JoinLabels(t.subdomain, label+"-"+t.tld, "com"),
			entity.JoinLabels(t.subdomain, label+t.tld, "com"),
		)
	}

	if t.subdomain != "" {
		flat := strings.ReplaceAll(t.subdomain, ".", "")
		dashed := strings.ReplaceAll(t.subdomain, ".", "-")
		out = append(out,
			entity.JoinLabels(flat+label, t.tld),
			entity.JoinLabels(t.subdomain+label, t.tld),
			entity.JoinLabels(dashed+"-"+label, t.tld),
		)
	}
	return out
}
