package domainservice

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/service"
	"github.com/jpillora/go-tld"
	"golang.org/x/net/idna"
)

// ErrInvalidDomain is returned for input that does not parse into domain+TLD
var ErrInvalidDomain = errors.New("invalid domain")

// Parser implements service.DomainParser using go-tld
type Parser struct{}

// NewParser creates a new domain parser
func NewParser() service.DomainParser {
	return &Parser{}
}

// Parse accepts a bare host or a URL and splits its host into subdomain,
// registrable label and public suffix.
func (p *Parser) Parse(raw string) (*entity.BaseDomain, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDomain)
	}

	if !strings.Contains(input, "://") {
		input = "http://" + input
	}

	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDomain, raw, err)
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return nil, fmt.Errorf("%w: %q: no host", ErrInvalidDomain, raw)
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDomain, raw, err)
	}

	if !IsValidHostname(ascii) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}

	parsed, err := tld.Parse("http://" + ascii)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDomain, raw, err)
	}

	if parsed.Domain == "" || parsed.TLD == "" {
		return nil, fmt.Errorf("%w: %q: missing domain or TLD", ErrInvalidDomain, raw)
	}

	return &entity.BaseDomain{
		Raw:       raw,
		Subdomain: parsed.Subdomain,
		Domain:    parsed.Domain,
		TLD:       parsed.TLD,
	}, nil
}

// IsValidHostname checks an ASCII hostname: at least two labels, each 1-63
// characters of [a-z0-9-] not starting or ending with a hyphen, a
// non-numeric last label and at most 253 characters in total.
func IsValidHostname(host string) bool {
	if len(host) < 3 || len(host) > 253 {
		return false
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}

	last := labels[len(labels)-1]
	return len(last) >= 2 && strings.IndexFunc(last, func(r rune) bool {
		return r < '0' || r > '9'
	}) >= 0
}

func isValidLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '-' {
			continue
		}
		return false
	}
	return true
}
