package entity

import (
	"fmt"
	"strings"
	"time"
)

// BaseDomain represents a validated input domain split into its parts
type BaseDomain struct {
	Raw       string
	Subdomain string
	Domain    string
	TLD       string
}

// Name returns the full domain name (subdomain.domain.tld)
func (b *BaseDomain) Name() string {
	return JoinLabels(b.Subdomain, b.Domain, b.TLD)
}

// JoinLabels joins the non-empty parts with dots
func JoinLabels(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ".")
}

// Variant represents one generated permutation of a base domain
type Variant struct {
	Algorithm  string `json:"algorithm"`
	Domain     string `json:"domain"`
	Registered bool   `json:"registered,omitempty"`
}

// FailureKind classifies why a base domain was rejected
type FailureKind int

const (
	FailureInvalidURL FailureKind = iota + 1
	FailureNoMXRecord
)

func (k FailureKind) String() string {
	switch k {
	case FailureInvalidURL:
		return "invalid_url"
	case FailureNoMXRecord:
		return "no_mx_record"
	default:
		return "unknown"
	}
}

// Failure is a per-domain rejection. It is recorded, never raised.
type Failure struct {
	Domain string
	Kind   FailureKind
}

// Message returns the line written to the failure report
func (f *Failure) Message() string {
	switch f.Kind {
	case FailureInvalidURL:
		return fmt.Sprintf("%s is not a valid URL.", f.Domain)
	case FailureNoMXRecord:
		return fmt.Sprintf("%s has no MX record", f.Domain)
	default:
		return fmt.Sprintf("%s failed", f.Domain)
	}
}

// Task represents one input domain to process
type Task struct {
	Index  int
	Domain string
}

// DomainResult is the outcome of processing a single task
type DomainResult struct {
	Index      int
	Domain     string
	Base       *BaseDomain
	Variants   []Variant
	OutputPath string
	Failure    *Failure
	Duration   time.Duration
}

// Succeeded reports whether the domain was validated and its variants persisted
func (r *DomainResult) Succeeded() bool {
	return r.Failure == nil
}

// Metrics represents pipeline metrics
type Metrics struct {
	TotalDomains    int
	Processed       int64
	Succeeded       int64
	InvalidURL      int64
	NoMX            int64
	VariantsWritten int64
	DNSQueries      int64
	ActiveWorkers   int
	TotalWorkers    int
	StartTime       time.Time
	LastUpdateTime  time.Time
	ActiveDomains   []string
}
