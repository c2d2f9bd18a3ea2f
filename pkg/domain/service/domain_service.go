package service

import (
	"context"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
)

// DomainParser parses raw input into a structured domain
type DomainParser interface {
	// Parse strips scheme/path/port and splits the host into subdomain, domain and TLD
	Parse(raw string) (*entity.BaseDomain, error)
}

// Resolver resolves DNS records
type Resolver interface {
	// LookupMX returns the mail exchangers of a domain. An empty answer is an error.
	LookupMX(ctx context.Context, domain string) ([]string, error)
	// Exists reports whether the domain has an A, AAAA or NS record
	Exists(ctx context.Context, domain string) (bool, error)
}

// DomainValidator checks that a raw domain parses and accepts mail
type DomainValidator interface {
	// Validate returns the parsed domain, or the reason it was rejected
	Validate(ctx context.Context, raw string) (*entity.BaseDomain, *entity.Failure)
}

// PermutationGenerator produces typosquatting variants of a domain
type PermutationGenerator interface {
	// Generate returns the deduplicated variants in a stable order
	Generate(base *entity.BaseDomain) []entity.Variant
}
