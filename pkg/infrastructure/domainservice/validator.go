package domainservice

import (
	"context"
	"log/slog"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/service"
)

// Validator implements service.DomainValidator
type Validator struct {
	parser   service.DomainParser
	resolver service.Resolver
	logger   *slog.Logger
}

// NewValidator creates a new domain validator
func NewValidator(parser service.DomainParser, resolver service.Resolver, logger *slog.Logger) service.DomainValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		parser:   parser,
		resolver: resolver,
		logger:   logger,
	}
}

// Validate parses raw and performs a single MX lookup. Every resolution
// error is reported as FailureNoMXRecord; the cause is only logged.
func (v *Validator) Validate(ctx context.Context, raw string) (*entity.BaseDomain, *entity.Failure) {
	base, err := v.parser.Parse(raw)
	if err != nil {
		v.logger.Debug("invalid domain", slog.String("domain", raw), slog.Any("error", err))
		return nil, &entity.Failure{Domain: raw, Kind: entity.FailureInvalidURL}
	}

	hosts, err := v.resolver.LookupMX(ctx, base.Name())
	if err != nil || len(hosts) == 0 {
		v.logger.Debug("no mx record", slog.String("domain", base.Name()), slog.Any("error", err))
		return nil, &entity.Failure{Domain: raw, Kind: entity.FailureNoMXRecord}
	}

	v.logger.Debug("mx record found", slog.String("domain", base.Name()), slog.Any("mx", hosts))
	return base, nil
}
