package usecase

import (
	"fmt"
	"strings"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// AvailabilityStrategy is the policy determining overall system availability
// from per-provider health signals.
type AvailabilityStrategy string

// Available availability strategies.
const (
	// StrategyNone is the zero value. It cannot answer a health check and is
	// rejected at startup validation.
	StrategyNone AvailabilityStrategy = ""

	// StrategyAny reports available while at least one provider is up.
	StrategyAny AvailabilityStrategy = "any"

	// StrategyAll reports available only while every provider is up.
	StrategyAll AvailabilityStrategy = "all"
)

// IsValid checks if the strategy can answer a health check.
func (s AvailabilityStrategy) IsValid() bool {
	switch s {
	case StrategyAny, StrategyAll:
		return true
	default:
		return false
	}
}

// ParseAvailabilityStrategy converts a configuration string to a strategy.
// Unknown or empty values are a configuration error, surfaced at startup.
func ParseAvailabilityStrategy(s string) (AvailabilityStrategy, error) {
	strategy := AvailabilityStrategy(strings.ToLower(strings.TrimSpace(s)))
	if !strategy.IsValid() {
		return StrategyNone, fmt.Errorf("%w: %q (want %q or %q)",
			domain.ErrStrategyNotConfigured, s, StrategyAny, StrategyAll)
	}
	return strategy, nil
}

// EvaluateAvailability folds per-provider health flags into the overall
// boolean under the given strategy.
//
// When every provider is down the answer is false regardless of strategy;
// an empty registry counts as all-down, since there is nothing to search.
// Otherwise Any is satisfied by a single healthy provider and All requires
// zero unhealthy ones. An invalid strategy returns ErrStrategyNotConfigured
// as a backstop; startup validation should have rejected it already.
func EvaluateAvailability(strategy AvailabilityStrategy, unavailable, total int) (bool, error) {
	if unavailable == total {
		return false, nil
	}

	switch strategy {
	case StrategyAny:
		return true, nil
	case StrategyAll:
		return unavailable == 0, nil
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrStrategyNotConfigured, strategy)
	}
}
