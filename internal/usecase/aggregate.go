package usecase

import (
	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// AggregateRoutes merges per-provider result batches into the final route
// set: concatenate, deduplicate, then filter.
//
// Behavior:
//   - Batches are concatenated in the order given, which the orchestrator
//     fixes to the provider registry order — not response-arrival order —
//     so the first-occurrence dedup rule is deterministic across runs.
//   - A route duplicates another when they agree on (origin, destination,
//     originDateTime, destinationDateTime, price); the first wins.
//   - Filtering applies each present filter field; absent fields pass.
//   - Does NOT mutate the input batches.
func AggregateRoutes(batches [][]domain.Route, filters *domain.SearchFilters) []domain.Route {
	total := 0
	for _, batch := range batches {
		total += len(batch)
	}

	merged := make([]domain.Route, 0, total)
	for _, batch := range batches {
		merged = append(merged, batch...)
	}

	return domain.FilterRoutes(domain.DedupeRoutes(merged), filters)
}
