package aggregate

import (
	"context"
	"time"

	appLog "mtlfest/internal/log"
	"mtlfest/internal/model"
	"mtlfest/internal/source"
)

// Aggregator is what the rest of the application calls for event data.
// Each Collect runs the full normalize-then-filter pipeline; nothing is
// cached between calls.
type Aggregator struct {
	normalizer *Normalizer
	loc        *time.Location
	maxEvents  int
	now        func() time.Time
}

// NewAggregator builds the facade. maxEvents caps the returned list; the
// first maxEvents events in priority order survive, there is no ranking.
func NewAggregator(normalizer *Normalizer, loc *time.Location, maxEvents int) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Aggregator{
		normalizer: normalizer,
		loc:        loc,
		maxEvents:  maxEvents,
		now:        time.Now,
	}
}

// Collect returns the current valid event list. When every source fails or
// everything gets filtered out, the static fallback list is returned
// as-is, so callers never receive an empty result while a fallback exists.
func (a *Aggregator) Collect(ctx context.Context) []model.Event {
	now := a.now().In(a.loc)

	raw := a.normalizer.Collect(ctx)
	valid := FilterValid(raw, now, a.loc)

	if len(valid) == 0 {
		fallbacksServed.Inc()
		appLog.Warn("no valid events from any source, serving fallback list",
			"raw_count", len(raw))
		return source.FallbackEvents()
	}

	if len(valid) > a.maxEvents {
		valid = valid[:a.maxEvents]
	}

	appLog.Info("aggregation completed",
		"raw_count", len(raw), "valid_count", len(valid))
	return valid
}
