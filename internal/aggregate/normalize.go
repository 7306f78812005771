// Package aggregate turns the configured sources into one filtered,
// bounded event list.
package aggregate

import (
	"context"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/model"
	"mtlfest/internal/source"
)

// Normalizer invokes every configured source in its fixed priority order
// and concatenates the results. Failure is isolated per source: an adapter
// that errors contributes zero events and never aborts the others.
// Duplicate names across sources are kept; they carry different Source tags.
type Normalizer struct {
	sources []source.Source
}

// NewNormalizer takes the sources in priority order. The order given here
// is the order of the final concatenation, always.
func NewNormalizer(sources []source.Source) *Normalizer {
	return &Normalizer{sources: sources}
}

// Collect runs all sources and returns their combined output. The result
// may contain malformed records; validity filtering is the caller's job.
func (n *Normalizer) Collect(ctx context.Context) []model.Event {
	all := make([]model.Event, 0)

	for _, src := range n.sources {
		if !src.Enabled() {
			appLog.Debug("source disabled, skipping", "source", src.Name())
			continue
		}

		events, err := src.Fetch(ctx)
		if err != nil {
			sourceFailures.WithLabelValues(src.Name()).Inc()
			appLog.Warn("source failed, continuing without it",
				"source", src.Name(), "err", err.Error())
			continue
		}

		eventsBySource.WithLabelValues(src.Name()).Add(float64(len(events)))
		all = append(all, n.inferCategories(events)...)
	}

	return all
}

// inferCategories backfills the category on events whose source supplied
// none. All adapters share one classifier, so categorization stays
// reproducible across sources.
func (n *Normalizer) inferCategories(events []model.Event) []model.Event {
	for i := range events {
		if events[i].Category == "" {
			events[i].Category = classify.Categorize(events[i].Name)
		}
	}
	return events
}
