// Package assistant wires the pipeline together: parse the request,
// aggregate events, match by category, compose the answer, log the
// interaction.
package assistant

import (
	"context"

	"mtlfest/internal/aggregate"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/memory"
	"mtlfest/internal/model"
	"mtlfest/internal/query"
	"mtlfest/internal/respond"
)

// Result is one answered request.
type Result struct {
	UserInput string         `json:"user_input"`
	Criteria  model.Criteria `json:"criteria"`
	Response  string         `json:"response"`
	Matched   []model.Event  `json:"matched_festivals"`
}

// Assistant is constructed once by the composition root and passed to
// every consumer; there are no package-level instances.
type Assistant struct {
	aggregator *aggregate.Aggregator
	parser     *query.Parser
	matcher    *query.Matcher
	composer   *respond.Composer
	store      *memory.Store
}

func New(
	aggregator *aggregate.Aggregator,
	parser *query.Parser,
	matcher *query.Matcher,
	composer *respond.Composer,
	store *memory.Store,
) *Assistant {
	return &Assistant{
		aggregator: aggregator,
		parser:     parser,
		matcher:    matcher,
		composer:   composer,
		store:      store,
	}
}

// Ask answers one free-text request end to end. Events are aggregated
// fresh for every call.
func (a *Assistant) Ask(ctx context.Context, input string) Result {
	crit := a.parser.Parse(input)

	events := a.aggregator.Collect(ctx)
	matched := a.matcher.MatchCategory(events, crit.Category)

	response := a.composer.ComposeAll(ctx, matched, crit)

	if a.store != nil {
		if err := a.store.AppendInteraction(input, response, len(matched)); err != nil {
			appLog.Error("failed to record interaction", err)
		}
	}

	return Result{
		UserInput: input,
		Criteria:  crit,
		Response:  response,
		Matched:   matched,
	}
}

// Ongoing returns the aggregated events covering the current moment.
func (a *Assistant) Ongoing(ctx context.Context) []model.Event {
	events := a.aggregator.Collect(ctx)

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if a.matcher.Ongoing(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Events returns the full aggregated list, for listings and the HTTP API.
func (a *Assistant) Events(ctx context.Context) []model.Event {
	return a.aggregator.Collect(ctx)
}

// Matcher exposes the temporal matcher for display helpers.
func (a *Assistant) Matcher() *query.Matcher {
	return a.matcher
}

// Stats surfaces memory store counters, when a store is attached.
func (a *Assistant) Stats() memory.Stats {
	if a.store == nil {
		return memory.Stats{}
	}
	return a.store.Stats()
}
