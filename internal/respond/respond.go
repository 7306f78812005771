// Package respond builds per-event answers: a generated summary when the
// text generator is available, a deterministic templated block otherwise.
package respond

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	appLog "mtlfest/internal/log"
	"mtlfest/internal/model"
	"mtlfest/internal/query"
)

var generationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mtlfest_generation_fallbacks_total",
	Help: "Responses served from the template because generation failed.",
})

// Composer turns matched events into user-facing text.
type Composer struct {
	generator Generator
	matcher   *query.Matcher
}

func NewComposer(generator Generator, matcher *query.Matcher) *Composer {
	return &Composer{generator: generator, matcher: matcher}
}

// ComposeAll answers one request: one block per matched event, joined by
// blank lines. An empty match list produces the no-results message, the
// only legitimate "nothing found" surface in the system.
func (c *Composer) ComposeAll(ctx context.Context, events []model.Event, crit model.Criteria) string {
	if len(events) == 0 {
		return fmt.Sprintf(
			"No festivals found for %s on %s at %s. Try different criteria or check ongoing festivals.",
			crit.Category, crit.Day, crit.Time)
	}

	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, c.Compose(ctx, ev))
	}
	return strings.Join(blocks, "\n\n")
}

// Compose answers for a single event. Generation failures are downgraded
// to the templated fallback, which cannot fail.
func (c *Composer) Compose(ctx context.Context, ev model.Event) string {
	ongoing := c.matcher.Ongoing(ev)
	now := c.matcher.Now()

	text, err := c.generator.Generate(ctx, c.buildPrompt(ev, now, ongoing))
	if err != nil {
		generationFallbacks.Inc()
		appLog.Warn("text generation failed, using templated response",
			"event", ev.Name, "err", err.Error())
		return TemplatedResponse(ev, now, ongoing)
	}
	return text
}

// buildPrompt embeds one event's fields into a bounded instruction. The
// shape asks for three short actionable points so answers stay scannable
// on a console.
func (c *Composer) buildPrompt(ev model.Event, now time.Time, ongoing bool) string {
	return fmt.Sprintf(`Provide EXACT, CONCISE information for this Montreal festival:

Festival: %s
Venue: %s
Address: %s
Dates: %s to %s
Category: %s
Price: %s
Metro: %s
Source: %s
Current Montreal Time: %s
Is Currently Ongoing: %t

Provide ONLY 3 key points:
1. [Festival name and exact venue]
2. [Google Maps address for navigation]
3. [Cost estimation in CAD - tickets, transport, food]

Keep each point under 20 words. Be specific and actionable.`,
		ev.Name, ev.Venue, ev.Address, ev.StartDate, ev.EndDate,
		ev.Category, ev.Price, ev.Metro, ev.Source,
		now.Format("2006-01-02 15:04 MST"), ongoing)
}

// TemplatedResponse renders the deterministic fallback block from event
// fields alone.
func TemplatedResponse(ev model.Event, now time.Time, ongoing bool) string {
	status := "UPCOMING"
	if ongoing {
		status = "ONGOING NOW"
	}

	price := ev.Price
	if price == "" {
		price = "$50-150 CAD"
	}
	metroStation := ev.Metro
	if metroStation == "" {
		metroStation = "Multiple stations"
	}

	return fmt.Sprintf(`%s (%s)
Venue: %s
Address: %s (Google Maps)
Estimated Cost: %s (varies by event)
Metro: %s
Source: %s
Current Montreal Time: %s`,
		ev.Name, status, ev.Venue, ev.Address, price, metroStation,
		ev.Source, now.Format("2006-01-02 15:04 MST"))
}
