// Package ui is the interactive console: numbered pickers for category,
// day and time, free-text search, and an ongoing-festivals listing.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"mtlfest/internal/assistant"
	"mtlfest/internal/model"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
)

// Menu drives one interactive session over the given reader/writer.
type Menu struct {
	asst *assistant.Assistant
	in   *bufio.Scanner
	out  io.Writer
}

func NewMenu(asst *assistant.Assistant, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		asst: asst,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

var dayChoices = []string{
	"today", "tomorrow", "monday", "tuesday", "wednesday",
	"thursday", "friday", "saturday", "sunday",
}

var timeChoices = []string{"morning", "afternoon", "evening", "night"}

// Run loops the main menu until the user quits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	stats := m.asst.Stats()
	headerColor.Fprintln(m.out, "Montreal Festival Assistant")
	fmt.Fprintln(m.out, strings.Repeat("=", 50))
	fmt.Fprintf(m.out, "Past interactions: %d, stored preferences: %d\n\n",
		stats.TotalInteractions, stats.TotalPreferences)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		labelColor.Fprintln(m.out, "MAIN MENU")
		fmt.Fprintln(m.out, "1. Guided search (pick category, day, time)")
		fmt.Fprintln(m.out, "2. Free-text search")
		fmt.Fprintln(m.out, "3. Ongoing festivals")
		fmt.Fprintln(m.out, "0. Quit")

		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return nil
		}

		switch choice {
		case "0":
			okColor.Fprintln(m.out, "Goodbye! Enjoy your Montreal festivals!")
			return nil
		case "1":
			m.guidedSearch(ctx)
		case "2":
			m.freeTextSearch(ctx)
		case "3":
			m.showOngoing(ctx)
		default:
			errColor.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		fmt.Fprintln(m.out)
	}
}

// guidedSearch walks the three pickers and runs the combined query.
func (m *Menu) guidedSearch(ctx context.Context) {
	category, ok := m.pickCategory()
	if !ok {
		return
	}
	day, ok := m.pickDay()
	if !ok {
		return
	}
	timeOfDay, ok := m.pickTime()
	if !ok {
		return
	}

	input := fmt.Sprintf("%s %s %s", category, day, timeOfDay)
	result := m.asst.Ask(ctx, input)
	m.showResult(result)
}

func (m *Menu) freeTextSearch(ctx context.Context) {
	text, ok := m.prompt("What are you looking for? ")
	if !ok || strings.TrimSpace(text) == "" {
		return
	}
	result := m.asst.Ask(ctx, text)
	m.showResult(result)
}

func (m *Menu) showOngoing(ctx context.Context) {
	events := m.asst.Ongoing(ctx)
	if len(events) == 0 {
		fmt.Fprintln(m.out, "No festivals are ongoing right now.")
		return
	}

	headerColor.Fprintf(m.out, "ONGOING FESTIVALS (%d)\n", len(events))
	for _, ev := range events {
		fmt.Fprintf(m.out, "- %s at %s (%s, %s) [%s]\n",
			ev.Name, ev.Venue, ev.Category, ev.Price, ev.Source)
	}
}

func (m *Menu) showResult(result assistant.Result) {
	fmt.Fprintln(m.out)
	headerColor.Fprintf(m.out, "RESULTS (%d matched)\n", len(result.Matched))
	fmt.Fprintln(m.out, strings.Repeat("-", 50))
	fmt.Fprintln(m.out, result.Response)
}

func (m *Menu) pickCategory() (model.Category, bool) {
	labelColor.Fprintln(m.out, "SELECT FESTIVAL CATEGORY:")
	categories := model.Categories()
	for i, c := range categories {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, strings.ToUpper(string(c)))
	}
	fmt.Fprintln(m.out, "0. Back")

	idx, ok := m.pickIndex(len(categories))
	if !ok {
		return "", false
	}
	return categories[idx], true
}

// pickDay shows the upcoming concrete date next to each named day.
func (m *Menu) pickDay() (string, bool) {
	labelColor.Fprintln(m.out, "SELECT DAY:")
	now := m.asst.Matcher().Now()
	fmt.Fprintf(m.out, "Today: %s\n", now.Format("Monday, January 2, 2006"))

	for i, day := range dayChoices {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, m.describeDay(day, now))
	}
	fmt.Fprintln(m.out, "0. Back")

	idx, ok := m.pickIndex(len(dayChoices))
	if !ok {
		return "", false
	}
	return dayChoices[idx], true
}

func (m *Menu) describeDay(day string, now time.Time) string {
	switch day {
	case "today":
		return fmt.Sprintf("Today (%s)", now.Format("Monday"))
	case "tomorrow":
		return fmt.Sprintf("Tomorrow (%s)", now.AddDate(0, 0, 1).Format("Monday"))
	default:
		target := m.asst.Matcher().ResolveTarget(day, "")
		title := strings.ToUpper(day[:1]) + day[1:]
		return fmt.Sprintf("%s (%s)", title, target.Format("January 2"))
	}
}

func (m *Menu) pickTime() (string, bool) {
	labelColor.Fprintln(m.out, "SELECT TIME:")
	display := map[string]string{
		"morning":   "Morning (9:00 AM - 12:00 PM)",
		"afternoon": "Afternoon (12:00 PM - 5:00 PM)",
		"evening":   "Evening (5:00 PM - 9:00 PM)",
		"night":     "Night (9:00 PM - 12:00 AM)",
	}
	for i, t := range timeChoices {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, display[t])
	}
	fmt.Fprintln(m.out, "0. Back")

	idx, ok := m.pickIndex(len(timeChoices))
	if !ok {
		return "", false
	}
	return timeChoices[idx], true
}

// pickIndex reads a 1-based menu choice; 0 or EOF cancels.
func (m *Menu) pickIndex(count int) (int, bool) {
	for {
		choice, ok := m.prompt("Enter your choice: ")
		if !ok || choice == "0" {
			return 0, false
		}
		var idx int
		if _, err := fmt.Sscanf(choice, "%d", &idx); err == nil && idx >= 1 && idx <= count {
			return idx - 1, true
		}
		errColor.Fprintln(m.out, "Invalid choice. Please try again.")
	}
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}
