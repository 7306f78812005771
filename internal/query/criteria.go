// Package query interprets free-text requests: what category, which day,
// what time of day, and whether an event covers the resolved moment.
package query

import (
	"strings"
	"time"

	appLog "mtlfest/internal/log"
	"mtlfest/internal/model"
)

// Parser extracts a (category, day, time) triple from user text. The three
// fields resolve independently: a miss on one never affects the others,
// and every field has a default, so parsing cannot fail.
type Parser struct {
	loc *time.Location
	now func() time.Time
}

func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc, now: time.Now}
}

// Keyword tables are ordered slices: sets can overlap, and the earliest
// declared entry wins a tie.
type categoryEntry struct {
	category model.Category
	keywords []string
}

var categoryTable = []categoryEntry{
	{model.CategoryMusic, []string{"music", "concert", "jazz", "rock", "pop"}},
	{model.CategoryFilm, []string{"film", "movie", "cinema", "documentary"}},
	{model.CategoryFood, []string{"food", "culinary", "wine", "beer", "taste"}},
	{model.CategoryArt, []string{"art", "exhibition", "gallery", "museum"}},
	{model.CategoryComedy, []string{"comedy", "standup", "humor"}},
	{model.CategoryDance, []string{"dance", "ballet", "performance"}},
}

type dayEntry struct {
	day      string
	keywords []string
}

var dayTable = []dayEntry{
	{"today", []string{"today", "now"}},
	{"tomorrow", []string{"tomorrow"}},
	{"tonight", []string{"tonight"}},
	{"monday", []string{"monday", "mon"}},
	{"tuesday", []string{"tuesday", "tue"}},
	{"wednesday", []string{"wednesday", "wed"}},
	{"thursday", []string{"thursday", "thu"}},
	{"friday", []string{"friday", "fri"}},
	{"saturday", []string{"saturday", "sat"}},
	{"sunday", []string{"sunday", "sun"}},
}

type timeEntry struct {
	name     string
	keywords []string
}

// "night" maps to evening here on purpose: the evening entry is declared
// first and claims the keyword.
var timeTable = []timeEntry{
	{"morning", []string{"morning", "am"}},
	{"afternoon", []string{"afternoon", "pm"}},
	{"evening", []string{"evening", "night"}},
}

// Parse maps free text onto Criteria. Unrecognized input silently falls
// back to defaults; user input is never rejected.
func (p *Parser) Parse(input string) model.Criteria {
	lower := strings.ToLower(input)
	tokens := strings.Fields(lower)

	crit := model.Criteria{
		Category: p.parseCategory(lower, tokens),
		Day:      "today",
		Time:     "",
	}

	forcedEvening := false
	for _, tok := range tokens {
		matched := false
		for _, entry := range dayTable {
			for _, kw := range entry.keywords {
				if tok == kw {
					crit.Day = entry.day
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if matched {
			// "tonight" means today, and pins the time to evening below.
			if crit.Day == "tonight" {
				crit.Day = "today"
				forcedEvening = true
			}
			break
		}
	}

	for _, tok := range tokens {
		matched := false
		for _, entry := range timeTable {
			for _, kw := range entry.keywords {
				if tok == kw {
					crit.Time = entry.name
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if matched {
			break
		}
	}

	if forcedEvening {
		crit.Time = "evening"
	}
	if crit.Time == "" {
		crit.Time = p.inferTimeOfDay()
	}

	appLog.Debug("parsed criteria",
		"category", string(crit.Category), "day", crit.Day, "time", crit.Time)
	return crit
}

// parseCategory scans tokens first, then falls back to a substring scan
// over the whole input, then to the music default.
func (p *Parser) parseCategory(lower string, tokens []string) model.Category {
	for _, tok := range tokens {
		for _, entry := range categoryTable {
			for _, kw := range entry.keywords {
				if tok == kw {
					return entry.category
				}
			}
		}
	}

	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}

	return model.CategoryMusic
}

// inferTimeOfDay picks a period from the current local hour:
// [6,12) morning, [12,17) afternoon, [17,22) evening, otherwise night.
func (p *Parser) inferTimeOfDay() string {
	hour := p.now().In(p.loc).Hour()
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}
