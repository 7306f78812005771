// Package classify maps free-form event titles onto the fixed category set.
//
// The keyword table is an ordered list, not a map: several keyword sets
// overlap ("festival" appears in every one of them), so the declaration
// order is the tie-break and is pinned by tests. A title containing both
// "jazz" and "gallery" classifies as music because music is declared first.
package classify

import (
	"strings"

	"mtlfest/internal/model"
)

type rule struct {
	category model.Category
	keywords []string
}

// table is evaluated top to bottom; the first rule with any keyword
// appearing as a substring of the lowercased input wins.
var table = []rule{
	{model.CategoryMusic, []string{"music", "concert", "jazz", "rock", "pop", "band", "singer", "festival"}},
	{model.CategoryFilm, []string{"film", "movie", "cinema", "documentary", "screening", "festival"}},
	{model.CategoryFood, []string{"food", "culinary", "wine", "beer", "taste", "dining", "restaurant", "festival"}},
	{model.CategoryArt, []string{"art", "exhibition", "gallery", "museum", "painting", "sculpture", "festival"}},
	{model.CategoryComedy, []string{"comedy", "standup", "humor", "laugh", "joke", "festival"}},
	{model.CategoryDance, []string{"dance", "ballet", "performance", "theatre", "theater", "festival"}},
}

// Categorize returns the category for an event title, or CategoryOther when
// no keyword matches.
func Categorize(title string) model.Category {
	lower := strings.ToLower(title)
	for _, r := range table {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// KeywordsFor exposes the keyword set of one category so the criteria
// parser can reuse the same vocabulary for token matching.
func KeywordsFor(c model.Category) []string {
	for _, r := range table {
		if r.category == c {
			return r.keywords
		}
	}
	return nil
}

// Ordered returns the classifier's category evaluation order.
func Ordered() []model.Category {
	out := make([]model.Category, 0, len(table))
	for _, r := range table {
		out = append(out, r.category)
	}
	return out
}
