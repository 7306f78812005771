package model

// Event is the canonical festival/activity record every source adapter
// produces. Start/End are kept in their wire form (RFC3339 or date-only
// strings) because upstream payloads are frequently malformed; parsing and
// validation happen in the filter and matcher, not here.
type Event struct {
	Name    string `json:"name"`
	Venue   string `json:"venue"`
	Address string `json:"address"`

	// StartDate / EndDate as delivered by the source. End is not guaranteed
	// to be >= Start.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	URL      string   `json:"url"`
	Source   string   `json:"source"`
	Category Category `json:"category"`

	// Price is display text ("$25-150 CAD", "Free"); no currency parsing.
	Price string `json:"price"`

	// Metro is the nearest station name, or "Multiple stations" when no
	// single station could be inferred from the address.
	Metro string `json:"metro"`
}

// Category is the fixed event categorization used for keyword matching.
type Category string

const (
	CategoryMusic  Category = "music"
	CategoryFilm   Category = "film"
	CategoryFood   Category = "food"
	CategoryArt    Category = "art"
	CategoryComedy Category = "comedy"
	CategoryDance  Category = "dance"
	CategoryOther  Category = "other"
)

// Categories lists the selectable categories in menu order.
func Categories() []Category {
	return []Category{
		CategoryMusic,
		CategoryFilm,
		CategoryFood,
		CategoryArt,
		CategoryComedy,
		CategoryDance,
	}
}

// Criteria is the parsed (category, day, time) intent extracted from one
// user request. Each field resolves independently and has a default, so a
// Criteria is never invalid.
type Criteria struct {
	Category Category
	// Day is a named token ("today", "tomorrow", "tonight", weekday names)
	// or an explicit YYYY-MM-DD date.
	Day string
	// Time is a named token ("morning", "afternoon", "evening", "night")
	// or an explicit HH:MM time.
	Time string
}
