package classify

import (
	"testing"

	"mtlfest/internal/model"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  model.Category
	}{
		{"music keyword", "Montreal Jazz Nights", model.CategoryMusic},
		{"film keyword", "Outdoor Movie Screening", model.CategoryFilm},
		{"food keyword", "Wine and Dine Week", model.CategoryFood},
		{"art keyword", "Sculpture Garden Opening", model.CategoryArt},
		{"comedy keyword", "Standup Showcase", model.CategoryComedy},
		{"dance keyword", "Ballet Under the Stars", model.CategoryDance},
		{"case insensitive", "JAZZ FEST", model.CategoryMusic},
		{"no match", "Annual General Meeting", model.CategoryOther},
		{"empty title", "", model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.title); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// Declaration order is the tie-break: a title matching several keyword sets
// classifies as the earliest declared category.
func TestCategorizeOrder(t *testing.T) {
	tests := []struct {
		title string
		want  model.Category
	}{
		{"Jazz and Gallery Night", model.CategoryMusic},
		{"Documentary Food Tour", model.CategoryFilm},
		{"Beer and Painting Evening", model.CategoryFood},
		{"Some Festival", model.CategoryMusic},
	}

	for _, tt := range tests {
		if got := Categorize(tt.title); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestOrdered(t *testing.T) {
	want := []model.Category{
		model.CategoryMusic, model.CategoryFilm, model.CategoryFood,
		model.CategoryArt, model.CategoryComedy, model.CategoryDance,
	}

	got := Ordered()
	if len(got) != len(want) {
		t.Fatalf("Ordered() returned %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ordered()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeywordsFor(t *testing.T) {
	kws := KeywordsFor(model.CategoryComedy)
	if len(kws) == 0 {
		t.Fatal("KeywordsFor(comedy) returned no keywords")
	}
	found := false
	for _, kw := range kws {
		if kw == "standup" {
			found = true
		}
	}
	if !found {
		t.Errorf("KeywordsFor(comedy) = %v, missing %q", kws, "standup")
	}

	if kws := KeywordsFor(model.CategoryOther); kws != nil {
		t.Errorf("KeywordsFor(other) = %v, want nil", kws)
	}
}
