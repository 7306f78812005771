// Package metro infers the nearest metro station from a venue address.
package metro

import "strings"

// MultipleStations is returned when no single station can be inferred.
const MultipleStations = "Multiple stations"

type mapping struct {
	needle  string
	station string
}

// stations is ordered; needles can overlap, so the first match wins and the
// declaration order is part of the contract.
var stations = []mapping{
	{"quartier des spectacles", "Place-des-Arts"},
	{"place des arts", "Place-des-Arts"},
	{"old port", "Place-d'Armes"},
	{"parc jean-drapeau", "Jean-Drapeau"},
	{"quartier latin", "Berri-UQAM"},
	{"downtown", "McGill"},
	{"plateau", "Sherbrooke"},
	{"mile end", "Laurier"},
}

// Nearest maps an address to a station name via case-insensitive substring
// lookup. Unknown addresses get the MultipleStations sentinel.
func Nearest(address string) string {
	lower := strings.ToLower(address)
	for _, m := range stations {
		if strings.Contains(lower, m.needle) {
			return m.station
		}
	}
	return MultipleStations
}
