// mockfeed is a development server that mimics the upstream festival APIs
// with fake but well-shaped payloads, so the aggregation pipeline can be
// exercised without credentials or network access.
//
// Point the adapters at it via config:
//
//	opendata_url: http://localhost:8099/opendata
//
// Ticketmaster and Meetup hit fixed production URLs, so those endpoints are
// mainly useful with an HTTP proxy or for eyeballing payload shapes.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	appLog "mtlfest/internal/log"
)

var themes = []string{
	"Jazz", "Film", "Food & Wine", "Comedy", "Electronic Music",
	"Contemporary Art", "Dance", "Documentary", "Street Food", "Indie Rock",
}

var neighborhoods = []string{
	"Quartier des Spectacles", "Old Port", "Plateau", "Mile End",
	"Downtown", "Quartier Latin", "Parc Jean-Drapeau",
}

func festivalName() string {
	return fmt.Sprintf("Montreal %s Festival", gofakeit.RandomString(themes))
}

func venueAddress() (string, string) {
	venue := fmt.Sprintf("%s %s", gofakeit.LastName(), gofakeit.RandomString([]string{
		"Theatre", "Hall", "Pavilion", "Stage", "Centre",
	}))
	address := fmt.Sprintf("%d %s, %s",
		gofakeit.Number(1, 4000), gofakeit.Street(), gofakeit.RandomString(neighborhoods))
	return venue, address
}

// eventWindow returns a plausible start/end pair within the next two months.
func eventWindow() (time.Time, time.Time) {
	start := time.Now().AddDate(0, 0, gofakeit.Number(-5, 60)).
		Truncate(time.Hour).Add(time.Duration(gofakeit.Number(9, 21)) * time.Hour)
	end := start.AddDate(0, 0, gofakeit.Number(0, 10))
	return start, end
}

func handleTicketmaster(w http.ResponseWriter, _ *http.Request) {
	type venue struct {
		Name    string `json:"name"`
		Address struct {
			Line1 string `json:"line1"`
		} `json:"address"`
		City struct {
			Name string `json:"name"`
		} `json:"city"`
		State struct {
			StateCode string `json:"stateCode"`
		} `json:"state"`
	}
	type event struct {
		Name  string `json:"name"`
		URL   string `json:"url"`
		Dates struct {
			Start struct {
				DateTime string `json:"dateTime"`
			} `json:"start"`
			End struct {
				DateTime string `json:"dateTime"`
			} `json:"end"`
		} `json:"dates"`
		Embedded struct {
			Venues []venue `json:"venues"`
		} `json:"_embedded"`
		PriceRanges []map[string]any `json:"priceRanges"`
	}

	events := make([]event, 0, 20)
	for i := 0; i < 20; i++ {
		start, end := eventWindow()
		venueName, address := venueAddress()

		var ev event
		ev.Name = festivalName()
		ev.URL = gofakeit.URL()
		ev.Dates.Start.DateTime = start.UTC().Format(time.RFC3339)
		ev.Dates.End.DateTime = end.UTC().Format(time.RFC3339)

		var v venue
		v.Name = venueName
		v.Address.Line1 = address
		v.City.Name = "Montreal"
		v.State.StateCode = "QC"
		ev.Embedded.Venues = []venue{v}

		min := gofakeit.Number(15, 80)
		ev.PriceRanges = []map[string]any{{
			"min":      float64(min),
			"max":      float64(min + gofakeit.Number(20, 200)),
			"currency": "CAD",
		}}
		events = append(events, ev)
	}

	writeJSON(w, map[string]any{
		"_embedded": map[string]any{"events": events},
	})
}

func handleMeetup(w http.ResponseWriter, _ *http.Request) {
	results := make([]map[string]any, 0, 15)
	for i := 0; i < 15; i++ {
		start, end := eventWindow()
		venueName, address := venueAddress()

		entry := map[string]any{
			"name":      festivalName(),
			"event_url": gofakeit.URL(),
			"venue": map[string]any{
				"name":      venueName,
				"address_1": address,
			},
			"time":     start.UnixMilli(),
			"duration": end.Sub(start).Milliseconds(),
		}
		if gofakeit.Bool() {
			entry["fee"] = map[string]any{"amount": float64(gofakeit.Number(5, 60))}
		}
		results = append(results, entry)
	}

	writeJSON(w, map[string]any{"results": results})
}

func handleOpenData(w http.ResponseWriter, _ *http.Request) {
	records := make([]map[string]any, 0, 15)
	for i := 0; i < 15; i++ {
		start, end := eventWindow()
		venueName, address := venueAddress()

		records = append(records, map[string]any{
			"name":       festivalName(),
			"venue":      venueName,
			"address":    address,
			"start_date": start.Format("2006-01-02T15:04:05"),
			"end_date":   end.Format("2006-01-02T15:04:05"),
			"url":        gofakeit.URL(),
			"price":      fmt.Sprintf("$%d-%d CAD", gofakeit.Number(10, 50), gofakeit.Number(60, 250)),
		})
	}

	writeJSON(w, map[string]any{
		"result": map[string]any{"records": records},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to encode payload", err)
	}
}

func main() {
	var listen string
	var seed int64

	root := &cobra.Command{
		Use:   "mockfeed",
		Short: "Serve fake festival source payloads for development",
		RunE: func(_ *cobra.Command, _ []string) error {
			if seed != 0 {
				gofakeit.Seed(seed)
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/ticketmaster", handleTicketmaster)
			mux.HandleFunc("/meetup", handleMeetup)
			mux.HandleFunc("/opendata", handleOpenData)

			appLog.Info("mockfeed listening", "listen", "http://"+listen)
			return http.ListenAndServe(listen, mux)
		},
	}

	root.Flags().StringVar(&listen, "listen", "127.0.0.1:8099", "Listen address")
	root.Flags().Int64Var(&seed, "seed", 0, "Deterministic fake data seed (0 for random)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
