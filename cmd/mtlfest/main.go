package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mtlfest/internal/aggregate"
	"mtlfest/internal/assistant"
	"mtlfest/internal/config"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/memory"
	"mtlfest/internal/query"
	"mtlfest/internal/respond"
	"mtlfest/internal/source"
	"mtlfest/internal/ui"
	"mtlfest/internal/web"
)

var (
	configPath string
	debugLog   bool
)

func main() {
	root := &cobra.Command{
		Use:   "mtlfest",
		Short: "Montreal festival aggregation and query assistant",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debugLog {
				appLog.SetLevel(appLog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "./mtlfest.yaml", "Path to config file")
	root.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")

	root.AddCommand(serveCmd(), askCmd(), menuCmd(), ongoingCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildAssistant is the composition root: everything is constructed here
// once and passed down; no package keeps a global instance.
func buildAssistant(cfg *config.Config) (*assistant.Assistant, error) {
	loc := cfg.Location()
	client := source.NewClient()

	// Priority order: ticketing, social, venue search, open data, the city
	// calendar, scraped sites, and the static seed last.
	sources := []source.Source{
		source.NewTicketmaster(cfg.Credentials.TicketmasterKey, client),
		source.NewEventbrite(cfg.Credentials.EventbriteToken, client),
		source.NewMeetup(cfg.Credentials.MeetupKey, client),
		source.NewFacebook(cfg.Credentials.FacebookToken, client, loc),
		source.NewPlaces(cfg.Credentials.PlacesKey, client),
		source.NewOpenData(cfg.OpenDataURL, client),
		source.NewCityCal(cfg.CityCalURL, client, loc),
		source.NewScraper(cfg.ScrapeURLs, loc),
		source.NewKnownFestivals(loc),
	}

	normalizer := aggregate.NewNormalizer(sources)
	aggregator := aggregate.NewAggregator(normalizer, loc, cfg.MaxEvents)

	parser := query.NewParser(loc)
	matcher := query.NewMatcher(loc)

	generator := respond.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model)
	composer := respond.NewComposer(generator, matcher)

	store, err := memory.Open(cfg.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}

	return assistant.New(aggregator, parser, matcher, composer, store), nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with scheduled event refresh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			asst, err := buildAssistant(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-sigCh
				appLog.Info("signal received, shutting down", "signal", sig.String())
				cancel()
			}()

			return web.NewServer(cfg, asst).Run(ctx)
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [query...]",
		Short: "Answer one free-text festival question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			asst, err := buildAssistant(cfg)
			if err != nil {
				return err
			}

			result := asst.Ask(cmd.Context(), strings.Join(args, " "))
			fmt.Println(result.Response)
			return nil
		},
	}
}

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive console menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			asst, err := buildAssistant(cfg)
			if err != nil {
				return err
			}

			return ui.NewMenu(asst, os.Stdin, os.Stdout).Run(cmd.Context())
		},
	}
}

func ongoingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ongoing",
		Short: "List festivals covering the current moment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			asst, err := buildAssistant(cfg)
			if err != nil {
				return err
			}

			events := asst.Ongoing(cmd.Context())
			if len(events) == 0 {
				fmt.Println("No festivals are ongoing right now.")
				return nil
			}
			for _, ev := range events {
				fmt.Printf("%s | %s | %s | %s | metro %s\n",
					ev.Name, ev.Venue, ev.Category, ev.Price, ev.Metro)
			}
			return nil
		},
	}
}
