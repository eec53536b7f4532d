package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/weekender/config"
	"github.com/mohammad-safakhou/weekender/internal/pipeline"
	"github.com/mohammad-safakhou/weekender/internal/telemetry"
	"github.com/mohammad-safakhou/weekender/provider"
	"github.com/mohammad-safakhou/weekender/tools/venue"
)

func planCMD() *cobra.Command {
	var cfgPath string
	var groupSize int
	var includeBudget bool
	var showEvents bool

	var plan = &cobra.Command{
		Use:   "plan [request]",
		Short: "Plan a weekend from a free-text request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")

			llm, err := provider.NewFromConfig(cfg.LLM)
			if err != nil {
				return err
			}

			var enricher pipeline.Enricher
			if cfg.Enrichment.Enabled {
				var fetcher venue.Fetcher = venue.NewStaticFetcher(cfg.Enrichment.Timeout, cfg.Enrichment.InsecureSkipVerify)
				if cfg.Enrichment.UseHeadless {
					fetcher = venue.HeadlessFetcher{Timeout: cfg.Enrichment.Timeout}
				}
				enricher = venue.NewScraper(fetcher, nil, cfg.Enrichment.MinPause, cfg.Enrichment.MaxPause)
			}

			tele := telemetry.NewTelemetry(cfg.Telemetry, nil)
			orch := pipeline.NewOrchestrator(llm, enricher, nil, tele)

			events := make(chan pipeline.StageEvent, 64)
			done := make(chan struct{})
			if showEvents {
				go func() {
					defer close(done)
					for ev := range events {
						fmt.Printf("  [%s] %s\n", ev.Status, ev.Name)
					}
				}()
			} else {
				close(done)
			}

			opts := pipeline.RunOptions{GroupSize: groupSize, IncludeBudget: includeBudget}
			if showEvents {
				opts.Events = events
			}

			result, err := orch.Run(context.Background(), text, opts)
			close(events)
			<-done
			if err != nil {
				return err
			}

			fmt.Println(result.Itinerary)
			return nil
		},
	}
	plan.Flags().IntVar(&groupSize, "group-size", 2, "number of people")
	plan.Flags().BoolVar(&includeBudget, "budget", false, "append a cost estimate")
	plan.Flags().BoolVar(&showEvents, "progress", true, "print stage progress")
	plan.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return plan
}
