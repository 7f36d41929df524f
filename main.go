package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/apigen/internal/codegen"
	"github.com/ricardonunez-io/apigen/internal/config"
	"github.com/ricardonunez-io/apigen/internal/drift"
	"github.com/ricardonunez-io/apigen/internal/fetch"
	"github.com/ricardonunez-io/apigen/internal/output"
	"github.com/ricardonunez-io/apigen/internal/pipeline"
	"github.com/ricardonunez-io/apigen/internal/schema"
	slackpkg "github.com/ricardonunez-io/apigen/internal/slack"
)

const (
	exitOK    = 0
	exitError = 1
	exitDrift = 2
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	log.Info().
		Str("source", cfg.Fetch.Location()).
		Str("target", cfg.Target).
		Bool("check", cfg.Check).
		Bool("watch", cfg.Watch).
		Msg("Configuration loaded")

	renderer, err := codegen.NewRenderer(cfg.Target, codegen.RenderOptions{
		GoPackage: cfg.GoPackage,
		SchemaID:  cfg.Fetch.Location(),
		Title:     "API declarations",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid target")
	}
	opts := pipeline.Options{Locator: cfg.Locator, Renderer: renderer}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	fetcher := fetch.New(cfg.Fetch)

	if cfg.Watch {
		if err := watch(ctx, cfg, fetcher, opts); err != nil {
			log.Err(err).Msg("Watch failed")
			os.Exit(exitError)
		}
		log.Info().Msg("apigen stopped")
		return
	}

	os.Exit(runOnce(ctx, cfg, fetcher, opts))
}

func runOnce(ctx context.Context, cfg config.Config, fetcher fetch.Fetcher, opts pipeline.Options) int {
	res, err := pipeline.Run(ctx, fetcher, cfg.Fetch.Location(), opts)
	if err != nil {
		log.Err(err).Msg("Generation failed")
		return exitError
	}

	if cfg.Check {
		diff, err := output.Check(cfg.OutputPath, res.Output)
		if err != nil {
			log.Err(err).Msg("Check failed")
			return exitError
		}
		if diff != "" {
			fmt.Fprint(os.Stdout, diff)
			log.Warn().Str("path", cfg.OutputPath).Msg("Generated declarations differ from file")
			return exitDrift
		}
		log.Info().Str("path", cfg.OutputPath).Msg("Generated declarations are up to date")
		return exitOK
	}

	if err := output.Write(cfg.OutputPath, res.Output); err != nil {
		log.Err(err).Msg("Writing output failed")
		return exitError
	}

	if err := trackDrift(cfg, res); err != nil {
		log.Err(err).Msg("Drift tracking failed")
		return exitError
	}
	return exitOK
}

// trackDrift compares res against the saved snapshot, reports the changes and
// replaces the snapshot.
func trackDrift(cfg config.Config, res pipeline.Result) error {
	if cfg.SnapshotPath == "" {
		return nil
	}

	prev, found, err := schema.LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if found {
		report := drift.Compare(prev, res.Schema)
		log.Info().Str("run", res.RunID).Str("drift", report.Summary()).Msg("Compared with snapshot")
		notify(cfg, report, res.Stats)
	}

	if err := schema.SaveSnapshot(cfg.SnapshotPath, res.Schema); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func watch(ctx context.Context, cfg config.Config, fetcher fetch.Fetcher, opts pipeline.Options) error {
	cache := schema.NewCache(10)
	wcfg := drift.WatchConfig{
		Fetcher:  fetcher,
		Location: cfg.Fetch.Location(),
		FromFile: cfg.Fetch.Path != "",
		Schedule: cfg.WatchSchedule,
		Options:  opts,
		Cache:    cache,
	}

	if cfg.SnapshotPath != "" {
		prev, found, err := schema.LoadSnapshot(cfg.SnapshotPath)
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if found {
			wcfg.Baseline = &prev
		}
	}

	cycles, err := drift.Watch(ctx, wcfg)
	if err != nil {
		return err
	}

	for cycle := range cycles {
		if err := output.Write(cfg.OutputPath, cycle.Result.Output); err != nil {
			log.Err(err).Msg("Writing output failed")
			continue
		}
		notify(cfg, cycle.Report, cycle.Result.Stats)
		if cfg.SnapshotPath != "" {
			if err := schema.SaveSnapshot(cfg.SnapshotPath, cycle.Result.Schema); err != nil {
				log.Err(err).Msg("Failed to save snapshot")
			}
		}
	}

	if last := cache.Current(); last != nil {
		log.Info().
			Int("entities", len(last.Entities)).
			Int("operations", len(last.Operations)).
			Int("fields", last.FieldCount()).
			Msg("Last schema seen by watch")
	}
	return nil
}

func notify(cfg config.Config, report drift.Report, stats pipeline.Stats) {
	if !drift.ShouldNotify(report, cfg.NotifySeverity) {
		return
	}
	for _, line := range report.Lines() {
		log.Warn().Str("change", line).Msg("API drift")
	}
	if !cfg.Slack.Enabled() {
		return
	}
	if err := slackpkg.SendReport(report, stats, cfg.Slack); err != nil {
		log.Err(err).Msg("Error sending drift report")
	}
}
