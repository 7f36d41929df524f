package drift

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/apigen/internal/fetch"
	"github.com/ricardonunez-io/apigen/internal/pipeline"
	"github.com/ricardonunez-io/apigen/internal/schema"
)

const DefaultDebounce = 500 * time.Millisecond

type WatchConfig struct {
	Fetcher  fetch.Fetcher
	Location string
	// FromFile switches from the cron schedule to file change events on
	// Location.
	FromFile bool
	Schedule string
	Debounce time.Duration
	Options  pipeline.Options
	Cache    *schema.Cache
	// Baseline is compared against the first cycle, usually a saved snapshot.
	Baseline *schema.Schema
}

// Cycle is the outcome of one regeneration. Report is empty on the first
// cycle when there is no baseline.
type Cycle struct {
	Result  pipeline.Result
	Report  Report
	Rebuilt bool
}

// Watch runs one cycle immediately and another on every trigger until ctx is
// done. Failed cycles are logged and skipped.
func Watch(ctx context.Context, cfg WatchConfig) (<-chan Cycle, error) {
	if cfg.Cache == nil {
		cfg.Cache = schema.NewCache(10)
	}

	trigger := make(chan struct{}, 1)
	notify := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	stop, err := startTrigger(ctx, cfg, notify)
	if err != nil {
		return nil, err
	}

	log.Info().Str("location", cfg.Location).Bool("fromFile", cfg.FromFile).Msg("Starting watch")
	cycles := make(chan Cycle)

	go func() {
		defer close(cycles)
		defer stop()

		w := watcher{cfg: cfg, previous: cfg.Baseline}
		w.run(ctx, cycles)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping watch")
				return
			case <-trigger:
				w.run(ctx, cycles)
			}
		}
	}()

	return cycles, nil
}

func startTrigger(ctx context.Context, cfg WatchConfig, notify func()) (func(), error) {
	if cfg.FromFile {
		return watchFile(ctx, cfg.Location, cfg.Debounce, notify)
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, notify); err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", cfg.Schedule, err)
	}
	c.Start()
	return func() { c.Stop() }, nil
}

// watchFile watches the directory holding path so that editors replacing the
// file by rename are still seen.
func watchFile(ctx context.Context, path string, debounce time.Duration, notify func()) (func(), error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, notify)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Err(err).Str("path", path).Msg("File watcher error")
			}
		}
	}()

	return func() { fw.Close() }, nil
}

type watcher struct {
	cfg      WatchConfig
	previous *schema.Schema
}

func (w *watcher) run(ctx context.Context, cycles chan<- Cycle) {
	log.Info().Str("location", w.cfg.Location).Msg("Running watch cycle")

	markup, err := w.cfg.Fetcher.Retrieve(ctx, w.cfg.Location)
	if err != nil {
		log.Err(err).Msg("Failed to retrieve documentation page")
		return
	}

	s, rebuilt, err := w.cfg.Cache.Get(markup, func(doc string) (schema.Schema, error) {
		return pipeline.Extract(doc, w.cfg.Options.Locator)
	})
	if err != nil {
		log.Err(err).Msg("Failed to extract schema")
		return
	}

	res, err := pipeline.FromSchema(s, w.cfg.Options)
	if err != nil {
		log.Err(err).Msg("Failed to generate declarations")
		return
	}

	cycle := Cycle{Result: res, Rebuilt: rebuilt}
	if w.previous != nil {
		cycle.Report = Compare(*w.previous, s)
	}
	w.previous = &s

	log.Info().
		Str("run", res.RunID).
		Bool("rebuilt", rebuilt).
		Str("drift", cycle.Report.Summary()).
		Msg("Watch cycle completed")

	select {
	case cycles <- cycle:
	case <-ctx.Done():
	}
}
