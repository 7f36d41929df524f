package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/apigen/internal/codegen"
	"github.com/ricardonunez-io/apigen/internal/drift"
	"github.com/ricardonunez-io/apigen/internal/fetch"
	"github.com/ricardonunez-io/apigen/internal/htmldoc"
	slackpkg "github.com/ricardonunez-io/apigen/internal/slack"
)

const DefaultDocsURL = "https://core.telegram.org/bots/api"

type Config struct {
	Fetch     fetch.Config
	Locator   htmldoc.Locator
	Target    string
	GoPackage string

	OutputPath   string
	Check        bool
	SnapshotPath string

	Watch          bool
	WatchSchedule  string
	NotifySeverity string
	Slack          slackpkg.Config

	LogLevel zerolog.Level
}

// Load reads the environment. Invalid values are logged and replaced by
// their defaults.
func Load() Config {
	cfg := Config{
		Fetch: fetch.Config{
			URL:      getenv("DOCS_URL", DefaultDocsURL),
			Path:     os.Getenv("DOCS_PATH"),
			Timeout:  duration("FETCH_TIMEOUT", fetch.DefaultTimeout),
			Attempts: positive("FETCH_ATTEMPTS", fetch.DefaultAttempts),
		},
		Locator: htmldoc.Locator{
			TableClass: getenv("TABLE_CLASS", htmldoc.DefaultTableClass),
			HeadingTag: strings.ToLower(getenv("HEADING_TAG", htmldoc.DefaultHeadingTag)),
		},
		GoPackage:     getenv("GO_PACKAGE", "api"),
		OutputPath:    os.Getenv("OUTPUT_PATH"),
		Check:         boolean("CHECK"),
		SnapshotPath:  os.Getenv("SNAPSHOT_PATH"),
		Watch:         boolean("WATCH"),
		WatchSchedule: getenv("WATCH_SCHEDULE", "@every 1h"),
		Slack: slackpkg.Config{
			BotToken:  os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
	}

	cfg.Target = strings.ToUpper(os.Getenv("TARGET"))
	if !codegen.ValidTargets.Includes(cfg.Target) {
		if cfg.Target != "" {
			log.Warn().Str("value", cfg.Target).Msg("Invalid TARGET, defaulting to RUST")
		}
		cfg.Target = string(codegen.RUST)
	}

	cfg.NotifySeverity = strings.ToUpper(os.Getenv("NOTIFY_SEVERITY"))
	if !drift.ValidSeverities.Includes(cfg.NotifySeverity) {
		if cfg.NotifySeverity != "" {
			log.Warn().Str("value", cfg.NotifySeverity).Msg("Invalid NOTIFY_SEVERITY, defaulting to BREAKING")
		}
		cfg.NotifySeverity = string(drift.BREAKING)
	}

	cfg.LogLevel = zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			log.Warn().Str("value", raw).Msg("Invalid LOG_LEVEL, defaulting to info")
		} else {
			cfg.LogLevel = level
		}
	}

	if cfg.Check && cfg.OutputPath == "" {
		log.Warn().Msg("CHECK requires OUTPUT_PATH, disabling check")
		cfg.Check = false
	}
	if cfg.Check && cfg.Watch {
		log.Warn().Msg("CHECK and WATCH are exclusive, disabling watch")
		cfg.Watch = false
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolean(key string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid boolean, defaulting to false")
		return false
	}
	return v
}

func duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

func positive(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Int("default", fallback).Msg("Invalid count, using default")
		return fallback
	}
	return n
}
