package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var keys = []string{
	"DOCS_URL", "DOCS_PATH", "TARGET", "GO_PACKAGE", "OUTPUT_PATH", "CHECK", "SNAPSHOT_PATH",
	"WATCH", "WATCH_SCHEDULE", "NOTIFY_SEVERITY", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID",
	"TABLE_CLASS", "HEADING_TAG", "FETCH_TIMEOUT", "FETCH_ATTEMPTS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, DefaultDocsURL, cfg.Fetch.URL)
	assert.Equal(t, DefaultDocsURL, cfg.Fetch.Location())
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.Attempts)
	assert.Equal(t, "table", cfg.Locator.TableClass)
	assert.Equal(t, "h4", cfg.Locator.HeadingTag)
	assert.Equal(t, "RUST", cfg.Target)
	assert.Equal(t, "api", cfg.GoPackage)
	assert.Equal(t, "BREAKING", cfg.NotifySeverity)
	assert.Equal(t, "@every 1h", cfg.WatchSchedule)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.Check)
	assert.False(t, cfg.Watch)
	assert.False(t, cfg.Slack.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCS_PATH", "testdata/api.html")
	t.Setenv("TARGET", "go")
	t.Setenv("GO_PACKAGE", "telegram")
	t.Setenv("OUTPUT_PATH", "gen/api.go")
	t.Setenv("CHECK", "true")
	t.Setenv("NOTIFY_SEVERITY", "all")
	t.Setenv("HEADING_TAG", "H3")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_ATTEMPTS", "1")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb")
	t.Setenv("SLACK_CHANNEL_ID", "C1")

	cfg := Load()
	assert.Equal(t, "testdata/api.html", cfg.Fetch.Location())
	assert.Equal(t, "GO", cfg.Target)
	assert.Equal(t, "telegram", cfg.GoPackage)
	assert.True(t, cfg.Check)
	assert.Equal(t, "ALL", cfg.NotifySeverity)
	assert.Equal(t, "h3", cfg.Locator.HeadingTag)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 1, cfg.Fetch.Attempts)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.Slack.Enabled())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TARGET", "cobol")
	t.Setenv("NOTIFY_SEVERITY", "sometimes")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("FETCH_ATTEMPTS", "-2")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("WATCH", "maybe")

	cfg := Load()
	assert.Equal(t, "RUST", cfg.Target)
	assert.Equal(t, "BREAKING", cfg.NotifySeverity)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.Attempts)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.Watch)
}

func TestLoad_CheckNeedsOutputPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHECK", "1")
	t.Setenv("WATCH", "1")

	cfg := Load()
	assert.False(t, cfg.Check)
	assert.True(t, cfg.Watch)
}
