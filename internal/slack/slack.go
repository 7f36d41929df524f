package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"github.com/ricardonunez-io/apigen/internal/drift"
	"github.com/ricardonunez-io/apigen/internal/pipeline"
)

// maxListedChanges bounds the change list of one message; Slack rejects
// section text over 3000 characters.
const maxListedChanges = 25

type Config struct {
	BotToken  string
	ChannelID string
	// APIURL overrides the Slack endpoint, with a trailing slash.
	APIURL string
}

func (c Config) Enabled() bool {
	return c.BotToken != "" && c.ChannelID != ""
}

func SendReport(report drift.Report, stats pipeline.Stats, config Config) error {
	var opts []slack.Option
	if config.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(config.APIURL))
	}
	api := slack.New(config.BotToken, opts...)

	_, msgTimestamp, err := api.PostMessage(
		config.ChannelID,
		slack.MsgOptionText(report.Summary(), false),
		slack.MsgOptionBlocks(reportBlocks(report, stats, time.Now())...),
	)
	if err != nil {
		log.Err(err).Str("channel", config.ChannelID).Msg("Failed to post Slack message")
		return err
	}

	log.Info().
		Str("channel", config.ChannelID).
		Str("timestamp", msgTimestamp).
		Msg("Drift report posted to Slack")
	return nil
}

func reportBlocks(report drift.Report, stats pipeline.Stats, at time.Time) []slack.Block {
	emoji := "🟢"
	if len(report.Breaking()) > 0 {
		emoji = "🔴"
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			"plain_text",
			fmt.Sprintf("%s API Drift: %s", emoji, report.Summary()),
			false, false,
		)),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Entities:* %d\n*Operations:* %d\n*Enums:* %d\n*Records:* %d",
					stats.Entities, stats.Operations, stats.Enums, stats.Records),
				false, false),
			nil, nil,
		),
	}

	lines := report.Lines()
	if len(lines) > 0 {
		more := 0
		if len(lines) > maxListedChanges {
			more = len(lines) - maxListedChanges
			lines = lines[:maxListedChanges]
		}
		text := fmt.Sprintf("*Changes:*\n```%s```", strings.Join(lines, "\n"))
		if more > 0 {
			text += fmt.Sprintf("\n…and %d more", more)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", text, false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("Compared at: %s", at.Format(time.RFC1123)),
			false, false),
	))

	return blocks
}
