// Package pipeline runs one generation: markup in, rendered declarations out.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/apigen/internal/codegen"
	"github.com/ricardonunez-io/apigen/internal/fetch"
	"github.com/ricardonunez-io/apigen/internal/htmldoc"
	"github.com/ricardonunez-io/apigen/internal/schema"
)

type Options struct {
	Locator  htmldoc.Locator
	Renderer codegen.Renderer
}

type Result struct {
	RunID      string
	Schema     schema.Schema
	Plan       codegen.Plan
	Stats      Stats
	Output     string
	Unresolved []codegen.Unresolved
}

// Extract turns a page into its schema.
func Extract(markup string, loc htmldoc.Locator) (schema.Schema, error) {
	tables, err := htmldoc.Extract(markup, loc)
	if err != nil {
		return schema.Schema{}, err
	}
	return schema.Build(tables)
}

// Generate runs the whole pipeline over markup. Nothing is returned but the
// error when any stage fails.
func Generate(markup string, opts Options) (Result, error) {
	s, err := Extract(markup, opts.Locator)
	if err != nil {
		return Result{}, err
	}
	return FromSchema(s, opts)
}

// FromSchema plans and renders an already extracted schema.
func FromSchema(s schema.Schema, opts Options) (Result, error) {
	res := Result{RunID: uuid.NewString(), Schema: s}
	logger := log.With().Str("run", res.RunID).Str("target", opts.Renderer.Name()).Logger()

	p, err := codegen.Build(s)
	if err != nil {
		logger.Err(err).Msg("Failed to plan declarations")
		return Result{}, err
	}

	res.Unresolved = codegen.CheckReferences(s, p)
	for _, u := range res.Unresolved {
		warnUnresolved(logger, u)
	}

	out, err := opts.Renderer.Render(p)
	if err != nil {
		logger.Err(err).Msg("Failed to render declarations")
		return Result{}, err
	}

	res.Plan = p
	res.Output = out
	res.Stats = Collect(s, p)

	logger.Info().
		Int("entities", res.Stats.Entities).
		Int("operations", res.Stats.Operations).
		Int("enums", res.Stats.Enums).
		Int("records", res.Stats.Records).
		Int("unresolved", len(res.Unresolved)).
		Msg("Declarations generated")

	return res, nil
}

// Run retrieves location with f and generates from it.
func Run(ctx context.Context, f fetch.Fetcher, location string, opts Options) (Result, error) {
	markup, err := f.Retrieve(ctx, location)
	if err != nil {
		return Result{}, fmt.Errorf("failed to retrieve %s: %w", location, err)
	}
	return Generate(markup, opts)
}

func warnUnresolved(logger zerolog.Logger, u codegen.Unresolved) {
	event := logger.Warn().
		Str("record", u.Record).
		Str("field", u.Field).
		Str("type", u.Type)
	if u.Suggestion != "" {
		event = event.Str("suggestion", u.Suggestion)
	}
	event.Msg("Type is not declared on the page")
}
