package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/logging"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/providers/fetch"
	"github.com/GriffinCanCode/relnotes/internal/providers/scraper"
	"github.com/GriffinCanCode/relnotes/internal/providers/translate"
	"github.com/GriffinCanCode/relnotes/internal/shared/id"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a Pipeline
type Options struct {
	// Origin overrides the origin derived from each page URL
	Origin      string
	Concurrency int
}

// Run is the result of processing one page
type Run struct {
	ID         id.RunID
	Source     string
	Extraction *scraper.Extraction
	// Translation is nil unless a translator is configured
	Translation *translate.Result
	Duration    time.Duration
	Err         error
}

// Pipeline wires a fetcher, a parser and an optional translator
type Pipeline struct {
	fetcher    fetch.Fetcher
	parser     *scraper.Parser
	translator *translate.NotesTranslator
	opts       Options
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// New creates a pipeline. translator, metrics and logger may be nil.
func New(fetcher fetch.Fetcher, parser *scraper.Parser, translator *translate.NotesTranslator, opts Options, metrics *monitoring.Metrics, logger *logging.Logger) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Pipeline{
		fetcher:    fetcher,
		parser:     parser,
		translator: translator,
		opts:       opts,
		metrics:    metrics,
		logger:     logger,
	}
}

// Parse extracts release notes from an HTML document already in memory
func (p *Pipeline) Parse(ctx context.Context, in scraper.Input) (*Run, error) {
	run := &Run{ID: id.NewRunID(), Source: in.URL}
	log := p.logger.ForRun(run.ID.String())
	start := time.Now()
	defer func() { run.Duration = time.Since(start) }()

	if err := p.parse(ctx, run, in, log); err != nil {
		run.Err = err
		return run, err
	}
	return run, nil
}

// Process fetches source and extracts its release notes
func (p *Pipeline) Process(ctx context.Context, source string) (*Run, error) {
	run := &Run{ID: id.NewRunID(), Source: source}
	log := p.logger.ForRun(run.ID.String())
	start := time.Now()
	defer func() { run.Duration = time.Since(start) }()

	log.Info("processing page", zap.String("source", source))

	html, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		run.Err = err
		log.Error("fetch failed", zap.String("source", source), zap.Error(err))
		return run, err
	}

	if err := p.parse(ctx, run, scraper.Input{HTML: html, URL: source, Origin: p.opts.Origin}, log); err != nil {
		run.Err = err
		return run, err
	}
	return run, nil
}

func (p *Pipeline) parse(ctx context.Context, run *Run, in scraper.Input, log *logging.Logger) error {
	if in.Origin == "" {
		in.Origin = p.opts.Origin
	}

	timer := monitoring.NewTimer()
	ex, err := p.parser.Parse(in)
	if err != nil {
		p.metrics.RecordParse(monitoring.OutcomeError, timer.Elapsed(), 0, nil)
		log.Error("parse failed", zap.String("source", in.URL), zap.Error(err))
		return err
	}

	outcome := monitoring.OutcomeOK
	if ex.Notes.Len() == 0 {
		outcome = monitoring.OutcomeEmpty
	}
	p.metrics.RecordParse(outcome, timer.Elapsed(), ex.Notes.Len(), candidateCounts(ex.Candidates))
	run.Extraction = ex

	if p.translator == nil || ex.Notes.Len() == 0 {
		return nil
	}

	res, err := p.translator.Translate(ctx, ex.Notes)
	if err != nil {
		return fmt.Errorf("translate %s: %w", run.Source, err)
	}
	run.Translation = res
	log.Info("release notes translated",
		zap.Int("features", len(res.Notes.Features)),
		zap.Int("failed", len(res.Errors)),
	)
	return nil
}

// Batch processes sources concurrently. Runs come back in source order;
// the error joins every failed run's error.
func (p *Pipeline) Batch(ctx context.Context, sources []string) ([]*Run, error) {
	runs := make([]*Run, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	for i, source := range sources {
		g.Go(func() error {
			run, _ := p.Process(gctx, source)
			runs[i] = run
			// only cancellation stops the batch
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return runs, err
	}

	var errs []error
	for _, run := range runs {
		if run.Err != nil {
			errs = append(errs, run.Err)
		}
	}

	p.logger.Info("batch finished",
		zap.Int("pages", len(sources)),
		zap.Int("failed", len(errs)),
	)
	return runs, errors.Join(errs...)
}

func candidateCounts(in map[scraper.Strategy]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
