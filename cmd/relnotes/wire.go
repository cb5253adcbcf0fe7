package main

import (
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/config"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/logging"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/pipeline"
	"github.com/GriffinCanCode/relnotes/internal/providers/fetch"
	"github.com/GriffinCanCode/relnotes/internal/providers/http/client"
	"github.com/GriffinCanCode/relnotes/internal/providers/scraper"
	"github.com/GriffinCanCode/relnotes/internal/providers/translate"
)

// components are the long-lived pieces shared by every command
type components struct {
	cfg        *config.Config
	logger     *logging.Logger
	metrics    *monitoring.Metrics
	fetchHTTP  *client.Client
	translateC *client.Client
	fetcher    fetch.Fetcher
	parser     *scraper.Parser
	translator *translate.NotesTranslator
}

// build wires the components. The translator is only built when
// translation is enabled.
func build(cfg *config.Config, logger *logging.Logger) (*components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy, err := scraper.LoadPolicy(cfg.Scraper.PolicyFile)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()

	fetchOpts := client.DefaultOptions("fetch")
	fetchOpts.Timeout = cfg.Fetch.Timeout
	fetchOpts.UserAgent = cfg.Fetch.UserAgent
	fetchOpts.Retries = cfg.Fetch.Retries
	fetchOpts.RPS = cfg.Fetch.RPS
	fetchOpts.Burst = cfg.Fetch.Burst
	fetchOpts.Logger = logger.Logger
	fetchOpts.Metrics = metrics
	fetchHTTP := client.New(fetchOpts)

	c := &components{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		fetchHTTP: fetchHTTP,
		fetcher: &fetch.Router{
			Remote: fetch.NewHTTPFetcher(fetchHTTP, metrics),
			Local:  fetch.NewFileFetcher(metrics),
		},
		parser: scraper.NewParser(policy, logger.Named("scraper")),
	}

	if cfg.Translate.Enabled {
		c.enableTranslation()
	}
	return c, nil
}

func (c *components) enableTranslation() {
	if c.translator != nil {
		return
	}
	cfg := c.cfg.Translate

	opts := client.DefaultOptions("translate")
	opts.Timeout = cfg.Timeout
	opts.UserAgent = c.cfg.Fetch.UserAgent
	opts.RPS = cfg.RPS
	opts.Logger = c.logger.Logger
	opts.Metrics = c.metrics
	c.translateC = client.New(opts)

	oa := translate.NewOpenAI(c.translateC, translate.Options{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Language: cfg.TargetLanguage,
	}, c.metrics, c.logger.Named("translate"))
	c.translator = translate.NewNotesTranslator(oa, c.logger.Named("translate"))
}

func (c *components) pipeline(translated bool) *pipeline.Pipeline {
	var tr *translate.NotesTranslator
	if translated {
		tr = c.translator
	}
	return pipeline.New(c.fetcher, c.parser, tr, pipeline.Options{
		Origin:      c.cfg.Scraper.BaseOrigin,
		Concurrency: c.cfg.Batch.Concurrency,
	}, c.metrics, c.logger)
}
