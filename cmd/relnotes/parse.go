package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/GriffinCanCode/relnotes/internal/pipeline"
	"github.com/GriffinCanCode/relnotes/internal/providers/fetch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type parseOptions struct {
	glob        string
	out         string
	gzip        bool
	translate   bool
	concurrency int
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [url|file]...",
		Short: "Extract release notes from one or more pages",
		Long: `Fetch each page (http(s) URL, file:// URL or local path), extract its
features and write the JSON document.

With a single source the document goes to --out, or stdout when --out is
empty or "-". With several sources or --glob, --out names a directory and
each page gets its own file.`,
		Example: `  relnotes parse https://docs.example.com/release-notes/release-129-0-0
  relnotes parse saved.html --out notes.json.gz
  relnotes parse --glob 'pages/**/*.html' --out out/ --concurrency 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.glob, "glob", "", "Parse every file matching this pattern (supports **)")
	f.StringVarP(&opts.out, "out", "o", "", "Output file, or directory in batch mode")
	f.BoolVar(&opts.gzip, "gzip", false, "Gzip batch output files")
	f.BoolVar(&opts.translate, "translate", false, "Translate the extracted notes")
	f.IntVar(&opts.concurrency, "concurrency", 0, "Pages parsed in parallel in batch mode")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts parseOptions) error {
	e := envFrom(cmd)

	sources := append([]string(nil), args...)
	if opts.glob != "" {
		matches, err := fetch.Glob(opts.glob)
		if err != nil {
			return err
		}
		sources = append(sources, matches...)
	}
	if len(sources) == 0 {
		return errors.New("no sources: pass a URL, a file or --glob")
	}

	if opts.translate {
		e.cfg.Translate.Enabled = true
	}
	if opts.concurrency > 0 {
		e.cfg.Batch.Concurrency = opts.concurrency
	}

	c, err := build(e.cfg, e.logger)
	if err != nil {
		return err
	}
	p := c.pipeline(e.cfg.Translate.Enabled)

	if len(sources) == 1 && opts.glob == "" {
		run, err := p.Process(cmd.Context(), sources[0])
		if err != nil {
			return err
		}
		return run.Write(opts.out, cmd.OutOrStdout())
	}

	dir := opts.out
	if dir == "" || dir == "-" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	runs, batchErr := p.Batch(cmd.Context(), sources)
	written := 0
	for _, run := range runs {
		if run == nil || run.Document() == nil {
			continue
		}
		dest := pipeline.OutputPath(dir, run.Source, opts.gzip)
		if err := run.Write(dest, nil); err != nil {
			return err
		}
		written++
		e.logger.Debug("wrote release notes", zap.String("source", run.Source), zap.String("path", dest))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "parsed %d of %d pages into %s\n", written, len(sources), dir)
	return batchErr
}
