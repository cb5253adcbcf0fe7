package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/spf13/cobra"
)

func newTranslateCmd() *cobra.Command {
	var (
		out      string
		language string
		model    string
	)

	cmd := &cobra.Command{
		Use:   "translate <notes.json|->",
		Short: "Translate a release-notes document",
		Long: `Translate every feature title and description of a document written by
"relnotes parse". Each description becomes a discussion body with the
original English folded below the translation. A feature whose translation
fails keeps its original text behind a "[translation failed: ...]" marker.

Requires OPENAI_API_KEY.`,
		Example: `  relnotes translate notes.json --out notes.ja.json
  relnotes parse https://docs.example.com/release-129-0-0 | relnotes translate - --language German`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			e.cfg.Translate.Enabled = true
			if language != "" {
				e.cfg.Translate.TargetLanguage = language
			}
			if model != "" {
				e.cfg.Translate.Model = model
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			rn, err := notes.Unmarshal(data)
			if err != nil {
				return err
			}

			c, err := build(e.cfg, e.logger)
			if err != nil {
				return err
			}

			res, err := c.translator.Translate(cmd.Context(), rn)
			if err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d translations failed; originals kept\n", len(res.Errors))
			}
			return notes.WriteFile(out, cmd.OutOrStdout(), res.Notes)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	f.StringVar(&language, "language", "", "Target language (default from RELNOTES_TARGET_LANGUAGE)")
	f.StringVar(&model, "model", "", "Chat model (default from RELNOTES_TRANSLATE_MODEL)")

	return cmd
}

// readInput reads a file, or stdin for "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return notes.ReadFile(path)
}
