package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/GriffinCanCode/relnotes/internal/providers/publish"
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	var (
		out      string
		htmlPath string
	)

	cmd := &cobra.Command{
		Use:   "publish <notes.json|->",
		Short: "Render discussion comments for a release",
		Long: `Render one discussion comment per feature from a parsed or translated
document. Comments are written as numbered markdown files into --out, or
printed to stdout. --html also renders a sanitized HTML preview.`,
		Example: `  relnotes publish notes.ja.json --out comments/
  relnotes publish notes.json --html preview.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			thread, err := loadThread(data)
			if err != nil {
				return err
			}

			if htmlPath != "" {
				page, err := publish.NewRenderer().Preview(thread)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", htmlPath, err)
				}
			}

			if out == "" || out == "-" {
				bodies := make([]string, 0, len(thread.Comments))
				for _, c := range thread.Comments {
					bodies = append(bodies, c.Body)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n%s\n", thread.Title, strings.Join(bodies, "\n\n"))
				return err
			}

			paths, err := publish.WriteMarkdown(out, thread)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d comments to %s\n", len(paths), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "Directory for comment files (default stdout)")
	f.StringVar(&htmlPath, "html", "", "Also write an HTML preview to this file")

	return cmd
}

// loadThread accepts both translated and untranslated documents
func loadThread(data []byte) (publish.Thread, error) {
	tn, err := notes.UnmarshalTranslated(data)
	if err == nil && tn.Translated {
		return publish.FromTranslated(tn), nil
	}
	rn, err := notes.Unmarshal(data)
	if err != nil {
		return publish.Thread{}, err
	}
	return publish.FromNotes(rn), nil
}
