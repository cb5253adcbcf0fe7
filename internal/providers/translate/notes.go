package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/GriffinCanCode/relnotes/internal/providers/publish"
	"go.uber.org/zap"
)

// Result is a translated document plus the per-item failures it absorbed
type Result struct {
	Notes  *notes.TranslatedNotes
	Errors []*TranslationError
}

// NotesTranslator translates whole documents feature by feature
type NotesTranslator struct {
	translator Translator
	// Pause is the delay between features
	Pause  time.Duration
	logger *zap.Logger
}

// NewNotesTranslator wraps t; a nil logger disables logging
func NewNotesTranslator(t Translator, logger *zap.Logger) *NotesTranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesTranslator{translator: t, logger: logger}
}

// Translate translates every feature title and description. A failed item
// keeps its original text behind a failure marker, so the only error
// returned is context cancellation.
func (n *NotesTranslator) Translate(ctx context.Context, rn *notes.ReleaseNotes) (*Result, error) {
	res := &Result{
		Notes: &notes.TranslatedNotes{
			Version:    rn.Version,
			Features:   make([]notes.TranslatedFeature, 0, rn.Len()),
			Translated: true,
		},
	}

	total := rn.Len()
	for i, f := range rn.Features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n.logger.Debug("translating feature",
			zap.Int("index", i+1),
			zap.Int("total", total),
			zap.String("title", f.Title),
		)

		title := n.item(ctx, res, f.Title, f.Title, "Category: "+f.Category)
		description := n.item(ctx, res, f.Title, f.Description,
			fmt.Sprintf("Feature: %s, Category: %s", f.Title, f.Category))

		res.Notes.Features = append(res.Notes.Features, notes.TranslatedFeature{
			Category:    f.Category,
			Title:       title,
			TitleEn:     f.Title,
			Description: publish.BilingualBody(f, title, description),
		})

		if n.Pause > 0 && i < total-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(n.Pause):
			}
		}
	}

	if len(res.Errors) > 0 {
		n.logger.Warn("some translations failed",
			zap.Int("failed", len(res.Errors)),
			zap.Int("features", total),
		)
	}
	return res, nil
}

func (n *NotesTranslator) item(ctx context.Context, res *Result, feature, text, hint string) string {
	out, err := n.translator.Translate(ctx, text, hint)
	if err != nil {
		res.Errors = append(res.Errors, &TranslationError{Item: feature, Err: err})
		return FailureMarker(err, text)
	}
	return out
}
