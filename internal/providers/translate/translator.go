package translate

import (
	"context"
	"fmt"
)

// Translator translates one text. hint is optional context such as the
// feature category; it is never translated itself.
type Translator interface {
	Translate(ctx context.Context, text, hint string) (string, error)
}

// TranslationError reports a failed translation of a single item
type TranslationError struct {
	Item string
	Err  error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate %q: %v", e.Item, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// FailureMarker is the text left in place of a failed translation
func FailureMarker(err error, original string) string {
	return fmt.Sprintf("[translation failed: %v]\n\n%s", err, original)
}
