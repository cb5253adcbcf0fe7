package notes

// UnknownVersion is reported when no version-like pattern is found.
const UnknownVersion = "Unknown"

// DefaultCategory applies to features found before any category heading.
const DefaultCategory = "General"

// Feature is one release-note entry. Description is markdown.
type Feature struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReleaseNotes is the output document of a parse run
type ReleaseNotes struct {
	Version  string    `json:"version"`
	Features []Feature `json:"features"`
}

// Len returns the number of features
func (r *ReleaseNotes) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Features)
}

// Categories returns distinct categories in first-seen order
func (r *ReleaseNotes) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Features {
		if !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	return out
}

// TranslatedFeature is a feature after translation. Title holds the
// translated title, TitleEn the original, and Description the rendered
// discussion body.
type TranslatedFeature struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	TitleEn     string `json:"title_en"`
	Description string `json:"description"`
}

// TranslatedNotes is the translated output document
type TranslatedNotes struct {
	Version    string              `json:"version"`
	Features   []TranslatedFeature `json:"features"`
	Translated bool                `json:"translated"`
}
