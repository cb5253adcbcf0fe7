package publish

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
)

// Comment is one discussion comment
type Comment struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Thread is the discussion for one release
type Thread struct {
	Title    string    `json:"title"`
	Comments []Comment `json:"comments"`
}

// ThreadTitle names the discussion for version
func ThreadTitle(version string) string {
	return "Release Notes " + version
}

// Body renders an untranslated feature
func Body(f notes.Feature) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", f.Title)
	if f.Description != "" {
		b.WriteString(f.Description)
		b.WriteString("\n\n")
	}
	writeFooter(&b, f.Category)
	return b.String()
}

// BilingualBody renders a translated feature with the original folded
// away below it
func BilingualBody(f notes.Feature, title, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	if description != "" {
		b.WriteString(description)
		b.WriteString("\n\n")
	}
	b.WriteString("<details>\n")
	b.WriteString("<summary>🇬🇧 View original English version</summary>\n\n")
	fmt.Fprintf(&b, "### %s\n\n", f.Title)
	if f.Description != "" {
		b.WriteString(f.Description)
		b.WriteString("\n\n")
	}
	b.WriteString("</details>\n\n")
	writeFooter(&b, f.Category)
	return b.String()
}

func writeFooter(b *strings.Builder, category string) {
	fmt.Fprintf(b, "---\n*Category: %s*", category)
}

// FromNotes builds the thread for untranslated notes
func FromNotes(rn *notes.ReleaseNotes) Thread {
	t := Thread{Title: ThreadTitle(rn.Version), Comments: make([]Comment, 0, rn.Len())}
	for _, f := range rn.Features {
		t.Comments = append(t.Comments, Comment{Title: f.Title, Body: Body(f)})
	}
	return t
}

// FromTranslated builds the thread for translated notes. Their
// descriptions already hold the rendered body.
func FromTranslated(tn *notes.TranslatedNotes) Thread {
	t := Thread{Title: ThreadTitle(tn.Version), Comments: make([]Comment, 0, len(tn.Features))}
	for _, f := range tn.Features {
		t.Comments = append(t.Comments, Comment{Title: f.Title, Body: f.Description})
	}
	return t
}
