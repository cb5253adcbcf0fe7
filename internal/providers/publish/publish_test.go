package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feature = notes.Feature{
	Category:    "Cloud TAP",
	Title:       "Enhanced Security for Cloud Storage Access over Internet",
	Description: "Introducing support for AWS IAM Roles Anywhere.",
}

func TestBody(t *testing.T) {
	assert.Equal(t, "## Enhanced Security for Cloud Storage Access over Internet\n\n"+
		"Introducing support for AWS IAM Roles Anywhere.\n\n"+
		"---\n*Category: Cloud TAP*", Body(feature))

	assert.Equal(t, "## Bare\n\n---\n*Category: General*", Body(notes.Feature{Category: "General", Title: "Bare"}))
}

func TestBilingualBody(t *testing.T) {
	got := BilingualBody(feature, "クラウドストレージへのアクセスのセキュリティ強化", "AWS IAM Roles Anywhereのサポートを導入しました。")

	assert.Equal(t, "## クラウドストレージへのアクセスのセキュリティ強化\n\n"+
		"AWS IAM Roles Anywhereのサポートを導入しました。\n\n"+
		"<details>\n"+
		"<summary>🇬🇧 View original English version</summary>\n\n"+
		"### Enhanced Security for Cloud Storage Access over Internet\n\n"+
		"Introducing support for AWS IAM Roles Anywhere.\n\n"+
		"</details>\n\n"+
		"---\n*Category: Cloud TAP*", got)
}

func TestThreads(t *testing.T) {
	rn := &notes.ReleaseNotes{Version: "129.0.0", Features: []notes.Feature{feature}}
	thread := FromNotes(rn)
	assert.Equal(t, "Release Notes 129.0.0", thread.Title)
	require.Len(t, thread.Comments, 1)
	assert.Equal(t, Body(feature), thread.Comments[0].Body)

	tn := &notes.TranslatedNotes{
		Version:    "129.0.0",
		Translated: true,
		Features: []notes.TranslatedFeature{
			{Category: "Cloud TAP", Title: "翻訳", TitleEn: feature.Title, Description: "prerendered"},
		},
	}
	thread = FromTranslated(tn)
	require.Len(t, thread.Comments, 1)
	assert.Equal(t, Comment{Title: "翻訳", Body: "prerendered"}, thread.Comments[0])

	empty := FromNotes(&notes.ReleaseNotes{Version: notes.UnknownVersion, Features: []notes.Feature{}})
	assert.NotNil(t, empty.Comments)
	assert.Empty(t, empty.Comments)
}

func TestRendererHTML(t *testing.T) {
	r := NewRenderer()
	out, err := r.HTML(BilingualBody(feature, "翻訳されたタイトル", "説明 <script>alert(1)</script> **太字**"))
	require.NoError(t, err)

	assert.Contains(t, out, "翻訳されたタイトル</h2>")
	assert.Contains(t, out, "<details>")
	assert.Contains(t, out, "<summary>")
	assert.Contains(t, out, "<strong>太字</strong>")
	assert.Contains(t, out, "<hr")
	assert.NotContains(t, out, "<script>")
}

func TestRendererPreview(t *testing.T) {
	r := NewRenderer()
	page, err := r.Preview(Thread{
		Title:    "Release Notes <1.0.0>",
		Comments: []Comment{{Title: "A", Body: "## A\n\nFirst."}, {Title: "B", Body: "## B\n\nSecond."}},
	})
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Release Notes &lt;1.0.0&gt;</title>")
	assert.Contains(t, page, `id="comment-1"`)
	assert.Contains(t, page, `id="comment-2"`)
	assert.Contains(t, page, "<p>Second.</p>")
}

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteMarkdown(dir, Thread{Comments: []Comment{
		{Title: "Login loop: SSO!", Body: "## Login loop"},
		{Title: "翻訳", Body: "## 翻訳"},
	}})
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(dir, "001-login-loop-sso.md"),
		filepath.Join(dir, "002-comment.md"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "## Login loop\n", string(data))
}
