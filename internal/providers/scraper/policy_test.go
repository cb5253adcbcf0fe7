package scraper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultPolicyValid(t *testing.T) {
	p := DefaultPolicy()
	require.NoError(t, p.Validate())
	assert.True(t, p.Enabled(StrategyHeading))
	assert.True(t, p.Enabled(StrategyClassPattern))
	assert.True(t, p.Enabled(StrategyListEmbedded))
	assert.Equal(t, "h2, h3, h4, h5, h6", p.headingSelector())
}

func TestLoadPolicyEmptyPath(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestLoadPolicyYAML(t *testing.T) {
	path := writePolicy(t, "policy.yaml", `
heading_ranks: [2, 3, 4]
category_ranks: [2]
adjacency_threshold: 5
content_cap: 800
dedupe_key: title
navigation_terms:
  - sidebar
class_pairs:
  - title: .faq-q
    body: .faq-a
strategies: [heading, class_pattern]
`)

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, p.HeadingRanks)
	assert.Equal(t, []int{2}, p.CategoryRanks)
	assert.Equal(t, 5, p.AdjacencyThreshold)
	assert.Equal(t, 800, p.ContentCap)
	assert.Equal(t, notes.KeyTitle, p.DedupeKey)
	assert.Equal(t, []string{"sidebar"}, p.NavigationTerms)
	assert.Equal(t, []ClassPair{{Title: ".faq-q", Body: ".faq-a"}}, p.ClassPairs)
	assert.False(t, p.Enabled(StrategyListEmbedded))

	// unset keys keep their defaults
	assert.True(t, p.CategoryOnEqualRank)
	assert.Equal(t, 10, p.MinBlockLength)
	assert.Equal(t, DefaultPolicy().ContentAreas, p.ContentAreas)
}

func TestLoadPolicyTOML(t *testing.T) {
	path := writePolicy(t, "policy.toml", `
heading_ranks = [3, 4]
title_ranks = [4]
category_on_equal_rank = false
min_heading_length = 2

[[class_pairs]]
title = ".changelog-entry h5"
body = ".changelog-entry .body"
`)

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, p.HeadingRanks)
	assert.Equal(t, []int{4}, p.TitleRanks)
	assert.False(t, p.CategoryOnEqualRank)
	assert.Equal(t, 2, p.MinHeadingLength)
	assert.Contains(t, p.ClassPairs, ClassPair{Title: ".changelog-entry h5", Body: ".changelog-entry .body"})
	assert.Equal(t, notes.KeyTitleCategory, p.DedupeKey)
}

func TestLoadPolicyErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{"unsupported format", "policy.ini", "x=1", "unsupported policy format"},
		{"bad rank", "policy.yaml", "heading_ranks: [7]", "out of range"},
		{"empty ranks", "policy.yaml", "heading_ranks: []", "must not be empty"},
		{"conflicting ranks", "policy.yaml", "category_ranks: [3]\ntitle_ranks: [3]", "both category and title"},
		{"unknown strategy", "policy.yaml", "strategies: [magic]", "unknown strategy"},
		{"unknown key policy", "policy.yaml", "dedupe_key: url", "dedupe"},
		{"half class pair", "policy.toml", "[[class_pairs]]\ntitle = \".q\"", "both title and body"},
		{"negative threshold", "policy.yaml", "adjacency_threshold: -1", "negative"},
		{"malformed yaml", "policy.yaml", "heading_ranks: [2, 3", "parse policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPolicy(writePolicy(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read policy")
}
