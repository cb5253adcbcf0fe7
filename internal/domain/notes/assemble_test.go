package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"hyphenated url slug", "https://docs.example.com/release-129-0-0/", "129.0.0", true},
		{"dotted title", "Release Notes 128.1.2 | Docs", "128.1.2", true},
		{"mixed separators", "v12-3.4", "12.3.4", true},
		{"two components only", "Release 12.3", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := MatchVersion(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestResolveVersionFallbackOrder(t *testing.T) {
	assert.Equal(t, "129.0.0", ResolveVersion("https://x.com/release-129-0-0", "Release 1.2.3", "2.3.4"))
	assert.Equal(t, "1.2.3", ResolveVersion("https://x.com/latest", "Release 1.2.3", "2.3.4"))
	assert.Equal(t, "2.3.4", ResolveVersion("https://x.com/latest", "Release notes", "New in 2.3.4"))
	assert.Equal(t, UnknownVersion, ResolveVersion("https://x.com/latest", "", ""))
	assert.Equal(t, UnknownVersion, ResolveVersion())
}

func TestAssembleDeduplicatesFirstSeen(t *testing.T) {
	candidates := []Feature{
		{Category: "Cloud TAP", Title: "Enhanced Security", Description: "first"},
		{Category: "Cloud TAP", Title: "Enhanced Security", Description: "second"},
		{Category: "DLP", Title: "Enhanced Security", Description: "other category"},
		{Category: "DLP", Title: "New Policies", Description: "policies"},
	}

	rn := Assemble(candidates, "129.0.0", KeyTitleCategory)
	require.Len(t, rn.Features, 3)
	assert.Equal(t, "first", rn.Features[0].Description)
	assert.Equal(t, "other category", rn.Features[1].Description)
	assert.Equal(t, "New Policies", rn.Features[2].Title)

	rn = Assemble(candidates, "129.0.0", KeyTitle)
	require.Len(t, rn.Features, 2)
	assert.Equal(t, "Cloud TAP", rn.Features[0].Category)
	assert.Equal(t, "New Policies", rn.Features[1].Title)
}

func TestAssembleKeysArePairwiseDistinct(t *testing.T) {
	var candidates []Feature
	for i := 0; i < 5; i++ {
		candidates = append(candidates,
			Feature{Category: "A", Title: "One"},
			Feature{Category: "B", Title: "One"},
			Feature{Category: "A", Title: "Two"},
		)
	}

	for _, policy := range []KeyPolicy{KeyTitleCategory, KeyTitle} {
		rn := Assemble(candidates, "", policy)
		keys := make(map[string]bool)
		for _, f := range rn.Features {
			k := policy.Key(f)
			assert.False(t, keys[k], "duplicate key %q", k)
			keys[k] = true
		}
		assert.Equal(t, UnknownVersion, rn.Version)
	}
}

func TestAssembleDropsUntitled(t *testing.T) {
	rn := Assemble([]Feature{{Category: "A", Title: "  "}}, "1.0.0", KeyTitleCategory)
	assert.NotNil(t, rn.Features)
	assert.Empty(t, rn.Features)
}

func TestParseKeyPolicy(t *testing.T) {
	p, err := ParseKeyPolicy("")
	require.NoError(t, err)
	assert.Equal(t, KeyTitleCategory, p)

	p, err = ParseKeyPolicy("Title")
	require.NoError(t, err)
	assert.Equal(t, KeyTitle, p)

	_, err = ParseKeyPolicy("description")
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	rn := &ReleaseNotes{Features: []Feature{
		{Category: "B", Title: "1"},
		{Category: "A", Title: "2"},
		{Category: "B", Title: "3"},
	}}
	assert.Equal(t, []string{"B", "A"}, rn.Categories())
	assert.Equal(t, 3, rn.Len())
}
