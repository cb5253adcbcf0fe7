// Package testutil provides mocks and fixtures shared by package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher is a mock implementation of fetch.Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

// Fetch mocks the Fetch method.
func (m *MockFetcher) Fetch(ctx context.Context, source string) (string, error) {
	args := m.Called(ctx, source)
	return args.String(0), args.Error(1)
}

// MockTranslator is a mock implementation of translate.Translator for testing.
type MockTranslator struct {
	mock.Mock
}

// Translate mocks the Translate method.
func (m *MockTranslator) Translate(ctx context.Context, text, hint string) (string, error) {
	args := m.Called(ctx, text, hint)
	if fn, ok := args.Get(0).(func(context.Context, string, string) string); ok {
		return fn(ctx, text, hint), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

// NewMockFetcher creates a mock fetcher serving pages by source.
func NewMockFetcher(t *testing.T, pages map[string]string) *MockFetcher {
	t.Helper()
	m := new(MockFetcher)
	for source, html := range pages {
		m.On("Fetch", mock.Anything, source).Return(html, nil).Maybe()
	}
	return m
}

// NewEchoTranslator creates a mock translator that prefixes every text
// with "[lang] ".
func NewEchoTranslator(t *testing.T, lang string) *MockTranslator {
	t.Helper()
	m := new(MockTranslator)
	m.On("Translate", mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, text, _ string) string { return "[" + lang + "] " + text }, nil).
		Maybe()
	return m
}

// ReleasePage is a small release-notes page with one category and two
// features. The first feature has enough body that the equal-rank
// heading after it does not make it a category.
const ReleasePage = `<!DOCTYPE html>
<html>
<head><title>Release Notes 129.0.0</title></head>
<body>
  <main>
    <h2>Cloud TAP</h2>
    <h3>Enhanced Security</h3>
    <p>Supports IAM Roles for cross-account access.</p>
    <p>External IDs are required for every assumed role.</p>
    <p>Existing access keys keep working until rotated.</p>
    <h3>Faster Capture</h3>
    <p>Packet capture now streams directly to S3.</p>
  </main>
</body>
</html>`

// CreateTestNotes creates release notes with the given feature titles,
// all in one category.
func CreateTestNotes(t *testing.T, version string, titles ...string) *notes.ReleaseNotes {
	t.Helper()
	rn := &notes.ReleaseNotes{Version: version, Features: make([]notes.Feature, 0, len(titles))}
	for _, title := range titles {
		rn.Features = append(rn.Features, notes.Feature{
			Category:    "Cloud TAP",
			Title:       title,
			Description: title + " description.",
		})
	}
	return rn
}

// WriteFile writes content under a temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
