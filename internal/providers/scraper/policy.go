package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Strategy names an independent extraction pass
type Strategy string

const (
	StrategyHeading      Strategy = "heading"
	StrategyClassPattern Strategy = "class_pattern"
	StrategyListEmbedded Strategy = "list_embedded"
)

// ClassPair is a pair of CSS selectors for accordion-style markup
type ClassPair struct {
	Title string `yaml:"title" toml:"title" json:"title"`
	Body  string `yaml:"body" toml:"body" json:"body"`
}

// Policy tunes the extraction heuristics. Heading ranks not listed in
// CategoryRanks or TitleRanks are classified by adjacency.
type Policy struct {
	HeadingRanks        []int           `yaml:"heading_ranks" toml:"heading_ranks" json:"heading_ranks"`
	CategoryRanks       []int           `yaml:"category_ranks" toml:"category_ranks" json:"category_ranks"`
	TitleRanks          []int           `yaml:"title_ranks" toml:"title_ranks" json:"title_ranks"`
	CategoryOnEqualRank bool            `yaml:"category_on_equal_rank" toml:"category_on_equal_rank" json:"category_on_equal_rank"`
	AdjacencyThreshold  int             `yaml:"adjacency_threshold" toml:"adjacency_threshold" json:"adjacency_threshold"`
	SubstantialLength   int             `yaml:"substantial_length" toml:"substantial_length" json:"substantial_length"`
	MinHeadingLength    int             `yaml:"min_heading_length" toml:"min_heading_length" json:"min_heading_length"`
	MinBlockLength      int             `yaml:"min_block_length" toml:"min_block_length" json:"min_block_length"`
	ContentCap          int             `yaml:"content_cap" toml:"content_cap" json:"content_cap"`
	DedupeKey           notes.KeyPolicy `yaml:"dedupe_key" toml:"dedupe_key" json:"dedupe_key"`
	NavigationTerms     []string        `yaml:"navigation_terms" toml:"navigation_terms" json:"navigation_terms"`
	ContentAreas        []string        `yaml:"content_areas" toml:"content_areas" json:"content_areas"`
	ClassPairs          []ClassPair     `yaml:"class_pairs" toml:"class_pairs" json:"class_pairs"`
	Strategies          []Strategy      `yaml:"strategies" toml:"strategies" json:"strategies"`
}

// DefaultPolicy returns the policy used when no file is configured
func DefaultPolicy() Policy {
	return Policy{
		HeadingRanks:        []int{2, 3, 4, 5, 6},
		AdjacencyThreshold:  3,
		CategoryOnEqualRank: true,
		SubstantialLength:   10,
		MinHeadingLength:    3,
		MinBlockLength:      10,
		ContentCap:          1500,
		DedupeKey:           notes.KeyTitleCategory,
		NavigationTerms:     append([]string(nil), DefaultNavigationTerms...),
		ContentAreas: []string{
			"//main",
			"//article",
			"//*[@role='main']",
			"//*[@id='content']",
			"//*[contains(concat(' ', normalize-space(@class), ' '), ' release-notes ')]",
		},
		ClassPairs: []ClassPair{
			{Title: ".accordion-title", Body: ".accordion-content"},
			{Title: ".elementor-tab-title", Body: ".elementor-tab-content"},
			{Title: ".feature-title", Body: ".feature-description"},
			{Title: ".release-note-title", Body: ".release-note-body"},
		},
		Strategies: []Strategy{StrategyHeading, StrategyClassPattern, StrategyListEmbedded},
	}
}

// LoadPolicy reads a YAML or TOML policy file over the defaults
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read policy: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &policy)
	case ".toml":
		err = toml.Unmarshal(data, &policy)
	default:
		return policy, fmt.Errorf("unsupported policy format %q", filepath.Ext(path))
	}
	if err != nil {
		return policy, fmt.Errorf("parse policy %s: %w", path, err)
	}

	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("policy %s: %w", path, err)
	}
	return policy, nil
}

// Validate checks ranks, thresholds and names
func (p *Policy) Validate() error {
	if len(p.HeadingRanks) == 0 {
		return fmt.Errorf("heading_ranks must not be empty")
	}
	for _, ranks := range [][]int{p.HeadingRanks, p.CategoryRanks, p.TitleRanks} {
		for _, r := range ranks {
			if r < 1 || r > 6 {
				return fmt.Errorf("heading rank %d out of range 1-6", r)
			}
		}
	}
	for _, r := range p.CategoryRanks {
		if containsInt(p.TitleRanks, r) {
			return fmt.Errorf("rank %d listed as both category and title", r)
		}
	}
	if p.AdjacencyThreshold < 0 || p.MinBlockLength < 0 || p.MinHeadingLength < 0 || p.ContentCap < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}

	key, err := notes.ParseKeyPolicy(string(p.DedupeKey))
	if err != nil {
		return err
	}
	p.DedupeKey = key

	for _, s := range p.Strategies {
		switch s {
		case StrategyHeading, StrategyClassPattern, StrategyListEmbedded:
		default:
			return fmt.Errorf("unknown strategy %q", s)
		}
	}
	for _, pair := range p.ClassPairs {
		if pair.Title == "" || pair.Body == "" {
			return fmt.Errorf("class pair needs both title and body selectors")
		}
	}
	return nil
}

// Enabled reports whether strategy s runs
func (p Policy) Enabled(s Strategy) bool {
	for _, x := range p.Strategies {
		if x == s {
			return true
		}
	}
	return false
}

func (p Policy) usesRank(rank int) bool {
	return containsInt(p.HeadingRanks, rank)
}

// headingSelector matches every configured heading rank
func (p Policy) headingSelector() string {
	tags := make([]string, 0, len(p.HeadingRanks))
	for _, r := range p.HeadingRanks {
		tags = append(tags, fmt.Sprintf("h%d", r))
	}
	return strings.Join(tags, ", ")
}

// classTitleSelector matches the title side of every class pair
func (p Policy) classTitleSelector() string {
	sels := make([]string, 0, len(p.ClassPairs))
	for _, pair := range p.ClassPairs {
		sels = append(sels, pair.Title)
	}
	return strings.Join(sels, ", ")
}
