package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"go.uber.org/zap"
)

const maxLogTitle = 80

// Input is one page to parse
type Input struct {
	HTML string
	// URL is the page address, used for version inference and as the
	// origin for relative links. The canonical link stands in when empty.
	URL string
	// Origin overrides the scheme://host used to resolve relative links
	Origin string
}

// Extraction is the outcome of a parse run
type Extraction struct {
	Notes       *notes.ReleaseNotes
	ContentArea string
	Headings    int
	Candidates  map[Strategy]int
}

// Parser runs the heading, class-pattern and list-embedded strategies
// over a page and assembles the release notes. It keeps no per-run
// state and is safe for concurrent use.
type Parser struct {
	policy Policy
	logger *zap.Logger
}

// NewParser creates a parser; a nil logger disables logging
func NewParser(policy Policy, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{policy: policy, logger: logger}
}

// Policy returns the parser's extraction policy
func (p *Parser) Policy() Policy {
	return p.policy
}

// Parse extracts release notes from in. Only invalid input is an error;
// every other anomaly degrades to fewer features.
func (p *Parser) Parse(in Input) (*Extraction, error) {
	doc, err := LoadHTML(in.HTML)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayURL(in.URL), err)
	}

	meta := ExtractPageMeta(doc)
	origin := in.Origin
	if origin == "" {
		origin = meta.Origin(in.URL)
	}

	selector := p.policy.headingSelector()
	root, area, err := FindContentArea(doc, p.policy.ContentAreas, selector)
	if err != nil {
		if !errors.Is(err, ErrNoContentArea) {
			return nil, err
		}
		p.logger.Debug("no content area matched, scanning body",
			zap.String("url", in.URL),
			zap.Error(err),
		)
	}

	renderer := NewRenderer(origin)
	extractor := NewExtractor(renderer, p.policy)
	classifier := NewClassifier(p.policy, extractor)
	classifier.WithItemTitles(itemTitleNodes(p.policy, root))

	headings := classifier.Headings(root.Find(selector).Nodes)
	state := &pass{
		root:            root,
		order:           documentOrder(root.Nodes[0]),
		classifications: classifier.Classify(headings),
		renderer:        renderer,
		extractor:       extractor,
		policy:          p.policy,
	}

	strategies := []struct {
		name Strategy
		fn   strategyFunc
	}{
		{StrategyHeading, headingPass},
		{StrategyClassPattern, classPatternPass},
		{StrategyListEmbedded, listEmbeddedPass},
	}

	counts := make(map[Strategy]int, len(strategies))
	groups := make([][]candidate, 0, len(strategies))
	for _, s := range strategies {
		if !p.policy.Enabled(s.name) {
			continue
		}
		found := runStrategy(s.name, s.fn, state, p.logger)
		counts[s.name] = len(found)
		groups = append(groups, found)
	}

	version := notes.ResolveVersion(meta.VersionSources(in.URL)...)
	rn := notes.Assemble(mergeCandidates(groups...), version, p.policy.DedupeKey)

	fields := []zap.Field{
		zap.String("url", in.URL),
		zap.String("page_title", TruncateText(meta.Title, maxLogTitle)),
		zap.String("version", rn.Version),
		zap.String("content_area", area),
		zap.Int("headings", len(headings)),
		zap.Int("features", rn.Len()),
		zap.Strings("categories", rn.Categories()),
	}
	if rn.Len() == 0 {
		p.logger.Warn("page yielded no features", fields...)
	} else {
		p.logger.Info("release notes extracted", fields...)
	}

	return &Extraction{
		Notes:       rn,
		ContentArea: area,
		Headings:    len(headings),
		Candidates:  counts,
	}, nil
}

func displayURL(u string) string {
	if strings.TrimSpace(u) == "" {
		return "input"
	}
	return u
}
