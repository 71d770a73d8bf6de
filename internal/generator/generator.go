// Package generator builds meme and breaking-news records from the phrase pools.
package generator

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/memewire/internal/chance"
	"github.com/verte-zerg/memewire/internal/model"
	"github.com/verte-zerg/memewire/internal/templates"
)

// DefaultConfidence is used when no confidence override is supplied.
const DefaultConfidence = 97

var (
	funnyKeywords     = []string{"funny", "gracioso"}
	politicalKeywords = []string{"político", "political"}
)

// Options carries caller overrides. Zero values mean "pick for me".
type Options struct {
	Source     string
	Confidence *int
}

// Generator produces randomized records.
type Generator struct {
	rnd               chance.Rand
	pools             *templates.Pools
	defaultConfidence int
}

// New returns a Generator drawing from pools with rnd.
func New(rnd chance.Rand, pools *templates.Pools, defaultConfidence int) *Generator {
	if defaultConfidence < 0 || defaultConfidence > 100 {
		defaultConfidence = DefaultConfidence
	}
	return &Generator{rnd: rnd, pools: pools, defaultConfidence: defaultConfidence}
}

// Classify maps a free-text hint onto a quote category.
func Classify(hint string) model.Category {
	lower := strings.ToLower(hint)
	if containsAny(lower, funnyKeywords) {
		return model.CategoryFunny
	}
	if containsAny(lower, politicalKeywords) {
		return model.CategoryPolitical
	}
	return model.CategoryAll
}

// Generate draws a quote matching hint and fills in source, evidence, and confidence.
func (g *Generator) Generate(hint string, opts Options) model.Record {
	return g.build(Classify(hint), opts)
}

// Headline draws a breaking-news record from the rumor pool.
func (g *Generator) Headline(opts Options) model.Record {
	return g.build(model.CategoryRumor, opts)
}

// Pools exposes the pools the generator draws from.
func (g *Generator) Pools() *templates.Pools {
	return g.pools
}

func (g *Generator) build(category model.Category, opts Options) model.Record {
	phrase := g.pools.Pick(g.rnd, category)
	source := strings.TrimSpace(opts.Source)
	if source == "" {
		source = g.pools.Source(g.rnd)
	}
	confidence := g.defaultConfidence
	if opts.Confidence != nil {
		confidence = ClampConfidence(*opts.Confidence)
	}
	return model.Record{
		Category:   category,
		Phrase:     phrase,
		Source:     source,
		Evidence:   g.pools.Evidence(g.rnd),
		Confidence: confidence,
	}
}

// ClampConfidence limits v to [0,100].
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MetaLine renders the source/evidence line under a headline.
func MetaLine(r model.Record) string {
	return fmt.Sprintf("Source: %s • %s • Viral Maduro meme", r.Source, r.Evidence)
}

// ConfidenceLabel renders the authenticity badge.
func ConfidenceLabel(r model.Record) string {
	return fmt.Sprintf("AUTHENTICITY %d%%", r.Confidence)
}

// Announcement is the assistive-technology message for a fresh record.
func Announcement(r model.Record) string {
	return fmt.Sprintf("Meme generated: %s with %d%% authenticity", r.Phrase, r.Confidence)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
