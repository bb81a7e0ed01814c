// Package rag builds the syllabus context handed to the completion service.
// Sections are ranked with BM25 against the query so the most relevant
// text survives when the context has to be trimmed.
package rag

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/iwilltry42/bm25-go/bm25"

	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/stringutil"
	"github.com/garyellow/syllabus-assistant-go/internal/syllabus"
)

// Standard BM25 parameters.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// SectionRanker fits syllabus sections into a character budget.
type SectionRanker struct {
	maxChars int
	logger   *logger.Logger
}

// NewSectionRanker creates a ranker. A maxChars of zero or less disables
// trimming.
func NewSectionRanker(maxChars int, log *logger.Logger) *SectionRanker {
	return &SectionRanker{maxChars: maxChars, logger: log}
}

// ScoredSection is a section with its BM25 score against a query.
type ScoredSection struct {
	Index   int // position in the input slice
	Section syllabus.Section
	Score   float64
}

// Rank scores every section against query, best first. Ties keep
// document order.
func (r *SectionRanker) Rank(query string, sections []syllabus.Section) ([]ScoredSection, error) {
	scored := make([]ScoredSection, len(sections))
	for i, s := range sections {
		scored[i] = ScoredSection{Index: i, Section: s}
	}

	tokens := tokenize(query)
	if len(sections) == 0 || len(tokens) == 0 {
		return scored, nil
	}

	corpus := make([]string, len(sections))
	for i, s := range sections {
		corpus[i] = s.Text()
	}

	index, err := bm25.NewBM25Okapi(corpus, tokenize, bm25K1, bm25B, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create BM25 index: %w", err)
	}
	scores, err := index.GetScores(tokens)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}
	for i := range scored {
		if i < len(scores) {
			scored[i].Score = scores[i]
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// Context renders sections as model context within the character budget.
//
// When everything fits, sections are returned unchanged in document order.
// Otherwise the best-ranked sections are kept greedily and rendered in
// document order. With no sections the raw fallback text is truncated.
func (r *SectionRanker) Context(query string, sections []syllabus.Section, fallback string) string {
	if len(sections) == 0 {
		return r.truncate(fallback)
	}

	full := syllabus.JoinSections(sections)
	if r.maxChars <= 0 || len(full) <= r.maxChars {
		return full
	}

	ranked, err := r.Rank(query, sections)
	if err != nil {
		r.logger.WithError(err).Warn("Section ranking failed, keeping document order")
		return r.truncate(full)
	}

	keep := make([]bool, len(sections))
	used := 0
	for _, s := range ranked {
		size := len(syllabus.JoinSections([]syllabus.Section{s.Section})) + 1
		if used+size > r.maxChars {
			continue
		}
		keep[s.Index] = true
		used += size
	}

	kept := make([]syllabus.Section, 0, len(sections))
	for i, s := range sections {
		if keep[i] {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		// Even the best section alone is over budget.
		return r.truncate(syllabus.JoinSections([]syllabus.Section{ranked[0].Section}))
	}

	r.logger.WithFields(map[string]any{
		"sections_total": len(sections),
		"sections_kept":  len(kept),
		"max_chars":      r.maxChars,
	}).Debug("Trimmed completion context")
	return syllabus.JoinSections(kept)
}

// Fits reports whether text is within the character budget.
func (r *SectionRanker) Fits(text string) bool {
	return r.maxChars <= 0 || len(text) <= r.maxChars
}

func (r *SectionRanker) truncate(s string) string {
	if r.maxChars <= 0 || len(s) <= r.maxChars {
		return s
	}
	return stringutil.Truncate(s, r.maxChars)
}

// tokenize lowercases text and splits it into words. CJK runs are emitted
// per character so mixed-language syllabi still score.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var currentWord strings.Builder

	for _, r := range text {
		switch {
		case isCJK(r):
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
			tokens = append(tokens, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			currentWord.WriteRune(r)
		default:
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
		}
	}

	if currentWord.Len() > 0 {
		tokens = append(tokens, currentWord.String())
	}

	return tokens
}

// isCJK returns true if the rune is a CJK character
func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
