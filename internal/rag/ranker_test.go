package rag

import (
	"strings"
	"testing"

	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/syllabus"
)

func testSections() []syllabus.Section {
	return []syllabus.Section{
		{Heading: "Grading", Body: "Quiz 10%\n"},
		{Heading: "Late policy", Body: "Late work loses 5 percent per day\n"},
		{Heading: "Readings", Body: "Chapter one through chapter nine\n"},
	}
}

func TestRank_BestFirst(t *testing.T) {
	t.Parallel()
	r := NewSectionRanker(0, logger.New("error"))

	ranked, err := r.Rank("late penalty per day", testSections())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}
	if ranked[0].Section.Heading != "Late policy" {
		t.Errorf("best = %q, want Late policy", ranked[0].Section.Heading)
	}
	if ranked[0].Index != 1 {
		t.Errorf("Index = %d, want 1", ranked[0].Index)
	}
	if ranked[0].Score <= ranked[2].Score {
		t.Errorf("scores not descending: %v", ranked)
	}
}

func TestRank_EmptyQueryKeepsOrder(t *testing.T) {
	t.Parallel()
	r := NewSectionRanker(0, logger.New("error"))

	ranked, err := r.Rank("  ?! ", testSections())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for i, s := range ranked {
		if s.Index != i {
			t.Errorf("ranked[%d].Index = %d", i, s.Index)
		}
	}
}

func TestContext(t *testing.T) {
	t.Parallel()
	sections := testSections()
	full := syllabus.JoinSections(sections)
	late := syllabus.JoinSections(sections[1:2])

	tests := []struct {
		name     string
		maxChars int
		query    string
		sections []syllabus.Section
		fallback string
		want     string
	}{
		{"no budget", 0, "late", sections, "", full},
		{"everything fits", len(full), "late", sections, "", full},
		{"trimmed to best section", len(late) + 5, "late penalty per day", sections, "", late},
		{"no sections uses fallback", 100, "q", nil, "plain syllabus text", "plain syllabus text"},
		{"fallback truncated", 5, "q", nil, "plain syllabus text", "plain…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewSectionRanker(tt.maxChars, logger.New("error"))
			if got := r.Context(tt.query, tt.sections, tt.fallback); got != tt.want {
				t.Errorf("Context() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContext_KeptSectionsInDocumentOrder(t *testing.T) {
	t.Parallel()
	sections := testSections()
	// Room for Grading and Readings but not Late policy.
	budget := len(syllabus.JoinSections([]syllabus.Section{sections[0], sections[2]})) + 2
	r := NewSectionRanker(budget, logger.New("error"))

	got := r.Context("chapter quiz", sections, "")
	if !strings.HasPrefix(got, "## Grading") {
		t.Errorf("expected Grading first, got %q", got)
	}
	if !strings.Contains(got, "## Readings") {
		t.Errorf("expected Readings kept, got %q", got)
	}
	if strings.Contains(got, "Late policy") {
		t.Errorf("Late policy should be trimmed, got %q", got)
	}
}

func TestContext_OversizedSectionTruncated(t *testing.T) {
	t.Parallel()
	sections := []syllabus.Section{{Heading: "Policy", Body: strings.Repeat("word ", 50)}}
	r := NewSectionRanker(20, logger.New("error"))

	got := r.Context("word", sections, "")
	if !strings.HasPrefix(got, "## Policy") || !strings.HasSuffix(got, "…") {
		t.Errorf("Context() = %q", got)
	}
	if n := len([]rune(got)); n != 21 {
		t.Errorf("rune count = %d, want 21", n)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	got := tokenize("Late-work: 5% 課程")
	want := []string{"late", "work", "5", "課", "程"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("tokenize() = %v, want %v", got, want)
	}
}
