package syllabus

import (
	"regexp"
	"slices"
	"strings"
	"testing"
)

const sampleSyllabus = `Course preamble text.

# Course Overview
Welcome to the course. See https://lms.example.edu/courses/1/lessons/intro.

## EBO Due Dates
The EBO is due Monday, February 3rd at 11:59pm.
Resources: https://lms.example.edu/courses/1/lessons/ebo-guide, https://lms.example.edu/courses/1/lessons/ebo-guide
Unrelated: https://lms.example.edu/courses/1/files/handout.pdf

## Essay Due Dates
The essay is due Friday, March 14th at 11:59pm. Late submissions lose 10% per day.

## Extensions
Contact the instructor for medical accommodations.
`

func TestSectionize(t *testing.T) {
	t.Parallel()
	sections := Sectionize(sampleSyllabus)

	wantHeadings := []string{"Course Overview", "EBO Due Dates", "Essay Due Dates", "Extensions"}
	if len(sections) != len(wantHeadings) {
		t.Fatalf("Sectionize() returned %d sections, want %d", len(sections), len(wantHeadings))
	}
	for i, want := range wantHeadings {
		if sections[i].Heading != want {
			t.Errorf("sections[%d].Heading = %q, want %q", i, sections[i].Heading, want)
		}
	}

	if got := sections[3].Body; got != "Contact the instructor for medical accommodations.\n" {
		t.Errorf("last section body = %q", got)
	}
	if strings.Contains(sections[0].Body, "preamble") {
		t.Error("preamble should not belong to any section")
	}

	wantLinks := []string{"https://lms.example.edu/courses/1/lessons/ebo-guide"}
	if !slices.Equal(sections[1].ReferenceLinks, wantLinks) {
		t.Errorf("sections[1].ReferenceLinks = %v, want %v", sections[1].ReferenceLinks, wantLinks)
	}
	wantIntro := []string{"https://lms.example.edu/courses/1/lessons/intro"}
	if !slices.Equal(sections[0].ReferenceLinks, wantIntro) {
		t.Errorf("sections[0].ReferenceLinks = %v, want %v", sections[0].ReferenceLinks, wantIntro)
	}
}

func TestSectionizeCoversDocument(t *testing.T) {
	t.Parallel()
	docs := []string{
		sampleSyllabus,
		"# Only heading",
		"# A\n## B\n### C\nbody\n",
		"# A\r\nbody with CRLF\r\n# B\r\n",
		"####### not a heading\n# Real\ntext",
	}
	headingLine := regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)

	for _, doc := range docs {
		sections := Sectionize(doc)
		if want := len(headingLine.FindAllString(doc, -1)); len(sections) != want {
			t.Errorf("Sectionize(%q) returned %d sections, want %d", doc, len(sections), want)
		}

		// Every section's heading and body appear in document order.
		rest := doc
		for _, s := range sections {
			idx := strings.Index(rest, s.Heading)
			if idx < 0 {
				t.Fatalf("heading %q not found in order", s.Heading)
			}
			rest = rest[idx+len(s.Heading):]
			idx = strings.Index(rest, s.Body)
			if idx < 0 {
				t.Fatalf("body %q not found in order", s.Body)
			}
			rest = rest[idx+len(s.Body):]
		}
		if strings.TrimSpace(rest) != "" {
			t.Errorf("uncovered trailing text %q", rest)
		}
	}
}

func TestSectionizeNoHeadings(t *testing.T) {
	t.Parallel()
	for _, doc := range []string{"", "just text\nno headings", "#hashtag line"} {
		if got := Sectionize(doc); len(got) != 0 {
			t.Errorf("Sectionize(%q) = %v, want no sections", doc, got)
		}
	}
}

func TestExtractLessonLinks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Trailing punctuation trimmed",
			text: "See https://lms.x.edu/c/1/units/2. And https://lms.x.edu/c/1/topics/9;",
			want: []string{"https://lms.x.edu/c/1/units/2", "https://lms.x.edu/c/1/topics/9"},
		},
		{
			name: "Markdown link target",
			text: "[Lesson](https://lms.x.edu/c/1/lesson/5)",
			want: []string{"https://lms.x.edu/c/1/lesson/5"},
		},
		{
			name: "Duplicates keep first",
			text: "https://a.edu/lessons/1 https://a.edu/lessons/2 https://a.edu/lessons/1",
			want: []string{"https://a.edu/lessons/1", "https://a.edu/lessons/2"},
		},
		{
			name: "Non lesson links ignored",
			text: "https://a.edu/files/1 https://example.com",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractLessonLinks(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("ExtractLessonLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentHash(t *testing.T) {
	t.Parallel()
	a := ContentHash("# A")
	if len(a) != 64 {
		t.Errorf("ContentHash() length = %d, want 64", len(a))
	}
	if a != ContentHash("# A") {
		t.Error("ContentHash() should be stable")
	}
	if a == ContentHash("# B") {
		t.Error("ContentHash() should differ for different input")
	}
}
