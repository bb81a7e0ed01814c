// Package syllabus parses the course syllabus markdown into sections and
// extracts verbatim due-date answers from them.
package syllabus

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/garyellow/syllabus-assistant-go/internal/sliceutil"
)

// Section is a heading-delimited span of the syllabus.
type Section struct {
	Heading        string   // heading text without the # marker
	Body           string   // text after the heading line up to the next heading
	ReferenceLinks []string // lesson links in heading or body, first occurrence order
}

// Text returns the heading and body joined by a newline.
func (s Section) Text() string {
	return s.Heading + "\n" + s.Body
}

var (
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(\S[^\n]*)$`)

	// Course platform lesson, unit and topic pages.
	lessonLinkPattern = regexp.MustCompile(`https?://[^\s<>()\[\]"']+/(?:lessons?|units?|topics?)/[^\s<>()\[\]"']*`)
)

// Sectionize splits doc at heading-marker lines.
//
// Text before the first heading belongs to no section, and a document
// without headings yields no sections.
func Sectionize(doc string) []Section {
	matches := headingPattern.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		heading := strings.TrimSpace(doc[m[2]:m[3]])

		bodyStart := m[1]
		if bodyStart < len(doc) && doc[bodyStart] == '\n' {
			bodyStart++
		}
		bodyEnd := len(doc)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := doc[bodyStart:bodyEnd]

		sections = append(sections, Section{
			Heading:        heading,
			Body:           body,
			ReferenceLinks: ExtractLessonLinks(heading + "\n" + body),
		})
	}
	return sections
}

// ExtractLessonLinks returns the distinct lesson links in text, in order of
// first occurrence. Trailing sentence punctuation is not part of a link.
func ExtractLessonLinks(text string) []string {
	raw := lessonLinkPattern.FindAllString(text, -1)
	if len(raw) == 0 {
		return nil
	}

	links := make([]string, 0, len(raw))
	for _, link := range raw {
		link = strings.TrimRight(link, ".,;:!?*_`")
		if link != "" {
			links = append(links, link)
		}
	}
	return sliceutil.Unique(links)
}

// ContentHash returns the hex SHA-256 of doc. It identifies a syllabus
// version in logs and readiness output.
func ContentHash(doc string) string {
	hash := sha256.Sum256([]byte(doc))
	return hex.EncodeToString(hash[:])
}
