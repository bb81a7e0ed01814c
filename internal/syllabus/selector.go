package syllabus

import (
	"regexp"
	"strings"

	"github.com/garyellow/syllabus-assistant-go/internal/intent"
	"github.com/garyellow/syllabus-assistant-go/internal/sliceutil"
)

var dueHeadingPattern = regexp.MustCompile(`(?i)\b(?:due|deadlines?)\b`)

// mentions reports whether the section text matches the entity pattern.
func mentions(s Section, e intent.Entity) bool {
	p := intent.EntityPattern(e)
	return p != nil && p.MatchString(s.Text())
}

// SelectSections returns the sections that mention entity, in document
// order, with due/deadline headings moved to the front.
// Essay selection skips sections that also mention the EBO.
func SelectSections(sections []Section, entity intent.Entity) []Section {
	if entity == intent.EntityNone {
		return nil
	}

	var selected []Section
	for _, s := range sections {
		if !mentions(s, entity) {
			continue
		}
		if entity == intent.EntityEssay && mentions(s, intent.EntityEBO) {
			continue
		}
		selected = append(selected, s)
	}

	return sliceutil.StablePartition(selected, func(s Section) bool {
		return dueHeadingPattern.MatchString(s.Heading)
	})
}

// ExtensionScope returns the text searched for extension and accommodation
// paragraphs when answering from candidate: the candidate body followed by
// the bodies of other sections that do not mention the opposite entity.
func ExtensionScope(sections []Section, candidate Section, entity intent.Entity) string {
	var sb strings.Builder
	sb.WriteString(candidate.Body)

	opposite := entity.Opposite()
	for _, s := range sections {
		if s.Heading == candidate.Heading && s.Body == candidate.Body {
			continue
		}
		if opposite != intent.EntityNone && mentions(s, opposite) {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(s.Body)
	}
	return sb.String()
}

// JoinSections renders sections back to markdown for use as model context.
func JoinSections(sections []Section) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## ")
		sb.WriteString(s.Heading)
		sb.WriteString("\n")
		sb.WriteString(s.Body)
	}
	return sb.String()
}
