package assistant

import (
	"fmt"
	"strings"

	"github.com/garyellow/syllabus-assistant-go/internal/intent"
	"github.com/garyellow/syllabus-assistant-go/internal/sliceutil"
)

// Fixed replies for a failed or empty completion.
const (
	UnavailableMessage = "Sorry, the assistant is temporarily unavailable. Please try again later."
	NoResponseMessage  = "No response from the assistant."
)

// Composer renders answer text.
type Composer struct {
	coursePageURL    string
	altAssistantURL  string
	altAssistantName string
}

// NewComposer creates a composer.
func NewComposer(coursePageURL, altAssistantURL, altAssistantName string) *Composer {
	return &Composer{
		coursePageURL:    coursePageURL,
		altAssistantURL:  altAssistantURL,
		altAssistantName: altAssistantName,
	}
}

// Redirect points the student to the assignment assistant.
func (c *Composer) Redirect(entity intent.Entity) string {
	return fmt.Sprintf(
		"For help with how to write, format, or cite your %s, please use the %s: %s",
		entity, c.altAssistantName, c.altAssistantURL)
}

// Deterministic presents a verbatim syllabus block and the section's
// lesson links.
func (c *Composer) Deterministic(entity intent.Entity, block string, links []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here is what the syllabus says about the %s deadline:\n\n", entity)
	sb.WriteString(block)
	writeLinkList(&sb, "Related lessons:", links)
	return sb.String()
}

// Generative presents a completion with inline links reduced to text.
// The links listed are the matched sections' links followed by lesson
// links the completion cites.
func (c *Composer) Generative(completion string, sectionLinks []string) string {
	links := sliceutil.Unique(append(append([]string(nil), sectionLinks...), CitedLessonLinks(completion)...))

	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(StripInlineLinks(completion)))
	writeLinkList(&sb, "References:", links)
	return sb.String()
}

// WithDisclaimer appends the course page disclaimer.
func (c *Composer) WithDisclaimer(body string) string {
	return body + "\n\n---\nThis assistant can make mistakes. Always confirm dates and requirements on the course page: " + c.coursePageURL
}

func writeLinkList(sb *strings.Builder, title string, links []string) {
	if len(links) == 0 {
		return
	}
	sb.WriteString("\n\n")
	sb.WriteString(title)
	for _, link := range links {
		sb.WriteString("\n- ")
		sb.WriteString(link)
	}
}
