package genai

import "strings"

// systemPromptHeader frames the syllabus excerpt for the model.
const systemPromptHeader = `You are the course assistant for a university course.
Answer the student's question using only the syllabus excerpt below.
If the excerpt does not contain the answer, say so and suggest checking the course page.
Quote dates, weights and penalties exactly as written. Keep answers short.
When you reference a lesson, include its link.

--- SYLLABUS EXCERPT ---
`

// SystemPrompt embeds the syllabus context into the system instruction.
func SystemPrompt(syllabusContext string) string {
	var sb strings.Builder
	sb.Grow(len(systemPromptHeader) + len(syllabusContext) + 32)
	sb.WriteString(systemPromptHeader)
	sb.WriteString(strings.TrimSpace(syllabusContext))
	sb.WriteString("\n--- END SYLLABUS EXCERPT ---")
	return sb.String()
}
