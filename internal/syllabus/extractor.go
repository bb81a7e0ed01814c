package syllabus

import (
	"regexp"
	"strings"

	"github.com/garyellow/syllabus-assistant-go/internal/stringutil"
)

// maxContinuationLines bounds how many lines past the due paragraph are
// pulled into a block.
const maxContinuationLines = 10

var (
	dueKeywordPattern = regexp.MustCompile(`(?i)\b(?:due|deadlines?)\b`)

	dateishPatterns = []*regexp.Regexp{
		// weekday
		regexp.MustCompile(`(?i)\b(?:mon|tues?|wed(?:nes)?|thu(?:rs?)?|fri|sat(?:ur)?|sun)(?:day)?s?\b`),
		// month; "May" only when capitalised
		regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`),
		regexp.MustCompile(`\bMay\b`),
		// ordinal, including ^th^ superscript markup
		regexp.MustCompile(`(?i)\b\d{1,2}\^?(?:st|nd|rd|th)\b`),
		// four-digit year
		regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
		// clock time
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\b|\b\d{1,2}[ \t]*[ap]\.?m\b`),
		// bare day number, not a percentage, amount or part of a time
		regexp.MustCompile(`(?:^|[^\d.:/$%])(?:[1-9]|[12]\d|3[01])(?:[^\d%:]|$)`),
	}

	continuationPattern = regexp.MustCompile(
		`(?i)\b(?:late|penalt(?:y|ies)|deduct(?:s|ed|ion|ions)?|lose|loses|lost|per day|submi(?:t|ts|tted|tting|ssion|ssions)|grace period|accepted|zero)\b`)

	extensionPattern = regexp.MustCompile(
		`(?i)\b(?:academic consideration|accommodations?|extensions?|medical|mitigating|documentation)\b`)

	headingLinePattern = regexp.MustCompile(`^#{1,6}[ \t]`)

	ordinalSuperscriptPattern = regexp.MustCompile(`(?i)(\d)\^(st|nd|rd|th)\^`)
	superscriptPattern        = regexp.MustCompile(`\^([^\^\n]+)\^`)
)

// HasDateishToken reports whether line carries something that looks like
// part of a calendar date or a time.
func HasDateishToken(line string) bool {
	for _, p := range dateishPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// IsDueLine reports whether line is a genuine due statement: it needs a
// due/deadline keyword and a date-ish token. A bare "Due Dates" heading
// is not one.
func IsDueLine(line string) bool {
	return !stringutil.IsBlank(line) && dueKeywordPattern.MatchString(line) && HasDateishToken(line)
}

// ExtractDueBlock finds the first due statement in sectionText and returns
// it verbatim together with the rest of its paragraph, the penalty or date
// lines that follow, and any extension paragraphs found in extensionScope
// that the block does not already contain.
//
// The result is a pure function of its inputs.
func ExtractDueBlock(sectionText, extensionScope string) (string, bool) {
	lines := stringutil.SplitLines(sectionText)

	start := -1
	for i, line := range lines {
		if IsDueLine(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	block := []string{lines[start]}
	i := start + 1
	for ; i < len(lines); i++ {
		if stringutil.IsBlank(lines[i]) || isHeadingLine(lines[i]) {
			break
		}
		block = append(block, lines[i])
	}

	var pending []string
	added := 0
	for ; i < len(lines) && added < maxContinuationLines; i++ {
		line := lines[i]
		if stringutil.IsBlank(line) {
			pending = append(pending, line)
			continue
		}
		if isHeadingLine(line) {
			break
		}
		if !continuationPattern.MatchString(line) && !HasDateishToken(line) {
			break
		}
		block = append(block, pending...)
		block = append(block, line)
		pending = pending[:0]
		added++
	}

	text := strings.Join(block, "\n")
	for _, para := range paragraphs(extensionScope) {
		if !extensionPattern.MatchString(para) || strings.Contains(text, para) {
			continue
		}
		text += "\n\n" + para
	}

	text = trimTrailingBlankLines(CleanSuperscripts(text))
	if stringutil.IsBlank(text) {
		return "", false
	}
	return text, true
}

// CleanSuperscripts turns markdown superscripts into inline text:
// "8^th^" becomes "8th" and any other ^x^ is unwrapped.
func CleanSuperscripts(s string) string {
	if !strings.Contains(s, "^") {
		return s
	}
	s = ordinalSuperscriptPattern.ReplaceAllString(s, "${1}${2}")
	return superscriptPattern.ReplaceAllString(s, "${1}")
}

func isHeadingLine(line string) bool {
	return headingLinePattern.MatchString(line)
}

// paragraphs splits text into runs of non-blank lines. Heading-marker
// lines end a paragraph and are dropped.
func paragraphs(text string) []string {
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range stringutil.SplitLines(text) {
		if stringutil.IsBlank(line) || isHeadingLine(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}

func trimTrailingBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	end := len(lines)
	for end > 0 && stringutil.IsBlank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[:end], "\n")
}
