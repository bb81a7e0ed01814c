// Package intent classifies normalized student queries into answer routes.
//
// Every cue list lives in a single predicate table so the patterns can be
// reviewed, documented and fuzzed as data. All predicates expect input that
// has already gone through stringutil.NormalizeQuery.
package intent

import (
	"regexp"
	"strings"
)

// Predicate names.
const (
	PredicateEntityA     = "entity_a_mention"
	PredicateEntityB     = "entity_b_mention"
	PredicateInstruction = "instruction"
	PredicateLogistics   = "logistics"
	PredicateDue         = "due"
)

// Predicate is a named regex check over a normalized query.
type Predicate struct {
	Name        string
	Pattern     *regexp.Regexp
	Description string
}

// Match reports whether the predicate fires on q.
func (p Predicate) Match(q string) bool {
	return p.Pattern.MatchString(q)
}

// words joins regex fragments into one alternation anchored on word
// boundaries.
func words(cues ...string) string {
	return `\b(?:` + strings.Join(cues, "|") + `)\b`
}

// anyWord compiles cues into a case-insensitive word alternation.
func anyWord(cues ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + words(cues...))
}

var (
	entityAPattern = regexp.MustCompile(
		`(?i)\be\.?[ \t]?b\.?[ \t]?o(?:s)?\b|\bevidence[- ]based[ \t]+(?:op[- ]?eds?|opinion(?:[ \t]+(?:pieces?|editorials?))?)\b`)

	entityBPattern = anyWord(`essays?`)

	instructionPattern = anyWord(
		`how[- ]to`, `how do i`, `instructions?`, `steps?`,
		`format(?:ting|ted)?`, `citations?`, `cite`, `citing`, `references?`,
		`mla`, `chicago`, `turabian`, `rubrics?`, `requirements?`,
		`word count`, `word limit`, `structure`, `outline`, `templates?`, `scaffolding`,
		`submit(?:ting)?`, `submission`, `checklist`, `examples?`, `model paper`,
		`can i use`, `is it okay to`, `is it ok to`, `should i`,
		// source-quality cues
		`scholarly`, `peer[- ]reviewed`, `credible`, `jstor`, `proquest`, `ebsco`,
		`google scholar`, `pubmed`, `same site`, `same journal`,
	)

	logisticsPattern = regexp.MustCompile(`(?i)%|` + words(
		`due`, `deadlines?`, `worth`, `weight(?:ing|ed)?`, `percent(?:age)?`, `marks`,
		`opens?`, `closes?`, `availab(?:le|ility)`, `window`, `dates?`, `times?`, `schedule`,
	))

	duePattern = regexp.MustCompile(`(?i)` + words(
		`due`, `deadlines?`, `late`, `penalt(?:y|ies)`, `extensions?`, `submission window`,
	) + `|\bwhen\b.*\bsubmit`)
)

var predicates = []Predicate{
	{
		Name:        PredicateEntityA,
		Pattern:     entityAPattern,
		Description: `EBO abbreviation with optional periods or spaces, or the expanded "evidence-based op-ed" phrase`,
	},
	{
		Name:        PredicateEntityB,
		Pattern:     entityBPattern,
		Description: `"essay" or "essays"; only counts when the EBO predicate does not fire`,
	},
	{
		Name:        PredicateInstruction,
		Pattern:     instructionPattern,
		Description: "how-to, formatting, citation, requirement, submission, example and source-quality cues",
	},
	{
		Name:        PredicateLogistics,
		Pattern:     logisticsPattern,
		Description: "dates, deadlines, weighting, availability and scheduling cues",
	},
	{
		Name:        PredicateDue,
		Pattern:     duePattern,
		Description: "due, deadline, late, penalty, extension, submission window and when-to-submit cues",
	},
}

// Predicates returns a copy of the predicate table.
func Predicates() []Predicate {
	out := make([]Predicate, len(predicates))
	copy(out, predicates)
	return out
}

// Lookup returns the predicate with the given name.
func Lookup(name string) (Predicate, bool) {
	for _, p := range predicates {
		if p.Name == name {
			return p, true
		}
	}
	return Predicate{}, false
}

// EntityAMention reports whether q mentions the EBO assignment.
func EntityAMention(q string) bool {
	return entityAPattern.MatchString(q)
}

// EntityBMentionExclusive reports whether q mentions the essay and not the EBO.
func EntityBMentionExclusive(q string) bool {
	return entityBPattern.MatchString(q) && !EntityAMention(q)
}

// InstructionIntent reports whether q asks how to do or format something.
func InstructionIntent(q string) bool {
	return instructionPattern.MatchString(q)
}

// LogisticsIntent reports whether q asks about dates, weighting or availability.
func LogisticsIntent(q string) bool {
	return logisticsPattern.MatchString(q)
}

// DueIntent is the narrower logistics check used for deterministic answers.
func DueIntent(q string) bool {
	return duePattern.MatchString(q)
}

// EntityPattern returns the mention pattern for e, or nil for EntityNone.
func EntityPattern(e Entity) *regexp.Regexp {
	switch e {
	case EntityEBO:
		return entityAPattern
	case EntityEssay:
		return entityBPattern
	default:
		return nil
	}
}
