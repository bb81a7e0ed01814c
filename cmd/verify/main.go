// Package main checks that a syllabus document can answer deadline
// questions deterministically before it is deployed.
//
// Usage:
//
//	verify [path]
//
// The path defaults to ASSISTANT_SYLLABUS_PATH, then ./data/syllabus.md.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/garyellow/syllabus-assistant-go/internal/config"
	"github.com/garyellow/syllabus-assistant-go/internal/intent"
	"github.com/garyellow/syllabus-assistant-go/internal/syllabus"
)

// Verification results
type verifyResult struct {
	name    string
	passed  bool
	message string
}

func main() {
	path := syllabusPath()
	fmt.Println("Syllabus Verification")
	fmt.Println("=====================")
	fmt.Printf("Document: %s\n", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	results := verifyDocument(string(raw))

	fmt.Println("\nResults:")
	passedCount, failedCount := 0, 0
	for _, result := range results {
		status := "FAIL"
		if result.passed {
			status = "ok  "
			passedCount++
		} else {
			failedCount++
		}
		fmt.Printf("[%s] %s: %s\n", status, result.name, result.message)
	}

	fmt.Printf("\nSummary: %d passed, %d failed\n", passedCount, failedCount)
	if failedCount > 0 {
		os.Exit(1)
	}
}

func syllabusPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	if p := os.Getenv(config.EnvSyllabusPath); p != "" {
		return p
	}
	return config.DefaultSyllabusPath
}

func verifyDocument(doc string) []verifyResult {
	sections := syllabus.Sectionize(doc)
	results := []verifyResult{{
		name:    "Sections",
		passed:  len(sections) > 0,
		message: fmt.Sprintf("%d heading-delimited sections", len(sections)),
	}}

	for _, entity := range []intent.Entity{intent.EntityEBO, intent.EntityEssay} {
		results = append(results, verifyEntity(sections, entity)...)
	}
	return results
}

// verifyEntity checks that the entity has selectable sections and that at
// least one of them yields a due block.
func verifyEntity(sections []syllabus.Section, entity intent.Entity) []verifyResult {
	selected := syllabus.SelectSections(sections, entity)
	headings := make([]string, 0, len(selected))
	for _, s := range selected {
		headings = append(headings, s.Heading)
	}

	results := []verifyResult{{
		name:    entity.String() + " sections",
		passed:  len(selected) > 0,
		message: fmt.Sprintf("%d selected %v", len(selected), headings),
	}}

	for _, section := range selected {
		scope := syllabus.ExtensionScope(sections, section, entity)
		if block, ok := syllabus.ExtractDueBlock(section.Text(), scope); ok {
			first, _, _ := strings.Cut(block, "\n")
			return append(results, verifyResult{
				name:    entity.String() + " due block",
				passed:  true,
				message: fmt.Sprintf("from %q: %s", section.Heading, first),
			})
		}
	}

	return append(results, verifyResult{
		name:    entity.String() + " due block",
		passed:  false,
		message: "no due statement found; questions will fall back to completion",
	})
}
