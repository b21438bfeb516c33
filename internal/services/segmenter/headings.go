package segmenter

import (
	"regexp"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

// Heading is a table-of-contents entry detected in the raw text
type Heading struct {
	Text  string
	Level int
}

var (
	// numberedHeadingPattern matches "1. Title", "2.3 Subsection", "10.1.2 Deep"
	numberedHeadingPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.{2,80})$`)

	// chapterHeadingPattern matches "Chapter 4: Title", "Section 2 - Title",
	// "Part II: Title", "Appendix A"
	chapterHeadingPattern = regexp.MustCompile(`(?i)^(chapter|section|part|appendix|unit|module|lecture)\s+[\dIVXA-Z]+[\s:.\-]*(.{0,80})$`)

	// markdownHeadingPattern matches "# Title" through "###### Title"
	markdownHeadingPattern = regexp.MustCompile(`^(#{1,6})\s+(\S.{0,80})$`)
)

// DetectHeadings scans the text line by line for heading-like entries.
// A successful table-of-contents detection (more than 3 entries) drives
// heading-based segmentation; fewer entries mean the document has no
// usable structure and paragraph accumulation applies.
func DetectHeadings(text string) []Heading {
	var headings []Heading

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 120 {
			continue
		}

		if m := markdownHeadingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, Heading{Text: line, Level: len(m[1])})
			continue
		}

		if m := numberedHeadingPattern.FindStringSubmatch(line); m != nil {
			level := strings.Count(m[1], ".") + 1
			headings = append(headings, Heading{Text: line, Level: level})
			continue
		}

		if chapterHeadingPattern.MatchString(line) {
			headings = append(headings, Heading{Text: line, Level: 1})
		}
	}

	return headings
}

// chunkTypeKeywords maps keywords to the chunk type they indicate.
// Checked in declaration order; first match wins.
var chunkTypeKeywords = []struct {
	keywords  []string
	chunkType string
}{
	{[]string{"introduction", "overview", "getting started", "preface"}, "introduction"},
	{[]string{"exercise", "practice", "problem set", "homework", "quiz"}, "exercise"},
	{[]string{"example", "e.g.", "for instance", "worked example"}, "example"},
	{[]string{"definition", "is defined as", "terminology", "glossary"}, "definition"},
	{[]string{"summary", "conclusion", "recap", "key takeaways"}, "summary"},
	{[]string{"reference", "bibliography", "further reading", "see also"}, "reference"},
	{[]string{"case study", "real-world", "in practice"}, "case_study"},
}

// ClassifyChunkType infers the structural role of a chunk from its heading
// and the first ~200 characters of body text. Defaults to theory.
func ClassifyChunkType(heading, body string) models.ChunkType {
	probe := strings.ToLower(heading)
	if len(body) > 200 {
		body = body[:200]
	}
	probe += " " + strings.ToLower(body)

	for _, entry := range chunkTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(probe, kw) {
				return models.ChunkType(entry.chunkType)
			}
		}
	}

	return models.ChunkTypeTheory
}
