package segmenter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

func buildHeadingDocument() string {
	var sb strings.Builder
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&sb, "%d. Topic Number %d\n", i, i)
		sb.WriteString(strings.Repeat(fmt.Sprintf("Body text for section %d explaining the topic in detail. ", i), 10))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func TestSegmentByHeadings(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	chunks := svc.Segment(buildHeadingDocument())
	if len(chunks) != 5 {
		t.Fatalf("got %d chunks, want 5", len(chunks))
	}

	for i, chunk := range chunks {
		wantID := fmt.Sprintf("chunk-%d", i)
		if chunk.ID != wantID {
			t.Errorf("chunk %d ID = %q, want %q", i, chunk.ID, wantID)
		}
		if chunk.Structure.Heading == "" {
			t.Errorf("chunk %d missing heading", i)
		}
		if chunk.Learning.EstimatedReadingMinutes < 1 {
			t.Errorf("chunk %d reading minutes = %d, want >= 1", i, chunk.Learning.EstimatedReadingMinutes)
		}
	}
}

func TestSegmentByParagraphs(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	// No headings: paragraphs accumulate toward the target size
	para := strings.Repeat("Sentences without any structure to find. ", 15) // ~600 chars
	text := strings.Join([]string{para, para, para, para, para, para}, "\n\n")

	chunks := svc.Segment(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk.RawText) < 100 {
			t.Errorf("chunk %d is %d chars, chunks under 100 chars must be discarded", i, len(chunk.RawText))
		}
	}
}

func TestSegmentDiscardsTinyInput(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	chunks := svc.Segment("too small")
	if len(chunks) != 0 {
		t.Errorf("got %d chunks from sub-100-char input, want 0", len(chunks))
	}
}

func TestClassifyChunkType(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		body    string
		want    models.ChunkType
	}{
		{name: "introduction heading", heading: "1. Introduction", body: "This chapter covers...", want: models.ChunkTypeIntroduction},
		{name: "overview in body", heading: "Chapter 1", body: "An overview of the system follows.", want: models.ChunkTypeIntroduction},
		{name: "exercise heading", heading: "Practice Problems", body: "Solve the following.", want: models.ChunkTypeExercise},
		{name: "summary heading", heading: "Conclusion", body: "We covered a lot.", want: models.ChunkTypeSummary},
		{name: "reference section", heading: "Bibliography", body: "Sources cited.", want: models.ChunkTypeReference},
		{name: "case study", heading: "Case Study: Netflix", body: "How they scaled.", want: models.ChunkTypeCaseStudy},
		{name: "definition phrasing", heading: "Binary Trees", body: "A binary tree is defined as a node-based structure.", want: models.ChunkTypeDefinition},
		{name: "plain body", heading: "Sorting", body: "Sorting arranges elements in order.", want: models.ChunkTypeTheory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyChunkType(tt.heading, tt.body); got != tt.want {
				t.Errorf("ClassifyChunkType(%q, %q) = %q, want %q", tt.heading, tt.body, got, tt.want)
			}
		})
	}
}

func TestDetectHeadings(t *testing.T) {
	text := "1. First\nsome body\n2.1 Nested\nmore body\nChapter 3: Named\n# Markdown Style\nplain line that is not a heading at all because it just talks"

	headings := DetectHeadings(text)
	if len(headings) != 4 {
		t.Fatalf("got %d headings, want 4: %+v", len(headings), headings)
	}
	if headings[1].Level != 2 {
		t.Errorf("nested numbered heading level = %d, want 2", headings[1].Level)
	}
}
