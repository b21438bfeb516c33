package segmenter

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

const (
	// minChunkChars is the minimum size of a viable chunk; anything
	// shorter is discarded as noise.
	minChunkChars = 100

	// targetChunkChars is the accumulation target when falling back to
	// paragraph-based segmentation.
	targetChunkChars = 2000

	// minAccumulatedChars must be held before a paragraph buffer is cut,
	// even when the target has been exceeded by a single long paragraph.
	minAccumulatedChars = 500

	// readingWordsPerMinute drives the estimated reading time
	readingWordsPerMinute = 200
)

// Service splits raw document text into typed content chunks.
// Stateless; safe for concurrent use.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new segmenter service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Segment splits text into content chunks. When a table of contents can be
// detected (more than 3 heading-like entries found in the text), chunks are
// cut at heading boundaries; otherwise paragraphs are accumulated to a target
// size. Chunks under 100 characters are discarded.
//
// Parameters:
//   - text: raw document text
//
// Returns:
//   - []*models.ContentChunk: ordered chunks covering the document
func (s *Service) Segment(text string) []*models.ContentChunk {
	headings := DetectHeadings(text)

	var chunks []*models.ContentChunk
	if len(headings) > 3 {
		chunks = s.segmentByHeadings(text, headings)
		s.logger.Debug().
			Int("headings", len(headings)).
			Int("chunks", len(chunks)).
			Msg("Segmented by detected table of contents")
	}

	if len(chunks) == 0 {
		chunks = s.segmentByParagraphs(text)
		s.logger.Debug().
			Int("chunks", len(chunks)).
			Msg("Segmented by paragraph accumulation")
	}

	for i, chunk := range chunks {
		chunk.ID = fmt.Sprintf("chunk-%d", i)
		chunk.Structure.Type = ClassifyChunkType(chunk.Structure.Heading, chunk.RawText)
		chunk.Learning = learningMetadata(chunk.RawText)
	}

	return chunks
}

// segmentByHeadings slices the text at each heading's first occurrence,
// running up to the next heading's occurrence or end of text
func (s *Service) segmentByHeadings(text string, headings []Heading) []*models.ContentChunk {
	type located struct {
		heading Heading
		pos     int
	}

	var found []located
	cursor := 0
	for _, h := range headings {
		pos := strings.Index(text[cursor:], h.Text)
		if pos < 0 {
			continue
		}
		abs := cursor + pos
		found = append(found, located{heading: h, pos: abs})
		cursor = abs + len(h.Text)
	}

	var chunks []*models.ContentChunk
	for i, loc := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].pos
		}

		body := strings.TrimSpace(text[loc.pos:end])
		if len(body) < minChunkChars {
			continue
		}

		chunks = append(chunks, &models.ContentChunk{
			RawText: body,
			Structure: models.ChunkStructure{
				Heading: loc.heading.Text,
				Level:   loc.heading.Level,
			},
		})
	}

	return chunks
}

// segmentByParagraphs accumulates blank-line-separated paragraphs into
// chunks of roughly targetChunkChars
func (s *Service) segmentByParagraphs(text string) []*models.ContentChunk {
	paragraphs := splitParagraphs(text)

	var chunks []*models.ContentChunk
	var buffer strings.Builder

	flush := func() {
		body := strings.TrimSpace(buffer.String())
		buffer.Reset()
		if len(body) < minChunkChars {
			return
		}
		chunks = append(chunks, &models.ContentChunk{
			RawText:   body,
			Structure: models.ChunkStructure{Level: 1},
		})
	}

	for _, para := range paragraphs {
		if buffer.Len() > 0 {
			buffer.WriteString("\n\n")
		}
		buffer.WriteString(para)

		if buffer.Len() > targetChunkChars && buffer.Len() >= minAccumulatedChars {
			flush()
		}
	}
	flush()

	return chunks
}

// splitParagraphs splits text on blank lines, dropping empty entries
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// learningMetadata derives reading time and cognitive load from chunk size
func learningMetadata(text string) models.LearningMetadata {
	words := len(strings.Fields(text))
	minutes := (words + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	load := models.CognitiveLoadLow
	switch {
	case words > 800:
		load = models.CognitiveLoadHigh
	case words > 300:
		load = models.CognitiveLoadMedium
	}

	return models.LearningMetadata{
		EstimatedReadingMinutes: minutes,
		CognitiveLoad:           load,
	}
}
