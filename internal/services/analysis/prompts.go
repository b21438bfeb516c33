package analysis

import (
	"fmt"

	"github.com/ternarybob/doceo/internal/models"
)

const analysisSystemInstruction = `You are an expert learning-content analyst.
Respond with a single JSON object and nothing else. Do not add commentary.`

// buildAnalysisPrompt renders the per-chunk semantic analysis prompt
func buildAnalysisPrompt(chunk *models.ContentChunk) string {
	heading := chunk.Structure.Heading
	if heading == "" {
		heading = "(no heading)"
	}

	return fmt.Sprintf(`Analyze the following educational content section.

Section heading: %s
Section type: %s

Content:
%s

Return a JSON object with exactly these fields:
{
  "main_concepts": ["..."],
  "key_definitions": [{"term": "...", "definition": "..."}],
  "code_examples": ["..."],
  "formulas": ["..."],
  "difficulty": "intro" | "moderate" | "advanced",
  "prerequisites": ["..."],
  "summary": "2-3 sentence summary",
  "key_takeaways": ["..."]
}

Use empty arrays for fields with nothing to report.`, heading, chunk.Structure.Type, chunk.RawText)
}
