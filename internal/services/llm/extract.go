package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

// Generative backends wrap JSON in markdown fences or surround it with prose
// more often than not. ExtractJSON is the single place that repairs this; no
// other code in the system re-implements fence stripping or span scanning.

// fencePattern matches a fenced code block with an optional json language hint
var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\n?(.*?)\n?\\s*```\\s*$")

// ExtractJSON locates the JSON object embedded in model output and parses it
// into v.
//
// Extraction: strip a leading/trailing fenced code block if present, then take
// the span from the first '{' to the last '}'.
//
// Errors:
//   - *models.ExtractionError when no brace-delimited span is found
//   - *models.ParseError when the span fails to parse
//
// Both are recoverable by contract; callers substitute fallback values.
func ExtractJSON(text string, v any) error {
	span, err := extractSpan(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &models.ParseError{Err: err}
	}

	return nil
}

// ExtractJSONList behaves like ExtractJSON but accepts either a bare JSON
// array or an object wrapping one under the given key. Used for item-list
// outputs such as quiz questions.
func ExtractJSONList(text, key string, v any) error {
	cleaned := cleanMarkdownFences(text)

	// Bare array form
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	objStart := strings.Index(cleaned, "{")
	if start >= 0 && end > start && (objStart < 0 || start < objStart) {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), v); err != nil {
			return &models.ParseError{Err: err}
		}
		return nil
	}

	// Object-wrapped form
	span, err := extractSpan(text)
	if err != nil {
		return err
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &wrapper); err != nil {
		return &models.ParseError{Err: err}
	}
	raw, ok := wrapper[key]
	if !ok {
		return &models.ExtractionError{Reason: "no '" + key + "' field in response object"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &models.ParseError{Err: err}
	}
	return nil
}

// extractSpan strips fences and returns the first-{ to last-} span
func extractSpan(text string) (string, error) {
	cleaned := cleanMarkdownFences(text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return "", &models.ExtractionError{Reason: "no JSON object found in response"}
	}

	return cleaned[start : end+1], nil
}

// cleanMarkdownFences removes markdown code fences from a response
func cleanMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}

	// Fallback: simple prefix/suffix trimming
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
