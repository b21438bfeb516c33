package analysis

import (
	"sort"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

const maxMainTopics = 10

// documentTypeKeywords classifies the document by keyword presence over the
// concatenated lowercase text. Checked in order; first full match wins.
var documentTypeKeywords = []struct {
	required []string
	docType  string
}{
	{[]string{"abstract", "references", "methodology"}, "research_paper"},
	{[]string{"chapter", "exercise"}, "textbook"},
	{[]string{"slide", "agenda"}, "presentation"},
	{[]string{"api", "endpoint", "parameter"}, "technical_documentation"},
	{[]string{"tutorial", "step"}, "tutorial"},
	{[]string{"syllabus", "course outline"}, "syllabus"},
}

// BuildGlobalContext derives the corpus-level view from analyzed chunks.
// Pure function over chunk semantics; no external calls.
func BuildGlobalContext(chunks []*models.ContentChunk) *models.GlobalContext {
	freq := make(map[string]int)
	chunksByTopic := make(map[string][]string)

	for _, chunk := range chunks {
		for _, concept := range chunk.Semantics.MainConcepts {
			key := strings.TrimSpace(concept)
			if key == "" {
				continue
			}
			freq[key]++
			chunksByTopic[key] = append(chunksByTopic[key], chunk.ID)
		}
	}

	ranked := rankByFrequency(freq)
	mainTopics := ranked
	if len(mainTopics) > maxMainTopics {
		mainTopics = mainTopics[:maxMainTopics]
	}

	total := 0
	for _, count := range freq {
		total += count
	}

	hierarchy := make([]models.TopicNode, 0, len(mainTopics))
	for _, topic := range mainTopics {
		importance := 0.0
		if total > 0 {
			importance = float64(freq[topic]) / float64(total)
		}
		hierarchy = append(hierarchy, models.TopicNode{
			Topic:         topic,
			RelatedTopics: relatedTopics(topic, mainTopics),
			ChunkIDs:      chunksByTopic[topic],
			Importance:    importance,
		})
	}

	deps := make(map[string][]string)
	for _, chunk := range chunks {
		for _, concept := range chunk.Semantics.MainConcepts {
			if len(chunk.Semantics.Prerequisites) > 0 && len(deps[concept]) == 0 {
				deps[concept] = chunk.Semantics.Prerequisites
			}
		}
	}

	return &models.GlobalContext{
		MainTopics:          mainTopics,
		TopicHierarchy:      hierarchy,
		DifficultyEstimate:  estimateDifficulty(chunks),
		DocumentType:        classifyDocumentType(chunks),
		ConceptDependencies: deps,
	}
}

// rankByFrequency orders topics by descending count, ties broken
// alphabetically for deterministic output
func rankByFrequency(freq map[string]int) []string {
	topics := make([]string, 0, len(freq))
	for topic := range freq {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if freq[topics[i]] != freq[topics[j]] {
			return freq[topics[i]] > freq[topics[j]]
		}
		return topics[i] < topics[j]
	})
	return topics
}

// relatedTopics picks up to 3 of the next-most-frequent topics excluding self
func relatedTopics(topic string, ranked []string) []string {
	related := make([]string, 0, 3)
	for _, other := range ranked {
		if other == topic {
			continue
		}
		related = append(related, other)
		if len(related) == 3 {
			break
		}
	}
	return related
}

// estimateDifficulty derives the corpus difficulty from the fraction of
// chunks labeled advanced: >50% advanced, >20% intermediate, else beginner
func estimateDifficulty(chunks []*models.ContentChunk) models.DocumentDifficulty {
	if len(chunks) == 0 {
		return models.DocumentDifficultyBeginner
	}

	advanced := 0
	for _, chunk := range chunks {
		if chunk.Semantics.Difficulty == models.DifficultyAdvanced {
			advanced++
		}
	}

	fraction := float64(advanced) / float64(len(chunks))
	switch {
	case fraction > 0.5:
		return models.DocumentDifficultyAdvanced
	case fraction > 0.2:
		return models.DocumentDifficultyIntermediate
	default:
		return models.DocumentDifficultyBeginner
	}
}

// classifyDocumentType checks keyword groups over the concatenated text
func classifyDocumentType(chunks []*models.ContentChunk) string {
	var sb strings.Builder
	for _, chunk := range chunks {
		sb.WriteString(strings.ToLower(chunk.RawText))
		sb.WriteString(" ")
	}
	text := sb.String()

	for _, entry := range documentTypeKeywords {
		all := true
		for _, kw := range entry.required {
			if !strings.Contains(text, kw) {
				all = false
				break
			}
		}
		if all {
			return entry.docType
		}
	}

	return "general"
}
