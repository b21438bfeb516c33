package models

// DocumentDifficulty is the corpus-level difficulty estimate
type DocumentDifficulty string

const (
	DocumentDifficultyBeginner     DocumentDifficulty = "beginner"
	DocumentDifficultyIntermediate DocumentDifficulty = "intermediate"
	DocumentDifficultyAdvanced     DocumentDifficulty = "advanced"
	DocumentDifficultyMixed        DocumentDifficulty = "mixed"
)

// TopicNode links a main topic to the chunks that mention it and its
// nearest related topics
type TopicNode struct {
	Topic         string   `json:"topic"`
	RelatedTopics []string `json:"related_topics"`
	ChunkIDs      []string `json:"chunk_ids"`
	Importance    float64  `json:"importance"` // Relative mention frequency, 0-1
}

// GlobalContext is the corpus-level view of the document, built once after
// per-chunk analysis and read-only thereafter.
type GlobalContext struct {
	MainTopics          []string            `json:"main_topics"` // Frequency-ranked, max 10
	TopicHierarchy      []TopicNode         `json:"topic_hierarchy"`
	DifficultyEstimate  DocumentDifficulty  `json:"difficulty_estimate"`
	DocumentType        string              `json:"document_type"`
	ConceptDependencies map[string][]string `json:"concept_dependencies"`
}
