package models

// ChunkType classifies the structural role of a content chunk
type ChunkType string

const (
	ChunkTypeTheory       ChunkType = "theory"
	ChunkTypeExample      ChunkType = "example"
	ChunkTypeExercise     ChunkType = "exercise"
	ChunkTypeDefinition   ChunkType = "definition"
	ChunkTypeSummary      ChunkType = "summary"
	ChunkTypeReference    ChunkType = "reference"
	ChunkTypeIntroduction ChunkType = "introduction"
	ChunkTypeCaseStudy    ChunkType = "case_study"
)

// Difficulty labels a single chunk
type Difficulty string

const (
	DifficultyIntro    Difficulty = "intro"
	DifficultyModerate Difficulty = "moderate"
	DifficultyAdvanced Difficulty = "advanced"
)

// CognitiveLoad estimates how demanding a chunk is to absorb
type CognitiveLoad string

const (
	CognitiveLoadLow    CognitiveLoad = "low"
	CognitiveLoadMedium CognitiveLoad = "medium"
	CognitiveLoadHigh   CognitiveLoad = "high"
)

// ChunkStructure describes where a chunk sits in the source document
type ChunkStructure struct {
	Heading string    `json:"heading,omitempty"`
	Level   int       `json:"level"`
	Type    ChunkType `json:"chunk_type"`
}

// KeyDefinition is a term/definition pair extracted from a chunk
type KeyDefinition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ChunkSemantics holds the per-chunk analysis output.
// Populated once by the semantic analysis stage; immutable afterwards.
type ChunkSemantics struct {
	MainConcepts   []string        `json:"main_concepts"`
	KeyDefinitions []KeyDefinition `json:"key_definitions"`
	CodeExamples   []string        `json:"code_examples"`
	Formulas       []string        `json:"formulas"`
	Difficulty     Difficulty      `json:"difficulty"`
	Prerequisites  []string        `json:"prerequisites"`
	Summary        string          `json:"summary"`
	KeyTakeaways   []string        `json:"key_takeaways"`
	Fallback       bool            `json:"fallback,omitempty"` // True when analysis failed and a minimal record was substituted
}

// LearningMetadata holds derived study-planning fields
type LearningMetadata struct {
	EstimatedReadingMinutes int           `json:"estimated_reading_minutes"`
	CognitiveLoad           CognitiveLoad `json:"cognitive_load"`
}

// ContentChunk is a contiguous slice of source document text with an inferred
// structural role. Owned by the segmenter; semantics are filled in once by the
// analysis stage.
type ContentChunk struct {
	ID          string           `json:"id"`
	SourcePages []int            `json:"source_pages,omitempty"`
	RawText     string           `json:"raw_text"`
	Structure   ChunkStructure   `json:"structure"`
	Semantics   ChunkSemantics   `json:"semantics"`
	Learning    LearningMetadata `json:"learning_metadata"`
}
