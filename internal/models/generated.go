package models

// Strict intermediate schema for generative output. Parsed immediately after
// JSON extraction; unvalidated shapes never flow past the assembler boundary.

// GeneratedResource is a link the model proposed for a lesson
type GeneratedResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// GeneratedResources groups proposed links by source field
type GeneratedResources struct {
	YouTube  []GeneratedResource `json:"youtube"`
	Articles []GeneratedResource `json:"articles"`
	PDFsDocs []GeneratedResource `json:"pdfs_docs"`
}

// GeneratedQuizQuestion mirrors QuizQuestion in the model's output schema
type GeneratedQuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// GeneratedLesson is one lesson as proposed by the model
type GeneratedLesson struct {
	Title               string                  `json:"title"`
	KeyPoints           []string                `json:"key_points"`
	TimeEstimateMinutes int                     `json:"time_estimate_minutes"`
	VideoSearchQuery    string                  `json:"video_search_query"`
	Resources           GeneratedResources      `json:"resources"`
	Quiz                []GeneratedQuizQuestion `json:"quiz"`
}

// GeneratedModule is one module (session) as proposed by the model
type GeneratedModule struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Lessons     []GeneratedLesson `json:"lessons"`
}

// GeneratedCourse is the top-level generative output for course structure
type GeneratedCourse struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Modules     []GeneratedModule `json:"modules"`
}

// GeneratedSemantics is the per-chunk semantic analysis output schema
type GeneratedSemantics struct {
	MainConcepts   []string        `json:"main_concepts"`
	KeyDefinitions []KeyDefinition `json:"key_definitions"`
	CodeExamples   []string        `json:"code_examples"`
	Formulas       []string        `json:"formulas"`
	Difficulty     string          `json:"difficulty"`
	Prerequisites  []string        `json:"prerequisites"`
	Summary        string          `json:"summary"`
	KeyTakeaways   []string        `json:"key_takeaways"`
}

// GeneratedGoalAlignment is the goal alignment output schema
type GeneratedGoalAlignment struct {
	RelevanceScore      int      `json:"relevance_score"`
	AlignedTopics       []string `json:"aligned_topics"`
	MissingFromDocument []string `json:"missing_from_document"`
	ExcessInDocument    []string `json:"excess_in_document"`
	Recommendations     []string `json:"recommendations"`
}

// GeneratedPrerequisiteCheck is the prerequisite check output schema
type GeneratedPrerequisiteCheck struct {
	Required     []string       `json:"required"`
	Recommended  []string       `json:"recommended"`
	LearnerLevel string         `json:"learner_level"`
	ReadyToStart bool           `json:"ready_to_start"`
	Gaps         []KnowledgeGap `json:"gaps_to_bridge"`
}
