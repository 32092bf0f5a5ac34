package apimodels

type AnalysisResponse struct {
	// Alignment score (0-100) produced by the model
	AlignmentScore int `json:"alignment_score"`

	// Narrative explanation of the score
	AlignmentSummary string `json:"alignment_summary"`

	// Review questions, at most the requested count (not enforced)
	Questions []ReviewQuestion `json:"questions_list"`
}

// ReviewQuestion pairs a question with guidance on what a reviewer should
// check in the answer. The "lookingFor" wire key is part of the frozen
// endpoint contract.
type ReviewQuestion struct {
	Question   string `json:"question"`
	LookingFor string `json:"lookingFor"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
