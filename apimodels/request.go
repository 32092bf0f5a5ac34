package apimodels

type AnalysisRequest struct {
	// GitHubURL is the URL of the repository to analyze.
	GitHubURL string `json:"github_url"`

	// Curriculum is the free-form project requirement the code is graded against.
	Curriculum string `json:"curriculum"`

	// QuestionCount is the desired number of review questions (1-20). It is
	// passed to the model as guidance only; the returned list is best-effort
	// and may be shorter or longer.
	QuestionCount int `json:"question_count"`
}
