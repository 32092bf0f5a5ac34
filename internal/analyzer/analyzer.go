package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codealign/repo-align/apimodels"
	"github.com/codealign/repo-align/internal/github"
	"github.com/codealign/repo-align/internal/llm"
)

const alignmentSystemPrompt = `You are an expert code analyzer grading how well a codebase satisfies a project requirement.
Always respond with strict JSON: no markdown, no code fences, no additional commentary.`

const alignmentPromptFmt = `Given the following code and requirement, analyze the alignment between them.
Provide an alignment score (0-100) and a detailed summary explaining the alignment.

Code:
%s

Requirement:
%s

Return your response as a JSON object with keys 'alignmentScore' and 'alignmentSummary', without any additional formatting or characters.`

const questionsSystemPrompt = `You are an expert technical interviewer preparing code review questions.
Always respond with strict JSON: no markdown, no code fences, no additional commentary.`

const questionsPromptFmt = `Based on the following code summary and project requirement, generate %d highly specific technical questions.
Each question must reference a particular function, file, or code section and ask how it addresses the given requirement.
The questions should expect short answers that can be given within 200 seconds.
For example, if the requirement mentions implementing two-factor authentication and the code contains a function
'implement2FactorAuthentication' in 'authentication.ts', the question should be:
'Can you explain how the implement2FactorAuthentication function in authentication.ts implements two-factor authentication?'

For each question, provide a 1-2 line description of what the reviewer should check. The questions should focus on how
specific code elements solve the given requirements, ensuring key features, functions, or logic are covered.

Code Summary:
%s

Requirement:
%s

Ensure the questions address the specific implementation details mentioned in the requirement and match with the code.

Return your response as a JSON array of objects, each with 'question' and 'lookingFor' keys, without any additional formatting or characters.`

// alignmentResult is the shape the model is instructed to return for the
// scoring call.
type alignmentResult struct {
	AlignmentScore   int    `json:"alignmentScore"`
	AlignmentSummary string `json:"alignmentSummary"`
}

// SourceFetcher assembles the analyzable source text of one repository.
type SourceFetcher interface {
	FetchSource(ctx context.Context, owner, repo string) (string, error)
}

type Analyzer struct {
	fetcher  SourceFetcher
	provider llm.Provider
}

func New(fetcher SourceFetcher, provider llm.Provider) *Analyzer {
	return &Analyzer{
		fetcher:  fetcher,
		provider: provider,
	}
}

// Analyze runs the full pipeline for one request: fetch the repository
// source, score it against the requirement, then generate review questions
// from the resulting summary. The three upstream calls are strictly
// sequential; each one suspends on ctx.
func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResponse, error) {
	startTime := time.Now()

	repoURL := CleanInput(req.GitHubURL)
	requirement := CleanInput(req.Curriculum)

	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	slog.Info("starting analysis", "owner", owner, "repo", repo, "questions", req.QuestionCount)

	source, err := a.fetcher.FetchSource(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	alignment, usage, err := a.analyzeAlignment(ctx, source, requirement)
	if err != nil {
		return nil, err
	}

	questions, qUsage, err := a.generateQuestions(ctx, alignment.AlignmentSummary, requirement, req.QuestionCount)
	if err != nil {
		return nil, err
	}

	slog.Info("analysis completed",
		"owner", owner,
		"repo", repo,
		"score", alignment.AlignmentScore,
		"questions", len(questions),
		"tokensUsed", usage.TotalTokens+qUsage.TotalTokens,
		"duration", time.Since(startTime),
	)

	return &apimodels.AnalysisResponse{
		AlignmentScore:   alignment.AlignmentScore,
		AlignmentSummary: alignment.AlignmentSummary,
		Questions:        questions,
	}, nil
}

func (a *Analyzer) analyzeAlignment(ctx context.Context, source, requirement string) (*alignmentResult, llm.Usage, error) {
	resp, err := a.provider.Complete(ctx, alignmentSystemPrompt, fmt.Sprintf(alignmentPromptFmt, source, requirement))
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("alignment analysis failed: %w", err)
	}

	var result alignmentResult
	if err := json.Unmarshal([]byte(stripCodeFences(resp.Content)), &result); err != nil {
		return nil, llm.Usage{}, fmt.Errorf("parsing alignment response: %w", err)
	}
	return &result, resp.Usage, nil
}

func (a *Analyzer) generateQuestions(ctx context.Context, summary, requirement string, count int) ([]apimodels.ReviewQuestion, llm.Usage, error) {
	resp, err := a.provider.Complete(ctx, questionsSystemPrompt, fmt.Sprintf(questionsPromptFmt, count, summary, requirement))
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("question generation failed: %w", err)
	}

	var questions []apimodels.ReviewQuestion
	if err := json.Unmarshal([]byte(stripCodeFences(resp.Content)), &questions); err != nil {
		return nil, llm.Usage{}, fmt.Errorf("parsing questions response: %w", err)
	}
	return questions, resp.Usage, nil
}

// stripCodeFences removes markdown code fences that some models wrap around
// JSON despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
