package services

import (
	"fmt"
)

const (
	ResumePromptChars = 3000
	JDPromptChars     = 5000

	MatcherAgentName = "jd_matcher"

	MatcherSystemPrompt = "You are a precise ATS-style matcher for the AU job market. " +
		"Compare the candidate's resume with the given Job Description. " +
		"Be concise, specific, and return STRICT JSON only."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchPrompt creates the instruction sent to the matcher agent.
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jd string) string {
	return fmt.Sprintf(`
Return STRICT JSON with this schema (no prose):

{
  "score": {"overall": 0-100, "exact": 0-100, "related": 0-100, "gaps": 0-100},
  "matched": ["list of exact skills/keywords present in resume and JD"],
  "related": [{"name": "transferable/related skill", "reason": "why it maps"}],
  "gaps": ["missing or weak items"],
  "summary": "2-3 concise lines summarizing fit",
  "replyTemplate": "a short polite reply the candidate could send"
}

Scoring guidance:
- exact: direct overlap between resume and JD requirements.
- related: strength of transferable experience.
- gaps: severity of missing must-haves (higher = more severe).
- overall: weighted combination of exact and related, reduced by gaps, kept within 0-100.

Rules:
- Base on this resume (truncated): %s
- JD: %s
- Keep numbers 0-100 integers.
- Be honest on gaps; avoid overclaiming.
- IMPORTANT: Output STRICT JSON only.
`, truncateRunes(resumeText, ResumePromptChars), truncateRunes(jd, JDPromptChars))
}
