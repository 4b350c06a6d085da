package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"eddyzhang/jd-matcher/internal/models"
)

var ErrJDRequired = errors.New("jd is required")

// ResumeSource provides the resume text the job description is compared against.
type ResumeSource interface {
	Text() string
}

type MatcherService interface {
	Match(ctx context.Context, jd string) (*models.MatchResult, error)
}

type matcherService struct {
	resume        ResumeSource
	agent         Agent
	promptBuilder *PromptBuilder
}

func NewMatcherService(resume ResumeSource, agent Agent) MatcherService {
	return &matcherService{
		resume:        resume,
		agent:         agent,
		promptBuilder: NewPromptBuilder(),
	}
}

// Match implements MatcherService.
func (m *matcherService) Match(ctx context.Context, jd string) (*models.MatchResult, error) {
	req := models.MatchRequest{JD: jd}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, ErrJDRequired
	}

	prompt := m.promptBuilder.BuildMatchPrompt(m.resume.Text(), req.JD)
	log.Printf("📝 Match prompt length: %d characters", utf8.RuneCountInString(prompt))

	response, err := m.agent.Invoke(ctx, prompt)
	if err != nil {
		log.Printf("❌ Agent call failed: %v", err)
		return nil, fmt.Errorf("failed to run matcher agent: %w", err)
	}
	log.Printf("✅ Agent response received: %d characters", utf8.RuneCountInString(response))

	result, err := Coerce(response)
	if err != nil {
		log.Printf("❌ Failed to parse agent response: %v", err)
		return nil, err
	}

	return result, nil
}
