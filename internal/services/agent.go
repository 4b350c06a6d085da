package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	BackendADK    = "adk"
	BackendGenAI  = "genai"
	DefaultModel  = "gemini-2.5-flash-lite"
	agentUserID   = "jd_matcher_client"
	agentDescribe = "Match a resume against a job description"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set on the server")

// Agent sends one instruction to an LLM and returns its raw text reply.
type Agent interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// NewAgent builds the agent for the configured backend. An empty model
// selects DefaultModel.
func NewAgent(backend, apiKey, model string) (Agent, error) {
	model = resolveModel(model)

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendADK:
		return &adkAgent{apiKey: apiKey, model: model}, nil
	case BackendGenAI:
		return &geminiAgent{apiKey: apiKey, model: model}, nil
	default:
		return nil, fmt.Errorf("unknown agent backend %q", backend)
	}
}

func resolveModel(model string) string {
	if m := strings.TrimSpace(model); m != "" {
		return m
	}
	return DefaultModel
}

type adkAgent struct {
	apiKey string
	model  string
}

// Invoke implements Agent. Every call gets its own agent, runner and
// session; nothing is shared between requests.
func (a *adkAgent) Invoke(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	llm, err := gemini.NewModel(ctx, a.model, &genai.ClientConfig{
		APIKey: a.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create model: %w", err)
	}

	matcher, err := llmagent.New(llmagent.Config{
		Name:        MatcherAgentName,
		Model:       llm,
		Description: agentDescribe,
		Instruction: MatcherSystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        matcher.Name(),
		Agent:          matcher,
		SessionService: sessions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create runner: %w", err)
	}

	created, err := sessions.Create(ctx, &session.CreateRequest{
		AppName:   matcher.Name(),
		UserID:    agentUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		if err := sessions.Delete(ctx, &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		}); err != nil {
			log.Printf("⚠️  Failed to delete agent session %s: %v\n", created.Session.ID(), err)
		}
	}()

	message := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}

	var output string
	for event, err := range r.Run(ctx, created.Session.UserID(), created.Session.ID(), message, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent run failed: %w", err)
		}
		if event == nil || !event.IsFinalResponse() || event.Content == nil {
			continue
		}
		output = joinTextParts(event.Content.Parts)
	}

	return output, nil
}

func joinTextParts(parts []*genai.Part) string {
	var sb strings.Builder
	for _, part := range parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
