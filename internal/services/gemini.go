package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiAgent calls the Gemini API directly, with the matcher instructions
// as the system instruction.
type geminiAgent struct {
	apiKey string
	model  string
}

// Invoke implements Agent.
func (g *geminiAgent) Invoke(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(MatcherSystemPrompt, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	return resp.Text(), nil
}
