package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eddyzhang/jd-matcher/internal/config"
	"eddyzhang/jd-matcher/internal/services"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the resume against a job description",
	Long:  "Read a job description from --jd-file (or stdin), run the matcher agent and print the match report as JSON.",
	RunE:  runMatch,
}

var (
	matchJDFile  string
	matchBackend string
	matchModel   string
)

func init() {
	matchCmd.Flags().StringVarP(&matchJDFile, "jd-file", "f", "", "Path to a job description text file (default: stdin)")
	matchCmd.Flags().StringVar(&matchBackend, "backend", "", "Agent backend: adk or genai (overrides AGENT_BACKEND)")
	matchCmd.Flags().StringVar(&matchModel, "model", "", "Model id (overrides OPENAI_MODEL)")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if matchBackend != "" {
		cfg.Agent.Backend = matchBackend
	}
	if matchModel != "" {
		cfg.Agent.Model = matchModel
	}

	jd, err := readJD(cmd.InOrStdin(), matchJDFile)
	if err != nil {
		return err
	}

	agent, err := services.NewAgent(cfg.Agent.Backend, cfg.Agent.APIKey, cfg.Agent.Model)
	if err != nil {
		return err
	}

	loader := services.NewResumeLoader(resumePath(cfg), services.NewDocumentParserService())
	matcher := services.NewMatcherService(loader, agent)

	result, err := matcher.Match(cmd.Context(), jd)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readJD(stdin io.Reader, path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read job description from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return string(data), nil
}

func resumePath(cfg *config.Config) string {
	if resumePathFlag != "" {
		return resumePathFlag
	}
	return cfg.Resume.Path
}
