package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eddyzhang/jd-matcher/internal/config"
	"eddyzhang/jd-matcher/internal/services"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Print the resume text the matcher sees",
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	loader := services.NewResumeLoader(resumePath(cfg), services.NewDocumentParserService())

	text := loader.Text()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "# %s (%d characters, %d sent to the agent)\n",
		loader.Path(), loader.Len(), min(loader.Len(), services.ResumePromptChars))
	if text == "" {
		fmt.Fprintln(out, "# no resume text extracted")
		return nil
	}
	fmt.Fprintln(out, text)
	return nil
}
