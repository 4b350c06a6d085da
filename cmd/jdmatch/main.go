// Package main provides a command-line front end to the JD matcher.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jdmatch",
	Short: "Match the configured resume against a job description",
	Long:  "jdmatch runs the same resume/JD matching pipeline as the HTTP API from the command line.",
}

var resumePathFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&resumePathFlag, "resume", "", "Resume file path (overrides RESUME_PATH)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
