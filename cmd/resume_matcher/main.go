// Package main provides the entry point for the resume / job description
// match analyzer CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume / Job Description Match Analyzer",
	Long:  "resume_matcher extracts text from resumes (PDF or image), obtains job descriptions from LinkedIn or local files, and scores the match with Gemini.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
