// Package main provides the copilot CLI entry point.
// copilot summarizes meeting transcripts and answers questions about
// them from the terminal, without needing the API server.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-copilot/internal/summarize"
	"github.com/johnquangdev/meeting-copilot/pkg/ai"
	"github.com/johnquangdev/meeting-copilot/pkg/config"

	"go.uber.org/zap"
)

// Global flags
var (
	useAI bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "copilot",
		Short: "Meeting transcript intelligence from the terminal",
		Long: `copilot extracts decisions, action items, owners and risks from
meeting transcripts. Extraction is heuristic by default and works
offline; pass --ai with GROQ_API_KEY set to use the LLM path with
automatic fallback.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&useAI, "ai", false, "use the AI extraction path when configured")

	rootCmd.AddCommand(newSummarizeCommand())
	rootCmd.AddCommand(newAskCommand())
	rootCmd.AddCommand(newChatCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildSummarizer assembles the extraction pipeline for CLI use. The
// heuristic path needs no configuration; the AI path is layered on when
// requested and configured.
func buildSummarizer() (summarize.Summarizer, *ai.GroqClient, error) {
	heuristic := summarize.NewHeuristicSummarizer()
	if !useAI {
		return heuristic, nil, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	if !cfg.AIEnabled() {
		fmt.Fprintln(os.Stderr, "GROQ_API_KEY not set, using heuristic extraction")
		return heuristic, nil, nil
	}

	logger := zap.NewNop()
	groqClient := ai.NewGroqClient(&cfg.Groq)
	aiSummarizer := summarize.NewAISummarizer(groqClient, cfg.Groq.MaxRetries, cfg.Groq.MaxInterval, logger)
	return summarize.NewFallbackSummarizer(aiSummarizer, heuristic, logger), groqClient, nil
}

// readTranscript loads transcript text from a file, or stdin when path
// is "-" or empty.
func readTranscript(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
