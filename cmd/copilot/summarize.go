package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-copilot/internal/query"
)

// Summarize command flags
var (
	summarizeFile   string
	summarizeOutput string
)

// newSummarizeCommand creates the summarize command.
func newSummarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Extract a structured summary from a transcript",
		Long: `Extract decisions, action items, owners and risks from a meeting
transcript.

Examples:
  # Summarize a transcript file
  copilot summarize standup.txt

  # Read from stdin
  cat standup.txt | copilot summarize

  # Output as JSON
  copilot summarize standup.txt -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := summarizeFile
			if len(args) == 1 {
				path = args[0]
			}

			transcript, err := readTranscript(path)
			if err != nil {
				return err
			}
			if strings.TrimSpace(transcript) == "" {
				return fmt.Errorf("transcript is empty")
			}

			summarizer, _, err := buildSummarizer()
			if err != nil {
				return err
			}

			summary, err := summarizer.Summarize(cmd.Context(), transcript)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}

			switch summarizeOutput {
			case "json":
				out, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), query.RenderMeeting(summary))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&summarizeFile, "file", "f", "", "transcript file (defaults to stdin)")
	cmd.Flags().StringVarP(&summarizeOutput, "output", "o", "text", "output format: text or json")
	return cmd
}

// newAskCommand creates the ask command.
func newAskCommand() *cobra.Command {
	var askFile string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about a transcript",
		Long: `Ask a question about a meeting transcript. Answers are grounded in
the extracted summary; questions are routed by keyword (decisions,
actions, owners, risks, summary).

Examples:
  copilot ask "what decisions were made?" -f standup.txt
  cat standup.txt | copilot ask "who owns the follow-ups?"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readTranscript(askFile)
			if err != nil {
				return err
			}
			if strings.TrimSpace(transcript) == "" {
				return fmt.Errorf("transcript is empty")
			}

			summarizer, groqClient, err := buildSummarizer()
			if err != nil {
				return err
			}

			summary, err := summarizer.Summarize(cmd.Context(), transcript)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}

			question := args[0]
			answer := query.Answer(summary, question)
			if groqClient != nil {
				prompt := query.BuildContext(summary, question)
				if reply, err := groqClient.Chat(cmd.Context(), prompt); err == nil && strings.TrimSpace(reply) != "" {
					answer = reply
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&askFile, "file", "f", "", "transcript file (defaults to stdin)")
	return cmd
}
