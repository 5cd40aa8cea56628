package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-copilot/internal/query"
	"github.com/johnquangdev/meeting-copilot/internal/summarize"
	"github.com/johnquangdev/meeting-copilot/pkg/ai"
)

const chatHelp = `Commands:
  /load <file>   load a transcript and summarize it
  /summary       show the current summary
  /help          show this help
  /quit          exit

Anything else is treated as a question about the loaded meeting.`

// newChatCommand creates the interactive chat command.
func newChatCommand() *cobra.Command {
	var chatFile string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive Q&A session over a transcript",
		Long: `Start an interactive session. Load a transcript, then ask questions
about decisions, action items, owners and risks.

Examples:
  copilot chat -f standup.txt
  copilot chat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summarizer, groqClient, err := buildSummarizer()
			if err != nil {
				return err
			}

			session := &chatSession{
				summarizer: summarizer,
				groq:       groqClient,
				// Re-asking about the same transcript should not re-extract
				cache: cache.NewSummaryCache(cache.NewMemoryStore(), 0),
				out:   cmd.OutOrStdout(),
			}

			if chatFile != "" {
				if err := session.load(cmd, chatFile); err != nil {
					fmt.Fprintln(session.out, "Error:", err)
				}
			}

			fmt.Fprintln(session.out, "Meeting copilot. Type /help for commands.")
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

			for {
				fmt.Fprint(session.out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(session.out)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				switch {
				case line == "/quit" || line == "/exit":
					fmt.Fprintln(session.out, "Bye.")
					return nil
				case line == "/help":
					fmt.Fprintln(session.out, chatHelp)
				case line == "/summary":
					session.showSummary()
				case strings.HasPrefix(line, "/load"):
					path := strings.TrimSpace(strings.TrimPrefix(line, "/load"))
					if path == "" {
						fmt.Fprintln(session.out, "Usage: /load <file>")
						continue
					}
					if err := session.load(cmd, path); err != nil {
						fmt.Fprintln(session.out, "Error:", err)
					}
				case strings.HasPrefix(line, "/"):
					fmt.Fprintln(session.out, "Unknown command. Type /help for commands.")
				default:
					session.ask(cmd, line)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&chatFile, "file", "f", "", "transcript file to load on startup")
	return cmd
}

type chatSession struct {
	summarizer summarize.Summarizer
	groq       *ai.GroqClient
	cache      *cache.SummaryCache
	out        io.Writer

	transcript string
	summary    *entities.MeetingSummary
}

func (s *chatSession) load(cmd *cobra.Command, path string) error {
	transcript, err := readTranscript(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(transcript) == "" {
		return fmt.Errorf("transcript is empty")
	}

	ctx := cmd.Context()
	if cached, ok, _ := s.cache.Get(ctx, transcript); ok {
		s.transcript = transcript
		s.summary = cached
		fmt.Fprintf(s.out, "Loaded %s (cached summary)\n", path)
		return nil
	}

	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	_ = s.cache.Put(ctx, transcript, summary)

	s.transcript = transcript
	s.summary = summary
	fmt.Fprintf(s.out, "Loaded %s (%d decisions, %d action items, %d risks)\n",
		path, len(summary.Decisions), len(summary.ActionItems), len(summary.Risks))
	return nil
}

func (s *chatSession) showSummary() {
	if s.summary == nil {
		fmt.Fprintln(s.out, "No meeting loaded. Use /load <file> first.")
		return
	}
	fmt.Fprintln(s.out, query.RenderMeeting(s.summary))
}

func (s *chatSession) ask(cmd *cobra.Command, question string) {
	if s.summary == nil {
		fmt.Fprintln(s.out, "No meeting loaded. Use /load <file> first.")
		return
	}

	answer := query.Answer(s.summary, question)
	if s.groq != nil {
		prompt := query.BuildContext(s.summary, question)
		if reply, err := s.groq.Chat(cmd.Context(), prompt); err == nil && strings.TrimSpace(reply) != "" {
			answer = reply
		}
	}
	fmt.Fprintln(s.out, answer)
}
