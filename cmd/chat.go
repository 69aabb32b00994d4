package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles for the chat transcript
	youLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	aiLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("135"))

	chatErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	chatHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Start an interactive chat with the Gemini API.

Each completed exchange is saved to a local session. Inside the chat:
  /new     start a fresh conversation
  /regen   regenerate the last reply
  /clear   delete the current conversation
  /quit    exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, kv, store, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		if _, ok, err := internal.Credential(kv); err != nil {
			return err
		} else if !ok {
			return errors.New("no API key configured, run `khudka key set <api-key>` first")
		}

		if chatSessionID != "" {
			if _, err := store.Select(chatSessionID); err != nil {
				return err
			}
		}

		client := internal.NewGeminiClient(cfg.Model)
		pipeline := internal.NewPipeline(store, client, kv)
		pipeline.OnUserMessage = func(msg internal.Message) {
			fmt.Println(youLabelStyle.Render("You:") + " " + msg.Content)
		}

		fmt.Println(chatHintStyle.Render("Type a message, or /help for commands."))
		replayMessages(store.ActiveMessages())

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)

		for {
			fmt.Print(promptStyle.Render("> "))
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())

			if strings.HasPrefix(line, "/") {
				if quit := runChatCommand(pipeline, store, line); quit {
					break
				}
				continue
			}

			result, err := pipeline.Send(context.Background(), line)
			if err != nil {
				printSendError(err)
				continue
			}
			fmt.Println(aiLabelStyle.Render("AI:") + " " + result.Assistant.Content)
		}

		return scanner.Err()
	},
}

// runChatCommand handles slash commands. It returns true when the chat
// loop should exit.
func runChatCommand(pipeline *internal.Pipeline, store *internal.SessionStore, line string) bool {
	switch line {
	case "/quit", "/exit":
		return true
	case "/new":
		store.CreateDraft()
		fmt.Println(chatHintStyle.Render("Started a new conversation."))
	case "/regen":
		result, err := pipeline.Regenerate(context.Background())
		if err != nil {
			printSendError(err)
		} else if result == nil {
			fmt.Println(chatHintStyle.Render("Nothing to regenerate yet."))
		} else {
			fmt.Println(aiLabelStyle.Render("AI:") + " " + result.Assistant.Content)
		}
	case "/clear":
		pipeline.ClearActive()
		fmt.Println(chatHintStyle.Render("Conversation cleared."))
	case "/help":
		fmt.Println(chatHintStyle.Render("/new  /regen  /clear  /quit"))
	default:
		fmt.Println(chatHintStyle.Render("Unknown command. Try /help."))
	}
	return false
}

// replayMessages prints an existing transcript when resuming a session.
func replayMessages(messages []internal.Message) {
	for _, msg := range messages {
		label := aiLabelStyle.Render("AI:")
		if msg.Role == internal.RoleUser {
			label = youLabelStyle.Render("You:")
		}
		fmt.Println(label + " " + msg.Content)
	}
}

func printSendError(err error) {
	switch {
	case errors.Is(err, internal.ErrBlankInput):
		// Nothing to send; stay quiet.
	case errors.Is(err, internal.ErrMissingCredential):
		fmt.Println(chatErrorStyle.Render("No API key configured. Run `khudka key set <api-key>`."))
	case errors.Is(err, internal.ErrBusy):
		fmt.Println(chatErrorStyle.Render("Still waiting on the previous reply."))
	default:
		var infErr *internal.InferenceError
		if errors.As(err, &infErr) {
			fmt.Println(chatErrorStyle.Render("Failed to get a reply: " + infErr.Message))
			internal.LogDebug("inference failure: %v", infErr)
		} else {
			fmt.Println(chatErrorStyle.Render("Error: " + err.Error()))
		}
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatSessionID, "session", "s", "", "Resume an existing session by id")
}
