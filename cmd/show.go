package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

var showLimit int

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long:  `Display the transcript of a saved chat session.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, store, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		messages, err := store.Select(args[0])
		if err != nil {
			return err
		}

		var session *internal.ChatSession
		for _, sess := range store.List() {
			if sess.ID == args[0] {
				session = sess
				break
			}
		}

		fmt.Println(sessionHeaderStyle.Render("💬 " + session.Title))
		fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("%d message(s) · last activity %s", len(messages), formatWhen(session.LastActivityAt))))

		if showLimit > 0 && len(messages) > showLimit {
			messages = messages[len(messages)-showLimit:]
			fmt.Println(timestampStyle.Render(fmt.Sprintf("(showing last %d)", showLimit)))
		}

		for _, msg := range messages {
			label := assistantMessageStyle.Render("AI")
			if msg.Role == internal.RoleUser {
				label = userMessageStyle.Render("You")
			}
			ts := timestampStyle.Render(msg.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Println(label + " " + ts)
			fmt.Println(messageContentStyle.Render(msg.Content))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Show only the last N messages")
}
