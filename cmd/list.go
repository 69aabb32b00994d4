package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

var listRecent bool

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long: `List all saved chat sessions.

Sessions appear newest-created-first. Use --recent to sort by last
activity instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, store, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		sessions := store.List()
		if listRecent {
			sort.SliceStable(sessions, func(i, j int) bool {
				return sessions[i].LastActivityAt.After(sessions[j].LastActivityAt)
			})
		}

		displaySessions(sessions)
		return nil
	},
}

func displaySessions(sessions []*internal.ChatSession) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("📋 No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last activity")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, sess := range sessions {
		title := sess.Title
		if title == "" {
			title = "Untitled"
		}
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		title = previewStyle.Render(title)

		msgCount := countStyle.Render(strconv.Itoa(len(sess.Messages)))

		activity := dateStyle.Render("—")
		if !sess.LastActivityAt.IsZero() {
			activity = dateStyle.Render(formatWhen(sess.LastActivityAt))
		}

		shortID := sess.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		id := idStyle.Render(shortID)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, title, msgCount, activity)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID) +
		idStyle.Render(") with `khudka show <id>`"))
}

// formatWhen renders a timestamp relative to now, denser for older dates.
func formatWhen(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listRecent, "recent", false, "Sort by last activity instead of creation order")
}
