package cmd

import (
	"fmt"
	"os"

	"github.com/khudka/khudka/internal"
	"github.com/khudka/khudka/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session to file",
	Long: `Export a chat session in one of several formats
(txt, json, csv, html, md, yaml).

By default the export is written to <session-id>.<ext> in the current
directory. Use -o to choose a path, or "-o -" for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, store, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		var session *internal.ChatSession
		for _, sess := range store.List() {
			if sess.ID == args[0] {
				session = sess
				break
			}
		}
		if session == nil {
			return &internal.NotFoundError{ID: args[0]}
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			return exporter.Export(session, os.Stdout)
		}

		path := exportOutput
		if path == "" {
			path = fmt.Sprintf("%s.%s", session.ID, exporter.Extension())
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.Export(session, f); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Exported session to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "txt", "Export format (txt, json, csv, html, md, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (\"-\" for stdout)")
}
