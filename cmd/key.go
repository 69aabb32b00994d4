package cmd

import (
	"fmt"

	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

// keyCmd groups credential management subcommands
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the Gemini API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, _, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := internal.SetCredential(kv, args[0]); err != nil {
			return err
		}
		fmt.Println("API key saved.")
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, _, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		// The key itself is never printed.
		if _, ok, err := internal.Credential(kv); err != nil {
			return err
		} else if ok {
			fmt.Println("An API key is configured.")
		} else {
			fmt.Println("No API key configured. Run `khudka key set <api-key>`.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyStatusCmd)
}
