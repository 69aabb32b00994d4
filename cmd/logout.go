package cmd

import (
	"fmt"

	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

// logoutCmd wipes all local state: every session, the API key and the
// stored identity.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and wipe all local state",
	Long: `Log out of khudka.

This deletes every saved session, the stored API key and your identity
from the local database. There is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, store, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := store.Wipe(); err != nil {
			return err
		}
		if err := kv.Delete(internal.KeyCredential); err != nil {
			return err
		}
		if err := kv.Delete(internal.KeyUserInfo); err != nil {
			return err
		}

		fmt.Println("Logged out. All local state wiped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
