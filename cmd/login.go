package cmd

import (
	"errors"
	"fmt"

	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

var (
	loginName  string
	loginEmail string
)

// loginCmd captures the user's identity for display purposes. No
// authentication happens against any server.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store your name and email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginName == "" || loginEmail == "" {
			return errors.New("both --name and --email are required")
		}

		_, kv, _, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		info := internal.UserInfo{Name: loginName, Email: loginEmail}
		if err := internal.SetUserInfo(kv, info); err != nil {
			return err
		}
		fmt.Printf("Welcome, %s!\n", info.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginName, "name", "", "Your name")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Your email")
}
