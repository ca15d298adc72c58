// Package main is adminctl, the operator CLI for the admin platform API.
// Session state persists between invocations in the user config dir.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyberxltr/admin-platform/pkg/client"
)

var (
	serverURL string
	api       *client.Client
)

func main() {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Manage admin platform organizations, users, and notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := client.DefaultSessionPath()
			if err != nil {
				return err
			}
			api = client.New(serverURL, client.NewFileSessionStore(path))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOr("ADMIN_SERVER_URL", "http://localhost:8001"), "admin platform base URL")

	root.AddCommand(loginCmd(), logoutCmd(), whoamiCmd())
	root.AddCommand(orgsCmd(), usersCmd(), notificationsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "administrator email")
	cmd.Flags().StringVar(&password, "password", "", "administrator password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := api.CurrentSession()
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", sess.Email, sess.UserID)
			return nil
		},
	}
}
