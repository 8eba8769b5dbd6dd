package command

// auth.go handles authentication commands: register, login, logout, whoami.

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"animehub/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the animehub API server. Supports login, registration, logout.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new animehub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		response, err := api.Register(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println("✓ Registration successful! Please login to continue.")
		fmt.Printf("UserID: %s\n", response.UserID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your animehub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		sess := session.New(api)
		defer sess.Close()

		user, err := sess.SignIn(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("✓ Logged in as %s (%s)\n", user.Username, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your animehub account",
	Run: func(cmd *cobra.Command, args []string) {
		sess := session.New(api)
		defer sess.Close()

		if err := sess.SignOut(cmd.Context()); err != nil {
			// Local tokens are cleared regardless
			fmt.Printf("warning: server-side logout failed: %v\n", err)
		}
		fmt.Println("✓ Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := startSession(cmd.Context())
		defer sess.Close()

		user := sess.CurrentUser()
		if user == nil {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Email)
		return nil
	},
}

// startSession builds the client session and runs the initial probe.
func startSession(ctx context.Context) *session.Session {
	sess := session.New(api)
	sess.Start(ctx)
	return sess
}

func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Email for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(authCmd)
}
