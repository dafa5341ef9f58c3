package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicectl/internal/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, register, or inspect the current session",
	Long: `Manage the authenticated session used by the remote backend.

Tokens are stored in INVOICE_SESSION_FILE and refreshed automatically
while they remain valid. When the refresh token also expires, commands
fail with "session expired, please log in again".`,
}

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in with email and password",
	Example: `  invoicectl auth login --email jane@studio.dev --password s3cretpass`,
	Args:    cobra.NoArgs,
	RunE:    runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Example: `  invoicectl auth register --name "Jane Doe" --email jane@studio.dev \
    --password s3cretpass --confirm-password s3cretpass`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().String("email", "", "Account email (required)")
	loginCmd.Flags().String("password", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("name", "", "Display name (required)")
	registerCmd.Flags().String("email", "", "Account email (required)")
	registerCmd.Flags().String("password", "", "Password, 8 characters minimum (required)")
	registerCmd.Flags().String("confirm-password", "", "Password repeated (required)")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("confirm-password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("auth")

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	a, err := newApp()
	if err != nil {
		return err
	}
	auth, err := a.auth()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	user, err := auth.Login(ctx, email, password)
	if err != nil {
		if reportValidation(err) {
			return fmt.Errorf("not logged in")
		}
		return err
	}

	log.Debug().Str("email", user.Email).Msg("Login complete")
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	confirm, _ := cmd.Flags().GetString("confirm-password")

	a, err := newApp()
	if err != nil {
		return err
	}
	auth, err := a.auth()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	user, err := auth.Register(ctx, name, email, password, confirm)
	if err != nil {
		if reportValidation(err) {
			return fmt.Errorf("account not created")
		}
		return err
	}

	fmt.Printf("Welcome, %s! You are now logged in.\n", user.Name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	auth, err := a.auth()
	if err != nil {
		return err
	}

	if err := auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	auth, err := a.auth()
	if err != nil {
		return err
	}

	user := auth.User()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}
