package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to your account",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// readPassword prompts without echo on a terminal, falling back to a
// plain line read when stdin is piped.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	if services.Auth == nil {
		return errors.New("auth service not configured")
	}

	password, err := readPassword(cmd, "Password: ")
	if err != nil {
		return err
	}

	_, err = services.Auth.SignIn(cmd.Context(), args[0], password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return errors.New("that doesn't look like a valid e-mail address")
		case errors.Is(err, domain.ErrAuthInvalid):
			return errors.New("wrong e-mail or password")
		}
		return fmt.Errorf("signing in: %w", err)
	}

	cmd.Printf("Signed in as %s.\n", args[0])
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if services.Auth == nil {
		return errors.New("auth service not configured")
	}

	password, err := readPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword(cmd, "Confirm password: ")
	if err != nil {
		return err
	}

	_, err = services.Auth.Register(cmd.Context(), args[0], password, confirm)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return fmt.Errorf("invalid registration: %w", err)
		case errors.Is(err, domain.ErrAlreadyExists):
			return errors.New("an account with that e-mail already exists")
		}
		return fmt.Errorf("registering: %w", err)
	}

	cmd.Printf("Account created, signed in as %s.\n", args[0])
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if services.Auth == nil {
		return errors.New("auth service not configured")
	}
	if err := services.Auth.SignOut(cmd.Context()); err != nil {
		return fmt.Errorf("signing out: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	userID, err := currentUser()
	if err != nil {
		return err
	}
	cmd.Printf("Signed in, user id %s.\n", userID)
	return nil
}
