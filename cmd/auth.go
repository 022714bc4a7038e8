package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		email, err := flagOrPrompt(cmd, in, "email", "Email: ")
		if err != nil {
			return err
		}
		password, err := secretOrPrompt(cmd, in, "password", "Password: ")
		if err != nil {
			return err
		}

		if err := e.session.Login(ctxOf(cmd), e.api, email, password); err != nil {
			return authError(err, "login failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		email, err := flagOrPrompt(cmd, in, "email", "Email: ")
		if err != nil {
			return err
		}
		name, err := flagOrPrompt(cmd, in, "name", "Name: ")
		if err != nil {
			return err
		}
		password, err := secretOrPrompt(cmd, in, "password", "Password: ")
		if err != nil {
			return err
		}

		acct, err := e.session.Register(ctxOf(cmd), e.api, email, name, password)
		if err != nil {
			return authError(err, "registration failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run `coursegen login` to sign in.\n", acct.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.Logout(ctxOf(cmd)); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if !e.session.Authenticated() {
			fmt.Fprintln(out, "Not logged in.")
			return nil
		}

		who := e.session.Subject()
		if who == "" {
			who = "(unknown account)"
		}
		fmt.Fprintf(out, "Logged in as %s\n", who)
		if exp, ok := e.session.ExpiresAt(); ok {
			fmt.Fprintf(out, "Token expires %s (in %s)\n",
				exp.Local().Format("2006-01-02 15:04:05"), time.Until(exp).Round(time.Minute))
		}
		fmt.Fprintf(out, "Server: %s\n", e.cfg.APIURL)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("password", "", "Account password (prompted when omitted)")
}

// flagOrPrompt returns the flag value, or reads one line from in.
func flagOrPrompt(cmd *cobra.Command, in *bufio.Reader, flag, prompt string) (string, error) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", flag, err)
	}
	return strings.TrimSpace(line), nil
}

// secretOrPrompt is flagOrPrompt for secrets: when stdin is a terminal the
// typed value is not echoed.
func secretOrPrompt(cmd *cobra.Command, in *bufio.Reader, flag, prompt string) (string, error) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v, nil
	}
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return flagOrPrompt(cmd, in, flag, prompt)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprint(stderr, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", flag, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// authError words a login or register failure for the terminal.
func authError(err error, what string) error {
	var ie *auth.InputError
	if errors.As(err, &ie) {
		return fmt.Errorf("%s: %s", what, strings.Join(ie.Problems, "; "))
	}
	return fmt.Errorf("%s: %s", what, api.Message(err, err.Error()))
}
