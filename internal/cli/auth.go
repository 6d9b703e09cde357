package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account and log in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show the quote of the day",
	Args:  cobra.NoArgs,
	RunE:  runQuote,
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().String("email", "", "Account email")
		cmd.Flags().String("password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("avatar", "", "Avatar reference")
}

func runLogin(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	email, err := flagOrPrompt(cmd, in, "email", "Email: ")
	if err != nil {
		return err
	}
	password, err := passwordFlagOrPrompt(cmd, in)
	if err != nil {
		return err
	}

	auth, err := app.fx.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := app.saveSession(auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged in as %s\n", displayName(auth.User))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	email, err := flagOrPrompt(cmd, in, "email", "Email: ")
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	avatar, _ := cmd.Flags().GetString("avatar")
	password, err := passwordFlagOrPrompt(cmd, in)
	if err != nil {
		return err
	}

	user := model.User{Email: email, Name: name, Password: password, Avatar: avatar}
	auth, err := app.fx.Register(cmd.Context(), user)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := app.saveSession(auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Registered and logged in as %s\n", displayName(auth.User))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app.fx.Logout()
	if err := config.ClearSession(app.sessionPath); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := app.resume(cmd.Context()); err != nil {
		return err
	}
	user := store.Select(app.store(), store.CurrentUser)
	if user == nil {
		return errLoginRequired
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "👤 %s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(out, "   id: %s\n", user.ID)
	if app.session.ProjectID != "" {
		fmt.Fprintf(out, "   project: %s\n", shortID(app.session.ProjectID))
	}
	return nil
}

func runQuote(cmd *cobra.Command, args []string) error {
	// The fallback quote is printed when the backend has none
	quote, _ := app.fx.LoadQuote(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "💬 %q\n   - %s\n", quote.Content, quote.Author)
	return nil
}

func flagOrPrompt(cmd *cobra.Command, in *bufio.Reader, flag, prompt string) (string, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value != "" {
		return value, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	value = strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("%s is required", flag)
	}
	return value, nil
}

// passwordFlagOrPrompt reads the password without echo when stdin is a terminal
func passwordFlagOrPrompt(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}
	return flagOrPrompt(cmd, in, "password", "Password: ")
}

func displayName(u *model.User) string {
	if u == nil {
		return "unknown user"
	}
	if u.Name == "" {
		return u.Email
	}
	return u.Name
}
