package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/catalog"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

func newLoginCmd(opts *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to SportZone",
		Long: `Log in with your email and password.

The password is read from standard input when --password is omitted.
With session.store: redis the login is kept between commands; with the
default in-memory store it only lasts for the current command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "log in", func(ctx context.Context, a *app) error {
				if password == "" {
					p, err := newPrompter(cmd).ask("Password", "")
					if err != nil {
						return err
					}
					password = p
				}

				user, err := a.client.Login(ctx, sportzone.Credentials{Email: strings.TrimSpace(email), Password: password})
				if err != nil {
					return err
				}
				if err := a.holder.Set(ctx, user); err != nil {
					return err
				}

				printer.Success("Logged in as %s\n", user.DisplayName())
				if !a.persistentSession() {
					printer.Hint("session.store is 'memory': this login ends when the command exits.\n")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "log out", func(ctx context.Context, a *app) error {
				if err := a.holder.Clear(ctx); err != nil {
					return err
				}
				printer.Success("Logged out\n")
				return nil
			})
		},
	}
}

func newWhoamiCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "show the session", func(ctx context.Context, a *app) error {
				user, err := a.holder.RequireUser()
				if err != nil {
					return err
				}
				catalog.WriteFields(cmd.OutOrStdout(), [][2]string{
					{"ID", fmt.Sprint(user.ID)},
					{"Name", user.DisplayName()},
					{"Email", user.Email},
					{"Phone", user.Phone},
					{"Profile", a.cfg.Session.Profile},
				})
				return nil
			})
		},
	}
}

func newRegisterCmd(opts *globalOptions) *cobra.Command {
	var reg sportzone.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a SportZone account",
		Long: `Create an account. All fields are validated before anything is sent:
the email must be well formed, the password at least 6 characters and equal
to --confirm, and the phone exactly 10 digits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "register", func(ctx context.Context, a *app) error {
				user, err := a.client.Register(ctx, reg)
				if err != nil {
					return err
				}
				printer.Success("Account created for %s\n", user.Email)
				printer.Hint("Log in with: sportzone login --email %s\n", user.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "Phone number (10 digits)")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&reg.Confirm, "confirm", "", "Password confirmation")
	return cmd
}

// errInputClosed is returned when input ends before a prompt is answered.
var errInputClosed = errors.New("input closed")

// prompter reads answers line by line from the command's input.
type prompter struct {
	in  *bufio.Reader
	cmd *cobra.Command
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), cmd: cmd}
}

// ask prints label and returns the trimmed answer, or def when the answer is
// empty. End of input with nothing typed is an error.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.cmd.OutOrStdout(), "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.cmd.OutOrStdout(), "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no answer for %q: %w", label, errInputClosed)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
