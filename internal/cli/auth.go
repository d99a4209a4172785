package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vendorly/internal/domain/users"
)

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}
			if err := s.auth.Login(ctxOf(cmd), email, password); err != nil {
				return s.out.Fail(err)
			}
			return printUser(s, "Signed in as")
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}
			if err := s.auth.Signup(ctxOf(cmd), name, email, password); err != nil {
				return s.out.Fail(err)
			}
			return printUser(s, "Welcome,")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}
			if err := s.auth.Logout(); err != nil {
				return s.out.Fail(err)
			}
			return s.out.Success(map[string]bool{"logged_out": true}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Signed out")
				return err
			})
		},
	}
}

func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, true)
			if err != nil {
				return err
			}
			return printUser(s, "Signed in as")
		},
	}
}

func printUser(s *session, lead string) error {
	u := s.auth.Snapshot().User
	return s.out.Success(u, func(w io.Writer) error {
		return writeUser(w, lead, u)
	})
}

func writeUser(w io.Writer, lead string, u *users.User) error {
	_, err := fmt.Fprintf(w, "%s %s <%s> [%s]\n", lead, u.Name, u.Email, u.Role)
	return err
}
