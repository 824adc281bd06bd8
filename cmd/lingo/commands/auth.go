package commands

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lingo/internal/domain"
)

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and store the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			creds := domain.Credentials{Password: password}
			if len(args) == 1 {
				creds.Username = args[0]
			}

			var err error
			if creds.Username == "" {
				if creds.Username, err = prompt(cmd, in, "Username: "); err != nil {
					return err
				}
			}
			if creds.Password == "" {
				if creds.Password, err = prompt(cmd, in, "Password: "); err != nil {
					return err
				}
			}

			u, err := wire.Session.Login(cmd.Context(), creds)
			if err != nil {
				return authError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", u.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	var nu domain.NewUser
	cmd := &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account and sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if len(args) == 1 {
				nu.Username = args[0]
			}
			fields := []struct {
				label string
				dst   *string
			}{
				{"Username: ", &nu.Username},
				{"Email: ", &nu.Email},
				{"Password: ", &nu.Password},
			}
			for _, f := range fields {
				if *f.dst != "" {
					continue
				}
				v, err := prompt(cmd, in, f.label)
				if err != nil {
					return err
				}
				*f.dst = v
			}

			u, err := wire.Session.Register(cmd.Context(), nu)
			if err != nil {
				return authError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are now logged in.\n", u.Username)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&nu.Email, "email", "", "email address")
	f.StringVar(&nu.Password, "password", "", "password (prompted when omitted)")
	f.StringVar(&nu.NativeLanguage, "native", "English", "native language")
	f.StringVar(&nu.LearningLanguage, "learning", "Spanish", "language being learned")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// authError prefers the message the session recorded for the banner.
func authError(err error) error {
	if msg := wire.Session.Snapshot().LastError; msg != "" {
		return errors.New(msg)
	}
	return err
}
