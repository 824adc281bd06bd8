package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lingo/internal/crypto"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := wire.Session.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "State:   %s\n", s.State)
			fmt.Fprintf(out, "API:     %s\n", wire.Gateway.Base())
			fmt.Fprintf(out, "Storage: %s\n", wire.Config.Storage)
			fmt.Fprintf(out, "Policy:  %s\n", wire.Session.Policy())
			if !s.IsAuthenticated() {
				return nil
			}
			fmt.Fprintf(out, "User:    %s (%s)\n", s.User.Username, s.User.Email)
			fmt.Fprintf(out, "Token:   %s\n", crypto.Fingerprint([]byte(s.Token)))
			return nil
		},
	}
	return cmd
}
