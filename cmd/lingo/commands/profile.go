package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lingo/internal/guard"
)

func profileCmd() *cobra.Command {
	cmd := guard.Protect(&cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
		Args:  cobra.NoArgs,
		RunE:  showProfile,
	})
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show your profile and progress", Args: cobra.NoArgs, RunE: showProfile},
		profileUpdateCmd(),
	)
	return cmd
}

func showProfile(cmd *cobra.Command, args []string) error {
	p, err := wire.API.Profile(cmd.Context())
	if err != nil {
		return apiError(err)
	}
	prog, err := wire.API.Progress(cmd.Context())
	if err != nil {
		return apiError(err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Username:  %s\n", p.Username)
	fmt.Fprintf(out, "Email:     %s\n", p.Email)
	fmt.Fprintf(out, "Native:    %s\n", p.NativeLanguage)
	fmt.Fprintf(out, "Learning:  %s\n", p.LearningLanguage)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Conversations: %d  Messages: %d  Words: %d  Streak: %d days\n",
		prog.ConversationsCount, prog.MessagesCount, prog.VocabularyCount, prog.StreakDays)
	return nil
}

func profileUpdateCmd() *cobra.Command {
	var email, native, learning string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change email or languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.API.Profile(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			f := cmd.Flags()
			if f.Changed("email") {
				p.Email = email
			}
			if f.Changed("native") {
				p.NativeLanguage = native
			}
			if f.Changed("learning") {
				p.LearningLanguage = learning
			}
			if p, err = wire.API.UpdateProfile(cmd.Context(), p); err != nil {
				return apiError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s, %s -> %s\n", p.Email, p.NativeLanguage, p.LearningLanguage)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&native, "native", "", "native language")
	cmd.Flags().StringVar(&learning, "learning", "", "language being learned")
	return cmd
}
