package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lingo/internal/domain"
	"lingo/internal/guard"
)

func conversationsCmd() *cobra.Command {
	cmd := guard.Protect(&cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conv"},
		Short:   "Chat with the tutor",
		Args:    cobra.NoArgs,
		RunE:    listConversations,
	})
	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List conversations", Args: cobra.NoArgs, RunE: listConversations},
		conversationShowCmd(),
		conversationNewCmd(),
		conversationSendCmd(),
	)
	return cmd
}

func listConversations(cmd *cobra.Command, args []string) error {
	convs, err := wire.API.Conversations(cmd.Context())
	if err != nil {
		return apiError(err)
	}
	out := cmd.OutOrStdout()
	if len(convs) == 0 {
		fmt.Fprintln(out, "No conversations yet. Start one with `lingo conversations new`.")
		return nil
	}
	tw := table(out)
	fmt.Fprintln(tw, "ID\tTITLE\tSTARTED\tLAST MESSAGE")
	for _, c := range convs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Title, date(c.CreatedAt), date(c.LastMessageAt))
	}
	return tw.Flush()
}

func conversationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a conversation with corrections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.API.Conversation(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n\n", c.Title)
			printMessages(out, c.Messages)
			return nil
		},
	}
}

func conversationNewCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Start a conversation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.API.CreateConversation(cmd.Context(), domain.NewConversation{
				Title:          strings.Join(args, " "),
				InitialMessage: message,
			})
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Started conversation %s: %s\n", c.ID, c.Title)
			printMessages(out, c.Messages)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "opening message")
	return cmd
}

func conversationSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <id> <message...>",
		Short: "Send a message and print the tutor's reply",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := wire.API.SendMessage(cmd.Context(), domain.ID(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				return apiError(err)
			}
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func printMessages(out io.Writer, msgs []domain.Message) {
	for _, m := range msgs {
		who := "tutor"
		if m.IsFromUser {
			who = "you"
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), who, m.Content)
		if m.ErrorAnalysis == nil {
			continue
		}
		for _, e := range m.ErrorAnalysis.Errors {
			fmt.Fprintf(out, "    ! %q -> %q", e.ErrorText, e.Correction)
			if e.ErrorType != "" {
				fmt.Fprintf(out, " [%s]", e.ErrorType)
			}
			if e.Explanation != "" {
				fmt.Fprintf(out, " %s", e.Explanation)
			}
			fmt.Fprintln(out)
		}
	}
}
