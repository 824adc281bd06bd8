package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lingo/internal/domain"
	"lingo/internal/guard"
	"lingo/internal/view"
)

func progressCmd() *cobra.Command {
	var rng string
	cmd := guard.Protect(&cobra.Command{
		Use:   "progress",
		Short: "Show learning progress over a time range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := parseRange(rng)
			if err != nil {
				return err
			}
			prog, err := wire.API.Progress(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			stats, err := wire.API.ProgressStats(cmd.Context(), tr)
			if err != nil {
				return apiError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Streak: %d days  Conversations: %d  Messages: %d  Words: %d  Quizzes: %d\n",
				prog.StreakDays, prog.ConversationsCount, prog.MessagesCount, prog.VocabularyCount, prog.QuizzesCompleted)
			m := stats.MasteryProgress
			fmt.Fprintf(out, "Mastery: %d of %d mastered, %d in progress\n", m.Mastered, m.Total, m.InProgress)

			if len(stats.QuizResults) > 0 {
				fmt.Fprintf(out, "\nQuiz scores (%s):\n", tr)
				for _, p := range stats.QuizResults {
					fmt.Fprintf(out, "  %s  %3d%%  %s\n", p.Date, p.Score, view.ScoreColor(p.Score))
				}
			}
			if len(stats.ActivityData) > 0 {
				fmt.Fprintf(out, "\nActivity (%s):\n", tr)
				tw := table(out)
				for _, a := range stats.ActivityData {
					fmt.Fprintf(tw, "  %s\t%d messages\t%d min\n", a.Day, a.Messages, a.Minutes)
				}
				return tw.Flush()
			}
			return nil
		},
	})
	cmd.Flags().StringVar(&rng, "range", string(domain.RangeMonth), "week, month, year or all")
	return cmd
}

func errorsCmd() *cobra.Command {
	var rng string
	cmd := guard.Protect(&cobra.Command{
		Use:   "errors",
		Short: "Analyse the mistakes flagged in your messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := parseRange(rng)
			if err != nil {
				return err
			}
			a, err := wire.API.ErrorAnalysis(cmd.Context(), tr)
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total errors (%s): %d\n", tr, a.TotalErrors)
			imp := a.ErrorImprovement
			fmt.Fprintf(out, "Previous period: %d  Current period: %d  Change: %+.1f%%\n",
				imp.PreviousPeriod, imp.CurrentPeriod, imp.PercentageChange)

			if len(a.ErrorCategories) > 0 {
				fmt.Fprintln(out, "\nBy category:")
				for _, c := range a.ErrorCategories {
					fmt.Fprintf(out, "  %-14s %d\n", c.Name, max(c.Value, c.Count))
				}
			}
			if len(a.TopErrorTypes) > 0 {
				fmt.Fprintln(out, "\nMost frequent:")
				for _, t := range a.TopErrorTypes {
					fmt.Fprintf(out, "  %-14s %d\n", t.Name, max(t.Count, t.Value))
				}
			}
			return nil
		},
	})
	cmd.Flags().StringVar(&rng, "range", string(domain.RangeMonth), "week, month, year or all")
	return cmd
}

func goalsCmd() *cobra.Command {
	cmd := guard.Protect(&cobra.Command{
		Use:   "goals",
		Short: "Track learning goals",
		Args:  cobra.NoArgs,
		RunE:  listGoals,
	})
	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List goals", Args: cobra.NoArgs, RunE: listGoals},
		goalAddCmd(),
		goalProgressCmd(),
		goalCompleteCmd(),
		goalDeleteCmd(),
	)
	return cmd
}

func listGoals(cmd *cobra.Command, args []string) error {
	goals, err := wire.API.Goals(cmd.Context())
	if err != nil {
		return apiError(err)
	}
	out := cmd.OutOrStdout()
	if len(goals) == 0 {
		fmt.Fprintln(out, "No goals yet. Add one with `lingo goals add`.")
		return nil
	}
	now := time.Now()
	tw := table(out)
	fmt.Fprintln(tw, "ID\tGOAL\tPROGRESS\tFREQUENCY\tDUE\tSTATUS")
	for _, g := range goals {
		var status string
		switch days := view.DaysRemaining(now, g.EndDate); {
		case g.IsCompleted:
			status = "completed"
		case days < 0:
			status = "overdue"
		default:
			status = fmt.Sprintf("%d days left", days)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d (%d%%)\t%s\t%s\t%s\n", g.ID, g.Title,
			g.CurrentProgress, g.TargetValue, view.ProgressPercent(g), g.Frequency, date(&g.EndDate), status)
	}
	return tw.Flush()
}

func goalAddCmd() *cobra.Command {
	var (
		g    domain.Goal
		days int
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g.Title = strings.Join(args, " ")
			g.StartDate = time.Now().UTC()
			g.EndDate = g.StartDate.AddDate(0, 0, days)
			created, err := wire.API.CreateGoal(cmd.Context(), g)
			if err != nil {
				return apiError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s: %s\n", created.ID, created.Title)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&g.TargetType, "type", "vocabulary", "what to count: vocabulary, conversations, quizzes or minutes")
	f.IntVar(&g.TargetValue, "target", 10, "target value")
	f.StringVar(&g.Frequency, "frequency", "weekly", "daily, weekly or monthly")
	f.IntVar(&days, "days", 7, "days until the deadline")
	return cmd
}

func goalProgressCmd() *cobra.Command {
	return goalUpdateCmd("progress <id>", "Record one unit of progress on a goal", view.IncrementProgress)
}

func goalCompleteCmd() *cobra.Command {
	return goalUpdateCmd("complete <id>", "Mark a goal as completed", view.CompleteGoal)
}

func goalUpdateCmd(use, short string, change func(domain.Goal) domain.Goal) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			goals, err := wire.API.Goals(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			for _, g := range goals {
				if g.ID != id {
					continue
				}
				next, err := view.UpdateGoal(g, change)
				if err != nil {
					return fmt.Errorf("goal %s: %w", id, err)
				}
				updated, err := wire.API.UpdateGoal(cmd.Context(), id, next)
				if err != nil {
					return apiError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d (%d%%)\n", updated.Title,
					updated.CurrentProgress, updated.TargetValue, view.ProgressPercent(updated))
				return nil
			}
			return fmt.Errorf("goal %s not found", id)
		},
	}
}

func goalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.API.DeleteGoal(cmd.Context(), domain.ID(args[0])); err != nil {
				return apiError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goal deleted")
			return nil
		},
	}
}

func badgesCmd() *cobra.Command {
	return guard.Protect(&cobra.Command{
		Use:   "badges",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			badges, err := wire.API.Badges(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			sum := view.SummarizeBadges(badges)
			fmt.Fprintf(out, "%d of %d badges earned (%d%%)\n", sum.Earned, sum.Total, sum.Percent)
			tw := table(out)
			for _, b := range badges {
				mark := " "
				if b.IsEarned {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s %s\t%s\t%s\n", mark, b.Name, b.Category, b.Description)
			}
			return tw.Flush()
		},
	})
}
