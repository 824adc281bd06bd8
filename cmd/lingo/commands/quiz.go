package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"lingo/internal/api"
	"lingo/internal/domain"
	"lingo/internal/guard"
	"lingo/internal/view"
)

func quizCmd() *cobra.Command {
	cmd := guard.Protect(&cobra.Command{
		Use:   "quiz",
		Short: "Take quizzes and review results",
	})
	cmd.AddCommand(
		quizLevelsCmd(), quizShowCmd(), quizGenerateCmd(), quizTakeCmd(),
		quizResultsCmd(), quizResultCmd(),
	)
	return cmd
}

func quizLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels <level>",
		Short: "List the quizzes available at a CEFR level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			quizzes, err := wire.API.QuizzesByLevel(cmd.Context(), lvl)
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			if len(quizzes) == 0 {
				fmt.Fprintf(out, "No quizzes at level %s. Generate one with `lingo quiz generate --level %s`.\n", lvl, lvl)
				return nil
			}
			tw := table(out)
			fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tQUESTIONS")
			for _, q := range quizzes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", q.ID, q.Title, q.QuizType, len(q.Questions))
			}
			return tw.Flush()
		},
	}
}

func quizShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a quiz's questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := wire.API.Quiz(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return apiError(err)
			}
			printQuiz(cmd.OutOrStdout(), q)
			return nil
		},
	}
}

func quizGenerateCmd() *cobra.Command {
	var (
		level string
		opts  domain.QuizOptions
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevel(level)
			if err != nil {
				return err
			}
			opts.Level = lvl
			q, err := wire.API.GenerateQuiz(cmd.Context(), opts)
			if err != nil {
				return apiError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated quiz %s: %s (%d questions)\n", q.ID, q.Title, len(q.Questions))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&level, "level", "A1", "CEFR level")
	f.StringVar(&opts.QuizType, "type", "Vocabulary", "quiz type")
	f.IntVar(&opts.QuestionCount, "count", 5, "number of questions")
	return cmd
}

// quizTakeCmd asks each question in turn. An answer is the option's number
// or its text.
func quizTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <id>",
		Short: "Answer a quiz interactively and submit it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := wire.API.Quiz(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			fmt.Fprintf(out, "%s (%s)\n", q.Title, q.Level)

			answers := make(map[domain.ID]string, len(q.Questions))
			for i, question := range q.Questions {
				fmt.Fprintf(out, "\n%d. %s\n", i+1, question.Question)
				for j, opt := range question.Options {
					fmt.Fprintf(out, "   %d) %s\n", j+1, opt)
				}
				line, err := prompt(cmd, in, "Answer: ")
				if err != nil {
					return err
				}
				answers[question.ID] = chooseOption(question.Options, line)
			}

			sub, err := api.BuildSubmission(q, answers)
			if err != nil {
				return err
			}
			res, err := wire.API.SubmitQuiz(cmd.Context(), sub)
			if err != nil {
				return apiError(err)
			}
			fmt.Fprintf(out, "\n%s %d/%d correct (%d%%)\n", view.ResultHeadline(res.Score),
				res.CorrectAnswers, res.TotalQuestions, res.Score)
			printAnswers(out, res)
			return nil
		},
	}
}

func chooseOption(options []string, answer string) string {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}

func quizResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "List past quiz results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := wire.API.QuizResults(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No quiz results yet.")
				return nil
			}
			tw := table(out)
			fmt.Fprintln(tw, "ID\tQUIZ\tLEVEL\tSCORE\tCORRECT\tCOMPLETED")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d%% %s\t%d/%d\t%s\n", r.ID, r.QuizTitle, r.QuizLevel,
					r.Score, view.ScoreText(r.Score), r.CorrectAnswers, r.TotalQuestions, date(&r.CompletedAt))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Average score: %d%%\n", view.AverageScore(results))
			return nil
		},
	}
}

func quizResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Review one quiz result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := wire.API.QuizResult(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %d%% %s\n", res.QuizTitle, res.QuizLevel, res.Score, view.ScoreText(res.Score))
			printAnswers(out, res)
			fmt.Fprintln(out, view.ProgressTip(res.Score))
			return nil
		},
	}
}

func printQuiz(out io.Writer, q domain.Quiz) {
	fmt.Fprintf(out, "%s (%s, %s)\n", q.Title, q.Level, q.QuizType)
	for i, question := range q.Questions {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, question.Question)
		for j, opt := range question.Options {
			fmt.Fprintf(out, "   %d) %s\n", j+1, opt)
		}
	}
}

func printAnswers(out io.Writer, res domain.QuizResult) {
	for _, a := range res.Answers {
		if a.IsCorrect {
			fmt.Fprintf(out, "  ok    %s %s\n", a.Question, a.UserAnswer)
			continue
		}
		fmt.Fprintf(out, "  wrong %s %s (correct: %s)\n", a.Question, a.UserAnswer, a.CorrectAnswer)
	}
}
