package commands

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"lingo/internal/domain"
	"lingo/internal/guard"
	"lingo/internal/view"
)

func vocabCmd() *cobra.Command {
	cmd := guard.Protect(&cobra.Command{
		Use:   "vocab",
		Short: "Browse and drill your vocabulary",
	})
	cmd.AddCommand(vocabListCmd(), vocabUpdateCmd(), vocabStatsCmd(), flashcardsCmd())
	return cmd
}

func vocabListCmd() *cobra.Command {
	var (
		filter view.VocabularyFilter
		level  string
		sortBy string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words, filtered and paginated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if level != "" && level != "all" {
				l, err := parseLevel(level)
				if err != nil {
					return err
				}
				filter.Level = l
			}
			items, err := wire.API.Vocabulary(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			shown := filter.Apply(items)
			view.SortVocabulary(shown, view.VocabularySort(sortBy))
			p := view.Paginate(shown, page, view.DefaultPerPage)

			out := cmd.OutOrStdout()
			if p.TotalItems == 0 {
				fmt.Fprintln(out, "No vocabulary words found.")
				return nil
			}
			tw := table(out)
			fmt.Fprintln(tw, "ID\tWORD\tTRANSLATION\tLEVEL\tSEEN\tUSED\tLAST SEEN\tMASTERED")
			for _, it := range p.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n", it.ID, it.Word, it.Translation, it.Level,
					it.TimesEncountered, it.TimesCorrectlyUsed, date(it.LastEncounteredAt), yesNo(it.IsMastered))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Page %d of %d (%d words)\n", p.Number, p.TotalPages, p.TotalItems)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&level, "level", "", "only this CEFR level (A1..C2)")
	f.StringVarP(&filter.Search, "search", "s", "", "match word or translation")
	f.StringVar(&sortBy, "sort", string(view.SortWord), "sort by word, level, lastSeen or mastered")
	f.IntVar(&page, "page", 1, "page number")
	return cmd
}

func vocabUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <translation>",
		Short: "Correct a word's translation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := wire.API.UpdateVocabularyItem(cmd.Context(), domain.ID(args[0]), domain.VocabularyPatch{Translation: args[1]})
			if err != nil {
				return apiError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", it.Word, it.Translation)
			return nil
		},
	}
}

func vocabStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count words by level and mastery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := wire.API.Vocabulary(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			st := view.Stats(items)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total words: %d\n", st.TotalWords)
			fmt.Fprintf(out, "Mastered:    %d (%.1f%%)\n", st.Mastered, st.MasteredPercentage)
			for _, l := range domain.Levels {
				fmt.Fprintf(out, "  %s: %d\n", l, st.ByLevel[l])
			}
			return nil
		},
	}
}

// flashcardsCmd drills cards interactively: Enter flips, n/p move, q quits.
func flashcardsCmd() *cobra.Command {
	var (
		level string
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "flashcards",
		Short: "Drill words as flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var lvl domain.Level
			if level != "" {
				l, err := parseLevel(level)
				if err != nil {
					return err
				}
				lvl = l
			}
			cards, err := wire.API.Flashcards(cmd.Context(), lvl, count)
			if err != nil {
				return apiError(err)
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No flashcards available.")
				return nil
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			deck := view.NewDeck(cards, rand.New(rand.NewPCG(seed, seed)))
			in := bufio.NewReader(cmd.InOrStdin())

			for {
				c, _ := deck.Current()
				pos, total := deck.Position()
				side := c.Word
				if deck.Flipped() {
					side = c.Translation
				}
				fmt.Fprintf(out, "[%d/%d] %s (%s)\n", pos, total, side, c.Level)

				line, err := prompt(cmd, in, "[enter] flip  [n]ext  [p]rev  [q]uit: ")
				if err != nil {
					return nil
				}
				switch line {
				case "":
					deck.Flip()
				case "n":
					if !deck.Next() {
						fmt.Fprintln(out, "Last card.")
					}
				case "p":
					deck.Prev()
				case "q":
					return nil
				}
			}
		},
	}
	f := cmd.Flags()
	f.StringVar(&level, "level", "", "only this CEFR level")
	f.IntVar(&count, "count", 10, "number of cards")
	f.Uint64Var(&seed, "seed", 0, "shuffle seed (random when 0)")
	return cmd
}
