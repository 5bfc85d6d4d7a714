package cmd

import (
	"fmt"

	"github.com/Iron-Ham/prodpath/internal/errors"
	"github.com/Iron-Ham/prodpath/internal/wordfreq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type wordsOptions struct {
	text string
}

func newWordsCmd() *cobra.Command {
	opts := &wordsOptions{}

	wordsCmd := &cobra.Command{
		Use:   "words [file]",
		Short: "Find the most common word that is not banned",
		Long: `Find the most common word of a paragraph, ignoring banned words.

Words are runs of letters and digits, compared case-insensitively. Ties go
to the word that appears first.

Examples:
  prodpath words --text "Bob hit a ball, the hit BALL flew far after it was hit." --ban hit
  prodpath words essay.txt --top 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWords(cmd, args, opts)
		},
	}

	wordsCmd.Flags().StringVar(&opts.text, "text", "", "text to analyze instead of a file or stdin")
	wordsCmd.Flags().StringSlice("ban", nil, "banned words (comma separated or repeated)")
	wordsCmd.Flags().Int("top", 0, "print the N most common words (0 prints only the winner)")

	_ = viper.BindPFlag("words.banned", wordsCmd.Flags().Lookup("ban"))
	_ = viper.BindPFlag("words.top", wordsCmd.Flags().Lookup("top"))

	return wordsCmd
}

type wordsReport struct {
	Word    string               `json:"word" yaml:"word"`
	Ranking []wordfreq.WordCount `json:"ranking,omitempty" yaml:"ranking,omitempty"`
}

func runWords(cmd *cobra.Command, args []string, opts *wordsOptions) error {
	inv, closeLog, err := loadInvocation(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	data, source, err := readInput(cmd, args, opts.text)
	if err != nil {
		return err
	}
	log := inv.logger.WithSource(source)

	banned := inv.cfg.Words.Banned
	ranking := wordfreq.Count(string(data), banned)
	log.Debug("counted words", "distinct", len(ranking), "banned", len(banned))

	if len(ranking) == 0 {
		log.Warn("no eligible words")
		return withSource(errors.NewInputError("text has no words outside the banned list", errors.ErrNoWords), source)
	}

	report := wordsReport{Word: ranking[0].Word}
	if top := inv.cfg.Words.Top; top > 0 {
		report.Ranking = wordfreq.Top(ranking, top)
	}
	log.Info("found most common word", "word", report.Word, "count", ranking[0].Count)

	p := inv.out
	if p.structured() {
		return p.encode(report)
	}

	p.field(6, "word", report.Word)
	if len(report.Ranking) > 0 {
		rows := make([][]string, len(report.Ranking))
		for i, wc := range report.Ranking {
			rows[i] = []string{fmt.Sprint(i + 1), wc.Word, fmt.Sprint(wc.Count)}
		}
		fmt.Fprintln(p.w)
		p.table([]string{"RANK", "WORD", "COUNT"}, rows)
	}
	return nil
}
