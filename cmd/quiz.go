package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/skills"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a skill assessment in line mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		engine := quiz.NewEngine(e.client, e.store.ResultRepo(), e.logger.With("component", "quiz"))

		s := quiz.NewSession()
		if err := quiz.SelectCategory(s, category); err != nil {
			return err
		}
		loaded := engine.LoadQuestions(ctx, category)
		if loaded.Source == quiz.SourceFallback {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: using built-in questions: %v\n", loaded.FetchErr)
		}
		if err := quiz.Begin(s, loaded.Questions, loaded.Source, time.Now()); err != nil {
			return err
		}

		lines := newLineReader(cmd.InOrStdin(), out)
		for {
			q, ok := quiz.Current(s)
			if !ok {
				break
			}
			n, total := quiz.Progress(s)
			fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", n, total, q.Text)
			for i, opt := range q.Options {
				fmt.Fprintf(out, "  %c) %s\n", 'a'+rune(i), opt)
			}
			i, err := lines.choose("> ", len(q.Options))
			if err != nil {
				return err
			}
			if _, err := quiz.Answer(s, q.Options[i], time.Now()); err != nil {
				return err
			}
		}

		outcome, err := engine.Complete(ctx, s, e.userID)
		if err != nil {
			return err
		}
		printQuizOutcome(cmd, outcome)
		return nil
	},
}

func printQuizOutcome(cmd *cobra.Command, o quiz.Outcome) {
	out := cmd.OutOrStdout()
	r := o.Result
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score:        %d%%\n", r.Score)
	fmt.Fprintf(out, "Correct:      %d / %d\n", r.Correct, r.Total)
	fmt.Fprintf(out, "Time:         %s\n", r.ElapsedText)
	fmt.Fprintf(out, "Proficient:   %s\n", joinOrNone(skills.Labels(r.Classification.Proficient)))
	fmt.Fprintf(out, "To improve:   %s\n", joinOrNone(skills.Labels(r.Classification.NeedsImprovement)))

	warn := cmd.ErrOrStderr()
	if o.StoreErr != nil {
		fmt.Fprintf(warn, "warning: result not stored locally: %v\n", o.StoreErr)
	}
	if o.SubmitErr != nil {
		fmt.Fprintf(warn, "warning: results not submitted: %v\n", o.SubmitErr)
	} else if o.Submitted {
		fmt.Fprintln(out, "Results submitted.")
	}
	if o.UpdateErr != nil {
		fmt.Fprintf(warn, "warning: skills profile not updated: %v\n", o.UpdateErr)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func init() {
	quizCmd.Flags().StringP("category", "c", quiz.CategoryTechnical, "Question category (technical or soft)")
}
