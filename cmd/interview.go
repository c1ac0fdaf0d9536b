package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/interview"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a virtual interview in line mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		area, _ := cmd.Flags().GetString("area")
		save, _ := cmd.Flags().GetBool("save")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		warn := cmd.ErrOrStderr()
		lines := newLineReader(cmd.InOrStdin(), out)
		engine := interview.NewEngine(e.client, e.store.ResultRepo(), e.logger.With("component", "interview"))

		if role == "" {
			if role, err = lines.ask("Job role: "); err != nil {
				return err
			}
		}
		if area == "" {
			if area, err = lines.ask("Skill area: "); err != nil {
				return err
			}
		}

		s := interview.NewSession()
		start, err := interview.BeginStart(s, role, area)
		if err != nil {
			return err
		}
		resp, err := engine.Start(ctx, start)
		if err != nil {
			return fmt.Errorf("start interview: %w", err)
		}
		if err := interview.ApplyStart(s, start, resp); err != nil {
			return err
		}

		fmt.Fprintf(out, "\n%s: %s\n", interview.InterviewerName(s.JobRole), s.Greeting)
		for s.Phase == interview.PhaseInProgress {
			label := fmt.Sprintf("Question %d", s.QuestionNumber)
			if s.Final {
				label += " (final)"
			}
			fmt.Fprintf(out, "\n%s: %s\n", label, s.CurrentQuestion)

			answer, err := lines.ask("> ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return fmt.Errorf("interview abandoned")
				}
				return err
			}
			if err := interviewTurn(cmd, engine, s, answer); err != nil {
				var ve interview.ValidationError
				if errors.As(err, &ve) {
					fmt.Fprintln(out, ve.Error())
					continue
				}
				fmt.Fprintf(warn, "warning: %v (answer again to retry)\n", err)
			}
		}

		printInterviewResult(cmd, s)
		if err := engine.Record(ctx, s, time.Now()); err != nil {
			fmt.Fprintf(warn, "warning: result not stored locally: %v\n", err)
		}

		if !save {
			return nil
		}
		req, err := interview.BeginSave(s)
		if err != nil {
			return err
		}
		if err := engine.Save(ctx, req); err != nil {
			interview.Fail(s, req)
			return err
		}
		if err := interview.ApplySave(s, req); err != nil {
			return err
		}
		fmt.Fprintln(out, "Results saved to your profile.")
		return engine.Record(ctx, s, time.Now())
	},
}

// interviewTurn submits answer as a regular or final turn depending on the
// session and applies the reply. On a failed call the session is unchanged.
func interviewTurn(cmd *cobra.Command, engine *interview.Engine, s *interview.Session, answer string) error {
	ctx := cmd.Context()
	if s.Final {
		req, err := interview.BeginCompletion(s, answer)
		if err != nil {
			return err
		}
		resp, err := engine.Complete(ctx, req)
		if err != nil {
			interview.Fail(s, req)
			return err
		}
		return interview.ApplyCompletion(s, req, resp)
	}

	req, err := interview.BeginTurn(s, answer)
	if err != nil {
		return err
	}
	resp, err := engine.Submit(ctx, req)
	if err != nil {
		interview.Fail(s, req)
		return err
	}
	return interview.ApplyTurn(s, req, resp)
}

func printInterviewResult(cmd *cobra.Command, s *interview.Session) {
	out := cmd.OutOrStdout()
	a, f := s.Analysis, s.Feedback
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("\u2500", 60))
	fmt.Fprintf(out, "Technical:      %s\n", interview.FormatScore(a.TechnicalScore))
	fmt.Fprintf(out, "Communication:  %s\n", interview.FormatScore(a.CommunicationScore))
	printList(cmd, "Strengths", a.Strengths)
	printList(cmd, "Areas for improvement", f.AreasForImprovement)
	printList(cmd, "Next steps", f.NextSteps)
	fmt.Fprintf(out, "\n%s\n", f.OverallFeedback)
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(out, "  • %s\n", it)
	}
}

func init() {
	interviewCmd.Flags().StringP("role", "r", "", "Job role, e.g. \"Backend Developer\"")
	interviewCmd.Flags().StringP("area", "a", "", "Skill area, e.g. \"Databases\"")
	interviewCmd.Flags().Bool("save", false, "Save the results to your profile when finished")
}
