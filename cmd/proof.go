package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/submission"
)

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Track build steps, pre-ship tests and the final submission",
}

var proofShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show steps, tests and links",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := proofService()
		defer e.Close()
		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		st, sub, err := svc.Status(ctx)
		if err != nil {
			e.fatal("loading submission", zap.Error(err))
		}
		checklist, err := svc.Checklist(ctx)
		if err != nil {
			e.fatal("loading checklist", zap.Error(err))
		}

		fmt.Fprintf(w, "Steps %d/%d\n", st.CompletedSteps, st.TotalSteps)
		for _, s := range submission.Steps {
			fmt.Fprintf(w, "  %s %d. %s (%s)\n", mark(sub.Steps[s.ID]), s.ID, s.Name, s.Description)
		}

		fmt.Fprintf(w, "\nTests %d/%d\n", st.PassedTests, st.TotalTests)
		for _, t := range submission.Tests {
			fmt.Fprintf(w, "  %s %s: %s\n", mark(checklist[t.ID]), t.ID, t.Label)
		}

		fmt.Fprintln(w, "\nLinks")
		for _, f := range submission.Fields {
			v, _ := sub.Artifacts.Get(f)
			fmt.Fprintf(w, "  %s %s: %s\n", mark(submission.ValidateURL(v)), f, orDash(v))
		}

		status := "In Progress"
		if st.Shipped {
			status = "Shipped"
		}
		fmt.Fprintf(w, "\nStatus: %s\n", status)
	},
}

var proofStepCmd = &cobra.Command{
	Use:   "step <id>",
	Short: "Mark a build step as done",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := proofService()
		defer e.Close()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			e.fatal("step id must be a number", zap.String("id", args[0]))
		}
		undo, _ := cmd.Flags().GetBool("undo")

		sub, err := svc.SetStep(cmd.Context(), id, !undo)
		if err != nil {
			e.fatal("updating step", zap.Error(err))
		}
		e.logger.Info("step updated", zap.Int("step", id), zap.Bool("done", !undo), zap.Int("completed", sub.CompletedSteps()))
	},
}

var proofTestCmd = &cobra.Command{
	Use:   "test <id>",
	Short: "Mark a pre-ship test as passed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := proofService()
		defer e.Close()

		undo, _ := cmd.Flags().GetBool("undo")
		c, err := svc.SetTest(cmd.Context(), args[0], !undo)
		if err != nil {
			e.fatal("updating test", zap.Error(err), zap.String("id", args[0]))
		}
		e.logger.Info("test updated", zap.String("test", args[0]), zap.Bool("passed", !undo), zap.Int("passed_total", c.Passed()))
	},
}

var proofLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Set the artifact links",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := proofService()
		defer e.Close()
		ctx := cmd.Context()
		flags := cmd.Flags()

		sub, err := svc.Load(ctx)
		if err != nil {
			e.fatal("loading submission", zap.Error(err))
		}

		a := sub.Artifacts
		for flag, field := range map[string]string{
			"lovable":  submission.FieldLovable,
			"github":   submission.FieldGithub,
			"deployed": submission.FieldDeployed,
		} {
			if !flags.Changed(flag) {
				continue
			}
			v, _ := flags.GetString(flag)
			if err := a.Set(field, v); err != nil {
				e.fatal("setting link", zap.Error(err))
			}
		}

		_, err = svc.SetArtifacts(ctx, a)
		var fieldErr *submission.FieldError
		if errors.As(err, &fieldErr) {
			for _, f := range unwrapAll(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), f)
			}
			return
		}
		if err != nil {
			e.fatal("saving links", zap.Error(err))
		}
		e.logger.Info("links saved")
	},
}

var proofCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Print the final submission text",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := proofService()
		defer e.Close()

		text, st, err := svc.Finalize(cmd.Context())
		if err != nil {
			e.fatal("building final submission", zap.Error(err))
		}
		if !st.Shipped {
			e.logger.Warn("not shipped yet",
				zap.Int("steps", st.CompletedSteps), zap.Int("tests", st.PassedTests), zap.Bool("links_valid", st.LinksValid))
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
	},
}

func init() {
	rootCmd.AddCommand(proofCmd)
	proofCmd.AddCommand(proofShowCmd, proofStepCmd, proofTestCmd, proofLinksCmd, proofCopyCmd)

	proofStepCmd.Flags().Bool("undo", false, "mark the step as not done")
	proofTestCmd.Flags().Bool("undo", false, "mark the test as not passed")

	proofLinksCmd.Flags().String("lovable", "", "Lovable project link")
	proofLinksCmd.Flags().String("github", "", "GitHub repository link")
	proofLinksCmd.Flags().String("deployed", "", "deployed application link")
}

func proofService() (*env, *submission.Service) {
	e := setup()
	return e, submission.NewService(e.store, submission.Options{Logger: e.logger})
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func mark(ok bool) string {
	if ok {
		return "[x]"
	}
	return "[ ]"
}
