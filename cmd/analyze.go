package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/input"
	"github.com/spigell/hirekit/internal/placement"
	"github.com/spigell/hirekit/internal/readiness"
	"github.com/spigell/hirekit/internal/records"
	"github.com/spigell/hirekit/internal/rounds"
)

const PromptDone = "done"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse a job description and store the result",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := placementService()
		defer e.Close()
		flags := cmd.Flags()

		in := placement.Input{}
		in.Company, _ = flags.GetString("company")
		in.Role, _ = flags.GetString("role")
		in.HTML, _ = flags.GetBool("html")

		jd, _ := flags.GetString("jd")
		jdFile, _ := flags.GetString("jd-file")
		text, err := input.Load(input.Source{Name: "job description", Value: jd, File: jdFile})
		if err != nil {
			e.fatal("reading the job description", zap.Error(err))
		}
		in.JDText = text

		res, err := svc.Analyze(cmd.Context(), in)
		if errors.Is(err, placement.ErrMissingJobDescription) {
			e.fatal("nothing to analyze", zap.Error(err), zap.String("hint", "pass --jd, --jd-file or --jd-file - to read stdin"))
		}
		if err != nil {
			e.fatal("analyzing the job description", zap.Error(err))
		}
		for _, w := range res.Warnings {
			e.logger.Warn(w)
		}

		printAnalysis(cmd.OutOrStdout(), res.Record)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := placementService()
		defer e.Close()

		h, err := svc.List(cmd.Context())
		if err != nil {
			e.fatal("loading history", zap.Error(err))
		}
		if h.Corrupted {
			e.logger.Warn(placement.CorruptedNotice)
		}
		if len(h.Entries) == 0 {
			e.logger.Info("no analyses yet", zap.String("hint", "run 'hirekit analyze'"))
			return
		}
		for _, rec := range h.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %3d/100  %s / %s\n",
				rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.FinalScore, orDash(rec.Company), orDash(rec.Role))
		}
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show a stored analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := placementService()
		defer e.Close()

		rec, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			e.fatal("loading analysis", zap.Error(err))
		}
		printAnalysis(cmd.OutOrStdout(), rec)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <analysis-id>",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := placementService()
		defer e.Close()

		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			e.fatal("deleting analysis", zap.Error(err))
		}
		e.logger.Info("analysis deleted", zap.String("analysis_id", args[0]))
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored analysis",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := placementService()
		defer e.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirm := promptui.Prompt{Label: "Delete the whole history", IsConfirm: true}
			if _, err := confirm.Run(); err != nil {
				e.logger.Info("exiting", zap.String("reason", "not confirmed"))
				return
			}
		}
		if err := svc.Clear(cmd.Context()); err != nil {
			e.fatal("clearing history", zap.Error(err))
		}
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <analysis-id>",
	Short: "Write the plain-text report of an analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := placementService()
		defer e.Close()
		flags := cmd.Flags()

		rec, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			e.fatal("loading analysis", zap.Error(err))
		}

		part, _ := flags.GetString("part")
		switch part {
		case "plan":
			fmt.Fprint(cmd.OutOrStdout(), placement.FormatPlan(rec))
			return
		case "checklist":
			fmt.Fprint(cmd.OutOrStdout(), placement.FormatChecklist(rec))
			return
		case "questions":
			fmt.Fprint(cmd.OutOrStdout(), placement.FormatQuestions(rec))
			return
		case "", "report":
		default:
			e.fatal("unknown export part", zap.String("part", part), zap.Strings("known", []string{"report", "plan", "checklist", "questions"}))
		}

		dir, _ := flags.GetString("dir")
		if dir == "" {
			if err := placement.WriteReport(cmd.OutOrStdout(), rec); err != nil {
				e.fatal("writing report", zap.Error(err))
			}
			return
		}

		filename := filepath.Join(dir, placement.ReportFileName(rec, time.Now()))
		f, err := os.Create(filename)
		if err != nil {
			e.fatal("creating report file", zap.Error(err))
		}
		defer f.Close()
		if err := placement.WriteReport(f, rec); err != nil {
			e.fatal("writing report", zap.Error(err))
		}
		e.logger.Info("report written", zap.String("filename", filename))
	},
}

var confidenceCmd = &cobra.Command{
	Use:   "confidence <analysis-id>",
	Short: "Rate your confidence in the skills of an analysis",
	Long: "Each toggle cycles a skill through default, know and practice and updates the final score. " +
		"Without --skill the skills are picked interactively until 'done'.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := placementService()
		defer e.Close()
		ctx := cmd.Context()
		id := args[0]

		if skill, _ := cmd.Flags().GetString("skill"); skill != "" {
			rec, next, err := svc.ToggleConfidence(ctx, id, skill)
			if err != nil {
				e.fatal("toggling confidence", zap.Error(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s  score %d/100\n", skill, next.Label(), rec.FinalScore)
			return
		}

		if err := confidenceLoop(ctx, cmd.OutOrStdout(), svc, id); err != nil {
			e.fatal("exiting", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd, historyCmd, confidenceCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd, historyExportCmd)

	analyzeCmd.Flags().String("company", "", "company name (optional)")
	analyzeCmd.Flags().String("role", "", "role name (optional)")
	analyzeCmd.Flags().String("jd", "", "job description text")
	analyzeCmd.Flags().StringP("jd-file", "f", "", "file with the job description, '-' reads stdin")
	analyzeCmd.Flags().Bool("html", false, "the job description is HTML")

	historyClearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	historyExportCmd.Flags().String("part", "report", "what to export: report, plan, checklist or questions")
	historyExportCmd.Flags().String("dir", "", "write the report into this directory instead of stdout")

	confidenceCmd.Flags().String("skill", "", "toggle a single skill and exit")
}

func placementService() (*env, *placement.Service) {
	e := setup()
	return e, placement.NewService(e.store, placement.Options{Logger: e.logger, Catalog: e.catalog})
}

func confidenceLoop(ctx context.Context, w io.Writer, svc *placement.Service, id string) error {
	rec, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}

	for {
		items := append(rec.ExtractedSkills.All(), PromptDone)

		skillPrompt := promptui.Select{
			Label: fmt.Sprintf("Score %d/100, pick a skill to toggle", rec.FinalScore),
			Items: items,
			Size:  15,
			Templates: &promptui.SelectTemplates{
				Active:   fmt.Sprintf("%s {{ . | cyan }}{{ label . }}", promptui.IconSelect),
				Inactive: "  {{ . }}{{ label . }}",
				Selected: "{{ . }}",
				FuncMap:  confidenceFuncs(rec.SkillConfidenceMap),
			},
		}

		_, selected, err := skillPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptDone {
			fmt.Fprintf(w, "final score %d/100\n", rec.FinalScore)
			printWeakSkills(w, rec.SkillConfidenceMap)
			return nil
		}

		if rec, _, err = svc.ToggleConfidence(ctx, id, selected); err != nil {
			return err
		}
	}
}

func confidenceFuncs(m readiness.ConfidenceMap) map[string]any {
	funcs := make(map[string]any, len(promptui.FuncMap)+1)
	for k, v := range promptui.FuncMap {
		funcs[k] = v
	}
	funcs["label"] = func(skill string) string {
		if skill == PromptDone {
			return ""
		}
		return "  " + m.Of(skill).Label()
	}
	return funcs
}

func printWeakSkills(w io.Writer, m readiness.ConfidenceMap) {
	weak := readiness.WeakSkills(m)
	if len(weak) == 0 {
		return
	}
	fmt.Fprintf(w, "Action next: start Day 1 plan now. Focus on: %s\n", strings.Join(weak, ", "))
}

func printAnalysis(w io.Writer, rec records.AnalysisRecord) {
	fmt.Fprintf(w, "%s\n", rec.ID)
	fmt.Fprintf(w, "Company: %s  Role: %s\n", orDash(rec.Company), orDash(rec.Role))
	fmt.Fprintf(w, "Readiness: %d/100 (base %d)\n\n", rec.FinalScore, rec.BaseScore)

	fmt.Fprintln(w, "Skills")
	for _, category := range rec.ExtractedSkills.Categories() {
		skills := rec.ExtractedSkills.Get(category)
		if len(skills) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-10s", category+":")
		for _, s := range skills {
			fmt.Fprintf(w, " %s [%s]", s, rec.SkillConfidenceMap.Of(s))
		}
		fmt.Fprintln(w)
	}

	if ci := rec.CompanyIntel; ci != nil {
		fmt.Fprintf(w, "\nCompany intel (%s)\n", ci.Note)
		fmt.Fprintf(w, "  %s, %s (%s), %s\n", ci.Name, ci.Size, ci.SizeCategory, ci.Industry)
		fmt.Fprintf(w, "  Hiring focus: %s\n", ci.HiringFocus)
	}

	if len(rec.RoundMapping) > 0 {
		summary := rounds.Summarize(rec.RoundMapping)
		fmt.Fprintf(w, "\nInterview rounds (%d, about %d minutes)\n", summary.TotalRounds, summary.EstimatedMinutes)
		for _, r := range rec.RoundMapping {
			fmt.Fprintf(w, "  %d. %s (%s)\n     %s\n", r.Number, r.Title, r.Duration, r.WhyMatters)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, placement.FormatChecklist(rec))
	fmt.Fprint(w, placement.FormatPlan(rec))
	fmt.Fprint(w, placement.FormatQuestions(rec))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
