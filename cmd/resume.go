package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/input"
	"github.com/spigell/hirekit/internal/resume"
	"github.com/spigell/hirekit/internal/resumes"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Build and score the resume",
}

var resumeScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the ATS score of the stored resume",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := resumeService()
		defer e.Close()

		_, res, err := svc.Score(cmd.Context())
		if err != nil {
			e.fatal("scoring resume", zap.Error(err))
		}
		all, _ := cmd.Flags().GetBool("all")
		printScore(cmd.OutOrStdout(), res, all)
	},
}

var resumeBulletsCmd = &cobra.Command{
	Use:   "bullets",
	Short: "Check description bullets for action verbs and numbers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := resumeService()
		defer e.Close()
		flags := cmd.Flags()

		text, _ := flags.GetString("text")
		file, _ := flags.GetString("file")
		body, err := input.Load(input.Source{Name: "bullets", Value: text, File: file})
		if err != nil {
			e.fatal("reading bullets", zap.Error(err))
		}

		hint, found := svc.Scorer().BulletGuidance(body)
		if !found {
			fmt.Fprintln(cmd.OutOrStdout(), "bullets look good")
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), hint)
	},
}

var resumeSkillCmd = &cobra.Command{
	Use:   "skill <add|remove|suggest> [category] [skill]",
	Short: "Edit the skill groups",
	Args:  cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := resumeService()
		defer e.Close()

		_, res, err := svc.Update(cmd.Context(), func(d *resume.Document) error {
			action := args[0]
			if action == "suggest" {
				e.logger.Info("suggested skills merged", zap.Int("added", d.SuggestSkills()))
				return nil
			}
			if len(args) != 3 {
				return fmt.Errorf("%s needs a category and a skill", action)
			}
			category, err := resume.ParseSkillCategory(args[1])
			if err != nil {
				return err
			}
			switch action {
			case "add":
				if !d.AddSkill(category, args[2]) {
					return errUnchanged
				}
			case "remove":
				if !d.RemoveSkill(category, args[2]) {
					return errUnchanged
				}
			default:
				return fmt.Errorf("unknown action %q", action)
			}
			return nil
		})
		if errors.Is(err, errUnchanged) {
			e.logger.Info("resume unchanged")
			return
		}
		if err != nil {
			e.fatal("editing skills", zap.Error(err))
		}
		printScore(cmd.OutOrStdout(), res, false)
	},
}

var resumeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite the stored resume in the current layout",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := resumeService()
		defer e.Close()

		_, res, err := svc.Migrate(cmd.Context())
		if err != nil {
			e.fatal("migrating resume", zap.Error(err))
		}
		e.logger.Info("resume migrated", zap.Int("score", res.Score))
	},
}

var resumeSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Replace the stored resume with sample data",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := resumeService()
		defer e.Close()

		res, err := svc.Save(cmd.Context(), resume.Sample())
		if err != nil {
			e.fatal("saving sample resume", zap.Error(err))
		}
		printScore(cmd.OutOrStdout(), res, false)
	},
}

var resumeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the resume as plain text",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := resumeService()
		defer e.Close()

		doc, err := svc.Load(cmd.Context())
		if err != nil {
			e.fatal("loading resume", zap.Error(err))
		}
		if asJSON, _ := cmd.Flags().GetBool("raw"); asJSON {
			printJSON(cmd.OutOrStdout(), doc)
			return
		}
		if err := resume.WriteText(cmd.OutOrStdout(), doc); err != nil {
			e.fatal("writing resume", zap.Error(err))
		}
	},
}

var errUnchanged = errors.New("unchanged")

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.AddCommand(resumeScoreCmd, resumeBulletsCmd, resumeSkillCmd, resumeMigrateCmd, resumeSampleCmd, resumeExportCmd)

	resumeScoreCmd.Flags().Bool("all", false, "show every suggestion, not only the top three")

	resumeBulletsCmd.Flags().String("text", "", "bullets to check, one per line")
	resumeBulletsCmd.Flags().StringP("file", "f", "", "file with bullets, '-' reads stdin")

	resumeExportCmd.Flags().Bool("raw", false, "print the stored JSON instead of text")
}

func resumeService() (*env, *resumes.Service) {
	e := setup()
	return e, resumes.NewService(e.store, resumes.Options{Logger: e.logger, Catalog: e.catalog})
}

func printScore(w io.Writer, res resume.Result, all bool) {
	fmt.Fprintf(w, "ATS score: %d/100 (%s)\n", res.Score, res.Label())

	suggestions := res.Top(3)
	if all {
		suggestions = res.Suggestions
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}
