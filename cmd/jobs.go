package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/tracker"
)

const (
	PromptBack = "back"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Track job listings, match scores and application status",
}

var jobsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Replace the working set with freshly generated demo listings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := trackerService()
		defer e.Close()

		count, _ := cmd.Flags().GetInt("count")
		seed := e.config.Tracker.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetUint64("seed")
		}

		jobs, err := svc.Generate(cmd.Context(), tracker.NewGenerator(seed), count)
		if err != nil {
			e.fatal("generating listings", zap.Error(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d listings\n", jobs.Len())
	},
}

var jobsPrefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change the match preferences",
	Long:  "Show the match preferences. Any flag given replaces that field and rescores every listing.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := trackerService()
		defer e.Close()
		ctx := cmd.Context()

		pref, err := svc.Preference(ctx)
		if err != nil {
			e.fatal("loading preferences", zap.Error(err))
		}

		flags := cmd.Flags()
		changed := false
		for name, target := range map[string]*[]string{
			"role":     &pref.RoleKeywords,
			"location": &pref.Locations,
			"mode":     &pref.WorkModes,
			"skill":    &pref.Skills,
		} {
			if flags.Changed(name) {
				*target, _ = flags.GetStringSlice(name)
				changed = true
			}
		}
		if flags.Changed("min-score") {
			pref.MinMatchScore, _ = flags.GetInt("min-score")
			changed = true
		}
		if flags.Changed("experience") {
			lvl, _ := flags.GetString("experience")
			pref.ExperienceLevel = tracker.ExperienceLevel(lvl)
			changed = true
		}

		if changed {
			pref, err = svc.SavePreference(ctx, pref)
			if err != nil {
				e.fatal("saving preferences", zap.Error(err))
			}
		}

		printJSON(cmd.OutOrStdout(), pref)
	},
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the working set with filters, sorting and stats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := trackerService()
		defer e.Close()
		ctx := cmd.Context()
		flags := cmd.Flags()

		if saved, _ := flags.GetBool("saved"); saved {
			jobs, err := svc.SavedJobs(ctx)
			if err != nil {
				e.fatal("loading saved listings", zap.Error(err))
			}
			printListings(cmd.OutOrStdout(), jobs.Items)
			return
		}

		rawSort, _ := flags.GetString("sort")
		order, err := tracker.ParseSortOrder(rawSort)
		if err != nil {
			e.fatal("parsing sort order", zap.Error(err))
		}
		q := tracker.DashboardQuery{Sort: order}
		q.OnlyMatches, _ = flags.GetBool("only-matches")
		q.Status, _ = flags.GetString("status")
		q.Search, _ = flags.GetString("search")

		jobs, stats, err := svc.Dashboard(ctx, q)
		if err != nil {
			e.fatal("building the dashboard", zap.Error(err))
		}

		if report, _ := flags.GetBool("report"); report {
			pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
			e.logger.Info(string(pretty), zap.Int("listings count", jobs.Len()))
		}

		printListings(cmd.OutOrStdout(), jobs.Items)
		fmt.Fprintf(cmd.OutOrStdout(), "\napplied: %d  interviews: %d  offers: %d  response rate: %d%%\n",
			stats.TotalApplied, stats.Interviews, stats.Offers, stats.ResponseRate)
	},
}

var jobsDigestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Show today's digest of the best matches",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := trackerService()
		defer e.Close()

		digest, created, err := svc.TodayDigest(cmd.Context())
		if err != nil {
			e.fatal("building the digest", zap.Error(err))
		}
		if len(digest) == 0 {
			e.logger.Info("no matching listings today", zap.String("hint", "set preferences with 'jobs prefs'"))
			return
		}
		e.logger.Debug("digest ready", zap.Bool("created", created))
		printListings(cmd.OutOrStdout(), digest)
	},
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status [listing-id] [status]",
	Short: "Change the application status of a listing",
	Long:  "Change the application status of a listing. Without arguments the listing and the status are picked interactively.",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := trackerService()
		defer e.Close()
		ctx := cmd.Context()

		if len(args) == 2 {
			setStatus(ctx, e, svc, args[0], args[1])
			return
		}

		jobs, err := svc.Jobs(ctx)
		if err != nil {
			e.fatal("loading listings", zap.Error(err))
		}
		if err := pickStatus(ctx, e, svc, jobs, args); err != nil {
			e.fatal("exiting", zap.Error(err))
		}
	},
}

var jobsSaveCmd = &cobra.Command{
	Use:   "save <listing-id>",
	Short: "Bookmark a listing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := trackerService()
		defer e.Close()

		if err := svc.SaveJob(cmd.Context(), args[0]); err != nil {
			e.fatal("saving listing", zap.Error(err))
		}
		e.logger.Info("listing saved", zap.String("job_id", args[0]))
	},
}

var jobsUnsaveCmd = &cobra.Command{
	Use:   "unsave <listing-id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, svc := trackerService()
		defer e.Close()

		if err := svc.RemoveJob(cmd.Context(), args[0]); err != nil {
			e.fatal("removing listing", zap.Error(err))
		}
		e.logger.Info("listing removed", zap.String("job_id", args[0]))
	},
}

var jobsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the latest status changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		e, svc := trackerService()
		defer e.Close()

		history, err := svc.History(cmd.Context())
		if err != nil {
			e.fatal("loading status history", zap.Error(err))
		}
		for _, h := range history {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %s / %s (%s)\n",
				h.Date.Local().Format("2006-01-02 15:04"), h.Status, h.Title, h.Company, h.JobID)
		}
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsGenerateCmd, jobsPrefsCmd, jobsListCmd, jobsDigestCmd, jobsStatusCmd, jobsSaveCmd, jobsUnsaveCmd, jobsHistoryCmd)

	jobsGenerateCmd.Flags().IntP("count", "n", tracker.DefaultListingCount, "number of listings to generate")
	jobsGenerateCmd.Flags().Uint64("seed", 1, "generator seed (default from tracker.seed)")

	jobsPrefsCmd.Flags().StringSlice("role", nil, "role keywords matched against titles and descriptions")
	jobsPrefsCmd.Flags().StringSlice("location", nil, "preferred locations")
	jobsPrefsCmd.Flags().StringSlice("mode", nil, "work modes: Remote, Hybrid, On-site")
	jobsPrefsCmd.Flags().String("experience", string(tracker.ExperienceFresher), "experience level: Fresher, 0-1, 1-3, 3-5, 5+")
	jobsPrefsCmd.Flags().StringSlice("skill", nil, "skills you have")
	jobsPrefsCmd.Flags().Int("min-score", tracker.DefaultMinMatchScore, "threshold of 'show only matches'")

	jobsListCmd.Flags().Bool("only-matches", false, "hide listings below the minimum match score")
	jobsListCmd.Flags().String("status", tracker.StatusAll, "show only listings in this status")
	jobsListCmd.Flags().StringP("search", "s", "", "search titles, companies and skills")
	jobsListCmd.Flags().String("sort", string(tracker.SortMatch), "sort order: match, latest or salary")
	jobsListCmd.Flags().Bool("saved", false, "list bookmarked listings instead")
	jobsListCmd.Flags().Bool("report", false, "log a report grouped by company")
}

func trackerService() (*env, *tracker.Service) {
	e := setup()
	return e, tracker.NewService(e.store, tracker.Options{
		Logger:      e.logger,
		HistorySize: viper.GetInt("tracker.status-history-size"),
		DigestSize:  viper.GetInt("tracker.digest-size"),
	})
}

func setStatus(ctx context.Context, e *env, svc *tracker.Service, id, raw string) {
	status, err := tracker.ParseStatus(raw)
	if err != nil {
		e.fatal("parsing status", zap.Error(err), zap.Any("known statuses", tracker.Statuses))
	}
	if _, err := svc.SetStatus(ctx, id, status); err != nil {
		e.fatal("updating status", zap.Error(err))
	}
}

func pickStatus(ctx context.Context, e *env, svc *tracker.Service, jobs *tracker.Listings, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	} else {
		items := make([]string, 0, jobs.Len()+1)
		for _, j := range jobs.Items {
			items = append(items, fmt.Sprintf("%s %s / %s / %s", j.ID, j.Title, j.Company, j.Status))
		}
		listingPrompt := promptui.Select{
			Label: "Choose a listing and press ENTER",
			Items: append(items, PromptBack),
			Size:  15,
		}
		_, selected, err := listingPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}
		id = strings.Split(selected, " ")[0]
	}

	statusPrompt := promptui.Select{
		Label: "New status",
		Items: tracker.Statuses,
	}
	_, selected, err := statusPrompt.Run()
	if err != nil {
		return err
	}

	setStatus(ctx, e, svc, id, selected)
	return nil
}

func printListings(w io.Writer, items []*tracker.Listing) {
	for _, j := range items {
		marker := " "
		if j.IsNew {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3d  %-14s %-30s %-16s %-22s %-8s %-12s %s\n",
			marker, j.MatchScore, j.ID, j.Title, j.Company, j.Location, j.WorkMode, j.Status, j.Salary)
	}
}

func printJSON(w io.Writer, v any) {
	pretty, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(pretty))
}
