package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hirekit/internal/store"
)

var serviceNow = time.Date(2026, 4, 10, 8, 30, 0, 0, time.UTC)

func newService(t *testing.T, opts Options) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	if opts.Now == nil {
		opts.Now = func() time.Time { return serviceNow }
	}
	return NewService(mem, opts), mem
}

func TestServiceGenerateAndRescore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t, Options{})

	jobs, err := svc.Generate(ctx, NewGenerator(5), 25)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if jobs.Len() != 25 {
		t.Fatalf("expected 25 listings, got %d", jobs.Len())
	}

	pref := Preference{
		RoleKeywords:    []string{"developer"},
		Locations:       []string{"Bangalore"},
		WorkModes:       []string{"Remote"},
		ExperienceLevel: ExperienceFresher,
		Skills:          []string{"React", "Java"},
		MinMatchScore:   30,
	}
	saved, err := svc.SavePreference(ctx, pref)
	if err != nil {
		t.Fatalf("save preference: %v", err)
	}

	stored, err := svc.Jobs(ctx)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	for _, job := range stored.Items {
		if job.MatchScore != Score(job, saved) {
			t.Fatalf("listing %s not rescored: %d != %d", job.ID, job.MatchScore, Score(job, saved))
		}
		if job.Status != StatusNotApplied {
			t.Fatalf("new listings start as not applied")
		}
	}

	got, err := svc.Preference(ctx)
	if err != nil {
		t.Fatalf("preference: %v", err)
	}
	if got.MinMatchScore != 30 || got.Skills[1] != "Java" {
		t.Fatalf("preference not stored: %+v", got)
	}
}

func TestServiceSavePreferenceValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, mem := newService(t, Options{})

	bad := DefaultPreference()
	bad.ExperienceLevel = "Principal"
	if _, err := svc.SavePreference(ctx, bad); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}

	bad = DefaultPreference()
	bad.MinMatchScore = 101
	if _, err := svc.SavePreference(ctx, bad); err == nil {
		t.Fatalf("expected an error for an out of range score")
	}
	if len(mem.Keys()) != 0 {
		t.Fatalf("nothing should be stored, got %v", mem.Keys())
	}
}

func TestServiceSetStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tick := serviceNow
	svc, _ := newService(t, Options{HistorySize: 2, Now: func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}})

	jobs, err := svc.Generate(ctx, NewGenerator(9), 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	first, second := jobs.Items[0], jobs.Items[1]

	if _, err := svc.SetStatus(ctx, "missing", StatusApplied); !errors.Is(err, ErrUnknownListing) {
		t.Fatalf("expected ErrUnknownListing, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, first.ID, "Ghosted"); err == nil {
		t.Fatalf("expected an error for an unknown status")
	}

	for _, change := range []struct {
		id     string
		status Status
	}{
		{first.ID, StatusApplied},
		{second.ID, StatusApplied},
		{first.ID, StatusSelected},
		{first.ID, StatusNotApplied},
	} {
		entry, err := svc.SetStatus(ctx, change.id, change.status)
		if err != nil {
			t.Fatalf("set status: %v", err)
		}
		if entry.JobID != change.id || entry.Status != change.status || entry.Title == "" {
			t.Fatalf("unexpected entry: %+v", entry)
		}
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected history capped at 2, got %d", len(history))
	}
	if history[0].Status != StatusNotApplied || history[1].Status != StatusSelected {
		t.Fatalf("expected newest first, got %+v", history)
	}
	if !history[0].Date.After(history[1].Date) {
		t.Fatalf("dates out of order")
	}

	stored, err := svc.Jobs(ctx)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	if stored.FindByID(second.ID).Status != StatusApplied || stored.FindByID(first.ID).Status != StatusNotApplied {
		t.Fatalf("statuses not carried onto listings")
	}
}

func TestServiceSavedJobs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t, Options{})

	jobs, err := svc.Generate(ctx, NewGenerator(3), 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id := jobs.Items[2].ID

	if err := svc.SaveJob(ctx, "nope"); !errors.Is(err, ErrUnknownListing) {
		t.Fatalf("expected ErrUnknownListing, got %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := svc.SaveJob(ctx, id); err != nil {
			t.Fatalf("save job: %v", err)
		}
	}

	saved, err := svc.SavedJobs(ctx)
	if err != nil {
		t.Fatalf("saved jobs: %v", err)
	}
	if saved.Len() != 1 || saved.Items[0].ID != id {
		t.Fatalf("expected one bookmark, got %v", ids(saved.Items))
	}

	// Saved listings keep their status after the working set is replaced.
	if _, err := svc.Generate(ctx, NewGenerator(4), 4); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if _, err := svc.SetStatus(ctx, id, StatusInterview); err != nil {
		t.Fatalf("set status on saved listing: %v", err)
	}
	saved, _ = svc.SavedJobs(ctx)
	if saved.Items[0].Status != StatusInterview {
		t.Fatalf("expected status on saved listing, got %s", saved.Items[0].Status)
	}

	if err := svc.RemoveJob(ctx, id); err != nil {
		t.Fatalf("remove job: %v", err)
	}
	saved, _ = svc.SavedJobs(ctx)
	if saved.Len() != 0 {
		t.Fatalf("bookmark not removed")
	}
}

func TestServiceTodayDigest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, mem := newService(t, Options{DigestSize: 3})

	if _, err := svc.Generate(ctx, NewGenerator(21), 30); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.SavePreference(ctx, Preference{RoleKeywords: []string{"developer", "intern"}, ExperienceLevel: ExperienceFresher}); err != nil {
		t.Fatalf("save preference: %v", err)
	}

	digest, created, err := svc.TodayDigest(ctx)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !created || len(digest) != 3 {
		t.Fatalf("expected a fresh digest of 3, got created=%v len=%d", created, len(digest))
	}
	for i := 1; i < len(digest); i++ {
		if digest[i-1].MatchScore < digest[i].MatchScore {
			t.Fatalf("digest not ordered by score")
		}
	}

	if _, ok, err := mem.Load(ctx, "jobTrackerDigest_2026-04-10"); err != nil || !ok {
		t.Fatalf("digest not stored under the day key: ok=%v err=%v", ok, err)
	}

	again, created, err := svc.TodayDigest(ctx)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if created || len(again) != 3 || again[0].ID != digest[0].ID {
		t.Fatalf("expected the stored digest on the second call")
	}
}

func TestServiceDashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t, Options{})

	if _, err := svc.SavePreference(ctx, Preference{RoleKeywords: []string{"developer"}, ExperienceLevel: ExperienceFresher, MinMatchScore: 40}); err != nil {
		t.Fatalf("save preference: %v", err)
	}
	jobs, err := svc.Generate(ctx, NewGenerator(8), 40)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.SetStatus(ctx, jobs.Items[0].ID, StatusApplied); err != nil {
		t.Fatalf("set status: %v", err)
	}

	list, stats, err := svc.Dashboard(ctx, DashboardQuery{OnlyMatches: true, Sort: SortMatch})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	for i, job := range list.Items {
		if job.MatchScore < 40 {
			t.Fatalf("listing below threshold: %+v", job)
		}
		if i > 0 && list.Items[i-1].MatchScore < job.MatchScore {
			t.Fatalf("dashboard not sorted by score")
		}
	}
	if stats.TotalApplied != 1 {
		t.Fatalf("stats should cover the whole working set, got %+v", stats)
	}

	applied, _, err := svc.Dashboard(ctx, DashboardQuery{Status: "Applied"})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if applied.Len() != 1 || applied.Items[0].ID != jobs.Items[0].ID {
		t.Fatalf("expected the applied listing only, got %v", ids(applied.Items))
	}

	if _, _, err := svc.Dashboard(ctx, DashboardQuery{Status: "Maybe"}); err == nil {
		t.Fatalf("expected an error for an unknown status")
	}
}

func TestServiceDashboardLogsFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	svc, _ := newService(t, Options{Logger: zap.New(core)})

	if _, _, err := svc.Dashboard(ctx, DashboardQuery{Status: "Applied", Search: "go"}); err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	entries := logs.FilterMessage("dashboard filters").All()
	if len(entries) != 1 {
		t.Fatalf("expected one filter description, got %d", len(entries))
	}
	got := fmt.Sprint(entries[0].ContextMap()["filters"])
	for _, want := range []string{"min_score: off", "status(status=Applied)", "search(query=go)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("filters %q miss %q", got, want)
		}
	}
}

func TestServiceWarnsOnCorruption(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	svc, mem := newService(t, Options{Logger: zap.New(core)})

	if err := mem.Save(ctx, KeyPreferences, []byte(`{"experienceLevel":"Guru","skills":["Go"]}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	pref, err := svc.Preference(ctx)
	if err != nil {
		t.Fatalf("preference: %v", err)
	}
	if pref.ExperienceLevel != ExperienceFresher || pref.Skills[0] != "Go" {
		t.Fatalf("unexpected recovered preference: %+v", pref)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	ctxMap := entries[0].ContextMap()
	if ctxMap["store_key"] != KeyPreferences || ctxMap["app"] != "tracker" {
		t.Fatalf("unexpected fields: %v", ctxMap)
	}
}
