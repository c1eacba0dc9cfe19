package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func reactListing() *Listing {
	return &Listing{
		ID:            "react-1",
		Title:         "React Developer",
		Company:       "Swiggy",
		Location:      "Bangalore, Karnataka",
		WorkMode:      WorkModeHybrid,
		Experience:    Experience1To3,
		Description:   "Build dashboards.",
		Skills:        []string{"React", "Node.js"},
		PostedDaysAgo: 1,
		Source:        SourceLinkedIn,
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		job    *Listing
		pref   Preference
		expect int
	}{
		{
			name:   "title skill fresh linkedin",
			job:    reactListing(),
			pref:   Preference{RoleKeywords: []string{"react"}, Skills: []string{"React"}},
			expect: 50,
		},
		{
			name: "every row",
			job:  &Listing{Title: "Java Developer", Description: "java services", Location: "Pune", WorkMode: WorkModeRemote, Experience: ExperienceFresher, Skills: []string{"java"}, Source: SourceLinkedIn},
			pref: Preference{
				RoleKeywords:    []string{"JAVA"},
				Locations:       []string{"pune"},
				WorkModes:       []string{"remote"},
				ExperienceLevel: ExperienceFresher,
				Skills:          []string{"Java"},
			},
			expect: 100,
		},
		{
			name:   "stale naukri listing with empty preference",
			job:    &Listing{Title: "QA", PostedDaysAgo: 3, Source: SourceNaukri},
			pref:   DefaultPreference(),
			expect: 0,
		},
		{
			name:   "work mode must be exact",
			job:    &Listing{WorkMode: WorkModeOnSite, PostedDaysAgo: 9},
			pref:   Preference{WorkModes: []string{"site"}, ExperienceLevel: ExperienceFresher},
			expect: 0,
		},
		{
			name:   "blank skills never overlap",
			job:    &Listing{Skills: []string{" "}, PostedDaysAgo: 9},
			pref:   Preference{Skills: []string{" "}, ExperienceLevel: ExperienceFresher},
			expect: 0,
		},
		{
			name:   "nil listing",
			job:    nil,
			pref:   DefaultPreference(),
			expect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			first := Score(tt.job, tt.pref)
			if first != tt.expect {
				t.Fatalf("Score() = %d, want %d", first, tt.expect)
			}
			if again := Score(tt.job, tt.pref); again != first {
				t.Fatalf("Score() is not deterministic: %d then %d", first, again)
			}
		})
	}
}

func TestScoreStaysInRange(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(11)
	jobs, err := gen.Generate(context.Background(), 200)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	prefs := []Preference{
		DefaultPreference(),
		{RoleKeywords: []string{"developer", "intern", "engineer"}, Locations: []string{"a", "e"}, WorkModes: []string{"remote", "hybrid", "on-site"}, ExperienceLevel: ExperienceFresher, Skills: mockSkills},
	}
	for _, pref := range prefs {
		for _, job := range jobs.Items {
			if s := Score(job, pref); s < 0 || s > MaxScore {
				t.Fatalf("score %d out of range for %s", s, job.ID)
			}
		}
	}
}

func scoredListings() *Listings {
	return NewListings(
		&Listing{ID: "a", Title: "Go Developer", Company: "Zoho", MatchScore: 80, PostedDaysAgo: 4, Salary: "₹8 - 15 LPA", Status: StatusApplied, Skills: []string{"Go"}},
		&Listing{ID: "b", Title: "QA Intern", Company: "TCS", MatchScore: 20, PostedDaysAgo: 0, Salary: "₹20k/month", Status: StatusNotApplied, Skills: []string{"Selenium"}},
		&Listing{ID: "c", Title: "React Developer", Company: "Swiggy", MatchScore: 80, PostedDaysAgo: 1, Salary: "₹6 - 9 LPA", Status: StatusInterview, Skills: []string{"React"}},
		&Listing{ID: "d", Title: "Data Analyst", Company: "CRED", MatchScore: 0, PostedDaysAgo: 2, Salary: "₹3 - 7 LPA", Status: StatusRejected, Skills: []string{"SQL"}},
		&Listing{ID: "e", Title: "DevOps Engineer", Company: "Ola", MatchScore: 45, PostedDaysAgo: 7, Salary: "₹12 - 20 LPA", Status: StatusSelected, Skills: []string{"Docker"}},
	)
}

func ids(l []*Listing) []string {
	out := make([]string, 0, len(l))
	for _, item := range l {
		out = append(out, item.ID)
	}
	return out
}

func TestRunFilters(t *testing.T) {
	t.Parallel()

	pref := DefaultPreference()

	tests := []struct {
		name        string
		onlyMatches bool
		status      string
		query       string
		expect      []string
	}{
		{name: "everything", expect: []string{"a", "b", "c", "d", "e"}},
		{name: "only matches", onlyMatches: true, expect: []string{"a", "c", "e"}},
		{name: "status", status: "interview", expect: []string{"c"}},
		{name: "status all", status: StatusAll, expect: []string{"a", "b", "c", "d", "e"}},
		{name: "search title", query: "developer", expect: []string{"a", "c"}},
		{name: "search company", query: "swig", expect: []string{"c"}},
		{name: "search skill", query: "docker", expect: []string{"e"}},
		{name: "combined", onlyMatches: true, status: "Applied", query: "go", expect: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := scoredListings()
			got, err := RunFilters(context.Background(), nil, DashboardFilters(pref, tt.onlyMatches, tt.status, tt.query), l)
			if err != nil {
				t.Fatalf("run filters: %v", err)
			}
			if diff := cmp.Diff(tt.expect, ids(got.Items)); diff != "" {
				t.Fatalf("filtered ids mismatch (-want +got):\n%s", diff)
			}
			if l.Len() != 5 {
				t.Fatalf("input working set must not change, has %d", l.Len())
			}
		})
	}
}

func TestRunFiltersLogsSteps(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	steps := DashboardFilters(Preference{MinMatchScore: 40}, true, "", "developer")

	if _, err := RunFilters(context.Background(), zap.New(core), steps, scoredListings()); err != nil {
		t.Fatalf("run filters: %v", err)
	}

	entries := logs.FilterMessage("filter step").All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 step logs, got %d", len(entries))
	}

	want := []map[string]any{
		{"name": "min_score", "initial": int64(5), "dropped": int64(2), "left": int64(3)},
		{"name": "status", "initial": int64(3), "dropped": int64(0), "left": int64(3)},
		{"name": "search", "initial": int64(3), "dropped": int64(1), "left": int64(2)},
	}
	for i, entry := range entries {
		ctx := entry.ContextMap()
		for k, v := range want[i] {
			if ctx[k] != v {
				t.Fatalf("step %d: %s = %v, want %v", i, k, ctx[k], v)
			}
		}
	}
}

func TestRunFiltersValidation(t *testing.T) {
	t.Parallel()

	_, err := RunFilters(context.Background(), nil, DashboardFilters(DefaultPreference(), false, "Ghosted", ""), scoredListings())
	if err == nil {
		t.Fatalf("expected an error for an unknown status")
	}

	_, err = RunFilters(context.Background(), nil, []Filter{NewMinScore(140, true)}, scoredListings())
	if err == nil {
		t.Fatalf("expected an error for an out of range minimum")
	}

	steps := []Filter{NewMinScore(140, false)}
	if _, err := RunFilters(context.Background(), nil, steps, scoredListings()); err != nil {
		t.Fatalf("disabled steps are not validated: %v", err)
	}
}

func TestRunFiltersCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunFilters(ctx, nil, DashboardFilters(DefaultPreference(), false, "", ""), scoredListings()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	statuses := Describe(DashboardFilters(Preference{MinMatchScore: 55}, false, "", "react"))
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].Enabled || statuses[0].Reason == "" || statuses[0].Details["min_score"] != "55" {
		t.Fatalf("unexpected min score status: %+v", statuses[0])
	}
	if statuses[1].Details["status"] != StatusAll {
		t.Fatalf("unexpected status filter: %+v", statuses[1])
	}
	if statuses[2].Details["query"] != "react" {
		t.Fatalf("unexpected search filter: %+v", statuses[2])
	}

	var rendered []string
	for _, st := range statuses {
		rendered = append(rendered, st.String())
	}
	want := []string{"min_score: off (show only matches is off)", "status(status=All)", "search(query=react)"}
	if diff := cmp.Diff(want, rendered); diff != "" {
		t.Fatalf("rendered statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		order  SortOrder
		expect []string
	}{
		{order: SortMatch, expect: []string{"a", "c", "e", "b", "d"}},
		{order: SortLatest, expect: []string{"b", "c", "d", "a", "e"}},
		{order: SortSalary, expect: []string{"a", "c", "d", "b", "e"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			t.Parallel()
			l := scoredListings()
			Sort(l, tt.order)
			if diff := cmp.Diff(tt.expect, ids(l.Items)); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]SortOrder{"": SortMatch, "Match Score": SortMatch, "LATEST": SortLatest, "salary": SortSalary} {
		got, err := ParseSortOrder(in)
		if err != nil || got != want {
			t.Fatalf("ParseSortOrder(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Fatalf("expected an error for an unknown order")
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()

	got := Digest(scoredListings(), 10)
	if diff := cmp.Diff([]string{"c", "a", "e", "b"}, ids(got)); diff != "" {
		t.Fatalf("digest order mismatch (-want +got):\n%s", diff)
	}

	capped := Digest(scoredListings(), 2)
	if diff := cmp.Diff([]string{"c", "a"}, ids(capped)); diff != "" {
		t.Fatalf("capped digest mismatch (-want +got):\n%s", diff)
	}

	if len(Digest(NewListings(), 0)) != 0 {
		t.Fatalf("empty working set yields an empty digest")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	want := Stats{TotalApplied: 3, Interviews: 2, Offers: 1, ResponseRate: 300}
	if diff := cmp.Diff(want, Summarize(scoredListings())); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if s := Summarize(NewListings()); s != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", s)
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := NewGenerator(42).Generate(ctx, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := NewGenerator(42).Generate(ctx, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if first.Len() != DefaultListingCount {
		t.Fatalf("expected %d listings, got %d", DefaultListingCount, first.Len())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed produced different listings:\n%s", diff)
	}

	other, _ := NewGenerator(43).Generate(ctx, 0)
	if cmp.Equal(first, other) {
		t.Fatalf("different seeds should differ")
	}

	for _, item := range first.Items {
		if len(item.Skills) != mockSkillsPerListing || item.Status != StatusNotApplied || item.IsNew != (item.PostedDaysAgo <= FreshDays) {
			t.Fatalf("unexpected listing: %+v", item)
		}
	}
	if first.Items[3].ID != "job-42-3" {
		t.Fatalf("unexpected id %q", first.Items[3].ID)
	}
}

func TestGeneratorCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := NewGenerator(1)
	gen.Delay = 50 * time.Millisecond
	if _, err := gen.Generate(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizePreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		expect Preference
		ok     bool
	}{
		{name: "empty", raw: "", expect: DefaultPreference(), ok: true},
		{name: "not json", raw: "{", expect: DefaultPreference(), ok: false},
		{
			name: "partial",
			raw:  `{"roleKeywords":[" react ",""],"minMatchScore":"65"}`,
			expect: Preference{
				RoleKeywords: []string{"react"}, Locations: []string{}, WorkModes: []string{},
				ExperienceLevel: ExperienceFresher, Skills: []string{}, MinMatchScore: 65,
			},
			ok: true,
		},
		{
			name: "bad level and clamped score",
			raw:  `{"experienceLevel":"Senior","minMatchScore":180,"workMode":["Remote"]}`,
			expect: Preference{
				RoleKeywords: []string{}, Locations: []string{}, WorkModes: []string{"Remote"},
				ExperienceLevel: ExperienceFresher, Skills: []string{}, MinMatchScore: 100,
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizePreference([]byte(tt.raw))
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Fatalf("preference mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeStoredCollections(t *testing.T) {
	t.Parallel()

	statuses, ok := NormalizeStatuses([]byte(`{"a":"applied","b":"Ghosted","c":3}`))
	if ok || len(statuses) != 1 || statuses["a"] != StatusApplied {
		t.Fatalf("unexpected statuses: %v ok=%v", statuses, ok)
	}

	history, ok := NormalizeHistory([]byte(`[{"jobId":"a","status":"Interview","date":"2026-01-02T03:04:05Z"},{"status":"Applied"},{"jobId":"b","status":"??"}]`))
	if ok || len(history) != 1 || history[0].Status != StatusInterview || history[0].Date.Year() != 2026 {
		t.Fatalf("unexpected history: %+v ok=%v", history, ok)
	}

	listings, ok := NormalizeListings([]byte(`{"items":[{"id":"x","title":"T"},null,{"title":"no id"}]}`))
	if ok || listings.Len() != 1 || listings.Items[0].Skills == nil {
		t.Fatalf("unexpected listings: %+v ok=%v", listings, ok)
	}

	bare, ok := NormalizeListings([]byte(`[{"id":"y"}]`))
	if !ok || bare.Len() != 1 {
		t.Fatalf("bare array should be accepted")
	}
}

func TestListingsHelpers(t *testing.T) {
	t.Parallel()

	l := scoredListings()
	l.ApplyStatuses(map[string]Status{"a": StatusRejected})
	if l.FindByID("a").Status != StatusRejected || l.FindByID("b").Status != StatusNotApplied {
		t.Fatalf("statuses not applied")
	}
	if l.FindByID("zzz") != nil {
		t.Fatalf("unexpected match")
	}

	report := l.ReportByCompany()
	if len(report["Swiggy"]) != 1 || report["Swiggy"][0]["score"] != "80" {
		t.Fatalf("unexpected report: %v", report)
	}

	var nilList *Listings
	if nilList.Len() != 0 || nilList.Clone().Len() != 0 {
		t.Fatalf("nil listings should be empty")
	}

	for _, in := range []string{"not applied", " SELECTED "} {
		if _, err := ParseStatus(in); err != nil {
			t.Fatalf("ParseStatus(%q): %v", in, err)
		}
	}
	if _, err := ParseExperienceLevel("10+"); err == nil {
		t.Fatalf("expected an error for an unknown band")
	}
}
