package tracker

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/textmatch"
)

// Filter is a single step of the dashboard filter pipeline.
type Filter interface {
	Name() string
	IsEnabled() bool
	Status() FilterStatus

	Validate() error
	Apply(ctx context.Context, l *Listings) (*Listings, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// FilterStatus is runtime information about a filter.
type FilterStatus struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// RunFilters validates every enabled step and then applies them in order to a
// copy of l. The input working set is left untouched.
func RunFilters(ctx context.Context, logger *zap.Logger, steps []Filter, l *Listings) (*Listings, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	v := l.Clone()
	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		v = next
	}

	return v, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []FilterStatus {
	statuses := make([]FilterStatus, 0, len(steps))
	for _, step := range steps {
		statuses = append(statuses, step.Status())
	}
	return statuses
}

// String renders the status as name(key=value ...), or "name: off (reason)"
// for a disabled filter.
func (s FilterStatus) String() string {
	if !s.Enabled {
		if s.Reason == "" {
			return s.Name + ": off"
		}
		return fmt.Sprintf("%s: off (%s)", s.Name, s.Reason)
	}
	keys := make([]string, 0, len(s.Details))
	for k := range s.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s.Details[k])
	}
	return s.Name + "(" + strings.Join(parts, " ") + ")"
}

type minScoreFilter struct {
	enabled bool
	reason  string
	min     int
}

// NewMinScore drops listings scoring below min. It only runs when
// "show only matches" is on.
func NewMinScore(min int, onlyMatches bool) Filter {
	f := &minScoreFilter{enabled: onlyMatches, min: min}
	if !onlyMatches {
		f.reason = "show only matches is off"
	}
	return f
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) IsEnabled() bool { return f.enabled }

func (f *minScoreFilter) Validate() error {
	if f.min < 0 || f.min > MaxScore {
		return fmt.Errorf("minimum match score must be within 0..%d, got %d", MaxScore, f.min)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, l *Listings) (*Listings, Step, error) {
	initial := l.Len()
	dropped := l.Retain(func(item *Listing) bool { return item.MatchScore >= f.min })
	return l, Step{Initial: initial, Dropped: len(dropped), Left: l.Len()}, nil
}

func (f *minScoreFilter) Status() FilterStatus {
	return FilterStatus{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.min)},
	}
}

// StatusAll disables status filtering.
const StatusAll = "All"

type statusFilter struct {
	raw    string
	status Status
}

// NewStatus keeps only listings in the given status. Blank or "All" keeps everything.
func NewStatus(status string) Filter {
	return &statusFilter{raw: strings.TrimSpace(status)}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) IsEnabled() bool { return true }

func (f *statusFilter) all() bool {
	return f.raw == "" || strings.EqualFold(f.raw, StatusAll)
}

func (f *statusFilter) Validate() error {
	if f.all() {
		return nil
	}
	st, err := ParseStatus(f.raw)
	if err != nil {
		return err
	}
	f.status = st
	return nil
}

func (f *statusFilter) Apply(_ context.Context, l *Listings) (*Listings, Step, error) {
	initial := l.Len()
	if f.all() {
		return l, Step{Initial: initial, Left: initial}, nil
	}

	dropped := l.Retain(func(item *Listing) bool {
		st := item.Status
		if st == "" {
			st = StatusNotApplied
		}
		return st == f.status
	})
	return l, Step{Initial: initial, Dropped: len(dropped), Left: l.Len()}, nil
}

func (f *statusFilter) Status() FilterStatus {
	value := f.raw
	if f.all() {
		value = StatusAll
	}
	return FilterStatus{Name: f.Name(), Enabled: true, Details: map[string]string{"status": value}}
}

type searchFilter struct {
	query string
}

// NewSearch keeps listings whose title, company or any skill contains query.
func NewSearch(query string) Filter {
	return &searchFilter{query: strings.TrimSpace(query)}
}

func (f *searchFilter) Name() string { return "search" }

func (f *searchFilter) IsEnabled() bool { return true }

func (f *searchFilter) Validate() error { return nil }

func (f *searchFilter) Apply(_ context.Context, l *Listings) (*Listings, Step, error) {
	initial := l.Len()
	if f.query == "" {
		return l, Step{Initial: initial, Left: initial}, nil
	}

	dropped := l.Retain(func(item *Listing) bool {
		if textmatch.ContainsKeyword(item.Title, f.query) || textmatch.ContainsKeyword(item.Company, f.query) {
			return true
		}
		for _, s := range item.Skills {
			if textmatch.ContainsKeyword(s, f.query) {
				return true
			}
		}
		return false
	})
	return l, Step{Initial: initial, Dropped: len(dropped), Left: l.Len()}, nil
}

func (f *searchFilter) Status() FilterStatus {
	details := map[string]string{}
	if f.query != "" {
		details["query"] = f.query
	}
	return FilterStatus{Name: f.Name(), Enabled: true, Details: details}
}

// DashboardFilters builds the standard pipeline: min score, status, search.
func DashboardFilters(pref Preference, onlyMatches bool, status, query string) []Filter {
	return []Filter{
		NewMinScore(pref.MinMatchScore, onlyMatches),
		NewStatus(status),
		NewSearch(query),
	}
}
