package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/logger"
	"github.com/spigell/hirekit/internal/store"
)

// Store keys of the tracker records.
const (
	KeyPreferences   = "jobTrackerPreferences"
	KeyJobs          = "jobTrackerJobs"
	KeySavedJobs     = "jobTrackerSavedJobs"
	KeyStatus        = "jobTrackerStatus"
	KeyStatusHistory = "jobTrackerStatusHistory"
	KeyDigestPrefix  = "jobTrackerDigest_"
)

// DefaultHistorySize is how many status changes are kept.
const DefaultHistorySize = 10

// ErrUnknownListing is returned when an id matches no listing in the working
// set or the saved list.
var ErrUnknownListing = errors.New("unknown listing")

// Options tunes a Service.
type Options struct {
	Logger      *zap.Logger
	HistorySize int
	DigestSize  int
	Now         func() time.Time
}

// Service keeps the tracker state in a RecordStore.
type Service struct {
	store       store.RecordStore
	logger      *zap.Logger
	historySize int
	digestSize  int
	now         func() time.Time
}

func NewService(s store.RecordStore, opts Options) *Service {
	svc := &Service{
		store:       s,
		logger:      logger.ForApp(opts.Logger, logger.AppTracker),
		historySize: opts.HistorySize,
		digestSize:  opts.DigestSize,
		now:         opts.Now,
	}
	if svc.historySize <= 0 {
		svc.historySize = DefaultHistorySize
	}
	if svc.digestSize <= 0 {
		svc.digestSize = DefaultDigestSize
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

func (s *Service) load(ctx context.Context, key string) ([]byte, error) {
	raw, _, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	return raw, nil
}

func (s *Service) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.store.Save(ctx, key, b); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	s.logger.Debug("record saved", logger.CommonFields("", key)...)
	return nil
}

func (s *Service) warnCorrupted(key string) {
	s.logger.Warn("stored data may be corrupted, using what could be recovered", logger.CommonFields("", key)...)
}

// Preference returns the stored preference or the defaults.
func (s *Service) Preference(ctx context.Context) (Preference, error) {
	raw, err := s.load(ctx, KeyPreferences)
	if err != nil {
		return DefaultPreference(), err
	}
	pref, ok := NormalizePreference(raw)
	if !ok {
		s.warnCorrupted(KeyPreferences)
	}
	return pref, nil
}

// SavePreference replaces the preference and rescores the whole working set.
func (s *Service) SavePreference(ctx context.Context, pref Preference) (Preference, error) {
	b, err := json.Marshal(pref)
	if err != nil {
		return pref, fmt.Errorf("encoding preference: %w", err)
	}
	normalized, ok := NormalizePreference(b)
	if !ok {
		return pref, fmt.Errorf("invalid experience level %q", pref.ExperienceLevel)
	}
	if pref.MinMatchScore < 0 || pref.MinMatchScore > MaxScore {
		return pref, fmt.Errorf("minimum match score must be within 0..%d, got %d", MaxScore, pref.MinMatchScore)
	}

	if err := s.save(ctx, KeyPreferences, normalized); err != nil {
		return pref, err
	}

	jobs, err := s.workingSet(ctx)
	if err != nil {
		return normalized, err
	}
	Rescore(jobs, normalized)
	if err := s.save(ctx, KeyJobs, jobs.Items); err != nil {
		return normalized, err
	}

	s.logger.Info("preferences updated, listings rescored", zap.Int("listings", jobs.Len()))
	return normalized, nil
}

func (s *Service) workingSet(ctx context.Context) (*Listings, error) {
	raw, err := s.load(ctx, KeyJobs)
	if err != nil {
		return nil, err
	}
	jobs, ok := NormalizeListings(raw)
	if !ok {
		s.warnCorrupted(KeyJobs)
	}
	return jobs, nil
}

// Statuses returns the stored status of every listing the user touched.
func (s *Service) Statuses(ctx context.Context) (map[string]Status, error) {
	raw, err := s.load(ctx, KeyStatus)
	if err != nil {
		return nil, err
	}
	statuses, ok := NormalizeStatuses(raw)
	if !ok {
		s.warnCorrupted(KeyStatus)
	}
	return statuses, nil
}

// Generate replaces the working set with freshly generated listings, scored
// against the current preference and carrying the stored statuses.
func (s *Service) Generate(ctx context.Context, gen *Generator, count int) (*Listings, error) {
	jobs, err := gen.Generate(ctx, count)
	if err != nil {
		return nil, err
	}
	pref, err := s.Preference(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.Statuses(ctx)
	if err != nil {
		return nil, err
	}

	Rescore(jobs, pref)
	jobs.ApplyStatuses(statuses)

	if err := s.save(ctx, KeyJobs, jobs.Items); err != nil {
		return nil, err
	}
	s.logger.Info("listings generated", zap.Int("listings", jobs.Len()))
	return jobs, nil
}

// Jobs returns the working set, rescored against the current preference and
// carrying the stored statuses.
func (s *Service) Jobs(ctx context.Context) (*Listings, error) {
	jobs, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}
	pref, err := s.Preference(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.Statuses(ctx)
	if err != nil {
		return nil, err
	}

	Rescore(jobs, pref)
	jobs.ApplyStatuses(statuses)
	return jobs, nil
}

// SavedJobs returns the bookmarked listings.
func (s *Service) SavedJobs(ctx context.Context) (*Listings, error) {
	raw, err := s.load(ctx, KeySavedJobs)
	if err != nil {
		return nil, err
	}
	saved, ok := NormalizeListings(raw)
	if !ok {
		s.warnCorrupted(KeySavedJobs)
	}
	statuses, err := s.Statuses(ctx)
	if err != nil {
		return nil, err
	}
	saved.ApplyStatuses(statuses)
	return saved, nil
}

// SaveJob bookmarks the working set listing id. Saving twice is a no-op.
func (s *Service) SaveJob(ctx context.Context, id string) error {
	jobs, err := s.workingSet(ctx)
	if err != nil {
		return err
	}
	job := jobs.FindByID(id)
	if job == nil {
		return fmt.Errorf("%w: %s", ErrUnknownListing, id)
	}

	saved, err := s.SavedJobs(ctx)
	if err != nil {
		return err
	}
	if saved.FindByID(id) != nil {
		return nil
	}
	saved.Items = append(saved.Items, job)
	return s.save(ctx, KeySavedJobs, saved.Items)
}

// RemoveJob drops id from the bookmarks.
func (s *Service) RemoveJob(ctx context.Context, id string) error {
	saved, err := s.SavedJobs(ctx)
	if err != nil {
		return err
	}
	if dropped := saved.Retain(func(l *Listing) bool { return l.ID != id }); len(dropped) == 0 {
		return nil
	}
	return s.save(ctx, KeySavedJobs, saved.Items)
}

// SetStatus records a new status for id and prepends it to the history.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (HistoryEntry, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return HistoryEntry{}, err
	}

	job, err := s.find(ctx, id)
	if err != nil {
		return HistoryEntry{}, err
	}

	statuses, err := s.Statuses(ctx)
	if err != nil {
		return HistoryEntry{}, err
	}
	statuses[id] = status
	if err := s.save(ctx, KeyStatus, statuses); err != nil {
		return HistoryEntry{}, err
	}

	history, err := s.History(ctx)
	if err != nil {
		return HistoryEntry{}, err
	}
	entry := HistoryEntry{
		JobID:   id,
		Title:   job.Title,
		Company: job.Company,
		Status:  status,
		Date:    s.now().UTC(),
	}
	history = append([]HistoryEntry{entry}, history...)
	if len(history) > s.historySize {
		history = history[:s.historySize]
	}
	if err := s.save(ctx, KeyStatusHistory, history); err != nil {
		return HistoryEntry{}, err
	}

	s.logger.Info("status updated", zap.String("job_id", id), zap.String("status", string(status)))
	return entry, nil
}

func (s *Service) find(ctx context.Context, id string) (*Listing, error) {
	jobs, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}
	if job := jobs.FindByID(id); job != nil {
		return job, nil
	}
	saved, err := s.SavedJobs(ctx)
	if err != nil {
		return nil, err
	}
	if job := saved.FindByID(id); job != nil {
		return job, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownListing, id)
}

// History returns the status changes, newest first.
func (s *Service) History(ctx context.Context) ([]HistoryEntry, error) {
	raw, err := s.load(ctx, KeyStatusHistory)
	if err != nil {
		return nil, err
	}
	history, ok := NormalizeHistory(raw)
	if !ok {
		s.warnCorrupted(KeyStatusHistory)
	}
	return history, nil
}

// TodayDigest returns today's digest. The first call of a day builds and
// stores it; later calls return the stored one. created reports which happened.
func (s *Service) TodayDigest(ctx context.Context) (digest []*Listing, created bool, err error) {
	key := DigestKey(s.now())

	raw, ok, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	if ok {
		stored, clean := NormalizeListings(raw)
		if clean {
			return stored.Items, false, nil
		}
		s.warnCorrupted(key)
	}

	jobs, err := s.Jobs(ctx)
	if err != nil {
		return nil, false, err
	}
	digest = Digest(jobs, s.digestSize)
	if err := s.save(ctx, key, digest); err != nil {
		return nil, false, err
	}
	s.logger.Info("digest generated", zap.String("key", key), zap.Int("listings", len(digest)))
	return digest, true, nil
}

// DashboardQuery selects and orders the listings shown on the dashboard.
type DashboardQuery struct {
	OnlyMatches bool
	Status      string
	Search      string
	Sort        SortOrder
}

// Dashboard returns the filtered and sorted listings and the stats of the
// whole working set.
func (s *Service) Dashboard(ctx context.Context, q DashboardQuery) (*Listings, Stats, error) {
	jobs, err := s.Jobs(ctx)
	if err != nil {
		return nil, Stats{}, err
	}
	pref, err := s.Preference(ctx)
	if err != nil {
		return nil, Stats{}, err
	}

	steps := DashboardFilters(pref, q.OnlyMatches, q.Status, q.Search)
	s.logger.Debug("dashboard filters", zap.Stringers("filters", Describe(steps)))

	filtered, err := RunFilters(ctx, s.logger, steps, jobs)
	if err != nil {
		return nil, Stats{}, err
	}
	Sort(filtered, q.Sort)

	return filtered, Summarize(jobs), nil
}
