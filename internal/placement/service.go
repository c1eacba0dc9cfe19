// Package placement runs job description analyses and keeps their history.
package placement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/extraction"
	"github.com/spigell/hirekit/internal/intel"
	"github.com/spigell/hirekit/internal/logger"
	"github.com/spigell/hirekit/internal/readiness"
	"github.com/spigell/hirekit/internal/records"
	"github.com/spigell/hirekit/internal/rounds"
	"github.com/spigell/hirekit/internal/store"
	"github.com/spigell/hirekit/internal/textmatch"
	"github.com/spigell/hirekit/internal/util"
)

// ShortJDLength is the trimmed length below which a job description draws a warning.
const ShortJDLength = 200

const (
	ShortJDWarning  = "This JD is too short to analyze deeply. Paste full JD for better output."
	CorruptedNotice = "One saved entry couldn't be loaded. Create a new analysis."
)

var (
	ErrMissingJobDescription = errors.New("please enter a job description to analyze")
	ErrUnknownSkill          = errors.New("skill is not part of the analysis")
)

// Input is what the user submits for analysis. Company and Role are optional.
type Input struct {
	Company string
	Role    string
	JDText  string
	// HTML marks JDText as markup to be reduced to plain text first.
	HTML bool
}

// Result is a stored analysis plus the advisories raised while creating it.
type Result struct {
	Record   records.AnalysisRecord
	Warnings []string
}

// Options tunes a Service.
type Options struct {
	Logger  *zap.Logger
	Catalog *catalog.Catalog
	Now     func() time.Time
}

// Service analyses job descriptions and persists the results.
type Service struct {
	store  store.RecordStore
	logger *zap.Logger
	cat    *catalog.Catalog
	intel  *intel.Engine
	now    func() time.Time
}

func NewService(s store.RecordStore, opts Options) *Service {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  s,
		logger: logger.ForApp(opts.Logger, logger.AppPlacement),
		cat:    cat,
		intel:  intel.New(cat),
		now:    now,
	}
}

// Analyze validates in, derives every output and stores the new record at the
// head of the history. A blank job description stores nothing.
func (s *Service) Analyze(ctx context.Context, in Input) (Result, error) {
	jd := in.JDText
	if in.HTML {
		text, err := textmatch.PlainText(jd)
		if err != nil {
			return Result{}, fmt.Errorf("reading job description markup: %w", err)
		}
		jd = text
	}

	trimmed := strings.TrimSpace(jd)
	if trimmed == "" {
		return Result{}, ErrMissingJobDescription
	}

	var warnings []string
	if len([]rune(trimmed)) < ShortJDLength {
		warnings = append(warnings, ShortJDWarning)
	}

	skills := extraction.Extract(jd, s.cat)
	base := readiness.BaseScore(readiness.Input{
		Skills:  skills,
		Company: in.Company,
		Role:    in.Role,
		JDText:  jd,
	})
	companyIntel := s.intel.Generate(in.Company, jd)
	now := s.now().UTC()

	rec := records.AnalysisRecord{
		ID:                 records.NewAnalysisID(),
		CreatedAt:          now,
		UpdatedAt:          now,
		Company:            in.Company,
		Role:               in.Role,
		JDText:             jd,
		ExtractedSkills:    skills,
		Checklist:          readiness.Checklist(skills),
		Plan:               readiness.Plan(skills),
		Questions:          readiness.Questions(skills),
		BaseScore:          base,
		SkillConfidenceMap: readiness.ConfidenceMap{},
		FinalScore:         base,
		CompanyIntel:       &companyIntel,
		RoundMapping:       rounds.Map(companyIntel.Size, skills),
	}

	history, err := s.List(ctx)
	if err != nil {
		return Result{}, err
	}
	entries := append([]records.AnalysisRecord{rec}, history.Entries...)
	if err := s.save(ctx, entries); err != nil {
		return Result{}, err
	}

	s.logger.Info("analysis stored",
		zap.String("analysis_id", rec.ID),
		zap.String("jd_preview", util.TruncateForLog(trimmed, 80)),
		zap.Int("skills", skills.Total()),
		zap.Int("base_score", base),
		zap.Strings("warnings", warnings),
	)
	return Result{Record: rec, Warnings: warnings}, nil
}

// List returns the history, newest first. Unreadable entries are dropped and
// flagged through History.Corrupted.
func (s *Service) List(ctx context.Context) (records.History, error) {
	raw, _, err := s.store.Load(ctx, records.KeyHistory)
	if err != nil {
		return records.History{}, fmt.Errorf("loading %s: %w", records.KeyHistory, err)
	}
	h := records.ParseHistory(raw, s.now())
	if h.Corrupted {
		s.logger.Warn("stored data may be corrupted, using what could be recovered",
			logger.CommonFields("", records.KeyHistory)...)
	}
	return h, nil
}

// Get returns the record with id.
func (s *Service) Get(ctx context.Context, id string) (records.AnalysisRecord, error) {
	h, err := s.List(ctx)
	if err != nil {
		return records.AnalysisRecord{}, err
	}
	rec, ok := h.Find(id)
	if !ok {
		return records.AnalysisRecord{}, fmt.Errorf("%w: %s", records.ErrNotFound, id)
	}
	return rec, nil
}

// ToggleConfidence advances the rating of skill in record id and persists the
// new rating, the recomputed final score and the update time.
func (s *Service) ToggleConfidence(ctx context.Context, id, skill string) (records.AnalysisRecord, readiness.Confidence, error) {
	h, err := s.List(ctx)
	if err != nil {
		return records.AnalysisRecord{}, "", err
	}
	idx := slices.IndexFunc(h.Entries, func(r records.AnalysisRecord) bool { return r.ID == id })
	if idx < 0 {
		return records.AnalysisRecord{}, "", fmt.Errorf("%w: %s", records.ErrNotFound, id)
	}

	rec := h.Entries[idx]
	if !slices.Contains(rec.ExtractedSkills.All(), skill) {
		return rec, "", fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}

	confidence := rec.SkillConfidenceMap.Clone()
	next := confidence.Toggle(skill)

	rec.SkillConfidenceMap = confidence
	rec.FinalScore = readiness.FinalScore(rec.BaseScore, confidence)
	rec.UpdatedAt = s.now().UTC()
	h.Entries[idx] = rec

	if err := s.save(ctx, h.Entries); err != nil {
		return records.AnalysisRecord{}, "", err
	}

	s.logger.Debug("confidence toggled",
		zap.String("analysis_id", id),
		zap.String("skill", skill),
		zap.String("confidence", string(next)),
		zap.Int("final_score", rec.FinalScore),
	)
	return rec, next, nil
}

// Delete removes the record with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	h, err := s.List(ctx)
	if err != nil {
		return err
	}
	before := len(h.Entries)
	entries := slices.DeleteFunc(h.Entries, func(r records.AnalysisRecord) bool { return r.ID == id })
	if len(entries) == before {
		return fmt.Errorf("%w: %s", records.ErrNotFound, id)
	}
	return s.save(ctx, entries)
}

// Clear removes the whole history.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, records.KeyHistory); err != nil {
		return fmt.Errorf("clearing %s: %w", records.KeyHistory, err)
	}
	s.logger.Info("history cleared")
	return nil
}

func (s *Service) save(ctx context.Context, entries []records.AnalysisRecord) error {
	if entries == nil {
		entries = []records.AnalysisRecord{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", records.KeyHistory, err)
	}
	if err := s.store.Save(ctx, records.KeyHistory, b); err != nil {
		return fmt.Errorf("saving %s: %w", records.KeyHistory, err)
	}
	return nil
}
