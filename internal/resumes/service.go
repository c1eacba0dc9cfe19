// Package resumes keeps the resume document in a RecordStore and rescores it
// on every change.
package resumes

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/logger"
	"github.com/spigell/hirekit/internal/records"
	"github.com/spigell/hirekit/internal/resume"
	"github.com/spigell/hirekit/internal/store"
)

// Options tunes a Service.
type Options struct {
	Logger  *zap.Logger
	Catalog *catalog.Catalog
}

// Service loads, scores and saves the resume.
type Service struct {
	store  store.RecordStore
	logger *zap.Logger
	scorer *resume.Scorer
}

func NewService(s store.RecordStore, opts Options) *Service {
	return &Service{
		store:  s,
		logger: logger.ForApp(opts.Logger, logger.AppResume),
		scorer: resume.NewScorer(opts.Catalog),
	}
}

// Scorer returns the scorer the service uses.
func (s *Service) Scorer() *resume.Scorer {
	return s.scorer
}

// Load returns the stored resume migrated to the current layout, or an empty
// one when nothing is stored. Unusable data yields an empty document and a warning.
func (s *Service) Load(ctx context.Context) (resume.Document, error) {
	raw, _, err := s.store.Load(ctx, records.KeyResume)
	if err != nil {
		return resume.New(), fmt.Errorf("loading %s: %w", records.KeyResume, err)
	}
	doc, ok := records.ParseResume(raw)
	if !ok {
		s.logger.Warn("stored data may be corrupted, starting from an empty resume",
			logger.CommonFields("", records.KeyResume)...)
	}
	return doc, nil
}

// Save stores doc and returns its score.
func (s *Service) Save(ctx context.Context, doc resume.Document) (resume.Result, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return resume.Result{}, fmt.Errorf("encoding %s: %w", records.KeyResume, err)
	}
	if err := s.store.Save(ctx, records.KeyResume, b); err != nil {
		return resume.Result{}, fmt.Errorf("saving %s: %w", records.KeyResume, err)
	}

	res := s.scorer.Score(doc)
	s.logger.Debug("resume saved", zap.Int("score", res.Score), zap.Int("suggestions", len(res.Suggestions)))
	return res, nil
}

// Score scores the stored resume without changing it.
func (s *Service) Score(ctx context.Context) (resume.Document, resume.Result, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return doc, resume.Result{}, err
	}
	return doc, s.scorer.Score(doc), nil
}

// Update loads the resume, applies edit and saves the result. Nothing is
// saved when edit fails.
func (s *Service) Update(ctx context.Context, edit func(*resume.Document) error) (resume.Document, resume.Result, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return doc, resume.Result{}, err
	}
	if err := edit(&doc); err != nil {
		return doc, resume.Result{}, err
	}
	res, err := s.Save(ctx, doc)
	return doc, res, err
}

// Migrate rewrites the stored resume in the current layout.
func (s *Service) Migrate(ctx context.Context) (resume.Document, resume.Result, error) {
	return s.Update(ctx, func(*resume.Document) error { return nil })
}
