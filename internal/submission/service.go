package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/logger"
	"github.com/spigell/hirekit/internal/records"
	"github.com/spigell/hirekit/internal/store"
)

// Options tunes a Service.
type Options struct {
	Logger *zap.Logger
	Now    func() time.Time
}

// Service keeps the submission and the test checklist in a RecordStore.
type Service struct {
	store  store.RecordStore
	logger *zap.Logger
	now    func() time.Time
}

func NewService(s store.RecordStore, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{store: s, logger: logger.ForApp(opts.Logger, logger.AppProof), now: now}
}

// ParseSubmission decodes a stored submission on top of the defaults. The
// second result is false when the stored value had to be discarded.
func ParseSubmission(raw []byte) (Submission, bool) {
	sub := New()
	if len(raw) == 0 {
		return sub, true
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return sub, false
	}
	for _, key := range []string{"submittedAt", "shippedAt"} {
		if s, ok := m[key].(string); !ok || s == "" {
			delete(m, key)
		}
	}
	if err := records.Decode(m, &sub); err != nil {
		return New(), false
	}
	return sub, true
}

// ParseChecklist decodes a stored checklist on top of the defaults. Unknown
// ids and non-boolean values are ignored.
func ParseChecklist(raw []byte) (Checklist, bool) {
	c := NewChecklist()
	if len(raw) == 0 {
		return c, true
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return c, false
	}
	clean := true
	for _, t := range Tests {
		v, ok := m[t.ID]
		if !ok {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			clean = false
			continue
		}
		c[t.ID] = b
	}
	return c, clean
}

func (s *Service) warnCorrupted(key string) {
	s.logger.Warn("stored data may be corrupted, using what could be recovered", logger.CommonFields("", key)...)
}

// Load returns the stored submission.
func (s *Service) Load(ctx context.Context) (Submission, error) {
	raw, _, err := s.store.Load(ctx, KeySubmission)
	if err != nil {
		return New(), fmt.Errorf("loading %s: %w", KeySubmission, err)
	}
	sub, ok := ParseSubmission(raw)
	if !ok {
		s.warnCorrupted(KeySubmission)
	}
	return sub, nil
}

// Checklist returns the stored test checklist.
func (s *Service) Checklist(ctx context.Context) (Checklist, error) {
	raw, _, err := s.store.Load(ctx, KeyTestChecklist)
	if err != nil {
		return NewChecklist(), fmt.Errorf("loading %s: %w", KeyTestChecklist, err)
	}
	c, ok := ParseChecklist(raw)
	if !ok {
		s.warnCorrupted(KeyTestChecklist)
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.store.Save(ctx, key, b); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// SetStep marks the build step id as done or not done.
func (s *Service) SetStep(ctx context.Context, id int, done bool) (Submission, error) {
	if !slices.ContainsFunc(Steps, func(st Step) bool { return st.ID == id }) {
		return Submission{}, fmt.Errorf("%w: %d", ErrUnknownStep, id)
	}
	sub, err := s.Load(ctx)
	if err != nil {
		return sub, err
	}
	sub.Steps[id] = done
	if err := s.save(ctx, KeySubmission, sub); err != nil {
		return sub, err
	}
	s.logger.Debug("step updated", zap.Int("step", id), zap.Bool("done", done))
	return sub, nil
}

// SetTest marks the pre-ship test id as passed or not.
func (s *Service) SetTest(ctx context.Context, id string, passed bool) (Checklist, error) {
	if !slices.ContainsFunc(Tests, func(t TestItem) bool { return t.ID == id }) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTest, id)
	}
	c, err := s.Checklist(ctx)
	if err != nil {
		return c, err
	}
	c[id] = passed
	if err := s.save(ctx, KeyTestChecklist, c); err != nil {
		return c, err
	}
	return c, nil
}

// SetArtifacts stores the links, valid or not, and returns the joined
// FieldErrors of the invalid ones. The submission is saved either way.
func (s *Service) SetArtifacts(ctx context.Context, a Artifacts) (Submission, error) {
	sub, err := s.Load(ctx)
	if err != nil {
		return sub, err
	}
	sub.SetArtifacts(a, s.now())
	if err := s.save(ctx, KeySubmission, sub); err != nil {
		return sub, err
	}

	invalid := a.Validate()
	if invalid != nil {
		s.logger.Info("artifact links need attention", zap.Error(invalid))
	}
	return sub, invalid
}

// Status evaluates the stored state.
func (s *Service) Status(ctx context.Context) (Status, Submission, error) {
	sub, err := s.Load(ctx)
	if err != nil {
		return Status{}, sub, err
	}
	c, err := s.Checklist(ctx)
	if err != nil {
		return Status{}, sub, err
	}
	return Evaluate(sub, c), sub, nil
}

// Finalize returns the final submission text. When the build qualifies as
// shipped, ShippedAt is stamped the first time.
func (s *Service) Finalize(ctx context.Context) (string, Status, error) {
	st, sub, err := s.Status(ctx)
	if err != nil {
		return "", st, err
	}
	if st.Shipped && sub.ShippedAt == nil {
		t := s.now().UTC()
		sub.ShippedAt = &t
		if err := s.save(ctx, KeySubmission, sub); err != nil {
			return "", st, err
		}
		s.logger.Info("project shipped", zap.Time("shipped_at", t))
	}
	return FinalText(sub.Artifacts), st, nil
}
