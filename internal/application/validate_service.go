package application

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/ff6editor/pluginvet/internal/domain/check"
	"github.com/ff6editor/pluginvet/internal/logging"
)

// ValidateService runs the validation pipeline over plugin directories and
// fans the outcome out to the optional git, history and metrics adapters.
type ValidateService struct {
	fs      domain.PluginFS
	rules   domain.Rules
	logger  *logrus.Logger
	git     domain.GitInfo
	history domain.HistoryStore
	metrics domain.MetricsRecorder
	now     func() time.Time
}

// Option configures a ValidateService.
type Option func(*ValidateService)

// WithGitInfo stamps runs with the HEAD commit of the enclosing repository.
func WithGitInfo(g domain.GitInfo) Option { return func(s *ValidateService) { s.git = g } }

// WithHistory persists every run.
func WithHistory(h domain.HistoryStore) Option { return func(s *ValidateService) { s.history = h } }

// WithMetrics records per-run counters.
func WithMetrics(m domain.MetricsRecorder) Option { return func(s *ValidateService) { s.metrics = m } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *ValidateService) { s.now = now } }

// NewValidateService creates a ValidateService. A nil logger discards output.
func NewValidateService(fs domain.PluginFS, rules domain.Rules, logger *logrus.Logger, opts ...Option) *ValidateService {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &ValidateService{fs: fs, rules: rules, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the effective rule tables.
func (s *ValidateService) Rules() domain.Rules { return s.rules }

// Validate runs every pass against dir in order. Validation outcomes are
// reported through the returned run, never as errors; the error is non-nil
// only when the run could not be persisted, and the run is still returned.
func (s *ValidateService) Validate(dir string) (*domain.ValidationRun, error) {
	start := s.now()
	target := check.NewTarget(dir, s.fs, s.rules)
	report := &domain.Report{Plugin: target.ID, Dir: dir}
	log := s.logger.WithField("plugin", target.ID)

	for _, step := range check.Pipeline() {
		results := runStep(step, target)
		report.Add(results...)
		log.WithFields(logrus.Fields{
			"pass":     step.Name,
			"checks":   len(results),
			"errors":   domain.CountErrors(results),
			"warnings": domain.CountWarnings(results),
		}).Debug("pass finished")
	}

	run := &domain.ValidationRun{
		RunID:     uuid.NewString(),
		Report:    report,
		Passed:    report.Passed(),
		Errors:    report.Errors(),
		Warnings:  report.Warnings(),
		StartedAt: start,
		Duration:  s.now().Sub(start),
	}

	if s.git != nil {
		if hash, err := s.git.CommitHash(dir); err == nil {
			run.CommitHash = hash
		} else {
			log.WithError(err).Debug("no commit hash")
		}
	}

	log.WithFields(logrus.Fields{
		"passed":   run.Passed,
		"errors":   run.Errors,
		"warnings": run.Warnings,
		"duration": run.Duration,
	}).Info("validation finished")

	if s.metrics != nil {
		s.metrics.ObserveRun(run)
	}
	if s.history != nil {
		if err := s.history.Save(run); err != nil {
			return run, fmt.Errorf("saving history: %w", err)
		}
	}
	return run, nil
}

// runStep converts a panicking pass into a single failing result so later
// passes still run.
func runStep(step check.Step, target check.Target) (results []domain.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			results = append(results, domain.Fail(step.Name, fmt.Sprintf("Internal error in %s check: %v", step.Name, r)))
		}
	}()
	return step.Run(target)
}

// ValidateAll validates every immediate sub-directory of root in name order.
// Hidden directories are skipped. The first persistence error is returned
// after all plugins have been validated.
func (s *ValidateService) ValidateAll(root string) ([]*domain.ValidationRun, error) {
	if info, err := s.fs.Stat(root); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("reading registry root: %w: %s", domain.ErrNotDirectory, root)
	}
	entries, err := s.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading registry root %s: %w", root, err)
	}

	var runs []*domain.ValidationRun
	var firstErr error
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		run, err := s.Validate(filepath.Join(root, e.Name()))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		runs = append(runs, run)
	}

	s.logger.WithFields(logrus.Fields{"root": root, "plugins": len(runs)}).Info("registry validated")
	return runs, firstErr
}

// GenerateChecksum rewrites only the checksum sidecar of dir.
func (s *ValidateService) GenerateChecksum(dir string) []domain.CheckResult {
	return check.Checksum(check.NewTarget(dir, s.fs, s.rules))
}

// VerifyChecksum compares the sidecar digest of dir with the current script.
// It never writes.
func (s *ValidateService) VerifyChecksum(dir string) (domain.ChecksumVerification, error) {
	v, err := check.VerifyChecksum(check.NewTarget(dir, s.fs, s.rules))
	if err != nil {
		return v, err
	}
	s.logger.WithFields(logrus.Fields{"dir": dir, "status": v.Status}).Debug("checksum verified")
	return v, nil
}
