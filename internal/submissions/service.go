package submissions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/thebar-catering/thebar-site/internal/observability/metrics"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

var tracer = otel.Tracer("thebar.internal.submissions")

// Notifier tells the operator about a stored submission.
type Notifier interface {
	Name() string
	NotifySubmission(ctx context.Context, sub *Submission) error
}

// ExportArchiver keeps a copy of every CSV export.
type ExportArchiver interface {
	ArchiveExport(ctx context.Context, data []byte, at time.Time) (string, error)
}

// ServiceConfig wires the optional collaborators of Service.
type ServiceConfig struct {
	Repo          Repository
	Guard         DuplicateGuard
	Notifiers     []Notifier
	Archiver      ExportArchiver
	Metrics       *metrics.SubmissionMetrics
	NotifyTimeout time.Duration
	Logger        *logging.Logger
}

// Service runs the intake flow: validate, dedupe, persist, notify.
type Service struct {
	repo          Repository
	guard         DuplicateGuard
	notifiers     []Notifier
	archiver      ExportArchiver
	metrics       *metrics.SubmissionMetrics
	notifyTimeout time.Duration
	logger        *logging.Logger
	now           func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Repo == nil {
		panic("submissions: repository required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	var notifiers []Notifier
	for _, n := range cfg.Notifiers {
		if n != nil {
			notifiers = append(notifiers, n)
		}
	}
	svc := &Service{
		repo:          cfg.Repo,
		notifiers:     notifiers,
		archiver:      cfg.Archiver,
		metrics:       cfg.Metrics,
		notifyTimeout: cfg.NotifyTimeout,
		logger:        cfg.Logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
	// Typed nils from optional constructors must not become non-nil interfaces.
	if g, ok := cfg.Guard.(*RedisDuplicateGuard); !ok || g != nil {
		svc.guard = cfg.Guard
	}
	return svc
}

// Create validates and stores a submission, then notifies the operator.
// Notification failures are logged; the submission is already persisted.
func (s *Service) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	ctx, span := tracer.Start(ctx, "submissions.create")
	defer span.End()

	req.Normalize()
	span.SetAttributes(attribute.String("submission.form", string(req.Form)))

	if err := req.Validate(); err != nil {
		s.metrics.ObserveSubmission(string(req.Form), metrics.OutcomeInvalid)
		span.SetStatus(codes.Error, "invalid submission")
		return nil, err
	}

	key := Fingerprint(req)
	if s.guard != nil {
		claimed, err := s.guard.Claim(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("duplicate guard unavailable", "error", err)
		case !claimed:
			s.metrics.ObserveSubmission(string(req.Form), metrics.OutcomeDuplicate)
			return nil, ErrDuplicateSubmission
		}
	}

	sub, err := s.repo.Create(ctx, req)
	if err != nil {
		if s.guard != nil {
			if relErr := s.guard.Release(ctx, key); relErr != nil {
				s.logger.Warn("failed to release duplicate claim", "error", relErr)
			}
		}
		s.metrics.ObserveSubmission(string(req.Form), metrics.OutcomeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return nil, err
	}

	s.metrics.ObserveSubmission(string(sub.Form), metrics.OutcomeCreated)
	span.SetAttributes(attribute.String("submission.id", sub.ID))
	s.logger.Info("submission stored", "id", sub.ID, "form", sub.Form)

	s.notify(ctx, sub)
	return sub, nil
}

func (s *Service) notify(ctx context.Context, sub *Submission) {
	for _, n := range s.notifiers {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		start := time.Now()
		err := n.NotifySubmission(nctx, sub)
		cancel()

		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
			s.logger.Error("submission notification failed", "channel", n.Name(), "id", sub.ID, "error", err)
		}
		s.metrics.ObserveNotify(n.Name(), outcome, time.Since(start).Seconds())
	}
}

// Get returns one submission.
func (s *Service) Get(ctx context.Context, id string) (*Submission, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every submission, newest first.
func (s *Service) List(ctx context.Context) ([]*Submission, error) {
	ctx, span := tracer.Start(ctx, "submissions.list")
	defer span.End()

	subs, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if subs == nil {
		subs = []*Submission{}
	}
	span.SetAttributes(attribute.Int("submission.count", len(subs)))
	return subs, nil
}

// ExportCSV renders every submission as CSV into w and returns the row count.
// Nothing is written to w unless the export succeeds.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	ctx, span := tracer.Start(ctx, "submissions.export_csv")
	defer span.End()

	subs, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.ObserveExport(metrics.OutcomeError, 0)
		span.RecordError(err)
		return 0, err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, subs); err != nil {
		s.metrics.ObserveExport(metrics.OutcomeError, 0)
		return 0, fmt.Errorf("submissions: render csv: %w", err)
	}

	if s.archiver != nil {
		if key, err := s.archiver.ArchiveExport(ctx, buf.Bytes(), s.now()); err != nil {
			s.logger.Warn("failed to archive csv export", "error", err)
		} else if key != "" {
			s.logger.Info("csv export archived", "key", key, "rows", len(subs))
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		s.metrics.ObserveExport(metrics.OutcomeError, 0)
		return 0, fmt.Errorf("submissions: write csv: %w", err)
	}
	s.metrics.ObserveExport(metrics.OutcomeSuccess, len(subs))
	return len(subs), nil
}

// IsClientError reports whether err was caused by the submitted payload.
func IsClientError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) || errors.Is(err, ErrUnknownForm)
}
