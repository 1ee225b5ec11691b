package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/metrics"
	"github.com/Veraticus/rankflow/internal/model"
	"github.com/Veraticus/rankflow/internal/service"
)

// Request is one uploaded export.
type Request struct {
	Content    io.Reader
	ProjectID  string
	MonthLabel string
	Filename   string
}

// Summary describes a committed import.
type Summary struct {
	ImportID string
	Domains  []string
	// Rows is the number of canonical records in the export.
	Rows int
	// Keywords counts distinct keywords that received facts.
	Keywords int
	// Duplicates counts rows repeating a keyword already seen in the export.
	Duplicates int
	// Skipped counts rows without keyword text.
	Skipped int
	// Recovered counts rows re-read after an unclosed quote merged them.
	Recovered int
}

// ProgressFunc is called after each persisted record with the running count.
type ProgressFunc func(done, total int)

// Service ingests exports into the fact store.
type Service struct {
	store    service.Storage
	metrics  *metrics.Collector
	progress ProgressFunc
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records every ingestion attempt on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// WithProgress reports persistence progress to fn.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Service) { s.progress = fn }
}

// NewService creates an ingestion service backed by store.
func NewService(store service.Storage, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest normalizes the export and persists it as one import. Either every
// fact of the import is committed or nothing is. Failures are typed:
// *common.ValidationError, *common.ParseError, *common.EmptyInputError or
// *common.PersistenceError.
func (s *Service) Ingest(ctx context.Context, req Request) (*Summary, error) {
	start := s.now()

	summary, err := s.ingest(ctx, req)
	if err != nil {
		s.metrics.ObserveImport(outcomeOf(err), 0, 0, s.now().Sub(start))
		return nil, err
	}

	s.metrics.ObserveImport(metrics.OutcomeSuccess, summary.Rows, len(summary.Domains), s.now().Sub(start))
	slog.Info("Import committed",
		"import_id", summary.ImportID,
		"project", req.ProjectID,
		"month", req.MonthLabel,
		"rows", summary.Rows,
		"domains", len(summary.Domains))

	return summary, nil
}

func (s *Service) ingest(ctx context.Context, req Request) (*Summary, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := Normalize(req.Content)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", req.Filename, err)
	}
	if result.Skipped > 0 {
		slog.Warn("Skipped rows without keyword text",
			"file", req.Filename,
			"skipped", result.Skipped)
	}

	summary, err := s.persist(ctx, req, result)
	if err != nil {
		return nil, err
	}
	summary.Skipped = result.Skipped
	summary.Recovered = result.Recovered

	return summary, nil
}

func validateRequest(req Request) error {
	switch {
	case strings.TrimSpace(req.ProjectID) == "":
		return common.NewValidationError("project", "project id is required")
	case strings.TrimSpace(req.MonthLabel) == "":
		return common.NewValidationError("month", "month label is required")
	case req.Content == nil:
		return common.NewValidationError("file", "file content is required")
	}
	return nil
}

// persist writes the import inside a single transaction.
func (s *Service) persist(ctx context.Context, req Request, result *Result) (*Summary, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, &common.PersistenceError{Op: "begin", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Debug("Rollback after failed import", "error", rbErr)
			}
		}
	}()

	imp := &model.Import{
		ID:         uuid.NewString(),
		ProjectID:  strings.TrimSpace(req.ProjectID),
		MonthLabel: strings.TrimSpace(req.MonthLabel),
		Filename:   req.Filename,
		CreatedAt:  s.now(),
	}
	if err := tx.CreateImport(ctx, imp); err != nil {
		return nil, &common.PersistenceError{Op: "create import", Err: err}
	}

	total := len(result.Records)
	snapshots := make([]model.MetricSnapshot, 0, total)
	rankings := make([]model.DomainRanking, 0, total*len(result.Domains))
	seen := make(map[int64]bool, total)
	duplicates := 0

	for i, rec := range result.Records {
		kw := &model.Keyword{
			ProjectID: imp.ProjectID,
			Text:      rec.Keyword,
			Group:     rec.Group,
		}
		if err := tx.UpsertKeyword(ctx, kw); err != nil {
			return nil, &common.PersistenceError{Op: "upsert keyword", Err: err}
		}

		// The first row of a keyword owns its facts for this import.
		if seen[kw.ID] {
			duplicates++
			slog.Debug("Duplicate keyword row", "keyword", rec.Keyword, "row", i+1)
		} else {
			seen[kw.ID] = true
			snapshots = append(snapshots, rec.Snapshot(imp.ID, kw.ID))
			rankings = append(rankings, rec.DomainRankings(imp.ID, kw.ID, result.Domains)...)
		}

		if s.progress != nil {
			s.progress(i+1, total)
		}
	}

	if len(snapshots) > 0 {
		if err := tx.SaveMetricSnapshots(ctx, snapshots); err != nil {
			return nil, &common.PersistenceError{Op: "save metric snapshots", Err: err}
		}
	}
	if len(rankings) > 0 {
		if err := tx.SaveDomainRankings(ctx, rankings); err != nil {
			return nil, &common.PersistenceError{Op: "save domain rankings", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &common.PersistenceError{Op: "commit", Err: err}
	}
	committed = true

	if duplicates > 0 {
		slog.Warn("Export repeats keywords; kept the first row of each",
			"import_id", imp.ID,
			"duplicates", duplicates)
	}

	return &Summary{
		ImportID:   imp.ID,
		Domains:    result.Domains,
		Rows:       total,
		Keywords:   len(seen),
		Duplicates: duplicates,
	}, nil
}

func outcomeOf(err error) string {
	var (
		vErr *common.ValidationError
		pErr *common.ParseError
		eErr *common.EmptyInputError
	)
	switch {
	case errors.As(err, &vErr):
		return metrics.OutcomeInvalid
	case errors.As(err, &pErr):
		return metrics.OutcomeParseError
	case errors.As(err, &eErr):
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomePersistence
	}
}
