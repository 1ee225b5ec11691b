// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/rankflow/internal/model"
)

// RankingFilter defines filtering options for ranking fact queries.
// An empty Domain matches every domain of the selected imports.
type RankingFilter struct {
	Domain    string
	ImportIDs []string
}

// Fact is one keyword of an import joined with its metric snapshot and,
// when present, one domain's ranking fact. Ranking fields are nil and
// Domain is empty when the keyword has no ranking for the domain.
type Fact struct {
	Visibility *float64
	Position   *int
	URL        *string
	Volume     *int64
	Difficulty *int64
	CPC        *float64
	ImportID   string
	Domain     string
	Keyword    string
	Group      string
	KeywordID  int64
	OutOfTop20 bool
}

// HasRanking reports whether the fact carries a domain ranking.
func (f Fact) HasRanking() bool {
	return f.Domain != ""
}

// IsOutOfTop20 reports whether the ranking sits outside the tracked window.
func (f Fact) IsOutOfTop20() bool {
	return f.OutOfTop20 || (f.Position != nil && *f.Position > 20)
}

// FactReader is the read side of the fact store used by analytics.
type FactReader interface {
	GetImport(ctx context.Context, id string) (*model.Import, error)
	ListImports(ctx context.Context, projectID string) ([]model.Import, error)
	ListDomains(ctx context.Context, importID string) ([]string, error)
	ListRankings(ctx context.Context, filter RankingFilter) ([]Fact, error)
	ListKeywordFacts(ctx context.Context, importID, domain string) ([]Fact, error)
	MarketVisibility(ctx context.Context, importID string) (float64, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	FactReader

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction is the atomic write unit of one ingestion run.
// Facts written through it become visible only after Commit.
type Transaction interface {
	Commit() error
	Rollback() error

	CreateImport(ctx context.Context, imp *model.Import) error
	UpsertKeyword(ctx context.Context, keyword *model.Keyword) error
	SaveMetricSnapshots(ctx context.Context, snapshots []model.MetricSnapshot) error
	SaveDomainRankings(ctx context.Context, rankings []model.DomainRanking) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
