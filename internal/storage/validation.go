package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/rankflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidImport    = errors.New("invalid import")
	ErrInvalidKeyword   = errors.New("invalid keyword")
	ErrInvalidSnapshot  = errors.New("invalid metric snapshot")
	ErrInvalidRanking   = errors.New("invalid domain ranking")
	ErrPositionMismatch = errors.New("position within top 20 cannot be flagged out of top 20")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateImport(imp *model.Import) error {
	if imp == nil {
		return fmt.Errorf("%w: import", ErrNilParameter)
	}
	if imp.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidImport)
	}
	if strings.TrimSpace(imp.ProjectID) == "" {
		return fmt.Errorf("%w: missing project", ErrInvalidImport)
	}
	if strings.TrimSpace(imp.MonthLabel) == "" {
		return fmt.Errorf("%w: missing month label", ErrInvalidImport)
	}
	return nil
}

func validateKeyword(kw *model.Keyword) error {
	if kw == nil {
		return fmt.Errorf("%w: keyword", ErrNilParameter)
	}
	if strings.TrimSpace(kw.ProjectID) == "" {
		return fmt.Errorf("%w: missing project", ErrInvalidKeyword)
	}
	if strings.TrimSpace(kw.Text) == "" {
		return fmt.Errorf("%w: missing text", ErrInvalidKeyword)
	}
	return nil
}

func validateSnapshots(snapshots []model.MetricSnapshot) error {
	if snapshots == nil {
		return fmt.Errorf("%w: snapshots", ErrNilParameter)
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("%w: snapshots", ErrEmptySlice)
	}
	for i, s := range snapshots {
		if s.ImportID == "" || s.KeywordID == 0 {
			return fmt.Errorf("%w at index %d: missing import or keyword", ErrInvalidSnapshot, i)
		}
	}
	return nil
}

func validateRankings(rankings []model.DomainRanking) error {
	if rankings == nil {
		return fmt.Errorf("%w: rankings", ErrNilParameter)
	}
	if len(rankings) == 0 {
		return fmt.Errorf("%w: rankings", ErrEmptySlice)
	}
	for i, r := range rankings {
		if r.ImportID == "" || r.KeywordID == 0 {
			return fmt.Errorf("%w at index %d: missing import or keyword", ErrInvalidRanking, i)
		}
		if strings.TrimSpace(r.Domain) == "" {
			return fmt.Errorf("%w at index %d: missing domain", ErrInvalidRanking, i)
		}
		if r.Position != nil && *r.Position <= 20 && r.OutOfTop20 {
			return fmt.Errorf("%w at index %d: position %d", ErrPositionMismatch, i, *r.Position)
		}
	}
	return nil
}
