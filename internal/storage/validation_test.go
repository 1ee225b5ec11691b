package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/rankflow/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: "  \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateImport(t *testing.T) {
	tests := []struct {
		imp     *model.Import
		wantErr error
		name    string
	}{
		{
			name: "valid import",
			imp:  &model.Import{ID: "imp-1", ProjectID: "acme", MonthLabel: "2024-05"},
		},
		{name: "nil import", imp: nil, wantErr: ErrNilParameter},
		{name: "missing id", imp: &model.Import{ProjectID: "acme", MonthLabel: "2024-05"}, wantErr: ErrInvalidImport},
		{name: "missing project", imp: &model.Import{ID: "imp-1", MonthLabel: "2024-05"}, wantErr: ErrInvalidImport},
		{name: "missing month", imp: &model.Import{ID: "imp-1", ProjectID: "acme", MonthLabel: " "}, wantErr: ErrInvalidImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateImport(tt.imp)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateImport() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateImport() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRankings(t *testing.T) {
	five, thirty := 5, 30

	tests := []struct {
		wantErr  error
		name     string
		rankings []model.DomainRanking
	}{
		{
			name:     "valid rankings",
			rankings: []model.DomainRanking{{ImportID: "i", KeywordID: 1, Domain: "a.com", Position: &five}},
		},
		{
			name:     "beyond window flagged",
			rankings: []model.DomainRanking{{ImportID: "i", KeywordID: 1, Domain: "a.com", Position: &thirty, OutOfTop20: true}},
		},
		{name: "nil slice", rankings: nil, wantErr: ErrNilParameter},
		{name: "empty slice", rankings: []model.DomainRanking{}, wantErr: ErrEmptySlice},
		{
			name:     "missing domain",
			rankings: []model.DomainRanking{{ImportID: "i", KeywordID: 1}},
			wantErr:  ErrInvalidRanking,
		},
		{
			name:     "top 20 position flagged out",
			rankings: []model.DomainRanking{{ImportID: "i", KeywordID: 1, Domain: "a.com", Position: &five, OutOfTop20: true}},
			wantErr:  ErrPositionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRankings(tt.rankings)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateRankings() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRankings() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
