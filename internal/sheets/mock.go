package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/rankflow/internal/report"
)

// MockWriter is a mock implementation of report.Writer for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, r *report.Report) error
	LastReport     *report.Report
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error  error
	Report *report.Report
}

var _ report.Writer = (*MockWriter)(nil)

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the report.Writer interface.
func (m *MockWriter) Write(ctx context.Context, r *report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastReport = r

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, r)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Report: r, Error: err})
	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return err from every later Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, *report.Report) error {
		return err
	}
}
