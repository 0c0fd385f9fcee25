package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/service"
)

// MockRowSource is an in-memory service.RowSource for testing.
type MockRowSource struct {
	ReadFunc  func(ctx context.Context, ref service.SheetRef) ([]string, [][]string, error)
	Sheets    map[string][][]string
	ReadCalls []service.SheetRef
	mu        sync.Mutex
}

// NewMockRowSource creates a new mock row source.
func NewMockRowSource() *MockRowSource {
	return &MockRowSource{
		Sheets:    make(map[string][][]string),
		ReadCalls: make([]service.SheetRef, 0),
	}
}

// SetSheet registers rows, header first, for ref.
func (m *MockRowSource) SetSheet(ref service.SheetRef, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sheets[ref.String()] = rows
}

// SetReadError configures the mock to fail every read.
func (m *MockRowSource) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadFunc = func(_ context.Context, _ service.SheetRef) ([]string, [][]string, error) {
		return nil, nil, err
	}
}

// ReadRows implements service.RowSource.
func (m *MockRowSource) ReadRows(ctx context.Context, ref service.SheetRef) ([]string, [][]string, error) {
	m.mu.Lock()
	m.ReadCalls = append(m.ReadCalls, ref)
	readFunc := m.ReadFunc
	rows, ok := m.Sheets[ref.String()]
	m.mu.Unlock()

	if readFunc != nil {
		return readFunc(ctx, ref)
	}
	if !ok || len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", common.ErrSourceUnavailable, ref)
	}
	return rows[0], rows[1:], nil
}

// GetReadCalls returns a copy of all read calls.
func (m *MockRowSource) GetReadCalls() []service.SheetRef {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]service.SheetRef, len(m.ReadCalls))
	copy(calls, m.ReadCalls)
	return calls
}
