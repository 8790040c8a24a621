package graph

import (
	"context"
	"sync"
	"time"
)

// MockCall represents a recorded statement execution on a mock session.
type MockCall struct {
	Cypher    string
	Params    map[string]any
	Timestamp time.Time
}

// MockSessionSource is a SessionSource for tests. It counts session
// acquisitions and releases, queues canned results FIFO, and records
// every executed statement for verification.
type MockSessionSource struct {
	mu sync.Mutex

	acquired int
	closed   int
	calls    []MockCall

	results  [][]Record
	runError error
}

// NewMockSessionSource creates an empty mock session source.
func NewMockSessionSource() *MockSessionSource {
	return &MockSessionSource{}
}

// Session hands out a mock session and counts the acquisition.
func (m *MockSessionSource) Session(ctx context.Context) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquired++
	return &mockSession{source: m}
}

// AddResult queues one statement's records (FIFO across Run calls).
func (m *MockSessionSource) AddResult(records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, records)
}

// SetRunError configures every subsequent Run to fail with err.
func (m *MockSessionSource) SetRunError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runError = err
}

// Acquired returns how many sessions have been handed out.
func (m *MockSessionSource) Acquired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquired
}

// Closed returns how many sessions have been released.
func (m *MockSessionSource) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Calls returns a copy of every recorded statement execution.
func (m *MockSessionSource) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Reset clears recorded calls, counters, queued results, and errors.
func (m *MockSessionSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquired = 0
	m.closed = 0
	m.calls = nil
	m.results = nil
	m.runError = nil
}

func (m *MockSessionSource) run(cypher string, params map[string]any) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{
		Cypher:    cypher,
		Params:    params,
		Timestamp: time.Now(),
	})

	if m.runError != nil {
		return nil, m.runError
	}

	if len(m.results) > 0 {
		records := m.results[0]
		m.results = m.results[1:]
		return records, nil
	}

	return []Record{}, nil
}

func (m *MockSessionSource) sessionClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

type mockSession struct {
	source *MockSessionSource
}

func (s *mockSession) Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	return s.source.run(cypher, params)
}

func (s *mockSession) Close(ctx context.Context) error {
	s.source.sessionClosed()
	return nil
}
