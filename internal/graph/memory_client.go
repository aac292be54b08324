package graph

import (
	"context"
	"sync"
)

// Access modes recorded by MemoryClient.
const (
	ModeRead  = "read"
	ModeWrite = "write"
)

// MemoryClient is a scripted implementation of the Client interface used for
// unit testing Cypher generation without a running graph database. Replies
// are consumed in order regardless of access mode.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []ExecutedQuery
	replies      []reply
	err          error
	connectivity error
	closed       bool
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Mode   string
	Query  string
	Params map[string]any
}

type reply struct {
	result Result
	err    error
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError makes every subsequent call fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushResult queues a result for the next call.
func (m *MemoryClient) PushResult(res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply{result: res})
	return m
}

// PushError queues a failure for the next call only.
func (m *MemoryClient) PushError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply{err: err})
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(ModeWrite, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(ModeRead, cypher, params)
}

func (m *MemoryClient) execute(mode, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, ExecutedQuery{
		Mode:   mode,
		Query:  cypher,
		Params: cloneData(params),
	})

	if m.err != nil {
		return Result{}, m.err
	}
	if len(m.replies) == 0 {
		return Result{}, nil
	}

	next := m.replies[0]
	m.replies = m.replies[1:]
	return next.result, next.err
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns a snapshot of every executed query.
func (m *MemoryClient) Calls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.calls...)
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
