package churon

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// SessionPool manages a fixed number of independent sessions over the same
// model for safe concurrent inference. Each call borrows a session, runs, and
// returns it automatically. Sessions in the pool are fully independent engine
// sessions, so no cross-session synchronization is needed.
type SessionPool struct {
	mu       sync.Mutex // guards closed and the send side of sessions
	sessions chan *Session
	closed   bool

	totalRuns    atomic.Int64
	totalErrors  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// NewSessionPool opens n sessions for the model at path. The options are
// applied to every session.
func NewSessionPool(path string, n int, opts ...Option) (*SessionPool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", n)
	}

	pool := &SessionPool{
		sessions: make(chan *Session, n),
	}
	for i := 0; i < n; i++ {
		session, err := Open(path, opts...)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to open session %d: %w", i, err)
		}
		pool.sessions <- session
	}
	return pool, nil
}

// Run borrows a session, executes the model, and returns the session to the
// pool. It blocks until a session is available or ctx is cancelled.
func (p *SessionPool) Run(ctx context.Context, inputs map[string]*HostValue) (map[string]*HostValue, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}

	var session *Session
	select {
	case session = <-p.sessions:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer p.release(session)

	start := time.Now()
	outputs, err := session.Run(ctx, inputs)

	p.totalRuns.Add(1)
	p.totalLatency.Add(int64(time.Since(start)))
	if err != nil {
		p.totalErrors.Add(1)
	}
	return outputs, err
}

// release returns a borrowed session, or closes it when the pool was closed
// while it was out. The mutex makes the closed check and the channel send
// atomic with respect to Close, so the send never races the channel close.
// The send itself cannot block: the channel holds every session the pool owns.
func (p *SessionPool) release(session *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		session.Close()
		return
	}
	p.sessions <- session
}

// Size returns the total number of sessions in the pool.
func (p *SessionPool) Size() int { return cap(p.sessions) }

// Available returns the number of idle sessions currently available.
func (p *SessionPool) Available() int { return len(p.sessions) }

// PoolStats contains pool usage statistics.
type PoolStats struct {
	TotalRuns    int64
	TotalErrors  int64
	TotalLatency time.Duration
}

// AvgLatency returns the average inference latency, or 0 if no runs have
// completed.
func (s PoolStats) AvgLatency() time.Duration {
	if s.TotalRuns == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.TotalRuns)
}

// Stats returns a snapshot of the pool's usage counters.
func (p *SessionPool) Stats() PoolStats {
	return PoolStats{
		TotalRuns:    p.totalRuns.Load(),
		TotalErrors:  p.totalErrors.Load(),
		TotalLatency: time.Duration(p.totalLatency.Load()),
	}
}

// Close drains the pool and closes all sessions, including any currently
// borrowed (those close on return). It is safe to call multiple times.
func (p *SessionPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.sessions)
	p.mu.Unlock()

	for session := range p.sessions {
		session.Close()
	}
}
