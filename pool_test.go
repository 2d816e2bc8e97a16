package churon

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrchypark/churon/engine"
)

// poolEngine hands out a fresh scripted session per Open.
type poolEngine struct {
	mu       sync.Mutex
	sessions []*fakeSession
	openErr  error
}

func (e *poolEngine) Open(path string, providers []string) (engine.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.openErr != nil {
		return nil, e.openErr
	}
	s := sumModel()
	s.providers = providers
	e.sessions = append(e.sessions, s)
	return s, nil
}

func TestPoolRun(t *testing.T) {
	eng := &poolEngine{}
	pool, err := NewSessionPool("model.onnx", 2, WithEngine(eng))
	require.NoError(t, err)
	defer pool.Close()

	assert.Equal(t, 2, pool.Size())
	assert.Equal(t, 2, pool.Available())

	x, err := Float32Value([]float32{1, 2, 3}, []int64{1, 3})
	require.NoError(t, err)

	outputs, err := pool.Run(context.Background(), map[string]*HostValue{"x": x})
	require.NoError(t, err)
	data, _ := outputs["y"].Float32s()
	assert.Equal(t, []float32{6}, data)
	assert.Equal(t, 2, pool.Available(), "session must be returned after the run")
}

func TestPoolConcurrentRuns(t *testing.T) {
	eng := &poolEngine{}
	pool, err := NewSessionPool("model.onnx", 4, WithEngine(eng))
	require.NoError(t, err)
	defer pool.Close()

	x, err := Float32Value([]float32{1, 2, 3}, []int64{1, 3})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outputs, err := pool.Run(context.Background(), map[string]*HostValue{"x": x})
			assert.NoError(t, err)
			data, _ := outputs["y"].Float32s()
			assert.Equal(t, []float32{6}, data)
		}()
	}
	wg.Wait()

	stats := pool.Stats()
	assert.Equal(t, int64(32), stats.TotalRuns)
	assert.Equal(t, int64(0), stats.TotalErrors)
}

func TestPoolStats(t *testing.T) {
	eng := &poolEngine{}
	pool, err := NewSessionPool("model.onnx", 1, WithEngine(eng))
	require.NoError(t, err)
	defer pool.Close()

	x, err := Float32Value([]float32{1, 2, 3}, []int64{1, 3})
	require.NoError(t, err)
	_, err = pool.Run(context.Background(), map[string]*HostValue{"x": x})
	require.NoError(t, err)

	// A validation failure still counts as a run and an error.
	_, err = pool.Run(context.Background(), map[string]*HostValue{})
	require.Error(t, err)

	stats := pool.Stats()
	assert.Equal(t, int64(2), stats.TotalRuns)
	assert.Equal(t, int64(1), stats.TotalErrors)
	assert.GreaterOrEqual(t, stats.AvgLatency(), stats.TotalLatency/4)
}

func TestPoolInvalidSize(t *testing.T) {
	_, err := NewSessionPool("model.onnx", 0, WithEngine(&poolEngine{}))
	require.Error(t, err)
	_, err = NewSessionPool("model.onnx", -1, WithEngine(&poolEngine{}))
	require.Error(t, err)
}

func TestPoolOpenFailure(t *testing.T) {
	eng := &poolEngine{openErr: errors.New("no such file")}
	_, err := NewSessionPool("missing.onnx", 2, WithEngine(eng))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindModelLoad))
}

func TestPoolCloseWhileBorrowed(t *testing.T) {
	eng := &poolEngine{}
	pool, err := NewSessionPool("model.onnx", 1, WithEngine(eng))
	require.NoError(t, err)

	started := make(chan struct{})
	unblock := make(chan struct{})
	eng.sessions[0].runFn = func(ctx context.Context, inputs []engine.Tensor) ([]engine.Tensor, error) {
		close(started)
		<-unblock
		return nil, errors.New("terminated")
	}

	x, err := Float32Value([]float32{1, 2, 3}, []int64{1, 3})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pool.Run(context.Background(), map[string]*HostValue{"x": x})
	}()

	<-started
	pool.Close()
	close(unblock)
	<-done

	assert.Equal(t, 1, eng.sessions[0].closes,
		"a session borrowed across Close must be closed when returned")
}

func TestPoolRunCancelledWhileWaiting(t *testing.T) {
	eng := &poolEngine{}
	pool, err := NewSessionPool("model.onnx", 1, WithEngine(eng))
	require.NoError(t, err)
	defer pool.Close()

	borrowed := <-pool.sessions // occupy the only session

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	x, err := Float32Value([]float32{1, 2, 3}, []int64{1, 3})
	require.NoError(t, err)
	_, err = pool.Run(ctx, map[string]*HostValue{"x": x})
	assert.ErrorIs(t, err, context.Canceled)

	pool.release(borrowed)
	assert.Equal(t, 1, pool.Available())
}

func TestPoolClose(t *testing.T) {
	eng := &poolEngine{}
	pool, err := NewSessionPool("model.onnx", 2, WithEngine(eng))
	require.NoError(t, err)

	pool.Close()
	pool.Close()

	for _, s := range eng.sessions {
		assert.Equal(t, 1, s.closes)
	}

	_, err = pool.Run(context.Background(), map[string]*HostValue{})
	assert.ErrorIs(t, err, ErrSessionClosed)
}
