package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsTasks(t *testing.T) {
	p := NewPool(config.QueueConfig{Workers: 3, MaxSize: 64})

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(context.Background(), func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		}))
	}
	wg.Wait()
	p.Close()

	assert.Equal(t, int64(50), atomic.LoadInt64(&count))
	status := p.Status()
	assert.Equal(t, int64(50), status.ProcessedCount)
	assert.Equal(t, 3, status.Workers)
}

func TestPoolFull(t *testing.T) {
	p := NewPool(config.QueueConfig{Workers: 1, MaxSize: 1})
	defer p.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() {
		close(started)
		<-block
	}))
	<-started

	require.NoError(t, p.Submit(context.Background(), func() {}))
	err := p.Submit(context.Background(), func() {})
	require.Error(t, err)
	assert.Equal(t, common.ErrQueueFull.Code, common.AsCustomError(err).Code)

	close(block)
}

func TestPoolClosed(t *testing.T) {
	p := NewPool(config.QueueConfig{Workers: 2, MaxSize: 4})
	assert.False(t, p.Closed())
	p.Close()
	p.Close()
	assert.True(t, p.Closed())

	err := p.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, common.ErrQueueClosed)
}

func TestPoolCanceledContext(t *testing.T) {
	p := NewPool(config.QueueConfig{Workers: 1, MaxSize: 1})
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Submit(ctx, func() {}), context.Canceled)
}

func TestPoolRecoversPanics(t *testing.T) {
	p := NewPool(config.QueueConfig{Workers: 1, MaxSize: 2})

	require.NoError(t, p.Submit(context.Background(), func() { panic("boom") }))
	p.Close()

	assert.Equal(t, int64(1), p.Status().FailedCount)
}
