package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"
)

func echoHandler(_ context.Context, req *provider.Request) (*provider.Response, error) {
	return &provider.Response{Content: req.Messages[len(req.Messages)-1].Content}, nil
}

func TestManager_Submit(t *testing.T) {
	m := NewManager(&config.QueueConfig{Workers: 2, MaxSize: 10})
	m.Start(echoHandler)
	defer m.Close()

	resp, err := m.Submit(context.Background(), provider.NewRecipeRequest("pasta", 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "pasta", resp.Content)
	assert.Equal(t, 1, m.GetQueueStatus().ProcessedCount)
}

func TestManager_HandlerError(t *testing.T) {
	m := NewManager(&config.QueueConfig{Workers: 1, MaxSize: 1})
	m.Start(func(context.Context, *provider.Request) (*provider.Response, error) {
		return nil, errors.New("boom")
	})
	defer m.Close()

	_, err := m.Submit(context.Background(), provider.NewRecipeRequest("x", 0, 0))
	assert.EqualError(t, err, "boom")
}

func TestManager_QueueFull(t *testing.T) {
	m := NewManager(&config.QueueConfig{Workers: 1, MaxSize: 1})
	defer m.Close()

	// 沒有啟動 worker，第二個請求一定放不進去
	_, err := m.Enqueue(context.Background(), provider.NewRecipeRequest("a", 0, 0))
	require.NoError(t, err)

	_, err = m.Enqueue(context.Background(), provider.NewRecipeRequest("b", 0, 0))
	assert.ErrorIs(t, err, common.ErrQueueFull)
}

func TestManager_LimitsConcurrency(t *testing.T) {
	var running, peak int32
	m := NewManager(&config.QueueConfig{Workers: 2, MaxSize: 20})
	m.Start(func(ctx context.Context, req *provider.Request) (*provider.Response, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return &provider.Response{Content: "ok"}, nil
	})
	defer m.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Submit(context.Background(), provider.NewRecipeRequest("x", 0, 0))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestManager_Closed(t *testing.T) {
	m := NewManager(&config.QueueConfig{Workers: 1, MaxSize: 1})
	m.Start(echoHandler)
	m.Close()

	_, err := m.Submit(context.Background(), provider.NewRecipeRequest("x", 0, 0))
	assert.ErrorIs(t, err, ErrClosed)
}
