package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"
)

// ErrClosed 隊列已關閉
var ErrClosed = errors.New("queue manager is closed")

// Handler 實際處理請求的函式，通常是 provider.Generate
type Handler func(ctx context.Context, req *provider.Request) (*provider.Response, error)

// Request 隊列請求
type Request struct {
	Context context.Context
	Request *provider.Request
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Response *provider.Response
	Error    error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager 固定數量 worker 的請求隊列，限制同時呼叫模型的數量
type Manager struct {
	config    *config.QueueConfig
	queue     chan *Request
	done      chan struct{}
	processed int64
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
}

// NewManager 創建新的隊列管理器
func NewManager(cfg *config.QueueConfig) *Manager {
	return &Manager{
		config: cfg,
		queue:  make(chan *Request, cfg.MaxSize),
		done:   make(chan struct{}),
	}
}

// Start 啟動 worker
func (m *Manager) Start(handler Handler) {
	m.startOnce.Do(func() {
		for i := 0; i < m.config.Workers; i++ {
			m.wg.Add(1)
			go m.worker(handler)
		}
		common.LogInfo("請求隊列已啟動",
			zap.Int("workers", m.config.Workers),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
	})
}

func (m *Manager) worker(handler Handler) {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			m.drain()
			return
		case req := <-m.queue:
			m.handle(handler, req)
		}
	}
}

func (m *Manager) handle(handler Handler, req *Request) {
	if err := req.Context.Err(); err != nil {
		req.Result <- Result{Error: err}
		return
	}
	resp, err := handler(req.Context, req.Request)
	atomic.AddInt64(&m.processed, 1)
	req.Result <- Result{Response: resp, Error: err}
}

// drain 關閉時通知仍在排隊的請求
func (m *Manager) drain() {
	for {
		select {
		case req := <-m.queue:
			req.Result <- Result{Error: ErrClosed}
		default:
			return
		}
	}
}

// Enqueue 將請求加入隊列，隊列已滿時立即回傳錯誤
func (m *Manager) Enqueue(ctx context.Context, req *provider.Request) (<-chan Result, error) {
	select {
	case <-m.done:
		return nil, ErrClosed
	default:
	}

	queueReq := &Request{
		Context: ctx,
		Request: req,
		Result:  make(chan Result, 1),
	}

	select {
	case m.queue <- queueReq:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
		return queueReq.Result, nil
	default:
		common.LogWarn("請求隊列已滿", zap.Int("max_queue_size", m.config.MaxSize))
		return nil, common.ErrQueueFull
	}
}

// Submit 加入隊列並等待結果
func (m *Manager) Submit(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	ch, err := m.Enqueue(ctx, req)
	if err != nil {
		return nil, err
	}

	select {
	case res := <-ch:
		return res.Response, res.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		return nil, ErrClosed
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		MaxQueueSize:   m.config.MaxSize,
		Workers:        m.config.Workers,
	}
}

// Close 關閉隊列管理器並等待 worker 結束
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}
