package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/core/ai/queue"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"
)

// Response AI 回應
type Response struct {
	Content  string `json:"content"`
	CacheHit bool   `json:"cache_hit"`
}

// Service AI 服務，負責快取與排隊
type Service struct {
	config   *config.Config
	provider provider.Provider
	cache    cache.Cache
	queue    *queue.Manager
}

// NewService 創建 AI 服務並啟動隊列 worker，cache 可為 nil
func NewService(cfg *config.Config, p provider.Provider, c cache.Cache) *Service {
	q := queue.NewManager(&cfg.Queue)
	q.Start(p.Generate)

	return &Service{
		config:   cfg,
		provider: p,
		cache:    c,
		queue:    q,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*Response, error) {
	// 統一 prompt 格式，合併多餘空白，確保快取 key 一致
	prompt = strings.Join(strings.Fields(prompt), " ")
	if prompt == "" {
		return nil, common.ErrInvalidRequest.Wrap(fmt.Errorf("empty prompt"))
	}

	key := cache.Key(prompt)
	if s.cache != nil {
		if val, ok := s.cache.Get(ctx, key); ok {
			return &Response{Content: val, CacheHit: true}, nil
		}
	}

	start := time.Now()
	resp, err := s.queue.Submit(ctx, provider.NewRecipeRequest(prompt, s.config.OpenRouter.MaxTokens, s.config.AI.Temperature))
	common.LogAICall(time.Since(start), err, requestIDFrom(ctx))
	if err != nil {
		if _, ok := err.(*common.CustomError); ok {
			return nil, err
		}
		return nil, common.ErrAIServiceError.Wrap(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp.Content); err != nil {
			common.LogWarn("寫入快取失敗", zap.Error(err))
		}
	}

	return &Response{Content: resp.Content}, nil
}

// QueueStatus 目前的隊列狀態
func (s *Service) QueueStatus() *queue.Status {
	return s.queue.GetQueueStatus()
}

// Model 使用中的模型
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// Close 停止隊列
func (s *Service) Close() {
	s.queue.Close()
}

type requestIDKey struct{}

// WithRequestID 將請求 ID 放入 context，供日誌使用
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
