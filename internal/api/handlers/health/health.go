package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-assistant/internal/core/ai/queue"
	"recipe-assistant/internal/pkg/common"
)

// Pinger 可檢查連線的依賴，例如資料庫
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueReporter 提供 AI 隊列狀態
type QueueReporter interface {
	QueueStatus() *queue.Status
	Model() string
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Model     string                 `json:"model,omitempty"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version string
	db      Pinger
	ai      QueueReporter
}

// NewHandler 創建健康檢查處理器，ai 可為 nil
func NewHandler(version string, db Pinger, ai QueueReporter) *Handler {
	return &Handler{version: version, db: db, ai: ai}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	}
	if h.ai != nil {
		response.Model = h.ai.Model()
		response.Queue = h.ai.QueueStatus()
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查，資料庫無法連線時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			common.LogWarn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
				Code:    common.ErrServiceUnavailable.Code,
				Message: common.ErrServiceUnavailable.Message,
				Details: "database unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
