// Package handlers 放置各 handler 共用的回應工具
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	aiservice "recipe-assistant/internal/core/ai/service"
	"recipe-assistant/internal/pkg/common"
)

// RequestID 取得 requestid 中間件產生的請求 ID
func RequestID(c *gin.Context) string {
	return requestid.Get(c)
}

// Context 回傳帶有請求 ID 的 context，供下游日誌使用
func Context(c *gin.Context) context.Context {
	return aiservice.WithRequestID(c.Request.Context(), RequestID(c))
}

// BindJSON 解析請求 JSON，拒絕未知欄位與多餘資料，再執行 binding 標籤驗證
func BindJSON(c *gin.Context, v interface{}) error {
	if err := common.DecodeJSONStrict(c.Request.Body, v); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(v)
}

// BadRequest 請求格式錯誤
func BadRequest(c *gin.Context, err error) {
	common.LogWarn("請求格式無效",
		zap.Error(err),
		zap.String("request_id", RequestID(c)),
	)
	c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: "Invalid request format",
		Details: err.Error(),
	})
}

// RespondError 將錯誤轉換為 API 錯誤響應
func RespondError(c *gin.Context, err error) {
	requestID := RequestID(c)

	var custom *common.CustomError
	switch {
	case errors.As(err, &custom):
		if custom.Status >= http.StatusInternalServerError {
			common.LogError(custom.Message, zap.Error(err), zap.String("request_id", requestID))
		}
		c.JSON(custom.Status, common.ErrorResponse{Code: custom.Code, Message: custom.Message})
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		common.LogError("Request timeout", zap.String("request_id", requestID))
		c.JSON(http.StatusGatewayTimeout, common.ErrorResponse{
			Code:    common.ErrCodeGatewayTimeout,
			Message: common.ErrGatewayTimeout.Message,
		})
	default:
		common.LogError("未預期的錯誤", zap.Error(err), zap.String("request_id", requestID))
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrCodeInternalError,
			Message: common.ErrInternalError.Message,
		})
	}
}
