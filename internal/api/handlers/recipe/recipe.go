package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-assistant/internal/api/handlers"
	recipeService "recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"
)

// TextRequest 直接提交的食譜文字
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// HandleParse 解析文字但不儲存
func (h *Handler) HandleParse(c *gin.Context) {
	var req TextRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	parsed, ok := recipeService.Parse(req.Text)
	if !ok {
		handlers.RespondError(c, common.ErrNotARecipe)
		return
	}
	c.JSON(http.StatusOK, parsed)
}

// HandleGenerate 請模型產生食譜並儲存
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := handlers.RequestID(c)

	var req recipeService.GenerateRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("dish_name", req.DishName),
	)

	stored, err := h.service.Generate(handlers.Context(c), req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("食譜生成成功",
		zap.String("request_id", requestID),
		zap.String("recipe_id", stored.ID),
		zap.Bool("has_nutrition", stored.Nutrition.HasNutrients()),
	)
	c.JSON(http.StatusCreated, stored)
}

// HandleImport 解析使用者提供的文字並儲存
func (h *Handler) HandleImport(c *gin.Context) {
	var req TextRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	stored, err := h.service.Import(handlers.Context(c), req.Text)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// HandleGet 取得已儲存的食譜
func (h *Handler) HandleGet(c *gin.Context) {
	stored, err := h.service.Get(handlers.Context(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}
