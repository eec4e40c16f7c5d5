// Package mealplan 餐點計畫與購物清單 API
package mealplan

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-assistant/internal/api/handlers"
	"recipe-assistant/internal/core/grocery"
	"recipe-assistant/internal/infrastructure/storage"
	"recipe-assistant/internal/pkg/common"
)

// CreateRequest 建立計畫
type CreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// Handler 餐點計畫處理程序
type Handler struct {
	store   storage.Store
	grocery *grocery.Service
}

// NewHandler 創建餐點計畫處理程序
func NewHandler(store storage.Store, grocerySvc *grocery.Service) *Handler {
	return &Handler{store: store, grocery: grocerySvc}
}

// HandleCreate 建立新的餐點計畫
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateRequest
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		handlers.RespondError(c, common.NewValidationError("name must not be blank"))
		return
	}

	plan, err := h.store.CreateMealPlan(handlers.Context(c), name)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// HandleGet 取得計畫
func (h *Handler) HandleGet(c *gin.Context) {
	plan, err := h.store.GetMealPlan(handlers.Context(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// HandleAddEntry 將食譜加入計畫
func (h *Handler) HandleAddEntry(c *gin.Context) {
	var req storage.NewEntry
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	entry, err := h.store.AddMealPlanEntry(handlers.Context(c), c.Param("id"), req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogDebug("計畫新增餐點",
		zap.String("plan_id", entry.PlanID),
		zap.String("recipe_id", entry.RecipeID),
		zap.Int("position", entry.Position),
	)
	c.JSON(http.StatusCreated, entry)
}

// HandleGroceryList 產生計畫的購物清單
func (h *Handler) HandleGroceryList(c *gin.Context) {
	list, err := h.grocery.BuildList(handlers.Context(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
