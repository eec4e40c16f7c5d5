package provider

import (
	"context"
)

// Message 表示與 AI 模型的對話消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Usage token 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response 表示從 AI 提供者收到的響應
type Response struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 生成 AI 響應
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string
}

// SystemPrompt 要求模型以固定的 markdown 格式回覆食譜
const SystemPrompt = `You are a recipe assistant. Always answer with a single-serving recipe in this format:
# Recipe Title
**Servings:** 1
**Prep Time:** ...
**Cook Time:** ...

### Ingredients
- item

### Instructions
1. step

### Tips & Variations
- tip

### Nutrition (per serving)
**Total per serving:** N cal, Pg protein, Cg carbs, Fg fat
**Nutrition Rating:** A, B, C or D`

// NewRecipeRequest 以使用者 prompt 建立對話請求
func NewRecipeRequest(prompt string, maxTokens int, temperature float64) *Request {
	return &Request{
		Messages: []Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
