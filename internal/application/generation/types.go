// Package generation 编排检索、LLM 调用与校验，产出 Reel 脚本
package generation

import (
	"reel-script-api/internal/application/retrieval"
	"reel-script-api/internal/domain/entity"
)

// TokenUsage 单次生成消耗的 token 统计（跨所有 LLM 调用累加）
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Meta 生成过程元信息，回显请求关键参数便于调用方关联
type Meta struct {
	Brand        string `json:"brand"`
	Sector       string `json:"sector"`
	Goal         string `json:"goal"`
	HookType     string `json:"hook_type"`
	ScriptLength int    `json:"script_length"`

	// Attempts 整体生成尝试次数（含校验失败触发的重新生成）
	Attempts int `json:"attempts"`
	// ExamplesUsed 提示词中注入的参考示例数量
	ExamplesUsed int `json:"examples_used"`
	// Degraded 检索降级标记：嵌入或索引不可用时无示例生成
	Degraded bool `json:"degraded"`
	// DurationMs 整体耗时（毫秒）
	DurationMs int64 `json:"duration_ms"`
	// Provider / Model 实际使用的 LLM 提供商与模型
	Provider string     `json:"provider"`
	Model    string     `json:"model"`
	Usage    TokenUsage `json:"usage"`
}

// Result 一次生成的完整结果。校验失败不是错误：
// 重试耗尽后返回最后一次的脚本与失败的校验结果。
type Result struct {
	Script     *entity.ReelScript      `json:"script"`
	Validation entity.ValidationResult `json:"validation"`
	Examples   []retrieval.Example     `json:"examples"`
	Meta       Meta                    `json:"meta"`
}
