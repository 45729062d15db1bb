// Package entity 定义领域实体
package entity

import (
	"fmt"
	"strings"

	"reel-script-api/pkg/errors"
)

// 脚本时长策略边界（秒）
const (
	MinScriptLength = 15
	MaxScriptLength = 60
)

// ScriptRequest 单次脚本生成请求参数，构造后不可变
type ScriptRequest struct {
	Goal         string `json:"goal"`
	HookType     string `json:"hook_type"`
	Emotion      string `json:"emotion"`
	ScriptLength int    `json:"script_length"`
	Language     string `json:"language"`
	CTA          string `json:"cta"`
}

// Normalize 填充默认值并规整字段
func (r *ScriptRequest) Normalize() {
	r.Goal = strings.TrimSpace(r.Goal)
	r.HookType = strings.ToLower(strings.TrimSpace(r.HookType))
	r.Emotion = strings.ToLower(strings.TrimSpace(r.Emotion))
	if r.Language == "" {
		r.Language = "english"
	}
}

// Validate 校验请求参数；时长越界在任何检索发生之前拒绝
func (r *ScriptRequest) Validate() error {
	if r.ScriptLength < MinScriptLength || r.ScriptLength > MaxScriptLength {
		return errors.New(errors.CodeInvalidParam, "script_length out of range").
			WithDetail(fmt.Sprintf("script_length must be between %d and %d seconds, got %d",
				MinScriptLength, MaxScriptLength, r.ScriptLength))
	}
	if r.Goal == "" {
		return errors.New(errors.CodeInvalidParam, "goal is required")
	}
	if !IsSupportedHookType(r.HookType) {
		return errors.New(errors.CodeInvalidParam, "unsupported hook_type").
			WithDetail("hook_type: " + r.HookType)
	}
	if strings.TrimSpace(r.CTA) == "" {
		return errors.New(errors.CodeInvalidParam, "cta is required")
	}
	return nil
}

// ReelScript LLM 结构化输出，单次请求的产物，不做持久化
type ReelScript struct {
	Hook     string   `json:"hook"`
	Body     string   `json:"body"`
	CTA      string   `json:"cta"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// ValidationResult 脚本校验结果
// 不变式：IsValid 当且仅当 Errors 为空；Warnings 不影响有效性
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult 根据错误列表派生有效性
func NewValidationResult(errs, warnings []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
