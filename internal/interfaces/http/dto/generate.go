package dto

import (
	"reel-script-api/internal/application/generation"
	"reel-script-api/internal/domain/entity"
)

// TargetAudienceRequest 目标受众
type TargetAudienceRequest struct {
	AgeRange   string   `json:"age_range"`
	Gender     string   `json:"gender"`
	Location   string   `json:"location"`
	PainPoints []string `json:"pain_points"`
}

// BrandProfileRequest 品牌画像
type BrandProfileRequest struct {
	BrandName      string                `json:"brand_name" binding:"required"`
	Sector         string                `json:"sector" binding:"required"`
	TargetAudience TargetAudienceRequest `json:"target_audience"`
	BrandVoice     []string              `json:"brand_voice"`
	Offer          string                `json:"offer" binding:"required"`
	Platform       string                `json:"platform"`
	CTAStyle       string                `json:"cta_style"`
	DoNotUse       []string              `json:"do_not_use"`
}

// ScriptParamsRequest 脚本生成参数
type ScriptParamsRequest struct {
	Goal         string `json:"goal" binding:"required"`
	HookType     string `json:"hook_type" binding:"required"`
	Emotion      string `json:"emotion"`
	ScriptLength int    `json:"script_length" binding:"required"`
	Language     string `json:"language"`
	CTA          string `json:"cta" binding:"required"`
}

// GenerateReelRequest 生成接口请求体
type GenerateReelRequest struct {
	BrandProfile  BrandProfileRequest `json:"brand_profile" binding:"required"`
	ScriptRequest ScriptParamsRequest `json:"script_request" binding:"required"`
}

// ToBrandEntity 转换为领域实体
func (r *BrandProfileRequest) ToBrandEntity() *entity.BrandProfile {
	return &entity.BrandProfile{
		BrandName: r.BrandName,
		Sector:    r.Sector,
		TargetAudience: entity.TargetAudience{
			AgeRange:   r.TargetAudience.AgeRange,
			Gender:     r.TargetAudience.Gender,
			Location:   r.TargetAudience.Location,
			PainPoints: r.TargetAudience.PainPoints,
		},
		BrandVoice: r.BrandVoice,
		Offer:      r.Offer,
		Platform:   r.Platform,
		CTAStyle:   r.CTAStyle,
		DoNotUse:   r.DoNotUse,
	}
}

// ToScriptEntity 转换为领域实体
func (r *ScriptParamsRequest) ToScriptEntity() *entity.ScriptRequest {
	return &entity.ScriptRequest{
		Goal:         r.Goal,
		HookType:     r.HookType,
		Emotion:      r.Emotion,
		ScriptLength: r.ScriptLength,
		Language:     r.Language,
		CTA:          r.CTA,
	}
}

// ReelScriptResponse 生成的脚本
type ReelScriptResponse struct {
	Hook     string   `json:"hook"`
	Body     string   `json:"body"`
	CTA      string   `json:"cta"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// ValidationResultResponse 校验结果
type ValidationResultResponse struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// GenerationMetaResponse 生成元信息
type GenerationMetaResponse struct {
	Brand        string `json:"brand"`
	Sector       string `json:"sector"`
	Goal         string `json:"goal"`
	HookType     string `json:"hook_type"`
	ScriptLength int    `json:"script_length"`
	Attempts     int    `json:"attempts"`
	ExamplesUsed int    `json:"examples_used"`
	Degraded     bool   `json:"degraded"`
	DurationMs   int64  `json:"duration_ms"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	PromptTokens int    `json:"prompt_tokens"`
	TotalTokens  int    `json:"total_tokens"`
}

// GenerateReelResponse 生成接口响应体
type GenerateReelResponse struct {
	Script     ReelScriptResponse       `json:"script"`
	Validation ValidationResultResponse `json:"validation"`
	Meta       GenerationMetaResponse   `json:"meta"`
}

// ToGenerateReelResponse 转换生成结果
func ToGenerateReelResponse(result *generation.Result) GenerateReelResponse {
	return GenerateReelResponse{
		Script: ReelScriptResponse{
			Hook:     result.Script.Hook,
			Body:     result.Script.Body,
			CTA:      result.Script.CTA,
			Caption:  result.Script.Caption,
			Hashtags: result.Script.Hashtags,
		},
		Validation: ValidationResultResponse{
			IsValid:  result.Validation.IsValid,
			Errors:   result.Validation.Errors,
			Warnings: result.Validation.Warnings,
		},
		Meta: GenerationMetaResponse{
			Brand:        result.Meta.Brand,
			Sector:       result.Meta.Sector,
			Goal:         result.Meta.Goal,
			HookType:     result.Meta.HookType,
			ScriptLength: result.Meta.ScriptLength,
			Attempts:     result.Meta.Attempts,
			ExamplesUsed: result.Meta.ExamplesUsed,
			Degraded:     result.Meta.Degraded,
			DurationMs:   result.Meta.DurationMs,
			Provider:     result.Meta.Provider,
			Model:        result.Meta.Model,
			PromptTokens: result.Meta.Usage.PromptTokens,
			TotalTokens:  result.Meta.Usage.TotalTokens,
		},
	}
}
