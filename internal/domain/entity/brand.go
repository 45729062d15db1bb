// Package entity 定义领域实体
package entity

import (
	"strings"

	"reel-script-api/pkg/errors"
)

// TargetAudience 目标受众画像
type TargetAudience struct {
	AgeRange   string   `json:"age_range"`
	Gender     string   `json:"gender"`
	Location   string   `json:"location"`
	PainPoints []string `json:"pain_points"`
}

// BrandProfile 品牌画像，随请求提供，构造后不可变
type BrandProfile struct {
	BrandName      string         `json:"brand_name"`
	Sector         string         `json:"sector"`
	TargetAudience TargetAudience `json:"target_audience"`
	BrandVoice     []string       `json:"brand_voice"`
	Offer          string         `json:"offer"`
	Platform       string         `json:"platform"`
	CTAStyle       string         `json:"cta_style"`
	DoNotUse       []string       `json:"do_not_use,omitempty"`
}

// Normalize 填充默认值并规整字段
func (p *BrandProfile) Normalize() {
	p.BrandName = strings.TrimSpace(p.BrandName)
	p.Sector = strings.ToLower(strings.TrimSpace(p.Sector))
	if p.Platform == "" {
		p.Platform = "instagram"
	}
}

// Validate 校验品牌画像
func (p *BrandProfile) Validate() error {
	if strings.TrimSpace(p.BrandName) == "" {
		return errors.New(errors.CodeInvalidParam, "brand_name is required")
	}
	if !IsSupportedSector(p.Sector) {
		return errors.New(errors.CodeInvalidParam, "unsupported sector").
			WithDetail("sector: " + p.Sector)
	}
	if strings.TrimSpace(p.Offer) == "" {
		return errors.New(errors.CodeInvalidParam, "offer is required")
	}
	return nil
}
