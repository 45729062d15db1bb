package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"reel-script-api/internal/config"
	"reel-script-api/internal/domain/entity"
	"reel-script-api/pkg/metrics"
)

// Validator 脚本规则校验器。校验是纯函数：不访问网络，
// 对同一输入总是产生相同结果，所有规则全部执行、不短路。
type Validator struct {
	rules config.ValidationConfig
}

// NewValidator 创建校验器
func NewValidator(rules config.ValidationConfig) *Validator {
	return &Validator{rules: rules}
}

// Validate 按全部规则校验脚本，返回错误与警告清单。
// 错误导致 is_valid=false，警告不影响有效性。
func (v *Validator) Validate(script *entity.ReelScript, brand *entity.BrandProfile) entity.ValidationResult {
	var errs []string
	var warnings []string

	errs = append(errs, v.checkWordCounts(script)...)
	errs = append(errs, v.checkCaptionLength(script)...)
	errs = append(errs, v.checkBannedWords(script, brand.DoNotUse)...)
	errs = append(errs, v.checkHashtags(script)...)

	warnings = append(warnings, v.checkCTA(script)...)
	warnings = append(warnings, v.checkBrandVoice(script, brand.BrandVoice)...)

	result := entity.NewValidationResult(errs, warnings)
	if result.IsValid {
		metrics.ValidationTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.ValidationTotal.WithLabelValues("invalid").Inc()
	}
	return result
}

// checkWordCounts 校验 hook/body/cta 的词数上下限
func (v *Validator) checkWordCounts(script *entity.ReelScript) []string {
	var errs []string

	fields := []struct {
		name  string
		value string
		min   int
		max   int
	}{
		{"Hook", script.Hook, v.rules.MinHookWords, v.rules.MaxHookWords},
		{"Body", script.Body, v.rules.MinBodyWords, v.rules.MaxBodyWords},
		{"Cta", script.CTA, v.rules.MinCTAWords, v.rules.MaxCTAWords},
	}

	for _, f := range fields {
		count := len(strings.Fields(f.value))
		switch {
		case count < f.min:
			errs = append(errs, fmt.Sprintf("%s too short: %d words (minimum: %d)", f.name, count, f.min))
			metrics.ValidationRuleHits.WithLabelValues("word_count", "error").Inc()
		case count > f.max:
			errs = append(errs, fmt.Sprintf("%s too long: %d words (maximum: %d)", f.name, count, f.max))
			metrics.ValidationRuleHits.WithLabelValues("word_count", "error").Inc()
		}
	}
	return errs
}

// checkCaptionLength 校验 caption 的字符数上下限
func (v *Validator) checkCaptionLength(script *entity.ReelScript) []string {
	var errs []string

	count := utf8.RuneCountInString(script.Caption)
	switch {
	case count < v.rules.MinCaptionLength:
		errs = append(errs, fmt.Sprintf("Caption too short: %d characters (minimum: %d)", count, v.rules.MinCaptionLength))
		metrics.ValidationRuleHits.WithLabelValues("caption_length", "error").Inc()
	case count > v.rules.MaxCaptionLength:
		errs = append(errs, fmt.Sprintf("Caption too long: %d characters (maximum: %d)", count, v.rules.MaxCaptionLength))
		metrics.ValidationRuleHits.WithLabelValues("caption_length", "error").Inc()
	}
	return errs
}

// checkBannedWords 检查禁用词，大小写不敏感的子串匹配，
// 覆盖 hook/body/cta/caption 全文
func (v *Validator) checkBannedWords(script *entity.ReelScript, banned []string) []string {
	if len(banned) == 0 {
		return nil
	}

	fullText := strings.ToLower(strings.Join([]string{
		script.Hook, script.Body, script.CTA, script.Caption,
	}, " "))

	var found []string
	for _, word := range banned {
		if word == "" {
			continue
		}
		if strings.Contains(fullText, strings.ToLower(word)) {
			found = append(found, word)
		}
	}

	if len(found) == 0 {
		return nil
	}
	metrics.ValidationRuleHits.WithLabelValues("banned_words", "error").Inc()
	return []string{fmt.Sprintf("Script contains banned words: %s", strings.Join(found, ", "))}
}

// checkHashtags 校验话题标签数量与格式
func (v *Validator) checkHashtags(script *entity.ReelScript) []string {
	var errs []string

	n := len(script.Hashtags)
	switch {
	case n < v.rules.MinHashtags:
		errs = append(errs, fmt.Sprintf("Too few hashtags: %d (minimum: %d)", n, v.rules.MinHashtags))
		metrics.ValidationRuleHits.WithLabelValues("hashtag_count", "error").Inc()
	case n > v.rules.MaxHashtags:
		errs = append(errs, fmt.Sprintf("Too many hashtags: %d (maximum: %d)", n, v.rules.MaxHashtags))
		metrics.ValidationRuleHits.WithLabelValues("hashtag_count", "error").Inc()
	}

	for _, tag := range script.Hashtags {
		if !strings.HasPrefix(tag, "#") {
			errs = append(errs, fmt.Sprintf("Invalid hashtag format: %s (must start with #)", tag))
			metrics.ValidationRuleHits.WithLabelValues("hashtag_format", "error").Inc()
		} else if strings.Contains(tag, " ") {
			errs = append(errs, fmt.Sprintf("Invalid hashtag: %s (cannot contain spaces)", tag))
			metrics.ValidationRuleHits.WithLabelValues("hashtag_format", "error").Inc()
		}
	}
	return errs
}

// checkCTA CTA 效果检查，仅产生警告
func (v *Validator) checkCTA(script *entity.ReelScript) []string {
	var warnings []string
	ctaLower := strings.ToLower(script.CTA)

	hasAction := false
	for _, word := range actionWords {
		if strings.Contains(ctaLower, word) {
			hasAction = true
			break
		}
	}
	if !hasAction {
		warnings = append(warnings, "CTA might be more effective with an action verb")
		metrics.ValidationRuleHits.WithLabelValues("cta_action", "warning").Inc()
	}

	hasUrgency := false
	for _, word := range urgencyWords {
		if strings.Contains(ctaLower, word) {
			hasUrgency = true
			break
		}
	}
	if !hasUrgency {
		warnings = append(warnings, "CTA could benefit from urgency language")
		metrics.ValidationRuleHits.WithLabelValues("cta_urgency", "warning").Inc()
	}

	return warnings
}

// checkBrandVoice 品牌语气对齐检查，仅产生警告。
// 语气词表覆盖不到的语气不计入。
func (v *Validator) checkBrandVoice(script *entity.ReelScript, brandVoice []string) []string {
	if len(brandVoice) == 0 {
		return nil
	}

	fullText := strings.ToLower(strings.Join([]string{
		script.Hook, script.Body, script.CTA,
	}, " "))

	matches := 0
	for _, voice := range brandVoice {
		keywords, ok := brandVoiceKeywords[strings.ToLower(voice)]
		if !ok {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(fullText, kw) {
				matches++
			}
		}
	}

	if matches > 0 {
		return nil
	}
	metrics.ValidationRuleHits.WithLabelValues("brand_voice", "warning").Inc()
	return []string{fmt.Sprintf("Script may not align with brand voice: %s", strings.Join(brandVoice, ", "))}
}
