package validation

import (
	"reflect"
	"strings"
	"testing"

	"reel-script-api/internal/config"
	"reel-script-api/internal/domain/entity"
)

func testRules() config.ValidationConfig {
	return config.ValidationConfig{
		MinHookWords:     3,
		MaxHookWords:     15,
		MinBodyWords:     20,
		MaxBodyWords:     150,
		MinCTAWords:      3,
		MaxCTAWords:      15,
		MinCaptionLength: 50,
		MaxCaptionLength: 200,
		MinHashtags:      3,
		MaxHashtags:      10,
	}
}

func validScript() *entity.ReelScript {
	return &entity.ReelScript{
		Hook: "Are you tired of wasting money on gym memberships",
		Body: strings.Repeat("real workouts that fit your schedule ", 5) +
			"no equipment needed and results you can actually see",
		CTA:      "Download the app now for free",
		Caption:  "Your personalized home workout plan is one tap away. Start today and feel the difference.",
		Hashtags: []string{"#fitness", "#homeworkout", "#health"},
	}
}

func testBrand() *entity.BrandProfile {
	return &entity.BrandProfile{
		BrandName:  "FitLife",
		Sector:     "fitness",
		BrandVoice: []string{"authentic"},
		Offer:      "home workout app",
	}
}

func TestValidateValidScript(t *testing.T) {
	v := NewValidator(testRules())

	result := v.Validate(validScript(), testBrand())
	if !result.IsValid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
}

func TestValidateHookWordCount(t *testing.T) {
	v := NewValidator(testRules())

	script := validScript()
	script.Hook = "Too short"
	result := v.Validate(script, testBrand())

	if result.IsValid {
		t.Fatal("expected invalid")
	}
	if !containsSubstring(result.Errors, "Hook too short") {
		t.Errorf("errors = %v, want hook length error", result.Errors)
	}

	script.Hook = strings.Repeat("word ", 20)
	result = v.Validate(script, testBrand())
	if !containsSubstring(result.Errors, "Hook too long") {
		t.Errorf("errors = %v, want hook too long error", result.Errors)
	}
}

func TestValidateCaptionLength(t *testing.T) {
	v := NewValidator(testRules())

	script := validScript()
	script.Caption = "short caption"
	result := v.Validate(script, testBrand())

	if !containsSubstring(result.Errors, "Caption too short") {
		t.Errorf("errors = %v, want caption length error", result.Errors)
	}
}

func TestValidateBannedWords(t *testing.T) {
	v := NewValidator(testRules())

	brand := testBrand()
	brand.DoNotUse = []string{"cheap", "Guarantee"}

	script := validScript()
	script.Body += " absolutely cheap and a guarantee of results for everyone watching this"
	result := v.Validate(script, brand)

	if result.IsValid {
		t.Fatal("expected invalid")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "banned words") &&
			strings.Contains(e, "cheap") && strings.Contains(e, "Guarantee") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want banned words error naming both words", result.Errors)
	}
}

func TestValidateHashtags(t *testing.T) {
	v := NewValidator(testRules())

	tests := []struct {
		name     string
		hashtags []string
		wantErr  string
	}{
		{"too few", []string{"#one", "#two"}, "Too few hashtags"},
		{"missing prefix", []string{"#a", "#b", "fitness"}, "must start with #"},
		{"contains space", []string{"#a", "#b", "#home workout"}, "cannot contain spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := validScript()
			script.Hashtags = tt.hashtags
			result := v.Validate(script, testBrand())
			if !containsSubstring(result.Errors, tt.wantErr) {
				t.Errorf("errors = %v, want %q", result.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateCTAWarnings(t *testing.T) {
	v := NewValidator(testRules())

	script := validScript()
	script.CTA = "our product is here"
	result := v.Validate(script, testBrand())

	// 警告不影响有效性
	if !result.IsValid {
		t.Fatalf("warnings should not invalidate, errors: %v", result.Errors)
	}
	if !containsSubstring(result.Warnings, "action verb") {
		t.Errorf("warnings = %v, want action verb warning", result.Warnings)
	}
	if !containsSubstring(result.Warnings, "urgency") {
		t.Errorf("warnings = %v, want urgency warning", result.Warnings)
	}
}

func TestValidateBrandVoiceWarning(t *testing.T) {
	v := NewValidator(testRules())

	brand := testBrand()
	brand.BrandVoice = []string{"energetic"}

	// 文案不含 energetic 关键词
	script := validScript()
	result := v.Validate(script, brand)

	if !containsSubstring(result.Warnings, "brand voice") {
		t.Errorf("warnings = %v, want brand voice warning", result.Warnings)
	}

	// 命中关键词后警告消失
	script.Body += " this is amazing and awesome"
	result = v.Validate(script, brand)
	if containsSubstring(result.Warnings, "brand voice") {
		t.Errorf("warnings = %v, brand voice warning should be gone", result.Warnings)
	}
}

func TestValidateAllRulesReported(t *testing.T) {
	v := NewValidator(testRules())

	// 同时违反多条规则，全部都要报告
	script := &entity.ReelScript{
		Hook:     "Hi",
		Body:     "too short",
		CTA:      "go",
		Caption:  "tiny",
		Hashtags: []string{"bad"},
	}
	result := v.Validate(script, testBrand())

	if result.IsValid {
		t.Fatal("expected invalid")
	}
	for _, want := range []string{"Hook too short", "Body too short", "Cta too short", "Caption too short", "Too few hashtags", "must start with #"} {
		if !containsSubstring(result.Errors, want) {
			t.Errorf("errors = %v, missing %q", result.Errors, want)
		}
	}
}

func TestValidateDeterministic(t *testing.T) {
	v := NewValidator(testRules())
	script := validScript()
	script.Hook = "Hi"

	first := v.Validate(script, testBrand())
	second := v.Validate(script, testBrand())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation not deterministic: %v vs %v", first, second)
	}
}

func containsSubstring(items []string, sub string) bool {
	for _, s := range items {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
