package entity

import (
	"strings"
	"testing"

	"reel-script-api/pkg/errors"
)

func validScriptRequest() ScriptRequest {
	return ScriptRequest{
		Goal:         "app downloads",
		HookType:     "question",
		Emotion:      "curiosity",
		ScriptLength: 30,
		Language:     "english",
		CTA:          "download now",
	}
}

func TestScriptRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScriptRequest)
		wantErr bool
		wantMsg string
	}{
		{
			name:   "valid request",
			mutate: func(r *ScriptRequest) {},
		},
		{
			name:    "length below minimum",
			mutate:  func(r *ScriptRequest) { r.ScriptLength = 10 },
			wantErr: true,
			wantMsg: "script_length",
		},
		{
			name:    "length above maximum",
			mutate:  func(r *ScriptRequest) { r.ScriptLength = 90 },
			wantErr: true,
			wantMsg: "script_length",
		},
		{
			name:   "length at lower bound",
			mutate: func(r *ScriptRequest) { r.ScriptLength = MinScriptLength },
		},
		{
			name:   "length at upper bound",
			mutate: func(r *ScriptRequest) { r.ScriptLength = MaxScriptLength },
		},
		{
			name:    "missing goal",
			mutate:  func(r *ScriptRequest) { r.Goal = "" },
			wantErr: true,
			wantMsg: "goal",
		},
		{
			name:    "unsupported hook type",
			mutate:  func(r *ScriptRequest) { r.HookType = "clickbait" },
			wantErr: true,
			wantMsg: "hook_type",
		},
		{
			name:    "missing cta",
			mutate:  func(r *ScriptRequest) { r.CTA = "  " },
			wantErr: true,
			wantMsg: "cta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validScriptRequest()
			tt.mutate(&req)
			req.Normalize()

			err := req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				appErr := errors.AsAppError(err)
				if appErr.Code != errors.CodeInvalidParam {
					t.Errorf("code = %s, want %s", appErr.Code, errors.CodeInvalidParam)
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestScriptRequestNormalizeDefaults(t *testing.T) {
	req := ScriptRequest{
		Goal:         " downloads ",
		HookType:     "Question",
		Emotion:      "CURIOSITY",
		ScriptLength: 30,
		CTA:          "try it",
	}
	req.Normalize()

	if req.Language != "english" {
		t.Errorf("Language = %q, want english", req.Language)
	}
	if req.HookType != "question" {
		t.Errorf("HookType = %q, want question", req.HookType)
	}
	if req.Emotion != "curiosity" {
		t.Errorf("Emotion = %q, want curiosity", req.Emotion)
	}
	if req.Goal != "downloads" {
		t.Errorf("Goal = %q, want downloads", req.Goal)
	}
}

func TestBrandProfileValidate(t *testing.T) {
	valid := BrandProfile{
		BrandName: "FitLife",
		Sector:    "fitness",
		Offer:     "home workout app",
	}
	valid.Normalize()
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := BrandProfile{Sector: "fitness", Offer: "x"}
	missing.Normalize()
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing brand_name")
	}

	badSector := BrandProfile{BrandName: "X", Sector: "gambling", Offer: "x"}
	badSector.Normalize()
	if err := badSector.Validate(); err == nil {
		t.Error("expected error for unsupported sector")
	}
}

func TestBrandProfileNormalize(t *testing.T) {
	p := BrandProfile{BrandName: " FitLife ", Sector: "Fitness"}
	p.Normalize()

	if p.Sector != "fitness" {
		t.Errorf("Sector = %q, want fitness", p.Sector)
	}
	if p.Platform != "instagram" {
		t.Errorf("Platform = %q, want instagram", p.Platform)
	}
	if p.BrandName != "FitLife" {
		t.Errorf("BrandName = %q, want FitLife", p.BrandName)
	}
}

func TestNewValidationResult(t *testing.T) {
	r := NewValidationResult(nil, nil)
	if !r.IsValid {
		t.Error("empty errors should be valid")
	}
	if r.Errors == nil || r.Warnings == nil {
		t.Error("nil slices should be normalized to empty")
	}

	r = NewValidationResult([]string{"too short"}, []string{"weak cta"})
	if r.IsValid {
		t.Error("errors present should not be valid")
	}
	if len(r.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one entry", r.Warnings)
	}

	// 仅警告不影响有效性
	r = NewValidationResult(nil, []string{"weak cta"})
	if !r.IsValid {
		t.Error("warnings alone should keep result valid")
	}
}
