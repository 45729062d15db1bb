package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"

	"reel-script-api/internal/application/generation"
	"reel-script-api/internal/application/retrieval"
	"reel-script-api/internal/application/validation"
	"reel-script-api/internal/config"
	"reel-script-api/internal/domain/entity"
	"reel-script-api/internal/infrastructure/vectorindex"
	wfmodel "reel-script-api/internal/workflow/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticEmbedder struct{}

func (staticEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

func readyHolder(t *testing.T) *vectorindex.Holder {
	t.Helper()

	index := &vectorindex.Index{
		Model:     "mock",
		Dimension: 3,
		Metric:    vectorindex.MetricCosine,
		Entries: []vectorindex.Entry{
			{Document: vectorindex.Document{ID: "a", Hook: "hook", Sector: "fitness"}, Vector: []float32{1, 0, 0}},
		},
	}
	path := filepath.Join(t.TempDir(), "index.json")
	if err := vectorindex.Save(index, path); err != nil {
		t.Fatal(err)
	}

	holder := vectorindex.NewHolder(staticEmbedder{}, "mock", path, false)
	if err := holder.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return holder
}

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogSectors(t *testing.T) {
	r := gin.New()
	h := NewCatalogHandler()
	r.GET("/v1/sectors", h.Sectors)

	w := performRequest(r, http.MethodGet, "/v1/sectors")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Sectors []string `json:"sectors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Sectors) != 12 {
		t.Errorf("sectors = %d, want 12", len(resp.Data.Sectors))
	}
}

func TestCatalogHookTypes(t *testing.T) {
	r := gin.New()
	h := NewCatalogHandler()
	r.GET("/v1/hook-types", h.HookTypes)

	w := performRequest(r, http.MethodGet, "/v1/hook-types")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data struct {
			HookTypes []string `json:"hook_types"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.HookTypes) != 7 {
		t.Errorf("hook types = %d, want 7", len(resp.Data.HookTypes))
	}
}

func TestHealthEndpoints(t *testing.T) {
	r := gin.New()
	h := NewHealthHandler(readyHolder(t), nil)
	r.GET("/health", h.Health)
	r.GET("/live", h.Live)
	r.GET("/ready", h.Ready)

	for _, path := range []string{"/health", "/live", "/ready"} {
		w := performRequest(r, http.MethodGet, path)
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, w.Code)
		}
	}
}

type scriptChainStub struct {
	invokeFunc func(ctx context.Context, in *wfmodel.ReelScriptGenerateInput) (*schema.Message, error)
	calls      int
}

func (s *scriptChainStub) Invoke(ctx context.Context, in *wfmodel.ReelScriptGenerateInput) (*schema.Message, error) {
	s.calls++
	return s.invokeFunc(ctx, in)
}

type retrieverStub struct{}

func (retrieverStub) RetrieveForGeneration(_ context.Context, _ *entity.BrandProfile, _ *entity.ScriptRequest) ([]retrieval.Example, error) {
	return []retrieval.Example{
		{
			Document: vectorindex.Document{
				ID:       "seed-fitness-001",
				Hook:     "Are you tired of boring workouts",
				Sector:   "fitness",
				HookType: "question",
			},
			Similarity: 0.9,
		},
	}, nil
}

const validScriptContent = `{
	"hook": "Are you tired of wasting money on gym memberships",
	"body": "Discover home workouts built around your schedule with zero equipment needed. Our coaches designed every session to fit into thirty seconds of your day and deliver results you can actually measure within the first month.",
	"cta": "Download the app now for free",
	"caption": "Your personalized home workout plan is one tap away. Start today and feel the difference.",
	"hashtags": ["#fitness", "#homeworkout", "#health"]
}`

func newGenerateRouter(chain generation.ScriptChain) *gin.Engine {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "openai",
			Providers: map[string]config.ProviderConfig{
				"openai": {Model: "gpt-test"},
			},
		},
		Generation: config.GenerationConfig{
			MaxAttempts: 2,
			LLMRetry: config.RetryConfig{
				MaxAttempts: 3,
				Backoff: config.BackoffConfig{
					Initial:    time.Millisecond,
					Max:        2 * time.Millisecond,
					Multiplier: 2.0,
				},
			},
		},
		Validation: config.ValidationConfig{
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
		},
	}

	g := generation.NewGenerator(chain, retrieverStub{}, validation.NewValidator(cfg.Validation), cfg)

	r := gin.New()
	r.POST("/v1/generate-reel", NewGenerateHandler(g).GenerateReel)
	return r
}

func generateRequestBody(scriptLength int) string {
	return fmt.Sprintf(`{
		"brand_profile": {
			"brand_name": "FitLife",
			"sector": "fitness",
			"offer": "home workout app"
		},
		"script_request": {
			"goal": "app downloads",
			"hook_type": "question",
			"emotion": "curiosity",
			"script_length": %d,
			"cta": "download now"
		}
	}`, scriptLength)
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateReelEndToEnd(t *testing.T) {
	chain := &scriptChainStub{
		invokeFunc: func(_ context.Context, _ *wfmodel.ReelScriptGenerateInput) (*schema.Message, error) {
			return &schema.Message{Content: validScriptContent}, nil
		},
	}
	r := newGenerateRouter(chain)

	w := postJSON(r, "/v1/generate-reel", generateRequestBody(30))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Script struct {
				Hook string `json:"hook"`
			} `json:"script"`
			Validation struct {
				IsValid bool `json:"is_valid"`
			} `json:"validation"`
			Meta struct {
				Sector   string `json:"sector"`
				HookType string `json:"hook_type"`
				Attempts int    `json:"attempts"`
			} `json:"meta"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	words := len(strings.Fields(resp.Data.Script.Hook))
	if words < 3 || words > 15 {
		t.Errorf("hook word count = %d, want within [3, 15]", words)
	}
	if resp.Data.Meta.Sector != "fitness" {
		t.Errorf("meta.sector = %q, want fitness", resp.Data.Meta.Sector)
	}
	if resp.Data.Meta.HookType != "question" {
		t.Errorf("meta.hook_type = %q, want question", resp.Data.Meta.HookType)
	}
	if !resp.Data.Validation.IsValid {
		t.Error("expected valid script")
	}
	if resp.Data.Meta.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", resp.Data.Meta.Attempts)
	}
}

func TestGenerateReelMissingFieldsRejected(t *testing.T) {
	chain := &scriptChainStub{
		invokeFunc: func(_ context.Context, _ *wfmodel.ReelScriptGenerateInput) (*schema.Message, error) {
			t.Fatal("llm must not be called for malformed body")
			return nil, nil
		},
	}
	r := newGenerateRouter(chain)

	// 缺少必填的 offer 字段
	w := postJSON(r, "/v1/generate-reel", `{
		"brand_profile": {"brand_name": "FitLife", "sector": "fitness"},
		"script_request": {"goal": "a", "hook_type": "question", "script_length": 30, "cta": "go"}
	}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestGenerateReelScriptLengthOutOfBounds(t *testing.T) {
	chain := &scriptChainStub{
		invokeFunc: func(_ context.Context, _ *wfmodel.ReelScriptGenerateInput) (*schema.Message, error) {
			t.Fatal("llm must not be called for invalid input")
			return nil, nil
		},
	}
	r := newGenerateRouter(chain)

	w := postJSON(r, "/v1/generate-reel", generateRequestBody(5))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body: %s", w.Code, w.Body.String())
	}
}

func TestGenerateReelProviderErrorMapsToBadGateway(t *testing.T) {
	chain := &scriptChainStub{
		invokeFunc: func(_ context.Context, _ *wfmodel.ReelScriptGenerateInput) (*schema.Message, error) {
			return nil, fmt.Errorf("401 unauthorized: invalid api key")
		},
	}
	r := newGenerateRouter(chain)

	w := postJSON(r, "/v1/generate-reel", generateRequestBody(30))
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502, body: %s", w.Code, w.Body.String())
	}
	// 认证错误不重试：内外层合计只调用一次
	if chain.calls != 1 {
		t.Errorf("chain calls = %d, want 1", chain.calls)
	}
}

func TestReadyWithoutIndex(t *testing.T) {
	r := gin.New()
	// 索引未初始化的 Holder
	holder := vectorindex.NewHolder(staticEmbedder{}, "mock", filepath.Join(t.TempDir(), "missing.json"), false)
	h := NewHealthHandler(holder, nil)
	r.GET("/ready", h.Ready)

	w := performRequest(r, http.MethodGet, "/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "not_ready" {
		t.Errorf("status = %q, want not_ready", resp.Status)
	}
}
