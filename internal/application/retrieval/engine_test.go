package retrieval

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/embedding"

	"reel-script-api/internal/domain/entity"
	"reel-script-api/internal/infrastructure/vectorindex"
	"reel-script-api/pkg/errors"
)

// mockEmbedder implements embedding.Embedder for testing
type mockEmbedder struct {
	embedFunc func(ctx context.Context, texts []string) ([][]float64, error)
	lastQuery string
}

func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	if len(texts) > 0 {
		m.lastQuery = texts[0]
	}
	if m.embedFunc != nil {
		return m.embedFunc(ctx, texts)
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

func testHolder(t *testing.T) *vectorindex.Holder {
	t.Helper()

	entries := []vectorindex.Entry{
		{Document: vectorindex.Document{ID: "fit-high", Sector: "fitness", HookType: "question", PerformanceLevel: "high"}, Vector: []float32{1, 0, 0}},
		{Document: vectorindex.Document{ID: "fit-low", Sector: "fitness", HookType: "question", PerformanceLevel: "low"}, Vector: []float32{1, 0, 0}},
		{Document: vectorindex.Document{ID: "fin-high", Sector: "finance", HookType: "bold_claim", PerformanceLevel: "high"}, Vector: []float32{0.9, 0.1, 0}},
		{Document: vectorindex.Document{ID: "fit-high-2", Sector: "fitness", HookType: "shocking", PerformanceLevel: "high"}, Vector: []float32{0.5, 0.5, 0}},
	}
	index := &vectorindex.Index{Model: "mock", Dimension: 3, Metric: vectorindex.MetricCosine, Entries: entries}

	path := filepath.Join(t.TempDir(), "index.json")
	if err := vectorindex.Save(index, path); err != nil {
		t.Fatal(err)
	}

	holder := vectorindex.NewHolder(&mockEmbedder{}, "mock", path, false)
	if err := holder.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return holder
}

func TestRetrieveFiltersAndRanks(t *testing.T) {
	embedder := &mockEmbedder{}
	engine := NewEngine(embedder, testHolder(t), 5)

	examples, err := engine.Retrieve(context.Background(), "fitness hooks", Filters{
		Sector:           "fitness",
		PerformanceLevel: "high",
	}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(examples) != 2 {
		t.Fatalf("len = %d, want 2", len(examples))
	}
	for _, ex := range examples {
		if ex.Document.Sector != "fitness" || ex.Document.PerformanceLevel != "high" {
			t.Errorf("filter leaked document %s", ex.Document.ID)
		}
	}
	// 完全对齐的向量应排第一
	if examples[0].Document.ID != "fit-high" {
		t.Errorf("first = %s, want fit-high", examples[0].Document.ID)
	}
	if examples[0].Similarity < examples[1].Similarity {
		t.Error("similarities not descending")
	}
}

func TestRetrieveTopKZeroReturnsEmpty(t *testing.T) {
	embedder := &mockEmbedder{}
	engine := NewEngine(embedder, testHolder(t), 2)

	for _, topK := range []int{0, -1} {
		examples, err := engine.Retrieve(context.Background(), "anything", Filters{}, topK)
		if err != nil {
			t.Fatalf("topK=%d: unexpected error: %v", topK, err)
		}
		if len(examples) != 0 {
			t.Errorf("topK=%d: len = %d, want empty", topK, len(examples))
		}
	}
	// 空结果不应触发查询嵌入
	if embedder.lastQuery != "" {
		t.Errorf("embedder called for topK<=0 with query %q", embedder.lastQuery)
	}
}

func TestRetrieveDeterministic(t *testing.T) {
	engine := NewEngine(&mockEmbedder{}, testHolder(t), 5)

	first, err := engine.Retrieve(context.Background(), "query", Filters{}, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.Retrieve(context.Background(), "query", Filters{}, 4)
		if err != nil {
			t.Fatal(err)
		}
		for j := range first {
			if first[j].Document.ID != again[j].Document.ID {
				t.Fatalf("run %d position %d differs", i, j)
			}
		}
	}
}

func TestRetrieveEmbedderFailure(t *testing.T) {
	embedder := &mockEmbedder{
		embedFunc: func(_ context.Context, _ []string) ([][]float64, error) {
			return nil, fmt.Errorf("embedding api down")
		},
	}
	holder := testHolder(t)
	engine := NewEngine(embedder, holder, 5)

	_, err := engine.Retrieve(context.Background(), "query", Filters{}, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := errors.AsAppError(err)
	if appErr.Code != errors.CodeEmbeddingFailed {
		t.Errorf("code = %s, want %s", appErr.Code, errors.CodeEmbeddingFailed)
	}
}

func TestRetrieveForGenerationQueryAndFilters(t *testing.T) {
	embedder := &mockEmbedder{}
	engine := NewEngine(embedder, testHolder(t), 5)

	brand := &entity.BrandProfile{BrandName: "FitLife", Sector: "fitness", Offer: "app"}
	req := &entity.ScriptRequest{HookType: "question", Emotion: "curiosity"}

	examples, err := engine.RetrieveForGeneration(context.Background(), brand, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantQuery := "Generate question hook for fitness sector targeting curiosity emotion"
	if embedder.lastQuery != wantQuery {
		t.Errorf("query = %q, want %q", embedder.lastQuery, wantQuery)
	}

	// 限定 sector + 高表现档位，但不限定 hook_type
	ids := make([]string, 0, len(examples))
	for _, ex := range examples {
		if ex.Document.Sector != "fitness" || ex.Document.PerformanceLevel != entity.PerformanceHigh {
			t.Errorf("unexpected document %s", ex.Document.ID)
		}
		ids = append(ids, ex.Document.ID)
	}
	joined := strings.Join(ids, ",")
	if !strings.Contains(joined, "fit-high-2") {
		t.Errorf("hook_type should not be filtered, got %v", ids)
	}
}
