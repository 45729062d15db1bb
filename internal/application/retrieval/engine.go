// Package retrieval 基于本地向量索引实现示例检索
package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"reel-script-api/internal/domain/entity"
	"reel-script-api/internal/infrastructure/vectorindex"
	"reel-script-api/pkg/errors"
	"reel-script-api/pkg/logger"
	"reel-script-api/pkg/metrics"
)

var tracer = otel.Tracer("retrieval")

// Filters 检索元数据过滤条件，零值字段不参与过滤
type Filters struct {
	Sector           string
	HookType         string
	PerformanceLevel string
}

// Empty 是否未设置任何过滤条件
func (f Filters) Empty() bool {
	return f.Sector == "" && f.HookType == "" && f.PerformanceLevel == ""
}

func (f Filters) match(d vectorindex.Document) bool {
	if f.Sector != "" && d.Sector != f.Sector {
		return false
	}
	if f.HookType != "" && d.HookType != f.HookType {
		return false
	}
	if f.PerformanceLevel != "" && d.PerformanceLevel != f.PerformanceLevel {
		return false
	}
	return true
}

// Example 一条检索命中的参考示例
type Example struct {
	Document   vectorindex.Document `json:"document"`
	Similarity float64              `json:"similarity"`
}

// Engine 检索引擎。对同一查询和同一索引快照，结果完全确定。
type Engine struct {
	embedder embedding.Embedder
	holder   *vectorindex.Holder
	topK     int
}

// NewEngine 创建检索引擎
func NewEngine(embedder embedding.Embedder, holder *vectorindex.Holder, topK int) *Engine {
	if topK <= 0 {
		topK = 5
	}
	return &Engine{
		embedder: embedder,
		holder:   holder,
		topK:     topK,
	}
}

// DefaultTopK 返回配置的默认返回条数
func (e *Engine) DefaultTopK() int {
	return e.topK
}

// Retrieve 检索与查询最相似的 topK 条示例。
// topK<=0 返回空结果；过滤在排序前进行。
func (e *Engine) Retrieve(ctx context.Context, query string, filters Filters, topK int) ([]Example, error) {
	ctx, span := tracer.Start(ctx, "retrieval.Retrieve",
		trace.WithAttributes(
			attribute.Int("retrieval.top_k", topK),
			attribute.String("retrieval.sector", filters.Sector),
		))
	defer span.End()

	if topK <= 0 {
		return []Example{}, nil
	}

	start := time.Now()

	index := e.holder.Current()
	if index == nil {
		metrics.RetrievalDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, errors.New(errors.CodeServiceUnavailable, "vector index not ready")
	}

	vectors, err := e.embedder.EmbedStrings(ctx, []string{query})
	if err != nil {
		span.RecordError(err)
		metrics.RetrievalDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, errors.Wrap(err, errors.CodeEmbeddingFailed, "failed to embed query")
	}
	if len(vectors) != 1 {
		metrics.RetrievalDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, errors.New(errors.CodeEmbeddingFailed, "embedding count mismatch").
			WithDetail(fmt.Sprintf("expected 1 vector, got %d", len(vectors)))
	}

	queryVec := make([]float32, 0, len(vectors[0]))
	for _, v := range vectors[0] {
		queryVec = append(queryVec, float32(v))
	}

	var filter func(vectorindex.Document) bool
	filteredLabel := "false"
	if !filters.Empty() {
		filter = filters.match
		filteredLabel = "true"
	}

	matches := index.Search(queryVec, topK, filter)

	examples := make([]Example, 0, len(matches))
	for _, m := range matches {
		examples = append(examples, Example{
			Document:   m.Document,
			Similarity: m.Score,
		})
	}

	metrics.RetrievalDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	metrics.RetrievalExamples.WithLabelValues(filteredLabel).Observe(float64(len(examples)))

	logger.Debug(ctx, "retrieval completed",
		"query", query,
		"top_k", topK,
		"returned", len(examples),
	)
	return examples, nil
}

// RetrieveForGeneration 为脚本生成检索高表现参考示例。
// 查询由请求参数模板化生成，并限定行业与高表现文档。
func (e *Engine) RetrieveForGeneration(ctx context.Context, brand *entity.BrandProfile, req *entity.ScriptRequest) ([]Example, error) {
	query := fmt.Sprintf("Generate %s hook for %s sector targeting %s emotion",
		req.HookType, brand.Sector, req.Emotion)

	filters := Filters{
		Sector:           brand.Sector,
		PerformanceLevel: entity.PerformanceHigh,
	}

	return e.Retrieve(ctx, query, filters, e.topK)
}
