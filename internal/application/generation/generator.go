package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"reel-script-api/internal/application/retrieval"
	"reel-script-api/internal/application/validation"
	"reel-script-api/internal/config"
	"reel-script-api/internal/domain/entity"
	wfmodel "reel-script-api/internal/workflow/model"
	"reel-script-api/pkg/errors"
	"reel-script-api/pkg/logger"
	"reel-script-api/pkg/metrics"
)

var tracer = otel.Tracer("generation")

// ExampleRetriever 生成层对检索的最小依赖
type ExampleRetriever interface {
	RetrieveForGeneration(ctx context.Context, brand *entity.BrandProfile, req *entity.ScriptRequest) ([]retrieval.Example, error)
}

// Generator 脚本生成编排器：检索 → 提示词构造 → LLM 调用 → 校验。
// 校验失败触发有限次重新生成；LLM 调用层的瞬时错误重试独立于此。
type Generator struct {
	retriever ExampleRetriever
	caller    *llmCaller
	validator *validation.Validator

	provider    string
	model       string
	maxAttempts int
}

// NewGenerator 创建生成编排器
func NewGenerator(chain ScriptChain, retriever ExampleRetriever, validator *validation.Validator, cfg *config.Config) *Generator {
	provider := cfg.LLM.DefaultProvider
	modelName := ""
	if p, ok := cfg.LLM.Providers[provider]; ok {
		modelName = p.Model
	}
	maxAttempts := cfg.Generation.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 2
	}
	return &Generator{
		retriever:   retriever,
		caller:      newLLMCaller(chain, provider, modelName, cfg.Generation.LLMRetry),
		validator:   validator,
		provider:    provider,
		model:       modelName,
		maxAttempts: maxAttempts,
	}
}

// Generate 生成并校验一个 Reel 脚本。
// 入参在任何检索发生之前校验；检索不可用时降级为无示例生成。
// 校验失败重新生成，重试耗尽后返回最后一次脚本与失败的校验结果。
func (g *Generator) Generate(ctx context.Context, brand *entity.BrandProfile, req *entity.ScriptRequest) (*Result, error) {
	ctx, span := tracer.Start(ctx, "generation.Generate",
		trace.WithAttributes(
			attribute.String("brand.sector", brand.Sector),
			attribute.String("request.hook_type", req.HookType),
		))
	defer span.End()

	start := time.Now()

	brand.Normalize()
	if err := brand.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = logger.WithContext(ctx, logger.BrandKey, brand.BrandName)
	logger.Info(ctx, "generating reel script",
		"brand", brand.BrandName,
		"sector", brand.Sector,
		"hook_type", req.HookType,
	)

	// 检索参考示例；嵌入或索引不可用时降级为无示例生成
	examples, err := g.retriever.RetrieveForGeneration(ctx, brand, req)
	degraded := false
	if err != nil {
		degraded = true
		examples = nil
		logger.Warn(ctx, "example retrieval unavailable, generating without references",
			"error", err.Error(),
		)
	}

	in, err := g.buildInput(brand, req, examples)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Examples: examples,
		Meta: Meta{
			Brand:        brand.BrandName,
			Sector:       brand.Sector,
			Goal:         req.Goal,
			HookType:     req.HookType,
			ScriptLength: req.ScriptLength,
			ExamplesUsed: len(examples),
			Degraded:     degraded,
			Provider:     g.provider,
			Model:        g.model,
		},
	}

	// 外层循环只处理校验失败触发的重新生成；
	// LLM 调用失败（含调用层重试耗尽）直接终止，避免与内层重试叠加。
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		result.Meta.Attempts = attempt

		script, err := g.caller.Call(ctx, in, &result.Meta.Usage)
		if err != nil {
			logger.Error(ctx, "generation attempt failed", err,
				"attempt", attempt,
			)
			g.finish(ctx, result, start, "error", brand.Sector)
			return nil, err
		}

		vr := g.validator.Validate(script, brand)
		result.Script = script
		result.Validation = vr

		if vr.IsValid {
			g.finish(ctx, result, start, "ok", brand.Sector)
			return result, nil
		}

		logger.Warn(ctx, "generated script failed validation",
			"attempt", attempt,
			"errors", strings.Join(vr.Errors, "; "),
		)
	}

	// 返回最后一次脚本与失败的校验结果，由调用方决定如何呈现
	g.finish(ctx, result, start, "invalid", brand.Sector)
	logger.Warn(ctx, "could not generate valid script, returning last attempt",
		"attempts", result.Meta.Attempts,
	)
	return result, nil
}

func (g *Generator) buildInput(brand *entity.BrandProfile, req *entity.ScriptRequest, examples []retrieval.Example) (*wfmodel.ReelScriptGenerateInput, error) {
	brandJSON, err := json.MarshalIndent(brand, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to marshal brand profile")
	}
	reqJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to marshal script request")
	}

	return &wfmodel.ReelScriptGenerateInput{
		BrandJSON:         string(brandJSON),
		RequestJSON:       string(reqJSON),
		ReferenceExamples: formatExamples(examples),
		Provider:          g.provider,
		Model:             g.model,
	}, nil
}

// formatExamples 将检索结果格式化为提示词文本块
func formatExamples(examples []retrieval.Example) string {
	if len(examples) == 0 {
		return ""
	}

	var b strings.Builder
	for i, ex := range examples {
		d := ex.Document
		fmt.Fprintf(&b, "Example %d (Similarity: %.2f):\n", i+1, ex.Similarity)
		fmt.Fprintf(&b, "Sector: %s\n", d.Sector)
		fmt.Fprintf(&b, "Hook Type: %s\n", d.HookType)
		fmt.Fprintf(&b, "Engagement Rate: %.1f%%\n", d.EngagementRate)
		fmt.Fprintf(&b, "Hook: %s\n", d.Hook)
		fmt.Fprintf(&b, "Body: %s\n", d.Body)
		fmt.Fprintf(&b, "CTA: %s\n", d.CTA)
		b.WriteString("---\n")
	}
	return b.String()
}

func (g *Generator) finish(ctx context.Context, result *Result, start time.Time, status, sector string) {
	result.Meta.DurationMs = time.Since(start).Milliseconds()
	metrics.ScriptGenerationTotal.WithLabelValues(sector, status).Inc()
	metrics.ScriptGenerationDuration.WithLabelValues(sector).Observe(time.Since(start).Seconds())
	metrics.ScriptGenerationAttempts.WithLabelValues(sector).Observe(float64(result.Meta.Attempts))
}
