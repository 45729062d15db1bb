package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"reel-script-api/internal/config"
	"reel-script-api/internal/domain/entity"
	wfmodel "reel-script-api/internal/workflow/model"
	wfnode "reel-script-api/internal/workflow/node"
	"reel-script-api/pkg/errors"
	"reel-script-api/pkg/logger"
	"reel-script-api/pkg/metrics"
)

// ScriptChain 生成层对 LLM 调用链的最小依赖
type ScriptChain interface {
	Invoke(ctx context.Context, in *wfmodel.ReelScriptGenerateInput) (*schema.Message, error)
}

// llmCaller 带重试的 LLM 调用器。瞬时错误与畸形响应按指数退避重试，
// 认证错误与上下文取消立即失败。
type llmCaller struct {
	chain    ScriptChain
	provider string
	model    string
	retry    config.RetryConfig
}

func newLLMCaller(chain ScriptChain, provider, model string, retry config.RetryConfig) *llmCaller {
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = 3
	}
	if retry.Backoff.Initial <= 0 {
		retry.Backoff.Initial = 2 * time.Second
	}
	if retry.Backoff.Max <= 0 {
		retry.Backoff.Max = 10 * time.Second
	}
	if retry.Backoff.Multiplier <= 1 {
		retry.Backoff.Multiplier = 2.0
	}
	return &llmCaller{
		chain:    chain,
		provider: provider,
		model:    model,
		retry:    retry,
	}
}

// Call 调用 LLM 并解析为结构化脚本。重试耗尽后返回最后一次错误。
func (c *llmCaller) Call(ctx context.Context, in *wfmodel.ReelScriptGenerateInput, usage *TokenUsage) (*entity.ReelScript, error) {
	var lastErr error
	backoff := c.retry.Backoff.Initial

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, errors.Wrap(err, errors.CodeLLMProviderError, "llm call aborted")
			}
			backoff = time.Duration(float64(backoff) * c.retry.Backoff.Multiplier)
			if backoff > c.retry.Backoff.Max {
				backoff = c.retry.Backoff.Max
			}
		}

		script, err := c.callOnce(ctx, in, usage)
		if err == nil {
			return script, nil
		}
		lastErr = err

		if !isRetryable(err) {
			logger.Error(ctx, "llm call failed with non-retryable error", err,
				"provider", c.provider,
				"attempt", attempt,
			)
			return nil, err
		}

		logger.Warn(ctx, "llm call failed, will retry",
			"provider", c.provider,
			"attempt", attempt,
			"max_attempts", c.retry.MaxAttempts,
			"error", err.Error(),
		)
	}

	return nil, lastErr
}

func (c *llmCaller) callOnce(ctx context.Context, in *wfmodel.ReelScriptGenerateInput, usage *TokenUsage) (*entity.ReelScript, error) {
	start := time.Now()
	msg, err := c.chain.Invoke(ctx, in)
	metrics.LLMCallDuration.WithLabelValues(c.provider, c.model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		return nil, errors.Wrap(err, errors.CodeLLMProviderError, "llm provider call failed")
	}
	metrics.LLMCallTotal.WithLabelValues(c.provider, c.model, "ok").Inc()
	recordUsage(msg, c.provider, c.model, usage)

	return parseScript(msg.Content)
}

// parseScript 从模型输出解析结构化脚本，缺失必填字段视为畸形响应
func parseScript(content string) (*entity.ReelScript, error) {
	raw := wfnode.ExtractJSONObject(content)
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(errors.CodeMalformedResponse, "empty llm response")
	}

	var script entity.ReelScript
	if err := json.Unmarshal([]byte(raw), &script); err != nil {
		return nil, errors.Wrap(err, errors.CodeMalformedResponse, "llm returned malformed response")
	}

	var missing []string
	if strings.TrimSpace(script.Hook) == "" {
		missing = append(missing, "hook")
	}
	if strings.TrimSpace(script.Body) == "" {
		missing = append(missing, "body")
	}
	if strings.TrimSpace(script.CTA) == "" {
		missing = append(missing, "cta")
	}
	if strings.TrimSpace(script.Caption) == "" {
		missing = append(missing, "caption")
	}
	if script.Hashtags == nil {
		missing = append(missing, "hashtags")
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.CodeMalformedResponse, "llm response missing required fields").
			WithDetail(strings.Join(missing, ", "))
	}

	return &script, nil
}

// isRetryable 畸形响应与瞬时提供商错误可重试
func isRetryable(err error) bool {
	appErr := errors.AsAppError(err)
	switch appErr.Code {
	case errors.CodeMalformedResponse:
		return true
	case errors.CodeLLMProviderError:
		return wfnode.IsRetryableLLMError(appErr.Unwrap())
	default:
		return false
	}
}

func recordUsage(msg *schema.Message, provider, model string, usage *TokenUsage) {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	u := msg.ResponseMeta.Usage
	metrics.LLMTokensUsed.WithLabelValues(provider, model, "prompt").Add(float64(u.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(provider, model, "completion").Add(float64(u.CompletionTokens))
	if usage != nil {
		usage.PromptTokens += u.PromptTokens
		usage.CompletionTokens += u.CompletionTokens
		usage.TotalTokens += u.TotalTokens
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
