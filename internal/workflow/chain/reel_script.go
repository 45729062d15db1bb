// Package chain 组装基于 Eino 的 LLM 调用链
package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "reel-script-api/internal/workflow/model"
	wfnode "reel-script-api/internal/workflow/node"
	workflowport "reel-script-api/internal/workflow/port"
	workflowprompt "reel-script-api/internal/workflow/prompt"
	"reel-script-api/pkg/logger"
)

var defaultPromptRegistry = workflowprompt.NewRegistry()

// ReelScriptChain Reel 脚本生成链：模板渲染 → LLM 调用 → 透出消息。
// json_schema 不被提供商支持时自动降级为纯提示词。
type ReelScriptChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.ReelScriptGenerateInput, *schema.Message]
	chainErr  error
}

// NewReelScriptChain 创建脚本生成链
func NewReelScriptChain(factory workflowport.ChatModelFactory) *ReelScriptChain {
	return &ReelScriptChain{factory: factory}
}

// Invoke 执行一次生成调用，返回模型原始消息
func (c *ReelScriptChain) Invoke(ctx context.Context, in *wfmodel.ReelScriptGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type reelScriptChainState struct {
	In       *wfmodel.ReelScriptGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *ReelScriptChain) getChain() (compose.Runnable[*wfmodel.ReelScriptGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *ReelScriptChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.ReelScriptGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.ReelScriptGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.ReelScriptGenerateInput) (*reelScriptChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &reelScriptChainState{In: in}, nil
		}),
		compose.WithNodeName("reel_script.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *reelScriptChainState) (*reelScriptChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatReelScriptMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("reel_script.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *reelScriptChainState) (*reelScriptChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			provider := strings.TrimSpace(st.In.Provider)
			var chatModel model.BaseChatModel
			var err error
			if provider == "" {
				chatModel, err = c.factory.Default(ctx)
			} else {
				chatModel, err = c.factory.Get(ctx, provider)
			}
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildReelScriptModelOptions(st.In, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", strings.TrimSpace(st.In.Provider),
					"model", strings.TrimSpace(st.In.Model),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, buildReelScriptModelOptions(st.In, false)...)
			}
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("reel_script.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *reelScriptChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("reel_script.finalize"),
	)

	return chain.Compile(ctx)
}

func formatReelScriptMessages(ctx context.Context, in *wfmodel.ReelScriptGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptReelScriptV1)
	if err != nil {
		return nil, err
	}

	examples := strings.TrimSpace(in.ReferenceExamples)
	if examples == "" {
		examples = "No reference examples available."
	}

	vars := map[string]any{
		"brand_profile":      strings.TrimSpace(in.BrandJSON),
		"script_request":     strings.TrimSpace(in.RequestJSON),
		"reference_examples": examples,
	}
	return tpl.Format(ctx, vars)
}

func buildReelScriptModelOptions(in *wfmodel.ReelScriptGenerateInput, enableSchema bool) []model.Option {
	opts := make([]model.Option, 0, 2)
	if in == nil {
		return opts
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}

	if enableSchema {
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   "reel_script",
					"strict": false,
					"schema": reelScriptJSONSchema(),
				},
			},
		}))
	}

	return opts
}

func reelScriptJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"hook", "body", "cta", "caption", "hashtags"},
		"properties": map[string]any{
			"hook":    map[string]any{"type": "string"},
			"body":    map[string]any{"type": "string"},
			"cta":     map[string]any{"type": "string"},
			"caption": map[string]any{"type": "string"},
			"hashtags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}
