// Package port 定义工作流层对外部基础设施的最小依赖。
package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 按提供商名称解析 ChatModel。
// name 为空时返回配置的默认提供商；实现负责懒加载与并发安全。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
	// Default 返回默认提供商的 ChatModel，等价于 Get(ctx, "")。
	Default(ctx context.Context) (model.BaseChatModel, error)
}
