// Package vectorindex 提供本地向量索引：构建、查询与磁盘持久化
package vectorindex

import (
	"strings"
)

// PerformanceHigh 高表现文档的档位标记
const PerformanceHigh = "high"

// Document 参考脚本文档，建索引时创建，之后只读
type Document struct {
	ID       string   `json:"id"`
	Hook     string   `json:"hook"`
	Body     string   `json:"body"`
	CTA      string   `json:"cta"`
	Caption  string   `json:"caption,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`

	// 过滤元数据
	Sector           string  `json:"sector"`
	HookType         string  `json:"hook_type"`
	Emotion          string  `json:"emotion,omitempty"`
	PerformanceLevel string  `json:"performance_level,omitempty"`
	EngagementRate   float64 `json:"engagement_rate,omitempty"`
}

// EmbedText 返回用于生成嵌入的拼接文本
func (d Document) EmbedText() string {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(d.Hook); s != "" {
		parts = append(parts, "Hook: "+s)
	}
	if s := strings.TrimSpace(d.Body); s != "" {
		parts = append(parts, "Body: "+s)
	}
	if s := strings.TrimSpace(d.CTA); s != "" {
		parts = append(parts, "CTA: "+s)
	}
	return strings.Join(parts, " ")
}
