package dto

import (
	"reel-script-api/internal/application/retrieval"
)

// SearchFilters 检索过滤条件，空字段不参与过滤
type SearchFilters struct {
	Sector           string `json:"sector"`
	HookType         string `json:"hook_type"`
	PerformanceLevel string `json:"performance_level"`
}

// SearchRequest 检索请求
type SearchRequest struct {
	Query   string        `json:"query" binding:"required"`
	TopK    int           `json:"top_k"`
	Filters SearchFilters `json:"filters"`
}

// ToFilters 转换为检索过滤条件
func (r *SearchRequest) ToFilters() retrieval.Filters {
	return retrieval.Filters{
		Sector:           r.Filters.Sector,
		HookType:         r.Filters.HookType,
		PerformanceLevel: r.Filters.PerformanceLevel,
	}
}

// SearchResult 一条检索命中
type SearchResult struct {
	ID               string   `json:"id"`
	Hook             string   `json:"hook"`
	Body             string   `json:"body"`
	CTA              string   `json:"cta"`
	Sector           string   `json:"sector"`
	HookType         string   `json:"hook_type"`
	Emotion          string   `json:"emotion"`
	PerformanceLevel string   `json:"performance_level"`
	EngagementRate   float64  `json:"engagement_rate"`
	Hashtags         []string `json:"hashtags,omitempty"`
	Similarity       float64  `json:"similarity"`
}

// SearchResponse 检索响应
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ToSearchResponse 转换检索结果
func ToSearchResponse(examples []retrieval.Example) SearchResponse {
	results := make([]SearchResult, 0, len(examples))
	for _, ex := range examples {
		d := ex.Document
		results = append(results, SearchResult{
			ID:               d.ID,
			Hook:             d.Hook,
			Body:             d.Body,
			CTA:              d.CTA,
			Sector:           d.Sector,
			HookType:         d.HookType,
			Emotion:          d.Emotion,
			PerformanceLevel: d.PerformanceLevel,
			EngagementRate:   d.EngagementRate,
			Hashtags:         d.Hashtags,
			Similarity:       ex.Similarity,
		})
	}
	return SearchResponse{Results: results}
}

// RebuildIndexResponse 索引重建响应
type RebuildIndexResponse struct {
	Documents  int   `json:"documents"`
	DurationMs int64 `json:"duration_ms"`
}

// CatalogResponse 固定目录响应
type CatalogResponse struct {
	Sectors   []string `json:"sectors,omitempty"`
	HookTypes []string `json:"hook_types,omitempty"`
}
