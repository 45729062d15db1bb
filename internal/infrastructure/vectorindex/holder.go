package vectorindex

import (
	"context"
	"sync/atomic"

	"github.com/cloudwego/eino/components/embedding"
	"golang.org/x/sync/singleflight"

	"reel-script-api/pkg/logger"
	"reel-script-api/pkg/metrics"
)

// Holder 持有当前对外提供服务的索引。
// 请求路径只读取快照；重建构造新 Index 后整体替换，服务期间不做并发修改。
type Holder struct {
	current          atomic.Pointer[Index]
	embedder         embedding.Embedder
	model            string
	path             string
	rebuildOnMissing bool

	rebuildGroup singleflight.Group
}

// NewHolder 创建索引持有者。
// rebuildOnMissing 控制磁盘索引缺失时是否用内置示例库自动重建。
func NewHolder(embedder embedding.Embedder, model, path string, rebuildOnMissing bool) *Holder {
	return &Holder{
		embedder:         embedder,
		model:            model,
		path:             path,
		rebuildOnMissing: rebuildOnMissing,
	}
}

// Current 返回当前索引快照；未初始化时返回 nil
func (h *Holder) Current() *Index {
	if h == nil {
		return nil
	}
	return h.current.Load()
}

// Ready 索引是否可用
func (h *Holder) Ready() bool {
	return h.Current() != nil
}

// Init 加载磁盘索引；加载失败且允许自动重建时用内置示例库重建并落盘
func (h *Holder) Init(ctx context.Context) error {
	index, err := Load(h.path)
	if err == nil {
		h.swap(index)
		logger.Info(ctx, "vector index loaded from disk",
			"path", h.path,
			"documents", index.Len(),
		)
		return nil
	}

	if !h.rebuildOnMissing {
		return err
	}

	logger.Warn(ctx, "vector index unavailable, rebuilding from seed corpus",
		"path", h.path,
		"reason", err.Error(),
	)
	_, err = h.Rebuild(ctx)
	return err
}

// Rebuild 用内置示例库整体重建索引并落盘。
// 并发触发的重建通过 singleflight 合并为一次。
func (h *Holder) Rebuild(ctx context.Context) (*Index, error) {
	v, err, _ := h.rebuildGroup.Do("rebuild", func() (interface{}, error) {
		index, err := Build(ctx, h.embedder, h.model, SeedDocuments())
		if err != nil {
			metrics.IndexRebuildTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		if err := Save(index, h.path); err != nil {
			metrics.IndexRebuildTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		h.swap(index)
		metrics.IndexRebuildTotal.WithLabelValues("ok").Inc()
		logger.Info(ctx, "vector index rebuilt",
			"path", h.path,
			"documents", index.Len(),
		)
		return index, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

func (h *Holder) swap(index *Index) {
	h.current.Store(index)
	metrics.IndexDocuments.Set(float64(index.Len()))
}
