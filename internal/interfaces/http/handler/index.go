package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"reel-script-api/internal/infrastructure/vectorindex"
	"reel-script-api/internal/interfaces/http/dto"
	"reel-script-api/pkg/errors"
	"reel-script-api/pkg/logger"
)

// IndexHandler 向量索引管理处理器
type IndexHandler struct {
	holder *vectorindex.Holder
}

// NewIndexHandler 创建索引管理处理器
func NewIndexHandler(holder *vectorindex.Holder) *IndexHandler {
	return &IndexHandler{holder: holder}
}

// Rebuild 整体重建向量索引
// @Summary 重建向量索引
// @Description 用内置示例库重新嵌入并整体替换当前索引
// @Tags Index
// @Produce json
// @Success 200 {object} dto.Response[dto.RebuildIndexResponse]
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/index/rebuild [post]
func (h *IndexHandler) Rebuild(c *gin.Context) {
	ctx := c.Request.Context()

	start := time.Now()
	index, err := h.holder.Rebuild(ctx)
	if err != nil {
		if errors.IsAppError(err) {
			dto.AppError(c, err)
			return
		}
		logger.Error(ctx, "failed to rebuild vector index", err)
		dto.InternalError(c, "failed to rebuild vector index")
		return
	}

	dto.Success(c, dto.RebuildIndexResponse{
		Documents:  index.Len(),
		DurationMs: time.Since(start).Milliseconds(),
	})
}
