package handler

import (
	"github.com/gin-gonic/gin"

	"reel-script-api/internal/application/retrieval"
	"reel-script-api/internal/interfaces/http/dto"
	"reel-script-api/pkg/errors"
	"reel-script-api/pkg/logger"
)

// RetrievalHandler 示例检索处理器
type RetrievalHandler struct {
	engine *retrieval.Engine
}

// NewRetrievalHandler 创建检索处理器
func NewRetrievalHandler(engine *retrieval.Engine) *RetrievalHandler {
	return &RetrievalHandler{engine: engine}
}

// Search 检索参考示例
// @Summary 检索参考示例
// @Description 按查询与元数据过滤条件检索最相似的示例
// @Tags Retrieval
// @Accept json
// @Produce json
// @Param body body dto.SearchRequest true "检索请求"
// @Success 200 {object} dto.Response[dto.SearchResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/retrieval/search [post]
func (h *RetrievalHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.UnprocessableEntity(c, "invalid request body: "+err.Error(), nil)
		return
	}

	// top_k 缺省时使用服务端默认值
	topK := req.TopK
	if topK <= 0 {
		topK = h.engine.DefaultTopK()
	}

	examples, err := h.engine.Retrieve(ctx, req.Query, req.ToFilters(), topK)
	if err != nil {
		if errors.IsAppError(err) {
			dto.AppError(c, err)
			return
		}
		logger.Error(ctx, "failed to search examples", err)
		dto.InternalError(c, "failed to search examples")
		return
	}

	dto.Success(c, dto.ToSearchResponse(examples))
}
