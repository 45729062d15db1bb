// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"reel-script-api/internal/application/generation"
	"reel-script-api/internal/interfaces/http/dto"
	"reel-script-api/pkg/errors"
	"reel-script-api/pkg/logger"
)

// GenerateHandler 脚本生成处理器
type GenerateHandler struct {
	generator *generation.Generator
}

// NewGenerateHandler 创建脚本生成处理器
func NewGenerateHandler(generator *generation.Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// GenerateReel 生成 Reel 脚本
// @Summary 生成 Reel 脚本
// @Description 基于品牌画像与请求参数生成并校验营销脚本
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateReelRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateReelResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/generate-reel [post]
func (h *GenerateHandler) GenerateReel(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateReelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.UnprocessableEntity(c, "invalid request body: "+err.Error(), nil)
		return
	}

	brand := req.BrandProfile.ToBrandEntity()
	script := req.ScriptRequest.ToScriptEntity()

	result, err := h.generator.Generate(ctx, brand, script)
	if err != nil {
		if errors.IsAppError(err) {
			dto.AppError(c, err)
			return
		}
		logger.Error(ctx, "failed to generate reel script", err)
		dto.InternalError(c, "failed to generate reel script")
		return
	}

	dto.Success(c, dto.ToGenerateReelResponse(result))
}
