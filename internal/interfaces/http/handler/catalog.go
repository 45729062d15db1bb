package handler

import (
	"github.com/gin-gonic/gin"

	"reel-script-api/internal/domain/entity"
	"reel-script-api/internal/interfaces/http/dto"
)

// CatalogHandler 固定目录处理器
type CatalogHandler struct{}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Sectors 列出支持的业务领域
// @Summary 列出支持的业务领域
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.CatalogResponse]
// @Router /v1/sectors [get]
func (h *CatalogHandler) Sectors(c *gin.Context) {
	dto.Success(c, dto.CatalogResponse{Sectors: entity.Sectors})
}

// HookTypes 列出支持的钩子类型
// @Summary 列出支持的钩子类型
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.CatalogResponse]
// @Router /v1/hook-types [get]
func (h *CatalogHandler) HookTypes(c *gin.Context) {
	dto.Success(c, dto.CatalogResponse{HookTypes: entity.HookTypes})
}
