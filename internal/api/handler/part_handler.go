package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/service"
	"github.com/melluro/repair-requests-system-2026/pkg/response"
)

// PartHandler 配件库存模块 HTTP 处理器
type PartHandler struct {
	partSvc service.PartService
}

// NewPartHandler 创建 PartHandler
func NewPartHandler(partSvc service.PartService) *PartHandler {
	return &PartHandler{partSvc: partSvc}
}

// Create 新增配件
// POST /api/v1/parts
func (h *PartHandler) Create(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AddPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.partSvc.AddPart(c.Request.Context(), &req, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// List 配件目录
// GET /api/v1/parts
func (h *PartHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.partSvc.List(c.Request.Context(), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// AssignToRequest 为申请领用配件（扣减库存）
// POST /api/v1/requests/:id/parts
func (h *PartHandler) AssignToRequest(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AssignPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.partSvc.AssignPart(c.Request.Context(), c.Param("id"), &req, role); err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListForRequest 申请配件账单（用量与小计）
// GET /api/v1/requests/:id/parts
func (h *PartHandler) ListForRequest(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.partSvc.ListForRequest(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}
