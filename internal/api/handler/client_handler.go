package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/melluro/repair-requests-system-2026/internal/service"
	"github.com/melluro/repair-requests-system-2026/pkg/response"
)

// ClientHandler 客户目录 HTTP 处理器
type ClientHandler struct {
	clientSvc service.ClientService
}

// NewClientHandler 创建 ClientHandler
func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

// List 客户目录（受理前按电话查重）
// GET /api/v1/clients?phone=555-0101
func (h *ClientHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.clientSvc.List(c.Request.Context(), c.Query("phone"), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}
