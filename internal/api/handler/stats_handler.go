package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/melluro/repair-requests-system-2026/internal/service"
	"github.com/melluro/repair-requests-system-2026/pkg/response"
)

// StatsHandler 完修统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Get 完修统计
// GET /api/v1/stats
func (h *StatsHandler) Get(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.statsSvc.Compute(c.Request.Context(), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Export 导出统计 Excel 报表
// GET /api/v1/stats/export
func (h *StatsHandler) Export(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	buf, filename, err := h.statsSvc.Export(c.Request.Context(), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
