package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
	"github.com/melluro/repair-requests-system-2026/pkg/response"
)

// mapServiceError 将 Service 层错误族映射为 HTTP 响应。
// Service 的业务错误均包装自 pkg/errors 的错误种类，按种类映射；
// 未识别的错误一律 500，不向客户端泄漏内部细节。
func mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, pkgerrors.ErrPermission):
		response.Forbidden(c, 10003, "无权限执行该操作")
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, pkgerrors.ErrDuplicate):
		response.Error(c, http.StatusConflict, 20002, err.Error())
	case errors.Is(err, pkgerrors.ErrInsufficientStock):
		response.Error(c, http.StatusConflict, 20003, err.Error())
	case errors.Is(err, pkgerrors.ErrState):
		response.Error(c, http.StatusConflict, 20004, err.Error())
	default:
		response.InternalError(c)
	}
}
