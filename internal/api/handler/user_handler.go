package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/service"
	"github.com/melluro/repair-requests-system-2026/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreateUser 创建用户（管理员）
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.CreateUser(c.Request.Context(), &req, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.Created(c, user)
}

// ListUsers 用户列表（管理员）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, users)
}

// ListSpecialists 维修专员列表（指派下拉用）
// GET /api/v1/users/specialists
func (h *UserHandler) ListSpecialists(c *gin.Context) {
	specialists, err := h.userSvc.GetSpecialists(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, specialists)
}
