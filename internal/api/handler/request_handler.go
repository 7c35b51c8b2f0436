package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/service"
	"github.com/melluro/repair-requests-system-2026/pkg/response"
)

// RequestHandler 维修申请模块 HTTP 处理器
// 申请的评论与评价作为子资源挂在申请路由下，一并处理
type RequestHandler struct {
	requestSvc service.RequestService
	commentSvc service.CommentService
	reviewSvc  service.ReviewService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(requestSvc service.RequestService, commentSvc service.CommentService, reviewSvc service.ReviewService) *RequestHandler {
	return &RequestHandler{
		requestSvc: requestSvc,
		commentSvc: commentSvc,
		reviewSvc:  reviewSvc,
	}
}

// ────────────────────── 申请生命周期 ──────────────────────

// Create 受理新申请
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), &req, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// List 申请列表（角色作用域）
// GET /api/v1/requests?status=3
func (h *RequestHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var query dto.RequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.List(c.Request.Context(), &query, userID, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 申请详情
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.GetByID(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateStatus 状态变更
// PATCH /api/v1/requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.requestSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.StatusID, role); err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignSpecialist 指派专员
// POST /api/v1/requests/:id/specialists
func (h *RequestHandler) AssignSpecialist(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AssignSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.requestSvc.AssignSpecialist(c.Request.Context(), c.Param("id"), req.SpecialistID, role); err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ExtendDeadline 在既有期限上追加天数
// POST /api/v1/requests/:id/deadline/extend
func (h *RequestHandler) ExtendDeadline(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ExtendDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.requestSvc.ExtendDeadline(c.Request.Context(), c.Param("id"), req.Days, role); err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetDeadline 直接改写期限
// PUT /api/v1/requests/:id/deadline
func (h *RequestHandler) SetDeadline(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.SetDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		response.BadRequest(c, 10001, "期限时间格式无效，应为 RFC 3339")
		return
	}

	if err := h.requestSvc.SetDeadline(c.Request.Context(), c.Param("id"), deadline, role); err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetHelpNeeded 求助标记开关
// PUT /api/v1/requests/:id/help
func (h *RequestHandler) SetHelpNeeded(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.HelpNeededRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Needed == nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.requestSvc.ToggleHelpNeeded(c.Request.Context(), c.Param("id"), *req.Needed, role); err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 评论子资源 ──────────────────────

// AddComment 追加评论
// POST /api/v1/requests/:id/comments
func (h *RequestHandler) AddComment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.commentSvc.Add(c.Request.Context(), c.Param("id"), userID, req.Text, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListComments 评论流（时间升序）
// GET /api/v1/requests/:id/comments
func (h *RequestHandler) ListComments(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.commentSvc.ListByRequest(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── 评价子资源 ──────────────────────

// AddReview 代录客户评价
// POST /api/v1/requests/:id/reviews
func (h *RequestHandler) AddReview(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reviewSvc.Add(c.Request.Context(), c.Param("id"), &req, role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListReviews 申请评价列表
// GET /api/v1/requests/:id/reviews
func (h *RequestHandler) ListReviews(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.reviewSvc.ListByRequest(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	response.OK(c, result)
}
