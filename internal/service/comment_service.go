package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
)

// CommentService 申请评论流（仅追加，按时间升序读取）
type CommentService interface {
	Add(ctx context.Context, requestID, authorID, text, callerRole string) (*dto.CommentResponse, error)
	ListByRequest(ctx context.Context, requestID, callerRole string) ([]dto.CommentResponse, error)
}

type commentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCommentService 创建 CommentService 实例
func NewCommentService(repo *repository.Repository, logger *zap.Logger) CommentService {
	return &commentService{repo: repo, logger: logger}
}

func (s *commentService) Add(ctx context.Context, requestID, authorID, text, callerRole string) (*dto.CommentResponse, error) {
	if err := RequirePermission(callerRole, OpAddComment); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyField
	}

	if _, err := s.repo.Request.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		RequestID: requestID,
		UserID:    authorID,
		Text:      text,
	}
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.logger.Error("追加评论失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) ListByRequest(ctx context.Context, requestID, callerRole string) ([]dto.CommentResponse, error) {
	if err := RequirePermission(callerRole, OpListComments); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.ListByRequest(ctx, requestID)
	if err != nil {
		s.logger.Error("查询评论失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, toCommentResponse(&comments[i]))
	}
	return result, nil
}

func toCommentResponse(comment *model.Comment) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:        comment.ID,
		RequestID: comment.RequestID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
	}
	if comment.User != nil {
		resp.UserName = comment.User.FullName
	}
	return resp
}
