package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/model"
)

// CommentRepository 评论数据访问接口（仅追加）
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByRequest(ctx context.Context, requestID string) ([]model.Comment, error)
}

// commentRepo CommentRepository 的 GORM 实现
type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 创建 CommentRepository 实例
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) ListByRequest(ctx context.Context, requestID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
