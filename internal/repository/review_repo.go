package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/model"
)

// ReviewRepository 客户评价数据访问接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByRequest(ctx context.Context, requestID string) ([]model.Review, error)
}

// reviewRepo ReviewRepository 的 GORM 实现
type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo 创建 ReviewRepository 实例
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) ListByRequest(ctx context.Context, requestID string) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}
