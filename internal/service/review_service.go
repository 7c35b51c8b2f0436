package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

var ErrInvalidRating = fmt.Errorf("%w: 评分必须在 1-5 之间", pkgerrors.ErrValidation)

// ReviewService 客户评价（由受理岗代录）
type ReviewService interface {
	Add(ctx context.Context, requestID string, req *dto.AddReviewRequest, callerRole string) (*dto.ReviewResponse, error)
	ListByRequest(ctx context.Context, requestID, callerRole string) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, logger *zap.Logger) ReviewService {
	return &reviewService{repo: repo, logger: logger}
}

func (s *reviewService) Add(ctx context.Context, requestID string, req *dto.AddReviewRequest, callerRole string) (*dto.ReviewResponse, error) {
	if err := RequirePermission(callerRole, OpAddReview); err != nil {
		return nil, err
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.repo.Request.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	review := &model.Review{
		RequestID: requestID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.logger.Error("录入评价失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) ListByRequest(ctx context.Context, requestID, callerRole string) ([]dto.ReviewResponse, error) {
	if err := RequirePermission(callerRole, OpListReviews); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.ListByRequest(ctx, requestID)
	if err != nil {
		s.logger.Error("查询评价失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, toReviewResponse(&reviews[i]))
	}
	return result, nil
}

func toReviewResponse(review *model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		RequestID: review.RequestID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format(timeLayout),
	}
}
