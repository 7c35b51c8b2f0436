package service

import (
	"go.uber.org/zap"

	"github.com/melluro/repair-requests-system-2026/config"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
	"github.com/melluro/repair-requests-system-2026/pkg/jwt"
	"github.com/melluro/repair-requests-system-2026/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	User    UserService
	Client  ClientService
	Request RequestService
	Part    PartService
	Comment CommentService
	Review  ReviewService
	Stats   StatsService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:    NewUserService(repo, logger),
		Client:  NewClientService(repo, logger),
		Request: NewRequestService(cfg, repo, logger),
		Part:    NewPartService(repo, logger),
		Comment: NewCommentService(repo, logger),
		Review:  NewReviewService(repo, logger),
		Stats:   NewStatsService(repo, logger),
	}
}
