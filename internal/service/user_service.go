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

// ── 用户模块业务错误 ──

var (
	ErrUsernameExists = fmt.Errorf("%w: 用户名已被占用", pkgerrors.ErrDuplicate)
	ErrInvalidRole    = fmt.Errorf("%w: 角色 ID 非法", pkgerrors.ErrValidation)
)

// UserService 用户管理业务接口
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, callerRole string) (*dto.UserResponse, error)
	List(ctx context.Context, callerRole string) ([]dto.UserResponse, error)
	GetSpecialists(ctx context.Context) ([]dto.SpecialistResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── CreateUser ──────────────────────

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest, callerRole string) (*dto.UserResponse, error) {
	if err := RequirePermission(callerRole, OpManageUsers); err != nil {
		return nil, err
	}

	if !model.ValidRoleID(req.RoleID) {
		return nil, ErrInvalidRole
	}

	// 检查用户名唯一性
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		RoleID:   req.RoleID,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联角色
	created, err := s.repo.User.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(created)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, callerRole string) ([]dto.UserResponse, error) {
	if err := RequirePermission(callerRole, OpManageUsers); err != nil {
		return nil, err
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── GetSpecialists ──────────────────────

// GetSpecialists 返回全部维修专员（指派下拉用），任何已认证角色可见
func (s *userService) GetSpecialists(ctx context.Context) ([]dto.SpecialistResponse, error) {
	users, err := s.repo.User.ListByRole(ctx, model.RoleIDSpecialist)
	if err != nil {
		s.logger.Error("查询专员列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SpecialistResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.SpecialistResponse{ID: u.ID, FullName: u.FullName})
	}
	return result, nil
}
