package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
)

// ClientService 客户目录查询。受理前按电话查重，避免重复建档；
// 客户的创建只发生在受理事务内（见 RequestService.Create）
type ClientService interface {
	List(ctx context.Context, phone, callerRole string) ([]dto.ClientResponse, error)
}

type clientService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClientService 创建 ClientService 实例
func NewClientService(repo *repository.Repository, logger *zap.Logger) ClientService {
	return &clientService{repo: repo, logger: logger}
}

// List 客户目录。phone 非空时做精确电话查询，无匹配返回空列表
func (s *clientService) List(ctx context.Context, phone, callerRole string) ([]dto.ClientResponse, error) {
	if err := RequirePermission(callerRole, OpListClients); err != nil {
		return nil, err
	}

	if phone != "" {
		client, err := s.repo.Client.GetByPhone(ctx, phone)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []dto.ClientResponse{}, nil
			}
			s.logger.Error("按电话查询客户失败", zap.String("phone", phone), zap.Error(err))
			return nil, err
		}
		return []dto.ClientResponse{toClientResponse(client)}, nil
	}

	clients, err := s.repo.Client.List(ctx)
	if err != nil {
		s.logger.Error("查询客户目录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		result = append(result, toClientResponse(&clients[i]))
	}
	return result, nil
}

func toClientResponse(client *model.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:       client.ID,
		FullName: client.FullName,
		Phone:    client.Phone,
	}
}
