package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

// ── 配件模块业务错误 ──

var (
	ErrPartNotFound    = fmt.Errorf("%w: 配件不存在", pkgerrors.ErrNotFound)
	ErrPartNameExists  = fmt.Errorf("%w: 配件名已存在", pkgerrors.ErrDuplicate)
	ErrInvalidQuantity = fmt.Errorf("%w: 数量必须为正数", pkgerrors.ErrValidation)
)

// PartService 配件库存业务接口
type PartService interface {
	AddPart(ctx context.Context, req *dto.AddPartRequest, callerRole string) (*dto.PartResponse, error)
	List(ctx context.Context, callerRole string) ([]dto.PartResponse, error)
	AssignPart(ctx context.Context, requestID string, req *dto.AssignPartRequest, callerRole string) error
	ListForRequest(ctx context.Context, requestID, callerRole string) ([]dto.PartUsageResponse, error)
}

type partService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPartService 创建 PartService 实例
func NewPartService(repo *repository.Repository, logger *zap.Logger) PartService {
	return &partService{repo: repo, logger: logger}
}

// ────────────────────── AddPart ──────────────────────

func (s *partService) AddPart(ctx context.Context, req *dto.AddPartRequest, callerRole string) (*dto.PartResponse, error) {
	if err := RequirePermission(callerRole, OpAddPart); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyField
	}
	if req.StockQuantity < 0 || req.Price < 0 {
		return nil, fmt.Errorf("%w: 库存与单价不能为负", pkgerrors.ErrValidation)
	}

	// 检查配件名唯一性
	if _, err := s.repo.Part.GetByName(ctx, req.Name); err == nil {
		return nil, ErrPartNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	part := &model.Part{
		Name:          req.Name,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	}
	if err := s.repo.Part.Create(ctx, part); err != nil {
		s.logger.Error("新增配件失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	resp := toPartResponse(part)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *partService) List(ctx context.Context, callerRole string) ([]dto.PartResponse, error) {
	if err := RequirePermission(callerRole, OpListParts); err != nil {
		return nil, err
	}

	parts, err := s.repo.Part.List(ctx)
	if err != nil {
		s.logger.Error("查询配件列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		result = append(result, toPartResponse(&parts[i]))
	}
	return result, nil
}

// ────────────────────── AssignPart ──────────────────────

// AssignPart 领用配件：校验与扣减在仓储层的同一事务内完成（配件行加锁），
// 库存不足时整体失败且库存不变；重复领用同一配件累加用量。
func (s *partService) AssignPart(ctx context.Context, requestID string, req *dto.AssignPartRequest, callerRole string) error {
	if err := RequirePermission(callerRole, OpAssignPart); err != nil {
		return err
	}

	if req.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	// 申请必须存在
	if _, err := s.repo.Request.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if err := s.repo.Part.AssignToRequest(ctx, requestID, req.PartID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartNotFound
		}
		if errors.Is(err, pkgerrors.ErrInsufficientStock) {
			return err
		}
		s.logger.Error("配件领用失败",
			zap.String("request_id", requestID),
			zap.String("part_id", req.PartID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("配件已领用",
		zap.String("request_id", requestID),
		zap.String("part_id", req.PartID),
		zap.Int("quantity", req.Quantity),
	)
	return nil
}

// ────────────────────── ListForRequest ──────────────────────

// ListForRequest 申请配件账单视图：用量与单价联查，小计 = 单价 × 用量
func (s *partService) ListForRequest(ctx context.Context, requestID, callerRole string) ([]dto.PartUsageResponse, error) {
	if err := RequirePermission(callerRole, OpListParts); err != nil {
		return nil, err
	}

	usages, err := s.repo.Part.ListForRequest(ctx, requestID)
	if err != nil {
		s.logger.Error("查询申请配件用量失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PartUsageResponse, 0, len(usages))
	for _, u := range usages {
		item := dto.PartUsageResponse{
			PartID:       u.PartID,
			QuantityUsed: u.Quantity,
		}
		if u.Part != nil {
			item.Name = u.Part.Name
			item.Price = u.Part.Price
			item.LineTotal = u.Part.Price * float64(u.Quantity)
		}
		result = append(result, item)
	}
	return result, nil
}

func toPartResponse(part *model.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:            part.ID,
		Name:          part.Name,
		StockQuantity: part.StockQuantity,
		Price:         part.Price,
	}
}
