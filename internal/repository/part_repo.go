package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/melluro/repair-requests-system-2026/internal/model"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

// PartRepository 配件与库存数据访问接口
type PartRepository interface {
	Create(ctx context.Context, part *model.Part) error
	GetByID(ctx context.Context, id string) (*model.Part, error)
	GetByName(ctx context.Context, name string) (*model.Part, error)
	List(ctx context.Context) ([]model.Part, error)
	AssignToRequest(ctx context.Context, requestID, partID string, quantity int) error
	ListForRequest(ctx context.Context, requestID string) ([]model.RequestPart, error)
}

// partRepo PartRepository 的 GORM 实现
type partRepo struct {
	db *gorm.DB
}

// NewPartRepo 创建 PartRepository 实例
func NewPartRepo(db *gorm.DB) PartRepository {
	return &partRepo{db: db}
}

func (r *partRepo) Create(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *partRepo) GetByID(ctx context.Context, id string) (*model.Part, error) {
	var part model.Part
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) GetByName(ctx context.Context, name string) (*model.Part, error) {
	var part model.Part
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) List(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).Order("name ASC").Find(&parts).Error
	return parts, err
}

// AssignToRequest 领用事务：行锁 + 校验 + 扣减 + 用量累加，单事务执行。
// 并发领用同一配件时后到者在锁上排队，不会基于过期库存通过校验。
func (r *partRepo) AssignToRequest(ctx context.Context, requestID, partID string, quantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 锁定配件行（SELECT ... FOR UPDATE）
		var part model.Part
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", partID).
			First(&part).Error
		if err != nil {
			return err
		}

		// 2. 库存校验：不足则整体失败，不做部分满足
		if part.StockQuantity < quantity {
			return fmt.Errorf("%w: 配件 %s 现有 %d，申请 %d",
				pkgerrors.ErrInsufficientStock, part.Name, part.StockQuantity, quantity)
		}

		// 3. 扣减库存
		if err := tx.Model(&model.Part{}).
			Where("id = ?", partID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error; err != nil {
			return err
		}

		// 4. 用量行：已有则累加，否则新建
		var usage model.RequestPart
		err = tx.Where("request_id = ? AND part_id = ?", requestID, partID).First(&usage).Error
		switch {
		case err == nil:
			return tx.Model(&model.RequestPart{}).
				Where("request_id = ? AND part_id = ?", requestID, partID).
				Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			usage = model.RequestPart{RequestID: requestID, PartID: partID, Quantity: quantity}
			return tx.Create(&usage).Error
		default:
			return err
		}
	})
}

func (r *partRepo) ListForRequest(ctx context.Context, requestID string) ([]model.RequestPart, error) {
	var usages []model.RequestPart
	err := r.db.WithContext(ctx).
		Preload("Part").
		Where("request_id = ?", requestID).
		Find(&usages).Error
	return usages, err
}
