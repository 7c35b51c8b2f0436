package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/internal/model"
)

// ClientRepository 客户数据访问接口
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByPhone(ctx context.Context, phone string) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
}

// clientRepo ClientRepository 的 GORM 实现
// 客户的创建只发生在申请受理事务内（见 requestRepo.CreateIntake）
type clientRepo struct {
	db *gorm.DB
}

// NewClientRepo 创建 ClientRepository 实例
func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) GetByPhone(ctx context.Context, phone string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&clients).Error
	return clients, err
}
