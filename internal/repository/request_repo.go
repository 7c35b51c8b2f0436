package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/melluro/repair-requests-system-2026/internal/model"
)

// RequestListFilters 申请列表过滤条件
type RequestListFilters struct {
	StatusID     uint   // 0 表示不过滤
	SpecialistID string // 非空时仅返回该专员被指派的申请
}

// RequestRepository 维修申请数据访问接口
type RequestRepository interface {
	CreateIntake(ctx context.Context, client *model.Client, equipment *model.Equipment, req *model.Request) error
	GetByID(ctx context.Context, id string) (*model.Request, error)
	List(ctx context.Context, filters *RequestListFilters) ([]model.Request, error)
	ListCompleted(ctx context.Context) ([]model.Request, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	UpdateStatus(ctx context.Context, id string, statusID uint, completion *time.Time) error
	AdvanceStatusIf(ctx context.Context, id string, fromStatusID, toStatusID uint) error
	AssignSpecialist(ctx context.Context, requestID, specialistID string) error
	UpdateDeadline(ctx context.Context, id string, deadline time.Time) error
	UpdateHelpNeeded(ctx context.Context, id string, needed bool) error
}

// requestRepo RequestRepository 的 GORM 实现
type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo 创建 RequestRepository 实例
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

// CreateIntake 受理事务：按电话解析或创建客户、按序列号解析或创建设备、落库申请。
// 任一步失败整体回滚，不留下孤立的客户/设备行。
func (r *requestRepo) CreateIntake(ctx context.Context, client *model.Client, equipment *model.Equipment, req *model.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 客户：电话号码为身份键
		var existingClient model.Client
		err := tx.Where("phone = ?", client.Phone).First(&existingClient).Error
		switch {
		case err == nil:
			*client = existingClient
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(client).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// 2. 设备：序列号为身份键
		var existingEquipment model.Equipment
		err = tx.Where("serial_number = ?", equipment.SerialNumber).First(&existingEquipment).Error
		switch {
		case err == nil:
			*equipment = existingEquipment
		case errors.Is(err, gorm.ErrRecordNotFound):
			equipment.ClientID = client.ID
			if err := tx.Create(equipment).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// 3. 申请
		req.ClientID = client.ID
		req.EquipmentID = equipment.ID
		return tx.Create(req).Error
	})
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*model.Request, error) {
	var req model.Request
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Equipment").
		Preload("Status").
		Preload("Specialists").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List 求助标记优先、创建时间倒序
func (r *requestRepo) List(ctx context.Context, filters *RequestListFilters) ([]model.Request, error) {
	db := r.db.WithContext(ctx).Model(&model.Request{})

	if filters != nil && filters.SpecialistID != "" {
		db = db.Joins("JOIN request_specialists rs ON rs.request_id = requests.id").
			Where("rs.specialist_id = ?", filters.SpecialistID)
	}
	if filters != nil && filters.StatusID != 0 {
		db = db.Where("requests.status_id = ?", filters.StatusID)
	}

	var requests []model.Request
	err := db.
		Preload("Client").
		Preload("Equipment").
		Preload("Status").
		Preload("Specialists").
		Order("requests.help_needed DESC, requests.creation_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListCompleted(ctx context.Context) ([]model.Request, error) {
	var requests []model.Request
	err := r.db.WithContext(ctx).
		Where("status_id = ? AND completion_date IS NOT NULL", model.StatusCompleted).
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("request_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus 设置状态；completion 非 nil 时同时写入完修时间
func (r *requestRepo) UpdateStatus(ctx context.Context, id string, statusID uint, completion *time.Time) error {
	updates := map[string]interface{}{"status_id": statusID}
	if completion != nil {
		updates["completion_date"] = completion
	}

	result := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdvanceStatusIf 条件推进：仅当当前状态为 fromStatusID 时改为 toStatusID。
// 不满足条件时静默不变（首次指派自动登记依赖此语义）。
func (r *requestRepo) AdvanceStatusIf(ctx context.Context, id string, fromStatusID, toStatusID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ? AND status_id = ?", id, fromStatusID).
		Update("status_id", toStatusID).Error
}

// AssignSpecialist 幂等插入指派对：重复指派不报错、不产生重复行
func (r *requestRepo) AssignSpecialist(ctx context.Context, requestID, specialistID string) error {
	assignment := model.RequestSpecialist{
		RequestID:    requestID,
		SpecialistID: specialistID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignment).Error
}

func (r *requestRepo) UpdateDeadline(ctx context.Context, id string, deadline time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ?", id).
		Update("deadline_date", deadline)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *requestRepo) UpdateHelpNeeded(ctx context.Context, id string, needed bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ?", id).
		Update("help_needed", needed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
