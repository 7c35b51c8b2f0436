package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/config"
	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

// ── 维修申请模块业务错误 ──

var (
	ErrRequestNotFound    = fmt.Errorf("%w: 维修申请不存在", pkgerrors.ErrNotFound)
	ErrSpecialistNotFound = fmt.Errorf("%w: 专员不存在", pkgerrors.ErrNotFound)
	ErrNotSpecialist      = fmt.Errorf("%w: 指派对象不是维修专员", pkgerrors.ErrValidation)
	ErrEmptyField         = fmt.Errorf("%w: 必填字段为空", pkgerrors.ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: 状态 ID 非法", pkgerrors.ErrValidation)
	ErrNoDeadline         = fmt.Errorf("%w: 申请未设置期限，无法延长", pkgerrors.ErrState)
)

const timeLayout = "2006-01-02 15:04:05"

// RequestService 维修申请生命周期引擎
// 每个入口先按调用者角色过权限门，再做变更；引擎不信任外层（路由/UI）已检查过权限。
type RequestService interface {
	Create(ctx context.Context, req *dto.CreateRequestRequest, callerRole string) (*dto.CreateRequestResponse, error)
	List(ctx context.Context, query *dto.RequestListQuery, callerID, callerRole string) ([]dto.RequestResponse, error)
	GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.RequestResponse, error)
	UpdateStatus(ctx context.Context, id string, statusID uint, callerRole string) error
	AssignSpecialist(ctx context.Context, requestID, specialistID, callerRole string) error
	ExtendDeadline(ctx context.Context, requestID string, days int, callerRole string) error
	SetDeadline(ctx context.Context, requestID string, deadline time.Time, callerRole string) error
	ToggleHelpNeeded(ctx context.Context, requestID string, needed bool, callerRole string) error
}

type requestService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 测试可替换时钟
}

// NewRequestService 创建 RequestService 实例
func NewRequestService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RequestService {
	return &requestService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

// Create 受理新申请：按电话解析/创建客户，按序列号解析/创建设备，
// 生成唯一申请单号，初始状态 New，期限 = 受理时刻 + 默认 SLA 天数。
// 整个受理在一个事务内完成，任一步失败不留下孤立行。
func (s *requestService) Create(ctx context.Context, req *dto.CreateRequestRequest, callerRole string) (*dto.CreateRequestResponse, error) {
	if err := RequirePermission(callerRole, OpCreateRequest); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Client.FullName) == "" ||
		strings.TrimSpace(req.Client.Phone) == "" ||
		strings.TrimSpace(req.Equipment.SerialNumber) == "" ||
		strings.TrimSpace(req.Equipment.Model) == "" ||
		strings.TrimSpace(req.Equipment.Type) == "" ||
		strings.TrimSpace(req.ProblemDescription) == "" {
		return nil, ErrEmptyField
	}

	number, err := s.generateRequestNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	deadline := now.Add(time.Duration(s.deadlineDays()) * 24 * time.Hour)

	client := &model.Client{
		FullName: req.Client.FullName,
		Phone:    req.Client.Phone,
	}
	equipment := &model.Equipment{
		SerialNumber: req.Equipment.SerialNumber,
		Model:        req.Equipment.Model,
		Type:         req.Equipment.Type,
	}
	request := &model.Request{
		RequestNumber:      number,
		CreationDate:       now,
		ProblemDescription: req.ProblemDescription,
		StatusID:           model.StatusNew,
		DeadlineDate:       &deadline,
	}

	if err := s.repo.Request.CreateIntake(ctx, client, equipment, request); err != nil {
		s.logger.Error("受理申请失败", zap.String("number", number), zap.Error(err))
		return nil, err
	}

	s.logger.Info("受理新申请",
		zap.String("number", number),
		zap.String("client_phone", client.Phone),
		zap.String("equipment_serial", equipment.SerialNumber),
	)

	return &dto.CreateRequestResponse{ID: request.ID, RequestNumber: number}, nil
}

// generateRequestNumber 时间戳单号，同秒冲突时追加序号
func (s *requestService) generateRequestNumber(ctx context.Context) (string, error) {
	base := fmt.Sprintf("REQ-%d", s.now().Unix())
	number := base
	for i := 1; ; i++ {
		exists, err := s.repo.Request.NumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
		number = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *requestService) deadlineDays() int {
	if s.cfg != nil && s.cfg.Request.DeadlineDays > 0 {
		return s.cfg.Request.DeadlineDays
	}
	return 7
}

// ────────────────────── List / GetByID ──────────────────────

// List 角色作用域查询：专员只看到被指派给自己的申请，其余角色看到全部。
// 排序固定为求助标记优先、创建时间倒序。
func (s *requestService) List(ctx context.Context, query *dto.RequestListQuery, callerID, callerRole string) ([]dto.RequestResponse, error) {
	if err := RequirePermission(callerRole, OpListRequests); err != nil {
		return nil, err
	}

	filters := &repository.RequestListFilters{}
	if query != nil {
		filters.StatusID = query.StatusID
	}
	if callerRole == model.RoleSpecialist {
		filters.SpecialistID = callerID
	}

	requests, err := s.repo.Request.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toRequestResponse(&requests[i]))
	}
	return result, nil
}

func (s *requestService) GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.RequestResponse, error) {
	if err := RequirePermission(callerRole, OpListRequests); err != nil {
		return nil, err
	}

	request, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 专员的可见范围与列表一致：未指派给自己的申请视同不存在
	if callerRole == model.RoleSpecialist && !isAssigned(request, callerID) {
		return nil, ErrRequestNotFound
	}

	resp := toRequestResponse(request)
	return &resp, nil
}

// ────────────────────── UpdateStatus ──────────────────────

// UpdateStatus 设置任意合法状态；切换为 Completed 时以当前时刻落完修时间。
// 状态间不设转移约束（历史系统语义，见 DESIGN.md 开放问题）；
// 回退状态时不清空已写入的完修时间。
func (s *requestService) UpdateStatus(ctx context.Context, id string, statusID uint, callerRole string) error {
	if err := RequirePermission(callerRole, OpUpdateStatus); err != nil {
		return err
	}

	if !model.ValidStatusID(statusID) {
		return ErrInvalidStatus
	}

	var completion *time.Time
	if statusID == model.StatusCompleted {
		now := s.now()
		completion = &now
	}

	if err := s.repo.Request.UpdateStatus(ctx, id, statusID, completion); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("更新申请状态失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("申请状态变更", zap.String("id", id), zap.Uint("status_id", statusID))
	return nil
}

// ────────────────────── AssignSpecialist ──────────────────────

// AssignSpecialist 幂等指派：重复指派同一专员为成功的空操作。
// 申请处于 New 状态时，首次指派自动推进为 Registered；
// 条件更新保证该推进只在 New 状态发生一次，状态已变化时不再触发。
func (s *requestService) AssignSpecialist(ctx context.Context, requestID, specialistID, callerRole string) error {
	if err := RequirePermission(callerRole, OpAssignSpecialist); err != nil {
		return err
	}

	if _, err := s.repo.Request.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	specialist, err := s.repo.User.GetByID(ctx, specialistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpecialistNotFound
		}
		return err
	}
	if specialist.RoleID != model.RoleIDSpecialist {
		return ErrNotSpecialist
	}

	if err := s.repo.Request.AssignSpecialist(ctx, requestID, specialistID); err != nil {
		s.logger.Error("指派专员失败",
			zap.String("request_id", requestID),
			zap.String("specialist_id", specialistID),
			zap.Error(err),
		)
		return err
	}

	if err := s.repo.Request.AdvanceStatusIf(ctx, requestID, model.StatusNew, model.StatusRegistered); err != nil {
		s.logger.Error("自动登记申请失败", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ExtendDeadline / SetDeadline ──────────────────────

// ExtendDeadline 在既有期限上累加天数（不是从当前时刻起算），保留累计 SLA 历史
func (s *requestService) ExtendDeadline(ctx context.Context, requestID string, days int, callerRole string) error {
	if err := RequirePermission(callerRole, OpExtendDeadline); err != nil {
		return err
	}

	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if request.DeadlineDate == nil {
		return ErrNoDeadline
	}

	newDeadline := request.DeadlineDate.Add(time.Duration(days) * 24 * time.Hour)
	if err := s.repo.Request.UpdateDeadline(ctx, requestID, newDeadline); err != nil {
		s.logger.Error("延长期限失败", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	s.logger.Info("期限已延长",
		zap.String("request_id", requestID),
		zap.Int("days", days),
		zap.Time("new_deadline", newDeadline),
	)
	return nil
}

// SetDeadline 直接改写期限为指定时刻
func (s *requestService) SetDeadline(ctx context.Context, requestID string, deadline time.Time, callerRole string) error {
	if err := RequirePermission(callerRole, OpSetDeadline); err != nil {
		return err
	}

	if err := s.repo.Request.UpdateDeadline(ctx, requestID, deadline); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("改写期限失败", zap.String("request_id", requestID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ToggleHelpNeeded ──────────────────────

// ToggleHelpNeeded 幂等开关求助标记，不影响状态
func (s *requestService) ToggleHelpNeeded(ctx context.Context, requestID string, needed bool, callerRole string) error {
	if err := RequirePermission(callerRole, OpToggleHelpNeeded); err != nil {
		return err
	}

	if err := s.repo.Request.UpdateHelpNeeded(ctx, requestID, needed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("更新求助标记失败", zap.String("request_id", requestID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 视图构造 ──────────────────────

func isAssigned(request *model.Request, userID string) bool {
	for _, sp := range request.Specialists {
		if sp.ID == userID {
			return true
		}
	}
	return false
}

func toRequestResponse(request *model.Request) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:                 request.ID,
		RequestNumber:      request.RequestNumber,
		CreationDate:       request.CreationDate.Format(timeLayout),
		ProblemDescription: request.ProblemDescription,
		StatusID:           request.StatusID,
		HelpNeeded:         request.HelpNeeded,
		Specialists:        make([]string, 0, len(request.Specialists)),
	}
	if request.Status != nil {
		resp.StatusName = request.Status.Name
	}
	if request.Client != nil {
		resp.ClientName = request.Client.FullName
		resp.ClientPhone = request.Client.Phone
	}
	if request.Equipment != nil {
		resp.EquipmentModel = request.Equipment.Model
		resp.EquipmentSerial = request.Equipment.SerialNumber
	}
	if request.CompletionDate != nil {
		v := request.CompletionDate.Format(timeLayout)
		resp.CompletionDate = &v
	}
	if request.DeadlineDate != nil {
		v := request.DeadlineDate.Format(timeLayout)
		resp.DeadlineDate = &v
	}
	for _, sp := range request.Specialists {
		resp.Specialists = append(resp.Specialists, sp.FullName)
	}
	return resp
}
