package service

import (
	"fmt"

	"github.com/melluro/repair-requests-system-2026/internal/model"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

// Operation 业务操作名，权限表的键
type Operation string

const (
	OpCreateRequest    Operation = "CreateRequest"
	OpListClients      Operation = "ListClients"
	OpListRequests     Operation = "ListRequests"
	OpUpdateStatus     Operation = "UpdateStatus"
	OpAssignSpecialist Operation = "AssignSpecialist"
	OpExtendDeadline   Operation = "ExtendDeadline"
	OpSetDeadline      Operation = "SetDeadline"
	OpToggleHelpNeeded Operation = "ToggleHelpNeeded"
	OpAddComment       Operation = "AddComment"
	OpListComments     Operation = "ListComments"
	OpAddPart          Operation = "AddPart"
	OpListParts        Operation = "ListParts"
	OpAssignPart       Operation = "AssignPart"
	OpManageUsers      Operation = "ManageUsers"
	OpViewStatistics   Operation = "ViewStatistics"
	OpAddReview        Operation = "AddReview"
	OpListReviews      Operation = "ListReviews"
)

// rolePermissions 角色 → 允许的操作集合。
// 矩阵来自业务规则：运营受理、专员施修并领用配件、经理调度、质量经理管控期限。
// 每个 Service 入口在做任何变更前先查此表，不依赖调用方（UI/路由层）已经检查过。
var rolePermissions = map[string]map[Operation]bool{
	model.RoleAdministrator: {
		OpCreateRequest: true, OpListClients: true,
		OpListRequests: true, OpUpdateStatus: true,
		OpAssignSpecialist: true, OpAddComment: true, OpListComments: true,
		OpAddPart: true, OpListParts: true, OpAssignPart: true,
		OpManageUsers: true, OpViewStatistics: true,
		OpAddReview: true, OpListReviews: true,
	},
	model.RoleOperator: {
		OpCreateRequest: true, OpListClients: true,
		OpListRequests: true, OpUpdateStatus: true,
		OpAssignSpecialist: true, OpAddComment: true, OpListComments: true,
		OpListParts: true,
		OpAddReview: true, OpListReviews: true,
	},
	model.RoleSpecialist: {
		OpListRequests: true, OpUpdateStatus: true, OpToggleHelpNeeded: true,
		OpAddComment: true, OpListComments: true,
		OpAddPart: true, OpListParts: true, OpAssignPart: true,
		OpListReviews: true,
	},
	model.RoleManager: {
		OpListRequests: true, OpListClients: true, OpAssignSpecialist: true,
		OpAddComment: true, OpListComments: true, OpListParts: true,
		OpViewStatistics: true, OpListReviews: true,
	},
	model.RoleQualityManager: {
		OpListRequests: true, OpAssignSpecialist: true,
		OpExtendDeadline: true, OpSetDeadline: true,
		OpAddComment: true, OpListComments: true, OpListParts: true,
		OpAddReview: true, OpListReviews: true,
	},
}

// Allowed 判定角色是否可执行操作
func Allowed(role string, op Operation) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[op]
}

// RequirePermission 权限门：不满足时返回包装过的 ErrPermission，调用方不做任何变更
func RequirePermission(role string, op Operation) error {
	if !Allowed(role, op) {
		return fmt.Errorf("%w: 角色 %q 不允许执行 %s", pkgerrors.ErrPermission, role, op)
	}
	return nil
}
