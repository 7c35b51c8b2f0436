package model

// 固定角色字典，由迁移脚本种子写入，运行期只读
const (
	RoleIDAdministrator  uint = 1
	RoleIDOperator       uint = 2
	RoleIDSpecialist     uint = 3
	RoleIDManager        uint = 4
	RoleIDQualityManager uint = 5
)

// 角色名（JWT 声明与权限表均以角色名为键）
const (
	RoleAdministrator  = "Administrator"
	RoleOperator       = "Operator"
	RoleSpecialist     = "Specialist"
	RoleManager        = "Manager"
	RoleQualityManager = "Quality Manager"
)

// Role 角色表 — 对应 roles
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// ValidRoleID 校验角色 ID 是否属于固定字典
func ValidRoleID(id uint) bool {
	return id >= RoleIDAdministrator && id <= RoleIDQualityManager
}
