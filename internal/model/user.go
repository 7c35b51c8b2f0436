package model

import "time"

// User 用户表 — 对应 users
// Password 为明文精确比对（历史系统约定，见 DESIGN.md，不在本层静默升级为哈希）
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Password  string    `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName  string    `gorm:"type:varchar(100);not null"                     json:"full_name"`
	RoleID    uint      `gorm:"not null"                                       json:"role_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// RoleName 返回关联角色名；未预加载时返回空串
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
