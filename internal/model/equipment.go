package model

import "time"

// Equipment 设备表 — 对应 equipment
// serial_number 为设备身份键：受理时按序列号复用既有设备记录
type Equipment struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SerialNumber string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"serial_number"`
	Model        string    `gorm:"type:varchar(100);not null"                     json:"model"`
	Type         string    `gorm:"type:varchar(100);not null"                     json:"type"`
	ClientID     string    `gorm:"type:uuid;not null"                             json:"client_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName 指定表名
func (Equipment) TableName() string { return "equipment" }
