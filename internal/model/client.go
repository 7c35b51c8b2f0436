package model

import "time"

// Client 客户表 — 对应 clients
// phone 为客户身份键：同一电话号码的来电复用既有客户记录
type Client struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName  string    `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Phone     string    `gorm:"type:varchar(30);not null;uniqueIndex"          json:"phone"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Client) TableName() string { return "clients" }
