package model

import "time"

// Review 客户评价表 — 对应 reviews
// rating 取值 1..5，数据库 CHECK 约束兜底
type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID string    `gorm:"type:uuid;not null"                             json:"request_id"`
	Rating    int       `gorm:"not null"                                       json:"rating"`
	Comment   string    `gorm:"type:text"                                      json:"comment"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Review) TableName() string { return "reviews" }
