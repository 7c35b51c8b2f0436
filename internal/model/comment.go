package model

import "time"

// Comment 申请评论表（仅追加，按创建时间升序读取）— 对应 comments
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID string    `gorm:"type:uuid;not null"                             json:"request_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Text      string    `gorm:"type:text;not null"                             json:"text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }
