package model

import "time"

// Request 维修申请表 — 对应 requests
// completion_date 仅在状态切换为 Completed 时由引擎写入；
// 状态回退时不清空（历史系统行为，见 DESIGN.md 开放问题）
type Request struct {
	ID                 string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestNumber      string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"request_number"`
	CreationDate       time.Time  `gorm:"column:creation_date;not null;default:CURRENT_TIMESTAMP" json:"creation_date"`
	ProblemDescription string     `gorm:"type:text;not null"                             json:"problem_description"`
	ClientID           string     `gorm:"type:uuid;not null"                             json:"client_id"`
	EquipmentID        string     `gorm:"type:uuid;not null"                             json:"equipment_id"`
	StatusID           uint       `gorm:"not null"                                       json:"status_id"`
	CompletionDate     *time.Time `gorm:"column:completion_date"                         json:"completion_date,omitempty"`
	DeadlineDate       *time.Time `gorm:"column:deadline_date"                           json:"deadline_date,omitempty"`
	HelpNeeded         bool       `gorm:"not null;default:false"                         json:"help_needed"`

	// 关联
	Client      *Client    `gorm:"foreignKey:ClientID"    json:"client,omitempty"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	Status      *Status    `gorm:"foreignKey:StatusID"    json:"status,omitempty"`
	Specialists []User     `gorm:"many2many:request_specialists;joinForeignKey:RequestID;joinReferences:SpecialistID" json:"specialists,omitempty"`
}

// TableName 指定表名
func (Request) TableName() string { return "requests" }

// RequestSpecialist 申请-专员指派表（多对多，主键为对）— 对应 request_specialists
type RequestSpecialist struct {
	RequestID    string `gorm:"type:uuid;primaryKey" json:"request_id"`
	SpecialistID string `gorm:"type:uuid;primaryKey" json:"specialist_id"`
}

// TableName 指定表名
func (RequestSpecialist) TableName() string { return "request_specialists" }
