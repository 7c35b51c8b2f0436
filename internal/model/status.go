package model

// 固定状态字典，数值与历史数据保持一致，由迁移脚本种子写入
const (
	StatusNew          uint = 1
	StatusRegistered   uint = 2
	StatusInProgress   uint = 3
	StatusWaitingParts uint = 4
	StatusCompleted    uint = 5
	StatusOverdue      uint = 6
)

// Status 申请状态表 — 对应 statuses
type Status struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

// TableName 指定表名
func (Status) TableName() string { return "statuses" }

// ValidStatusID 校验状态 ID 是否属于固定字典
func ValidStatusID(id uint) bool {
	return id >= StatusNew && id <= StatusOverdue
}
