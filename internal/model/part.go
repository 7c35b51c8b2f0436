package model

// Part 配件表 — 对应 parts
// stock_quantity 由数据库 CHECK 约束兜底保证非负，扣减逻辑见 PartService
type Part struct {
	ID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string  `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	StockQuantity int     `gorm:"not null;default:0"                             json:"stock_quantity"`
	Price         float64 `gorm:"type:numeric(12,2);not null;default:0"          json:"price"`
}

// TableName 指定表名
func (Part) TableName() string { return "parts" }

// RequestPart 申请-配件用量表（多对多，主键为对）— 对应 request_parts
// 同一申请重复领用同一配件时累加 quantity，不产生重复行
type RequestPart struct {
	RequestID string `gorm:"type:uuid;primaryKey" json:"request_id"`
	PartID    string `gorm:"type:uuid;primaryKey" json:"part_id"`
	Quantity  int    `gorm:"not null;default:1"   json:"quantity"`

	// 关联
	Part *Part `gorm:"foreignKey:PartID" json:"part,omitempty"`
}

// TableName 指定表名
func (RequestPart) TableName() string { return "request_parts" }
