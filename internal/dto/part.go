package dto

// ── 配件模块 DTO ──

// AddPartRequest 新增配件
type AddPartRequest struct {
	Name          string  `json:"name"           binding:"required,min=1,max=100"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	Price         float64 `json:"price"          binding:"min=0"`
}

// AssignPartRequest 为申请领用配件
type AssignPartRequest struct {
	PartID   string `json:"part_id"  binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// PartResponse 配件条目
type PartResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	StockQuantity int     `json:"stock_quantity"`
	Price         float64 `json:"price"`
}

// PartUsageResponse 申请配件用量视图（含计费小计）
type PartUsageResponse struct {
	PartID       string  `json:"part_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	QuantityUsed int     `json:"quantity_used"`
	LineTotal    float64 `json:"line_total"` // price * quantity_used
}
