package dto

// ── 维修申请模块 DTO ──

// ClientInfo 受理时的客户信息（按电话号码复用既有客户）
type ClientInfo struct {
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
	Phone    string `json:"phone"     binding:"required,min=1,max=30"`
}

// ClientResponse 客户目录条目（受理前按电话查重用）
type ClientResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// EquipmentInfo 受理时的设备信息（按序列号复用既有设备）
type EquipmentInfo struct {
	SerialNumber string `json:"serial_number" binding:"required,min=1,max=100"`
	Model        string `json:"model"         binding:"required,min=1,max=100"`
	Type         string `json:"type"          binding:"required,min=1,max=100"`
}

// CreateRequestRequest 创建维修申请
type CreateRequestRequest struct {
	Client             ClientInfo    `json:"client"              binding:"required"`
	Equipment          EquipmentInfo `json:"equipment"           binding:"required"`
	ProblemDescription string        `json:"problem_description" binding:"required,min=1"`
}

// CreateRequestResponse 创建结果
type CreateRequestResponse struct {
	ID            string `json:"id"`
	RequestNumber string `json:"request_number"`
}

// RequestListQuery 申请列表查询参数
type RequestListQuery struct {
	StatusID uint `form:"status" binding:"omitempty,min=1,max=6"`
}

// UpdateStatusRequest 状态变更
type UpdateStatusRequest struct {
	StatusID uint `json:"status_id" binding:"required,min=1,max=6"`
}

// AssignSpecialistRequest 指派专员
type AssignSpecialistRequest struct {
	SpecialistID string `json:"specialist_id" binding:"required,uuid"`
}

// ExtendDeadlineRequest 追加 SLA 期限（在原期限上累加天数）
type ExtendDeadlineRequest struct {
	Days int `json:"days" binding:"required,min=1,max=365"`
}

// SetDeadlineRequest 直接改写 SLA 期限
type SetDeadlineRequest struct {
	Deadline string `json:"deadline" binding:"required"` // RFC 3339
}

// HelpNeededRequest 求助标记开关
type HelpNeededRequest struct {
	Needed *bool `json:"needed" binding:"required"`
}

// RequestResponse 申请视图（列表与详情共用，含关联冗余字段）
type RequestResponse struct {
	ID                 string   `json:"id"`
	RequestNumber      string   `json:"request_number"`
	CreationDate       string   `json:"creation_date"`
	ProblemDescription string   `json:"problem_description"`
	StatusID           uint     `json:"status_id"`
	StatusName         string   `json:"status_name"`
	ClientName         string   `json:"client_name"`
	ClientPhone        string   `json:"client_phone"`
	EquipmentModel     string   `json:"equipment_model"`
	EquipmentSerial    string   `json:"equipment_serial"`
	CompletionDate     *string  `json:"completion_date,omitempty"`
	DeadlineDate       *string  `json:"deadline_date,omitempty"`
	HelpNeeded         bool     `json:"help_needed"`
	Specialists        []string `json:"specialists"`
}
