package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（管理员）
type CreateUserRequest struct {
	Username string `json:"username"  binding:"required,min=1,max=50"`
	Password string `json:"password"  binding:"required,min=1,max=255"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
	RoleID   uint   `json:"role_id"   binding:"required,min=1,max=5"`
}

// SpecialistResponse 维修专员条目（用于指派下拉）
type SpecialistResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
