package errors

import "errors"

// 领域错误类别。各 Service 用 fmt.Errorf("%w: ...") 包装出具体哨兵错误，
// Handler 层通过 errors.Is 归类映射为 HTTP 状态码。

var (
	// ErrValidation 必填字段缺失或输入格式非法
	ErrValidation = errors.New("输入校验失败")

	// ErrNotFound 引用的申请/用户/配件不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrPermission 当前角色无权执行该操作
	ErrPermission = errors.New("无权执行该操作")

	// ErrInsufficientStock 配件库存不足，申请数量超过现有库存
	ErrInsufficientStock = errors.New("库存不足")

	// ErrDuplicate 唯一约束冲突（用户名/配件名/序列号/申请单号）
	ErrDuplicate = errors.New("记录已存在")

	// ErrState 操作与实体当前状态不符（如延长未设置的期限）
	ErrState = errors.New("当前状态不允许该操作")
)
