package dto

// ── 统计模块 DTO ──

// StatisticsResponse 完修统计
type StatisticsResponse struct {
	CompletedCount    int            `json:"completed_count"`
	AverageRepairDays float64        `json:"average_repair_days"` // 保留两位小数
	ProblemTypeCounts map[string]int `json:"problem_type_counts"` // 按故障描述原文分组
}
