package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
)

var ErrExportGenerateFail = errors.New("生成统计报表失败")

// StatsService 完修统计聚合
type StatsService interface {
	Compute(ctx context.Context, callerRole string) (*dto.StatisticsResponse, error)
	Export(ctx context.Context, callerRole string) (*bytes.Buffer, string, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

// Compute 扫描已完修且有完修时间的申请：
// 完修数、平均修复天数（整天，负差值按 0 计，无完修记录时为 0）、
// 按故障描述原文分组计数（不做归一化聚类，见 DESIGN.md 开放问题）。
func (s *statsService) Compute(ctx context.Context, callerRole string) (*dto.StatisticsResponse, error) {
	if err := RequirePermission(callerRole, OpViewStatistics); err != nil {
		return nil, err
	}

	completed, err := s.repo.Request.ListCompleted(ctx)
	if err != nil {
		s.logger.Error("查询完修申请失败", zap.Error(err))
		return nil, err
	}

	stats := &dto.StatisticsResponse{
		CompletedCount:    len(completed),
		ProblemTypeCounts: make(map[string]int),
	}

	totalDays := 0
	for i := range completed {
		req := &completed[i]
		if req.CompletionDate != nil {
			days := int(req.CompletionDate.Sub(req.CreationDate) / (24 * time.Hour))
			if days < 0 {
				days = 0 // 数据不一致时兜底
			}
			totalDays += days
		}
		stats.ProblemTypeCounts[req.ProblemDescription]++
	}

	if stats.CompletedCount > 0 {
		avg := float64(totalDays) / float64(stats.CompletedCount)
		stats.AverageRepairDays = math.Round(avg*100) / 100
	}

	return stats, nil
}

// Export 生成 Excel 统计报表：汇总区 + 故障类型分布（按次数降序）
func (s *statsService) Export(ctx context.Context, callerRole string) (*bytes.Buffer, string, error) {
	stats, err := s.Compute(ctx, callerRole)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "维修统计"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "B", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 汇总区
	f.SetCellValue(sheetName, "A1", "完修统计报表")
	f.MergeCell(sheetName, "A1", "B1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	f.SetCellValue(sheetName, "A2", "完修申请数")
	f.SetCellValue(sheetName, "B2", stats.CompletedCount)
	f.SetCellValue(sheetName, "A3", "平均修复天数")
	f.SetCellValue(sheetName, "B3", stats.AverageRepairDays)

	// 故障类型分布，按次数降序、同次数按描述字典序
	f.SetCellValue(sheetName, "A5", "故障描述")
	f.SetCellValue(sheetName, "B5", "次数")
	f.SetCellStyle(sheetName, "A5", "B5", headerStyle)

	type problemCount struct {
		problem string
		count   int
	}
	counts := make([]problemCount, 0, len(stats.ProblemTypeCounts))
	for p, c := range stats.ProblemTypeCounts {
		counts = append(counts, problemCount{problem: p, count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].problem < counts[j].problem
	})

	row := 6
	for _, pc := range counts {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), pc.problem)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), pc.count)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("维修统计_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
