package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/melluro/repair-requests-system-2026/internal/model"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

func setupTestStatsService() (StatsService, *testRepos) {
	repos := newTestRepos()
	svc := NewStatsService(repos.repo, zap.NewNop())
	return svc, repos
}

// seedCompletedRequest 直接预置一条完修申请
func seedCompletedRequest(repos *testRepos, id, problem string, creation time.Time, repair time.Duration) {
	completion := creation.Add(repair)
	repos.request.requests[id] = &model.Request{
		ID:                 id,
		RequestNumber:      "REQ-" + id,
		CreationDate:       creation,
		ProblemDescription: problem,
		StatusID:           model.StatusCompleted,
		CompletionDate:     &completion,
	}
}

// ── Compute 测试 ──

func TestComputeStatistics_Empty(t *testing.T) {
	svc, _ := setupTestStatsService()

	stats, err := svc.Compute(context.Background(), model.RoleManager)
	if err != nil {
		t.Fatalf("Compute 应成功: %v", err)
	}
	if stats.CompletedCount != 0 {
		t.Errorf("期望完修数 0，实际=%d", stats.CompletedCount)
	}
	if stats.AverageRepairDays != 0 {
		t.Errorf("无完修记录时平均天数应为 0，实际=%v", stats.AverageRepairDays)
	}
}

func TestComputeStatistics_AverageRounded(t *testing.T) {
	svc, repos := setupTestStatsService()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedCompletedRequest(repos, "r1", "不开机", base, 1*24*time.Hour)
	seedCompletedRequest(repos, "r2", "卡纸", base, 2*24*time.Hour)
	seedCompletedRequest(repos, "r3", "卡纸", base, 2*24*time.Hour)

	stats, err := svc.Compute(context.Background(), model.RoleManager)
	if err != nil {
		t.Fatalf("Compute 应成功: %v", err)
	}
	if stats.CompletedCount != 3 {
		t.Errorf("期望完修数 3，实际=%d", stats.CompletedCount)
	}
	// (1+2+2)/3 = 1.666... → 1.67
	if stats.AverageRepairDays != 1.67 {
		t.Errorf("期望平均 1.67，实际=%v", stats.AverageRepairDays)
	}
}

// 修复时长按整天计，不足一天的部分舍去
func TestComputeStatistics_WholeDays(t *testing.T) {
	svc, repos := setupTestStatsService()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedCompletedRequest(repos, "r1", "不开机", base, 2*24*time.Hour+23*time.Hour)

	stats, _ := svc.Compute(context.Background(), model.RoleManager)
	if stats.AverageRepairDays != 2 {
		t.Errorf("期望平均 2（整天截断），实际=%v", stats.AverageRepairDays)
	}
}

// 完修时间早于受理时间的脏数据按 0 天计，不产生负平均值
func TestComputeStatistics_NegativeClampedToZero(t *testing.T) {
	svc, repos := setupTestStatsService()
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedCompletedRequest(repos, "r1", "不开机", base, -3*24*time.Hour)
	seedCompletedRequest(repos, "r2", "卡纸", base, 2*24*time.Hour)

	stats, _ := svc.Compute(context.Background(), model.RoleManager)
	if stats.AverageRepairDays != 1 {
		t.Errorf("期望平均 1（负时长按 0 计），实际=%v", stats.AverageRepairDays)
	}
}

// 按故障描述原文分组：文本完全一致才计入同组
func TestComputeStatistics_ProblemGrouping(t *testing.T) {
	svc, repos := setupTestStatsService()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedCompletedRequest(repos, "r1", "不开机", base, 24*time.Hour)
	seedCompletedRequest(repos, "r2", "不开机", base, 24*time.Hour)
	seedCompletedRequest(repos, "r3", "不开机 ", base, 24*time.Hour) // 尾随空格视为不同文本

	stats, _ := svc.Compute(context.Background(), model.RoleManager)
	if stats.ProblemTypeCounts["不开机"] != 2 {
		t.Errorf("期望「不开机」计 2 次，实际=%d", stats.ProblemTypeCounts["不开机"])
	}
	if stats.ProblemTypeCounts["不开机 "] != 1 {
		t.Errorf("期望「不开机 」计 1 次，实际=%d", stats.ProblemTypeCounts["不开机 "])
	}
}

// 未完修或缺完修时间的申请不计入统计
func TestComputeStatistics_ExcludesUnfinished(t *testing.T) {
	svc, repos := setupTestStatsService()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedCompletedRequest(repos, "r1", "不开机", base, 24*time.Hour)
	repos.request.requests["r2"] = &model.Request{
		ID: "r2", RequestNumber: "REQ-r2", CreationDate: base,
		ProblemDescription: "卡纸", StatusID: model.StatusInProgress,
	}

	stats, _ := svc.Compute(context.Background(), model.RoleManager)
	if stats.CompletedCount != 1 {
		t.Errorf("期望完修数 1，实际=%d", stats.CompletedCount)
	}
}

func TestComputeStatistics_PermissionDenied(t *testing.T) {
	svc, _ := setupTestStatsService()

	for _, role := range []string{model.RoleOperator, model.RoleSpecialist, model.RoleQualityManager} {
		_, err := svc.Compute(context.Background(), role)
		if !errors.Is(err, pkgerrors.ErrPermission) {
			t.Errorf("角色 %s 查看统计期望 ErrPermission，实际: %v", role, err)
		}
	}
}

// ── Export 测试 ──

func TestExportStatistics_ProducesWorkbook(t *testing.T) {
	svc, repos := setupTestStatsService()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedCompletedRequest(repos, "r1", "不开机", base, 24*time.Hour)
	seedCompletedRequest(repos, "r2", "卡纸", base, 2*24*time.Hour)

	buf, filename, err := svc.Export(context.Background(), model.RoleManager)
	if err != nil {
		t.Fatalf("Export 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际=%s", filename)
	}
}

func TestExportStatistics_PermissionDenied(t *testing.T) {
	svc, _ := setupTestStatsService()

	_, _, err := svc.Export(context.Background(), model.RoleSpecialist)
	if !errors.Is(err, pkgerrors.ErrPermission) {
		t.Errorf("期望 ErrPermission，实际: %v", err)
	}
}
