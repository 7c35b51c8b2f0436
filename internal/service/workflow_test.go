package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/melluro/repair-requests-system-2026/internal/dto"
	"github.com/melluro/repair-requests-system-2026/internal/model"
)

// 完整业务流：受理 → 指派 → 施修 → 领用配件 → 完修 → 统计
func TestWorkflow_IntakeToStatistics(t *testing.T) {
	repos := newTestRepos()
	cfg := testConfig()
	logger := zap.NewNop()

	reqSvc := NewRequestService(cfg, repos.repo, logger).(*requestService)
	partSvc := NewPartService(repos.repo, logger)
	commentSvc := NewCommentService(repos.repo, logger)
	statsSvc := NewStatsService(repos.repo, logger)

	seedUser(repos.user, "spec-1", "spec1", "p", model.RoleIDSpecialist)
	seedPart(repos, "part-1", "电源模块", 10, 250)

	intakeAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reqSvc.now = func() time.Time { return intakeAt }

	// 1. 运营受理
	created, err := reqSvc.Create(context.Background(), &dto.CreateRequestRequest{
		Client:             dto.ClientInfo{FullName: "李四", Phone: "555-0100"},
		Equipment:          dto.EquipmentInfo{SerialNumber: "SN-001", Model: "LX-300", Type: "打印机"},
		ProblemDescription: "不开机",
	}, model.RoleOperator)
	if err != nil {
		t.Fatalf("受理失败: %v", err)
	}

	// 2. 经理指派专员，New 自动推进为 Registered
	if err := reqSvc.AssignSpecialist(context.Background(), created.ID, "spec-1", model.RoleManager); err != nil {
		t.Fatalf("指派失败: %v", err)
	}
	if got := repos.request.requests[created.ID].StatusID; got != model.StatusRegistered {
		t.Fatalf("指派后状态应为 Registered，实际=%d", got)
	}

	// 3. 专员开工并领用配件
	if err := reqSvc.UpdateStatus(context.Background(), created.ID, model.StatusInProgress, model.RoleSpecialist); err != nil {
		t.Fatalf("开工失败: %v", err)
	}
	if err := partSvc.AssignPart(context.Background(), created.ID, &dto.AssignPartRequest{
		PartID: "part-1", Quantity: 3,
	}, model.RoleSpecialist); err != nil {
		t.Fatalf("领用配件失败: %v", err)
	}
	if got := repos.part.parts["part-1"].StockQuantity; got != 7 {
		t.Errorf("期望库存 7，实际=%d", got)
	}

	// 4. 过程评论
	if _, err := commentSvc.Add(context.Background(), created.ID, "spec-1", "更换电源模块后点亮", model.RoleSpecialist); err != nil {
		t.Fatalf("追加评论失败: %v", err)
	}

	// 5. 三天后完修
	completedAt := intakeAt.Add(3 * 24 * time.Hour)
	reqSvc.now = func() time.Time { return completedAt }
	if err := reqSvc.UpdateStatus(context.Background(), created.ID, model.StatusCompleted, model.RoleSpecialist); err != nil {
		t.Fatalf("完修失败: %v", err)
	}

	// 6. 经理查看统计
	stats, err := statsSvc.Compute(context.Background(), model.RoleManager)
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if stats.CompletedCount != 1 {
		t.Errorf("期望完修数 1，实际=%d", stats.CompletedCount)
	}
	if stats.AverageRepairDays != 3 {
		t.Errorf("期望平均修复 3 天，实际=%v", stats.AverageRepairDays)
	}
	if stats.ProblemTypeCounts["不开机"] != 1 {
		t.Errorf("期望「不开机」计 1 次，实际=%d", stats.ProblemTypeCounts["不开机"])
	}

	// 配件账单
	usages, err := partSvc.ListForRequest(context.Background(), created.ID, model.RoleManager)
	if err != nil {
		t.Fatalf("查询配件账单失败: %v", err)
	}
	if len(usages) != 1 || usages[0].LineTotal != 750 {
		t.Errorf("期望账单 1 行小计 750，实际: %+v", usages)
	}
}
