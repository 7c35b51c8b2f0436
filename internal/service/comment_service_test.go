package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/melluro/repair-requests-system-2026/internal/model"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

func setupTestCommentService() (CommentService, *requestService, *testRepos) {
	repos := newTestRepos()
	svc := NewCommentService(repos.repo, zap.NewNop())
	reqSvc := NewRequestService(testConfig(), repos.repo, zap.NewNop()).(*requestService)
	return svc, reqSvc, repos
}

func TestAddComment_Success(t *testing.T) {
	svc, reqSvc, _ := setupTestCommentService()
	created, _ := reqSvc.Create(context.Background(), newIntakeRequest("555-0100", "SN-001", "不开机"), model.RoleOperator)

	result, err := svc.Add(context.Background(), created.ID, "user-1", "已联系客户确认症状", model.RoleOperator)
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if result.Text != "已联系客户确认症状" {
		t.Errorf("评论内容不符: %s", result.Text)
	}
	if result.RequestID != created.ID {
		t.Errorf("期望 RequestID=%s，实际=%s", created.ID, result.RequestID)
	}
}

func TestAddComment_EmptyText(t *testing.T) {
	svc, reqSvc, _ := setupTestCommentService()
	created, _ := reqSvc.Create(context.Background(), newIntakeRequest("555-0100", "SN-001", "不开机"), model.RoleOperator)

	_, err := svc.Add(context.Background(), created.ID, "user-1", "   ", model.RoleOperator)
	if !errors.Is(err, ErrEmptyField) {
		t.Errorf("期望 ErrEmptyField，实际: %v", err)
	}
}

func TestAddComment_RequestNotFound(t *testing.T) {
	svc, _, _ := setupTestCommentService()

	_, err := svc.Add(context.Background(), "nonexistent", "user-1", "评论", model.RoleOperator)
	if !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("期望 ErrRequestNotFound，实际: %v", err)
	}
}

// 评论流按时间升序返回，保持追加顺序
func TestListComments_Chronological(t *testing.T) {
	svc, reqSvc, _ := setupTestCommentService()
	created, _ := reqSvc.Create(context.Background(), newIntakeRequest("555-0100", "SN-001", "不开机"), model.RoleOperator)

	texts := []string{"第一条", "第二条", "第三条"}
	for _, text := range texts {
		if _, err := svc.Add(context.Background(), created.ID, "user-1", text, model.RoleSpecialist); err != nil {
			t.Fatalf("追加评论失败: %v", err)
		}
	}

	comments, err := svc.ListByRequest(context.Background(), created.ID, model.RoleManager)
	if err != nil {
		t.Fatalf("ListByRequest 应成功: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("期望 3 条评论，实际=%d", len(comments))
	}
	for i, want := range texts {
		if comments[i].Text != want {
			t.Errorf("第 %d 条期望 %q，实际=%q", i+1, want, comments[i].Text)
		}
	}
}

// 五种角色均可读写评论
func TestComments_AllRolesAllowed(t *testing.T) {
	svc, reqSvc, _ := setupTestCommentService()
	created, _ := reqSvc.Create(context.Background(), newIntakeRequest("555-0100", "SN-001", "不开机"), model.RoleOperator)

	roles := []string{
		model.RoleAdministrator, model.RoleOperator, model.RoleSpecialist,
		model.RoleManager, model.RoleQualityManager,
	}
	for _, role := range roles {
		if _, err := svc.Add(context.Background(), created.ID, "user-1", "来自 "+role, role); err != nil {
			t.Errorf("角色 %s 追加评论应成功: %v", role, err)
		}
		if _, err := svc.ListByRequest(context.Background(), created.ID, role); err != nil {
			t.Errorf("角色 %s 读取评论应成功: %v", role, err)
		}
	}
}

func TestAddComment_UnknownRoleDenied(t *testing.T) {
	svc, _, _ := setupTestCommentService()

	_, err := svc.Add(context.Background(), "req-1", "user-1", "评论", "Intern")
	if !errors.Is(err, pkgerrors.ErrPermission) {
		t.Errorf("未知角色期望 ErrPermission，实际: %v", err)
	}
}
