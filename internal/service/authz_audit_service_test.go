package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzAuditServiceTest(t *testing.T) (*AuthzAuditService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_audit_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AuthzAuditLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewAuthzAuditService(repository.NewAuthzAuditLogRepository(db))
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return svc, db
}

func TestAuthzAuditRecordAndScope(t *testing.T) {
	svc, _ := setupAuthzAuditServiceTest(t)

	if err := svc.Record(AuthzAuditRecordInput{Action: AuthzActionRoleCreate}); err != nil {
		t.Fatalf("anonymous record should be ignored, got: %v", err)
	}
	if err := svc.Record(AuthzAuditRecordInput{Meta: AuditMeta{OperatorAdminID: 1}, Action: "drop_tables"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown action should be rejected, got: %v", err)
	}

	inputs := []AuthzAuditRecordInput{
		{Meta: AuditMeta{OperatorAdminID: 1, RequestID: "req-1"}, Action: " Role_Create ", Role: "front_desk"},
		{Meta: AuditMeta{OperatorAdminID: 2}, CompanyID: 7, Action: AuthzActionPolicyGrant, Role: "hr_manager", Method: "get"},
		{Meta: AuditMeta{OperatorAdminID: 3}, CompanyID: 8, Action: AuthzActionAdminDelete},
	}
	for _, input := range inputs {
		if err := svc.Record(input); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	all, total, err := svc.ListForAdmin(repository.AuthzAuditLogListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("want 3 logs got total=%d len=%d", total, len(all))
	}
	first := all[len(all)-1]
	if first.Action != AuthzActionRoleCreate || first.RequestID != "req-1" {
		t.Fatalf("action should be normalized and request id kept: %+v", first)
	}
	if !first.CreatedAt.Equal(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at should come from the service clock: %s", first.CreatedAt)
	}

	scoped, total, err := svc.ListForAdmin(repository.AuthzAuditLogListFilter{Page: 1, PageSize: 20, CompanyID: 7})
	if err != nil {
		t.Fatalf("scoped list failed: %v", err)
	}
	if total != 1 || scoped[0].OperatorAdminID != 2 || scoped[0].Method != "GET" {
		t.Fatalf("unexpected scoped logs: total=%d %+v", total, scoped)
	}
}
