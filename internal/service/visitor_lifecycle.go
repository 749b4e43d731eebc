package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"gorm.io/gorm"
)

// AuditMeta 状态流转的操作上下文
type AuditMeta struct {
	OperatorAdminID uint
	RequestID       string
}

var errTransitionNotApplied = errors.New("visitor transition not applied")

// visitorTransitions 在同一事务内执行条件更新并写入审计日志
type visitorTransitions struct {
	visitorRepo repository.VisitorRepository
	auditRepo   repository.VisitorAuditLogRepository
}

// apply 执行一次 qr_status 流转，mutate 返回 false 表示条件不满足，此时不写审计
func (t visitorTransitions) apply(
	visitorID uint,
	fromStatus, toStatus, source string,
	meta AuditMeta,
	detail models.JSON,
	mutate func(repo repository.VisitorRepository) (bool, error),
) (bool, error) {
	err := t.visitorRepo.Transaction(func(tx *gorm.DB) error {
		applied, err := mutate(t.visitorRepo.WithTx(tx))
		if err != nil {
			return err
		}
		if !applied {
			return errTransitionNotApplied
		}
		return t.auditRepo.WithTx(tx).Create(buildVisitorAuditLog(visitorID, fromStatus, toStatus, source, meta, detail))
	})
	if errors.Is(err, errTransitionNotApplied) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("visitor %d %s -> %s failed: %w", visitorID, fromStatus, toStatus, err)
	}
	return true, nil
}

func buildVisitorAuditLog(visitorID uint, fromStatus, toStatus, source string, meta AuditMeta, detail models.JSON) *models.VisitorAuditLog {
	log := &models.VisitorAuditLog{
		VisitorID:  visitorID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Source:     source,
		RequestID:  strings.TrimSpace(meta.RequestID),
		DetailJSON: detail,
	}
	if meta.OperatorAdminID != 0 {
		operatorID := meta.OperatorAdminID
		log.OperatorAdminID = &operatorID
	}
	return log
}
