package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu          sync.Mutex
	submitted   []uint
	approved    []uint
	rejected    []uint
	otpCodes    map[string]string
	appointment []uint
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{otpCodes: make(map[string]string)}
}

func (n *recordingNotifier) VisitorSubmitted(visitorID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, visitorID)
}

func (n *recordingNotifier) VisitorApproved(visitorID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, visitorID)
}

func (n *recordingNotifier) VisitorRejected(visitorID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, visitorID)
}

func (n *recordingNotifier) OtpIssued(contact, contactType, code, purpose, locale string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.otpCodes[contact] = code
}

func (n *recordingNotifier) AppointmentScheduled(appointmentID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.appointment = append(n.appointment, appointmentID)
}

func openVisitorServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.Company{},
		&models.Department{},
		&models.Designation{},
		&models.Employee{},
		&models.Purpose{},
		&models.Visitor{},
		&models.TempVisitor{},
		&models.VisitorAuditLog{},
		&models.Appointment{},
		&models.VerifyCode{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func testVisitorConfig() *config.VisitorConfig {
	return &config.VisitorConfig{
		BaseURL:             "http://desk.local",
		ExitCooldownSeconds: 5,
		ExpiryHours:         24,
		Otp:                 config.VerifyCodeConfig{ExpireMinutes: 5, Length: 4},
	}
}

func setupVisitorServiceTest(t *testing.T) (*VisitorService, *recordingNotifier, *gorm.DB) {
	t.Helper()
	db := openVisitorServiceDB(t)
	notifier := newRecordingNotifier()
	svc := NewVisitorService(
		testVisitorConfig(),
		repository.NewVisitorRepository(db),
		repository.NewTempVisitorRepository(db),
		repository.NewVisitorAuditLogRepository(db),
		NewQRCodeEncoder(),
		notifier,
	)
	return svc, notifier, db
}

func sampleVisitorForm() VisitorForm {
	return VisitorForm{
		FirstName:     "Meera",
		LastName:      "Iyer",
		Email:         "meera@example.com",
		Phone:         "9123456780",
		Gender:        "female",
		AadharNo:      "1234-5678-9012",
		Address:       "12 MG Road",
		CompanyID:     1,
		DepartmentID:  2,
		DesignationID: 3,
		EmployeeID:    4,
		PurposeID:     5,
	}
}

func createPendingVisitor(t *testing.T, db *gorm.DB) *models.Visitor {
	t.Helper()
	visitor := &models.Visitor{
		FirstName:  "Ravi",
		LastName:   "Kumar",
		Email:      "ravi@example.com",
		Phone:      "9000000001",
		IsVerified: models.VerificationUnverified,
	}
	if err := db.Create(visitor).Error; err != nil {
		t.Fatalf("create visitor failed: %v", err)
	}
	return visitor
}

func reloadVisitor(t *testing.T, db *gorm.DB, id uint) models.Visitor {
	t.Helper()
	var visitor models.Visitor
	if err := db.Where("visitor_id = ?", id).First(&visitor).Error; err != nil {
		t.Fatalf("reload visitor failed: %v", err)
	}
	return visitor
}

func TestVisitorFormAliases(t *testing.T) {
	form := VisitorForm{EmployeeID: 7, PurposeID: 9}
	if form.ResolvedEmployeeID() != 7 || form.ResolvedPurposeID() != 9 {
		t.Fatalf("alias fields should be used when canonical fields are empty")
	}
	form.WhomToMeet = 3
	form.Purpose = 4
	if form.ResolvedEmployeeID() != 3 || form.ResolvedPurposeID() != 4 {
		t.Fatalf("canonical fields should win over aliases")
	}
}

func TestSubmitDetailsRequiresVerifiedContact(t *testing.T) {
	svc, notifier, db := setupVisitorServiceTest(t)

	if _, err := svc.SubmitDetails("9123456780", sampleVisitorForm(), ""); !errors.Is(err, ErrVisitorNotVerified) {
		t.Fatalf("expected not verified without staging row, got: %v", err)
	}

	tempRepo := repository.NewTempVisitorRepository(db)
	if err := tempRepo.UpsertOtp("9123456780", constants.ContactTypePhone, "4321", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("upsert otp failed: %v", err)
	}
	if _, err := svc.SubmitDetails("9123456780", sampleVisitorForm(), ""); !errors.Is(err, ErrVisitorNotVerified) {
		t.Fatalf("expected not verified before otp check, got: %v", err)
	}
	if len(notifier.submitted) != 0 {
		t.Fatalf("no notification expected, got %v", notifier.submitted)
	}
}

func TestSubmitDetailsCreatesPendingVisitorWithoutQRCode(t *testing.T) {
	svc, notifier, db := setupVisitorServiceTest(t)
	tempRepo := repository.NewTempVisitorRepository(db)
	if err := tempRepo.UpsertOtp("9123456780", constants.ContactTypePhone, "4321", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("upsert otp failed: %v", err)
	}
	if err := tempRepo.MarkOtpVerified("9123456780"); err != nil {
		t.Fatalf("mark verified failed: %v", err)
	}

	form := sampleVisitorForm()
	form.Phone = ""
	id, err := svc.SubmitDetails("9123456780", form, "uploads\\visitor\\a.png")
	if err != nil {
		t.Fatalf("submit details failed: %v", err)
	}
	visitor := reloadVisitor(t, db, id)
	if visitor.IsVerified != models.VerificationUnverified {
		t.Fatalf("expected unverified, got %v", visitor.IsVerified)
	}
	if visitor.QRCode != nil || visitor.QRStatus != "" {
		t.Fatalf("pending visitor must not carry a qr code: %+v", visitor)
	}
	if visitor.Phone != "9123456780" || visitor.WhomToMeet != 4 || visitor.PurposeID != 5 {
		t.Fatalf("form mapping mismatch: %+v", visitor)
	}
	if visitor.Otp != "4321" || !visitor.OtpVerified {
		t.Fatalf("otp should be copied from staging row: %+v", visitor)
	}
	if len(notifier.submitted) != 1 || notifier.submitted[0] != id {
		t.Fatalf("expected review notification for %d, got %v", id, notifier.submitted)
	}

	temp, err := tempRepo.GetByContact("9123456780")
	if err != nil || temp == nil {
		t.Fatalf("staging row should be kept: %v", err)
	}
	if temp.FirstName != "Meera" {
		t.Fatalf("staging row should receive the form, got %+v", temp)
	}
	if temp.OtpVerified {
		t.Fatalf("submission should clear the verification flag")
	}
	if _, err := svc.SubmitDetails("9123456780", form, ""); !errors.Is(err, ErrVisitorNotVerified) {
		t.Fatalf("second submission without a new otp want not verified, got: %v", err)
	}
	var count int64
	db.Model(&models.Visitor{}).Count(&count)
	if count != 1 || len(notifier.submitted) != 1 {
		t.Fatalf("expected a single visitor and notification, got visitors=%d notified=%v", count, notifier.submitted)
	}
}

func TestSubmitDetailsRejectsIncompleteForm(t *testing.T) {
	svc, notifier, db := setupVisitorServiceTest(t)
	tempRepo := repository.NewTempVisitorRepository(db)
	if err := tempRepo.UpsertOtp("9123456780", constants.ContactTypePhone, "4321", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("upsert otp failed: %v", err)
	}
	if err := tempRepo.MarkOtpVerified("9123456780"); err != nil {
		t.Fatalf("mark verified failed: %v", err)
	}

	_, err := svc.SubmitDetails("9123456780", VisitorForm{}, "")
	var missing *MissingFieldsError
	if !errors.As(err, &missing) || !errors.Is(err, ErrVisitorFieldsMissing) {
		t.Fatalf("expected missing fields error, got: %v", err)
	}
	for _, field := range missing.Fields {
		if field == "phone" {
			t.Fatalf("phone should be filled from the verified contact: %v", missing.Fields)
		}
	}
	if len(missing.Fields) != 11 {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}

	var count int64
	db.Model(&models.Visitor{}).Count(&count)
	if count != 0 || len(notifier.submitted) != 0 {
		t.Fatalf("incomplete form must not create a visitor, visitors=%d notified=%v", count, notifier.submitted)
	}
	temp, err := tempRepo.GetByContact("9123456780")
	if err != nil || temp == nil || !temp.OtpVerified {
		t.Fatalf("rejected form should keep the verification for a retry: %+v err=%v", temp, err)
	}
}

func TestApproveTwiceKeepsQRCode(t *testing.T) {
	svc, notifier, db := setupVisitorServiceTest(t)
	visitor := createPendingVisitor(t, db)

	result, err := svc.Approve(visitor.ID, AuditMeta{OperatorAdminID: 1, RequestID: "req-1"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !strings.HasPrefix(result.QRCode, "data:image/png;base64,") {
		t.Fatalf("unexpected qr code: %.40s", result.QRCode)
	}
	approved := reloadVisitor(t, db, visitor.ID)
	if approved.IsVerified != models.VerificationVerified || approved.QRStatus != constants.QRStatusActive || !approved.BadgeActive {
		t.Fatalf("unexpected approved state: %+v", approved)
	}
	if approved.QRCode == nil || *approved.QRCode != result.QRCode {
		t.Fatalf("qr code not persisted")
	}

	if _, err := svc.Approve(visitor.ID, AuditMeta{}); !errors.Is(err, ErrVisitorAlreadyVerified) {
		t.Fatalf("expected already verified, got: %v", err)
	}
	again := reloadVisitor(t, db, visitor.ID)
	if again.QRCode == nil || *again.QRCode != result.QRCode {
		t.Fatalf("second approval must not change qr code")
	}
	if len(notifier.approved) != 1 {
		t.Fatalf("expected one approval notification, got %v", notifier.approved)
	}

	logs, err := repository.NewVisitorAuditLogRepository(db).ListByVisitor(visitor.ID)
	if err != nil {
		t.Fatalf("list audit logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ToStatus != constants.QRStatusActive || logs[0].Source != constants.VisitorAuditSourceApprove {
		t.Fatalf("unexpected audit logs: %+v", logs)
	}
	if logs[0].OperatorAdminID == nil || *logs[0].OperatorAdminID != 1 || logs[0].RequestID != "req-1" {
		t.Fatalf("audit meta missing: %+v", logs[0])
	}
}

func TestApproveUnknownVisitor(t *testing.T) {
	svc, _, _ := setupVisitorServiceTest(t)
	if _, err := svc.Approve(404, AuditMeta{}); !errors.Is(err, ErrVisitorNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
	if err := svc.Reject(404, AuditMeta{}); !errors.Is(err, ErrVisitorNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
}

func TestRejectedVisitorNeverGetsQRCode(t *testing.T) {
	svc, notifier, db := setupVisitorServiceTest(t)
	visitor := createPendingVisitor(t, db)

	if err := svc.Reject(visitor.ID, AuditMeta{}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Approve(visitor.ID, AuditMeta{}); !errors.Is(err, ErrVisitorRejected) {
		t.Fatalf("expected rejected error, got: %v", err)
	}
	rejected := reloadVisitor(t, db, visitor.ID)
	if rejected.IsVerified != models.VerificationRejected || rejected.QRCode != nil || rejected.QRStatus != "" {
		t.Fatalf("rejected visitor state mismatch: %+v", rejected)
	}
	if len(notifier.rejected) != 1 {
		t.Fatalf("expected rejection notification, got %v", notifier.rejected)
	}
}

func TestRejectVerifiedVisitorFails(t *testing.T) {
	svc, _, db := setupVisitorServiceTest(t)
	visitor := createPendingVisitor(t, db)
	if _, err := svc.Approve(visitor.ID, AuditMeta{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := svc.Reject(visitor.ID, AuditMeta{}); !errors.Is(err, ErrVisitorAlreadyVerified) {
		t.Fatalf("expected already verified, got: %v", err)
	}
	if reloadVisitor(t, db, visitor.ID).IsVerified != models.VerificationVerified {
		t.Fatalf("verified visitor must stay verified")
	}
}

func TestSubmitWithoutOtpIssuesQRCodeInline(t *testing.T) {
	svc, notifier, db := setupVisitorServiceTest(t)

	var missing *MissingFieldsError
	_, err := svc.SubmitWithoutOtp(VisitorForm{FirstName: "A"}, "", AuditMeta{})
	if !errors.As(err, &missing) || !errors.Is(err, ErrVisitorFieldsMissing) {
		t.Fatalf("expected missing fields error, got: %v", err)
	}
	if len(missing.Fields) == 0 || missing.Fields[0] != "last_name" {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}

	result, err := svc.SubmitWithoutOtp(sampleVisitorForm(), "", AuditMeta{RequestID: "desk"})
	if err != nil {
		t.Fatalf("submit without otp failed: %v", err)
	}
	visitor := reloadVisitor(t, db, result.VisitorID)
	if visitor.IsVerified != models.VerificationVerified || visitor.QRStatus != constants.QRStatusActive {
		t.Fatalf("bypass visitor should be verified and active: %+v", visitor)
	}
	if visitor.QRCode == nil || *visitor.QRCode != result.QRCode {
		t.Fatalf("qr code should be stored inline")
	}
	if len(notifier.submitted) != 0 {
		t.Fatalf("bypass path does not notify reviewers")
	}
}

func TestVerifyDetailsNormalizesImagePath(t *testing.T) {
	svc, _, db := setupVisitorServiceTest(t)
	visitor := createPendingVisitor(t, db)
	if err := db.Model(&models.Visitor{}).Where("visitor_id = ?", visitor.ID).Update("image", "uploads\\visitor\\p.png").Error; err != nil {
		t.Fatalf("set image failed: %v", err)
	}
	detail, err := svc.VerifyDetails(visitor.ID)
	if err != nil {
		t.Fatalf("verify details failed: %v", err)
	}
	if detail.Image != "http://desk.local/uploads/visitor/p.png" {
		t.Fatalf("unexpected image url: %s", detail.Image)
	}
}

func TestGenerateCardRequiresActiveQRCode(t *testing.T) {
	svc, _, db := setupVisitorServiceTest(t)
	visitor := createPendingVisitor(t, db)
	if _, err := svc.GenerateCard(visitor.ID); !errors.Is(err, ErrVisitorCardUnavailable) {
		t.Fatalf("expected card unavailable, got: %v", err)
	}
	if _, err := svc.Approve(visitor.ID, AuditMeta{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	card, err := svc.GenerateCard(visitor.ID)
	if err != nil {
		t.Fatalf("generate card failed: %v", err)
	}
	if card.QRCode == "" || card.FirstName != "Ravi" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestUpdateStatusLabel(t *testing.T) {
	svc, _, db := setupVisitorServiceTest(t)
	visitor := createPendingVisitor(t, db)
	if err := svc.UpdateStatusLabel(visitor.ID, " "); !errors.Is(err, ErrVisitorStatusInvalid) {
		t.Fatalf("expected invalid status, got: %v", err)
	}
	if err := svc.UpdateStatusLabel(999, "VIP"); !errors.Is(err, ErrVisitorNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
	if err := svc.UpdateStatusLabel(visitor.ID, "VIP"); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if reloadVisitor(t, db, visitor.ID).Status != "VIP" {
		t.Fatalf("status label not saved")
	}
}

func TestExpireStaleSweepsOldCheckIns(t *testing.T) {
	svc, _, db := setupVisitorServiceTest(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	stale := createPendingVisitor(t, db)
	fresh := createPendingVisitor(t, db)
	for _, item := range []struct {
		id     uint
		signIn time.Time
	}{
		{stale.ID, now.Add(-25 * time.Hour)},
		{fresh.ID, now.Add(-time.Hour)},
	} {
		if err := db.Model(&models.Visitor{}).Where("visitor_id = ?", item.id).Updates(map[string]interface{}{
			"is_verified":  models.VerificationVerified,
			"qr_status":    constants.QRStatusCheckedIn,
			"sign_in_time": item.signIn,
		}).Error; err != nil {
			t.Fatalf("prepare visitor failed: %v", err)
		}
	}

	expired, err := svc.ExpireStale(10)
	if err != nil {
		t.Fatalf("expire stale failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected one expired visitor, got %d", expired)
	}
	if reloadVisitor(t, db, stale.ID).QRStatus != constants.QRStatusExpired {
		t.Fatalf("stale visitor should be expired")
	}
	if reloadVisitor(t, db, fresh.ID).QRStatus != constants.QRStatusCheckedIn {
		t.Fatalf("fresh visitor should stay checked in")
	}
	logs, _, err := svc.ListAuditLogs(repository.VisitorAuditLogListFilter{VisitorID: stale.ID})
	if err != nil || len(logs) != 1 || logs[0].Source != constants.VisitorAuditSourceSweep {
		t.Fatalf("expected sweep audit log, got %+v err=%v", logs, err)
	}
}
