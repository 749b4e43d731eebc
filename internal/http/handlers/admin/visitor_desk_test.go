package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/provider"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type deskResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupDeskHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_desk_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.VisitorAuditLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	visitorCfg := &config.VisitorConfig{ExitCooldownSeconds: 5, ExpiryHours: 24}
	companyRepo := repository.NewCompanyRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	designationRepo := repository.NewDesignationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	purposeRepo := repository.NewPurposeRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	auditRepo := repository.NewVisitorAuditLogRepository(db)

	h := &Handler{Container: &provider.Container{
		Config:           &config.Config{Visitor: *visitorCfg},
		ScanService:      service.NewScanService(visitorCfg, visitorRepo, auditRepo),
		DirectoryService: service.NewDirectoryService(companyRepo, departmentRepo, designationRepo, employeeRepo, purposeRepo),
	}}
	return h, db
}

func seedActiveVisitor(t *testing.T, db *gorm.DB) *models.Visitor {
	t.Helper()
	employee := &models.Employee{FirstName: "Meera", LastName: "Iyer", Email: "meera@example.com", Phone: "9000000001", CompanyID: 1, Status: constants.DirectoryStatusActive}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	purpose := &models.Purpose{Purpose: "Delivery"}
	if err := db.Create(purpose).Error; err != nil {
		t.Fatalf("create purpose failed: %v", err)
	}
	code := "data:image/png;base64,AAAA"
	visitor := &models.Visitor{
		FirstName:   "Ravi",
		LastName:    "Kumar",
		Email:       "ravi@example.com",
		Phone:       "9876500000",
		WhomToMeet:  employee.ID,
		PurposeID:   purpose.ID,
		IsVerified:  models.VerificationVerified,
		QRStatus:    constants.QRStatusActive,
		QRCode:      &code,
		BadgeActive: true,
	}
	if err := db.Create(visitor).Error; err != nil {
		t.Fatalf("create visitor failed: %v", err)
	}
	return visitor
}

func performScan(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, deskResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/visitors/qr-scan", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ScanVisitorQRCode(c)

	var resp deskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return w, resp
}

func TestScanVisitorQRCodeEntryThenDuplicate(t *testing.T) {
	h, db := setupDeskHandlerTest(t)
	visitor := seedActiveVisitor(t, db)
	body := fmt.Sprintf(`{"qrCode":%q}`, service.QRPayload(visitor.ID))

	w, resp := performScan(t, h, body)
	if w.Code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("entry scan want ok, got http=%d code=%d msg=%s", w.Code, resp.StatusCode, resp.Msg)
	}
	var result struct {
		Success   bool   `json:"success"`
		ScanType  string `json:"scanType"`
		VisitorID uint   `json:"visitor_id"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("unmarshal scan result failed: %v", err)
	}
	if !result.Success || result.ScanType != constants.ScanTypeEntry || result.VisitorID != visitor.ID {
		t.Fatalf("unexpected scan result: %+v", result)
	}

	w, resp = performScan(t, h, fmt.Sprintf(`{"qr_code":%q,"scanType":"entry"}`, service.QRPayload(visitor.ID)))
	if w.Code != http.StatusBadRequest || resp.StatusCode != 400 {
		t.Fatalf("duplicate entry want 400, got http=%d code=%d", w.Code, resp.StatusCode)
	}
	var rejected struct {
		Visitor service.ScanContext `json:"visitor"`
	}
	if err := json.Unmarshal(resp.Data, &rejected); err != nil {
		t.Fatalf("unmarshal rejection failed: %v", err)
	}
	if rejected.Visitor.Status != constants.QRStatusCheckedIn {
		t.Fatalf("rejection should carry current status, got %+v", rejected.Visitor)
	}
	if rejected.Visitor.SignInTime == nil {
		t.Fatalf("rejection should carry sign in time")
	}
}

func TestScanVisitorQRCodeErrors(t *testing.T) {
	h, _ := setupDeskHandlerTest(t)

	cases := []struct {
		name     string
		body     string
		wantHTTP int
	}{
		{name: "malformed json", body: `{"qrCode":`, wantHTTP: http.StatusBadRequest},
		{name: "missing code", body: `{}`, wantHTTP: http.StatusBadRequest},
		{name: "bad format", body: `{"qrCode":"hello"}`, wantHTTP: http.StatusBadRequest},
		{name: "unknown visitor", body: fmt.Sprintf(`{"qrCode":%q}`, service.QRPayload(999)), wantHTTP: http.StatusNotFound},
	}
	for _, tc := range cases {
		w, resp := performScan(t, h, tc.body)
		if w.Code != tc.wantHTTP {
			t.Fatalf("%s: want http %d got %d (code=%d)", tc.name, tc.wantHTTP, w.Code, resp.StatusCode)
		}
	}
}

func TestApproveVisitorInvalidID(t *testing.T) {
	h, _ := setupDeskHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/visitors/approve/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.ApproveVisitor(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}

func TestListDepartmentsScopedToAdminCompany(t *testing.T) {
	h, db := setupDeskHandlerTest(t)
	for _, company := range []models.Company{
		{CompanyName: "Acme", Status: constants.DirectoryStatusActive},
		{CompanyName: "Globex", Status: constants.DirectoryStatusActive},
	} {
		company := company
		if err := db.Create(&company).Error; err != nil {
			t.Fatalf("create company failed: %v", err)
		}
		if err := db.Create(&models.Department{CompanyID: company.ID, DeptName: company.CompanyName + " Ops", Status: constants.DirectoryStatusActive}).Error; err != nil {
			t.Fatalf("create department failed: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/admin/departments?company_id=1", nil)
	c.Set("admin_company_id", uint(2))

	h.ListDepartments(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int                      `json:"status_code"`
		Data       []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("scoped admin should see one department, got %d", len(resp.Data))
	}
	if companyID, _ := resp.Data[0]["company_id"].(float64); uint(companyID) != 2 {
		t.Fatalf("department leaked from another company: %+v", resp.Data[0])
	}
}
