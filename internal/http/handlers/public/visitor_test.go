package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/provider"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type captureNotifier struct {
	codes     map[string]string
	submitted []uint
}

func (n *captureNotifier) VisitorSubmitted(visitorID uint) { n.submitted = append(n.submitted, visitorID) }
func (n *captureNotifier) VisitorApproved(uint)            {}
func (n *captureNotifier) VisitorRejected(uint)            {}
func (n *captureNotifier) AppointmentScheduled(uint)       {}

func (n *captureNotifier) OtpIssued(contact, contactType, code, purpose, locale string) {
	n.codes[contact] = code
}

type publicResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicVisitorHandlerTest(t *testing.T) (*Handler, *captureNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_visitor_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Employee{},
		&models.Purpose{},
		&models.Visitor{},
		&models.TempVisitor{},
		&models.VisitorAuditLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	visitorCfg := &config.VisitorConfig{
		ExpiryHours: 24,
		Otp:         config.VerifyCodeConfig{ExpireMinutes: 5, Length: 4},
	}
	notifier := &captureNotifier{codes: map[string]string{}}
	visitorRepo := repository.NewVisitorRepository(db)
	tempRepo := repository.NewTempVisitorRepository(db)
	auditRepo := repository.NewVisitorAuditLogRepository(db)

	h := &Handler{Container: &provider.Container{
		OtpService:     service.NewOtpService(visitorCfg, tempRepo, notifier),
		VisitorService: service.NewVisitorService(visitorCfg, visitorRepo, tempRepo, auditRepo, service.NewQRCodeEncoder(), notifier),
	}}
	return h, notifier
}

func decodePublicResponse(t *testing.T, w *httptest.ResponseRecorder) publicResponse {
	t.Helper()
	var resp publicResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func jsonContext(method, path, body string, headers map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		c.Request.Header.Set(key, value)
	}
	return c, w
}

func multipartContext(t *testing.T, path string, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, w
}

func TestSendVisitorOtpRequiresContact(t *testing.T) {
	h, notifier := setupPublicVisitorHandlerTest(t)

	c, w := jsonContext(http.MethodPost, "/api/v1/visitors/send-otp", `{"phone":"  "}`, map[string]string{"X-Locale": "zh-CN"})
	h.SendVisitorOtp(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	resp := decodePublicResponse(t, w)
	if resp.Msg != "请输入手机号或邮箱" {
		t.Fatalf("unexpected localized msg: %s", resp.Msg)
	}
	if len(notifier.codes) != 0 {
		t.Fatalf("no code should be issued")
	}

	c, w = jsonContext(http.MethodPost, "/api/v1/visitors/send-otp", `{"contact":"12ab"}`, nil)
	h.SendVisitorOtp(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid contact want 400 got %d", w.Code)
	}
}

func TestVisitorOtpFlowThroughHandlers(t *testing.T) {
	h, notifier := setupPublicVisitorHandlerTest(t)
	form := map[string]string{
		"contact":        "9876543210",
		"first_name":     "Asha",
		"last_name":      "Rao",
		"gender":         "Female",
		"email":          "asha@example.com",
		"company_id":     "1",
		"department_id":  "1",
		"designation_id": "1",
		"whom_to_meet":   "1",
		"purpose":        "1",
		"aadhar_no":      "123412341234",
		"address":        "MG Road",
	}

	c, w := multipartContext(t, "/api/v1/visitors/submit-details", form)
	h.SubmitVisitorDetails(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("submit before otp want 403 got %d", w.Code)
	}

	c, w = jsonContext(http.MethodPost, "/api/v1/visitors/send-otp", `{"phone":"9876543210"}`, nil)
	h.SendVisitorOtp(c)
	if w.Code != http.StatusOK {
		t.Fatalf("send otp want 200 got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), notifier.codes["9876543210"]) {
		t.Fatalf("otp must not be echoed in response")
	}

	c, w = jsonContext(http.MethodPost, "/api/v1/visitors/verify-otp", `{"phone":"9876543210","otp":"0000x"}`, nil)
	h.VerifyVisitorOtp(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong otp want 400 got %d", w.Code)
	}

	body := fmt.Sprintf(`{"contact":"9876543210","otp":%q}`, notifier.codes["9876543210"])
	c, w = jsonContext(http.MethodPost, "/api/v1/visitors/verify-otp", body, nil)
	h.VerifyVisitorOtp(c)
	if w.Code != http.StatusOK {
		t.Fatalf("verify otp want 200 got %d: %s", w.Code, w.Body.String())
	}

	c, w = multipartContext(t, "/api/v1/visitors/submit-details", map[string]string{"contact": "9876543210", "first_name": "Asha"})
	h.SubmitVisitorDetails(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("incomplete submit want 400 got %d: %s", w.Code, w.Body.String())
	}
	var incomplete struct {
		MissingFields []string `json:"missing_fields"`
	}
	if err := json.Unmarshal(decodePublicResponse(t, w).Data, &incomplete); err != nil {
		t.Fatalf("unmarshal missing fields failed: %v", err)
	}
	if len(incomplete.MissingFields) == 0 || incomplete.MissingFields[0] != "last_name" {
		t.Fatalf("unexpected missing fields: %v", incomplete.MissingFields)
	}

	c, w = multipartContext(t, "/api/v1/visitors/submit-details", form)
	h.SubmitVisitorDetails(c)
	if w.Code != http.StatusOK {
		t.Fatalf("submit details want 200 got %d: %s", w.Code, w.Body.String())
	}
	var submitted struct {
		VisitorID  uint `json:"visitorId"`
		IsVerified bool `json:"isVerified"`
	}
	if err := json.Unmarshal(decodePublicResponse(t, w).Data, &submitted); err != nil {
		t.Fatalf("unmarshal submit data failed: %v", err)
	}
	if submitted.VisitorID == 0 || submitted.IsVerified {
		t.Fatalf("unexpected submit data: %+v", submitted)
	}
	if len(notifier.submitted) != 1 || notifier.submitted[0] != submitted.VisitorID {
		t.Fatalf("review notification not raised: %v", notifier.submitted)
	}

	c, w = multipartContext(t, "/api/v1/visitors/submit-details", form)
	h.SubmitVisitorDetails(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("repeat submit without new otp want 403 got %d", w.Code)
	}
}

func TestSubmitVisitorWithoutOtpReportsMissingFields(t *testing.T) {
	h, _ := setupPublicVisitorHandlerTest(t)

	c, w := multipartContext(t, "/api/v1/visitors/submit-without-otp", map[string]string{"first_name": "Ravi"})
	h.SubmitVisitorWithoutOtp(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	var data struct {
		MissingFields []string `json:"missing_fields"`
	}
	if err := json.Unmarshal(decodePublicResponse(t, w).Data, &data); err != nil {
		t.Fatalf("unmarshal data failed: %v", err)
	}
	if len(data.MissingFields) == 0 || data.MissingFields[0] != "last_name" {
		t.Fatalf("unexpected missing fields: %v", data.MissingFields)
	}
}
