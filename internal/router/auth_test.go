package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vms-next/internal/authz"
	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "router-test-secret-0123456789abcdef"

type authFixture struct {
	engine *gin.Engine
	auth   *service.AuthService
	authz  *authz.Service
}

func setupAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_auth_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	adminRepo := repository.NewAdminRepository(db)
	authService := service.NewAuthService(&config.Config{
		JWT: config.JWTConfig{SecretKey: testJWTSecret, ExpireHours: 1},
	}, adminRepo)

	r := gin.New()
	protected := r.Group("/api/v1", JWTAuthMiddleware(testJWTSecret, adminRepo), AdminRBACMiddleware(authzService))
	ok := func(c *gin.Context) {
		companyID, _ := c.Get(adminCompanyContextKey)
		c.JSON(http.StatusOK, gin.H{"company_id": companyID})
	}
	protected.GET("/admin/visitors", ok)
	protected.DELETE("/admin/visitors/:id", ok)
	return &authFixture{engine: r, auth: authService, authz: authzService}
}

func (f *authFixture) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *authFixture) login(t *testing.T, admin *models.Admin) string {
	t.Helper()
	token, _, err := f.auth.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	return token
}

func TestJWTAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	f := setupAuthFixture(t)
	cases := map[string]string{
		"":               "missing header",
		"Basic abc":      "wrong scheme",
		"Bearer  ":       "empty token",
		"Bearer not.jwt": "garbage token",
	}
	for header, name := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/visitors", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		f.engine.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want 401 got %d", name, w.Code)
		}
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if w.Code != http.StatusUnauthorized || resp.StatusCode != 401 {
		t.Fatalf("missing secret want 401 got http=%d code=%d", w.Code, resp.StatusCode)
	}
}

func TestRBACAllowsGrantedRouteOnly(t *testing.T) {
	f := setupAuthFixture(t)
	companyID := uint(5)
	desk, err := f.auth.CreateAdmin(service.AdminCreateInput{Username: "desk01", Password: "frontdesk1", CompanyID: &companyID})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if err := f.authz.GrantRolePolicy("desk", "/admin/visitors", "GET"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := f.authz.SetAdminRoles(desk.ID, []string{"desk"}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}
	token := f.login(t, desk)

	w := f.do(http.MethodGet, "/api/v1/admin/visitors", token)
	if w.Code != http.StatusOK {
		t.Fatalf("granted route want 200 got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		CompanyID uint `json:"company_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body failed: %v", err)
	}
	if body.CompanyID != companyID {
		t.Fatalf("company scope should be set, got %d", body.CompanyID)
	}

	if w := f.do(http.MethodDelete, "/api/v1/admin/visitors/9", token); w.Code != http.StatusForbidden {
		t.Fatalf("ungranted route want 403 got %d", w.Code)
	}
}

func TestSuperAdminBypassesRBAC(t *testing.T) {
	f := setupAuthFixture(t)
	root, err := f.auth.CreateAdmin(service.AdminCreateInput{Username: "admin", Password: "rootpass1"})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	if w := f.do(http.MethodDelete, "/api/v1/admin/visitors/9", f.login(t, root)); w.Code != http.StatusOK {
		t.Fatalf("super admin want 200 got %d", w.Code)
	}
}

func TestPasswordChangeRevokesToken(t *testing.T) {
	f := setupAuthFixture(t)
	root, err := f.auth.CreateAdmin(service.AdminCreateInput{Username: "admin", Password: "rootpass1"})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	token := f.login(t, root)
	if err := f.auth.ChangePassword(root.ID, "rootpass1", "rootpass2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if w := f.do(http.MethodGet, "/api/v1/admin/visitors", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("old token want 401 got %d", w.Code)
	}
}
