package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestBuildAdminPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	noop := func(c *gin.Context) {}

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/visitors/send-otp", noop)
	api.POST("/visitors/qr-scan", noop)
	api.PUT("/visitors/approve/:id", noop)
	api.GET("/dropdown/companies", noop)
	api.POST("/admin/login", noop)
	api.GET("/admin/visitors", noop)
	api.GET("/admin/authz/roles", noop)

	items := buildAdminPermissionCatalog(r)
	got := make(map[string]string, len(items))
	for _, item := range items {
		got[item.Permission] = item.Module
	}

	want := map[string]string{
		"POST:/visitors/qr-scan":    "visitors",
		"PUT:/visitors/approve/:id": "visitors",
		"GET:/admin/visitors":       "visitors",
		"GET:/admin/authz/roles":    "authz",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected catalog: %+v", items)
	}
	for permission, module := range want {
		if got[permission] != module {
			t.Fatalf("permission %s want module %s got %q", permission, module, got[permission])
		}
	}
	if _, ok := got["POST:/visitors/send-otp"]; ok {
		t.Fatalf("public route should not be in catalog")
	}
}

func TestDeriveAdminPermissionModule(t *testing.T) {
	cases := map[string]string{
		"":                             "system",
		"/admin/companies/:id":         "companies",
		"/admin/authz/admins/:id":      "authz",
		"/visitors/verify-details/:id": "visitors",
		"/health":                      "health",
	}
	for object, want := range cases {
		if got := deriveAdminPermissionModule(object); got != want {
			t.Fatalf("object %q want %s got %s", object, want, got)
		}
	}
}

func setupFullRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_full_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = previous })

	return SetupRouter(cfg, provider.NewContainer(cfg))
}

func TestVerifyOtpRouteIsRateLimited(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Security.OtpRateLimit = config.RateLimitConfig{WindowSeconds: 60, MaxAttempts: 2, BlockSeconds: 60}
	r := setupFullRouter(t, cfg)

	verify := func(contact string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"contact":%q,"otp":"0000"}`, contact)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/visitors/verify-otp", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.9:4000"
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := verify("9876543210"); w.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d want 400 got %d: %s", i+1, w.Code, w.Body.String())
		}
	}
	w := verify("9876543210")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt want 429 got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("limited response should carry Retry-After")
	}
	if w = verify("9123456780"); w.Code != http.StatusBadRequest {
		t.Fatalf("other contact should use its own bucket, got %d", w.Code)
	}
}
