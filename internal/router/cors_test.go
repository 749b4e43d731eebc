package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vms-next/internal/config"

	"github.com/gin-gonic/gin"
)

func TestCORSPolicyAllowOrigin(t *testing.T) {
	cases := []struct {
		name   string
		cfg    config.CORSConfig
		origin string
		want   string
	}{
		{"wildcard", config.CORSConfig{AllowedOrigins: []string{"*"}}, "https://kiosk.example.com", "*"},
		{"wildcard with credentials echoes", config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, "https://kiosk.example.com", "https://kiosk.example.com"},
		{"allow list", config.CORSConfig{AllowedOrigins: []string{"https://Desk.example.com"}}, "https://desk.example.com", "https://desk.example.com"},
		{"not listed", config.CORSConfig{AllowedOrigins: []string{"https://desk.example.com"}}, "https://evil.example.com", ""},
		{"empty config defaults to any", config.CORSConfig{}, "", "*"},
	}
	for _, tc := range cases {
		if got := newCORSPolicy(tc.cfg).allowOrigin(tc.origin); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://desk.example.com"}, MaxAge: 600}))
	r.POST("/api/v1/visitors/qr-scan", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/visitors/qr-scan", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight want 204 got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://desk.example.com" {
		t.Fatalf("unexpected allow origin %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("max age not set")
	}
	if w.Header().Get("Access-Control-Expose-Headers") != requestIDHeader {
		t.Fatalf("request id header should be exposed")
	}
}
