package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestContextUint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uint(4)
	cases := []struct {
		name  string
		value interface{}
		want  uint
		ok    bool
	}{
		{"uint", uint(3), 3, true},
		{"pointer", &companyID, 4, true},
		{"jwt float", float64(9), 9, true},
		{"zero", uint(0), 0, false},
		{"negative", -1, 0, false},
		{"string", "5", 0, false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("admin_company_id", tc.value)
		got, ok := ContextUint(c, "admin_company_id")
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: got (%d,%v) want (%d,%v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestGetContextUintWithKeysResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid"); ok {
		t.Fatalf("missing id should fail")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing id want 401 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("admin_id", "abc")
	if _, ok := GetContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid"); ok {
		t.Fatalf("string id should fail")
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("bad type want 500 got %d", w.Code)
	}
}
