package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("desk", "/admin/visitors/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"desk"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/visitors/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/visitors/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("desk", "/admin/appointments", "GET"); err != nil {
		t.Fatalf("grant desk policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("reporting", "/admin/reports/visitors", "GET"); err != nil {
		t.Fatalf("grant reporting policy failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"desk"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:desk" {
		t.Fatalf("roles want [role:desk], got=%v", roles)
	}

	if err := svc.SetAdminRoles(2, []string{"reporting"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:reporting" {
		t.Fatalf("roles want [role:reporting], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/appointments", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceAdmin(2, "/admin/reports/visitors", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/appointments/:id", want: "/admin/appointments/:id"},
		{in: "/admin/appointments/:id", want: "/admin/appointments/:id"},
		{in: "admin/appointments", want: "/admin/appointments"},
		{in: "/api/v1", want: "/"},
		{in: "/api/v1x/visitors", want: "/api/v1x/visitors"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:readonly_auditor": true,
		"role:security_guard":   true,
		"role:front_desk":       true,
		"role:hr_manager":       true,
		"role:company_admin":    true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	if err := svc.SetAdminRoles(3, []string{"security_guard"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	allow, err := svc.EnforceAdmin(3, "/api/v1/visitors/qr-scan", "POST")
	if err != nil || !allow {
		t.Fatalf("guard should scan, allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceAdmin(3, "/api/v1/visitors/approve/:id", "PUT")
	if err != nil {
		t.Fatalf("enforce guard approve failed: %v", err)
	}
	if allow {
		t.Fatalf("guard must not approve visitors")
	}

	if err := svc.SetAdminRoles(4, []string{"front_desk"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	allow, err = svc.EnforceAdmin(4, "/api/v1/visitors/qr-scan", "POST")
	if err != nil || !allow {
		t.Fatalf("front desk should inherit scan, allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceAdmin(4, "/api/v1/admin/companies", "POST")
	if err != nil {
		t.Fatalf("enforce desk company write failed: %v", err)
	}
	if allow {
		t.Fatalf("front desk must not manage companies")
	}

	if err := svc.SetAdminRoles(5, []string{"company_admin"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	for _, check := range []struct{ obj, act string }{
		{"/api/v1/admin/reports/visitors", "GET"},
		{"/api/v1/admin/employees/:id", "PUT"},
		{"/api/v1/visitors/approve/:id", "PUT"},
		{"/api/v1/admin/dashboard", "GET"},
	} {
		allow, err := svc.EnforceAdmin(5, check.obj, check.act)
		if err != nil || !allow {
			t.Fatalf("company admin should be allowed %s %s, allow=%v err=%v", check.act, check.obj, allow, err)
		}
	}
}

func TestBuiltinRolesAreProtected(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if !svc.IsBuiltinRole("Security Guard") {
		t.Fatalf("security guard should be builtin")
	}
	if err := svc.DeleteRole("front_desk"); !errors.Is(err, ErrRoleBuiltin) {
		t.Fatalf("delete builtin want ErrRoleBuiltin got %v", err)
	}
	if err := svc.RevokeRolePolicy("security_guard", "/visitors/qr-scan", "POST"); !errors.Is(err, ErrRoleBuiltin) {
		t.Fatalf("revoke builtin want ErrRoleBuiltin got %v", err)
	}
	if err := svc.GrantRolePolicy("security_guard", "/admin/reports/visitors", "GET"); err != nil {
		t.Fatalf("builtin roles may be extended, got %v", err)
	}

	if err := svc.GrantRolePolicy("night_shift", "/visitors/qr-scan", "POST"); err != nil {
		t.Fatalf("grant custom role failed: %v", err)
	}
	if err := svc.DeleteRole("night_shift"); err != nil {
		t.Fatalf("custom role should be deletable, got %v", err)
	}
}

func TestGrantRolePolicyRejectsPublicRoutes(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	cases := []struct {
		object string
		action string
		want   error
	}{
		{object: "/api/v1/visitors/send-otp", action: "POST"},
		{object: "/dropdown/companies", action: "GET", want: ErrObjectNotProtected},
		{object: "/health", action: "GET", want: ErrObjectNotProtected},
		{object: "/admin/visitors", action: " ", want: ErrActionRequired},
		{object: "/admin", action: "get"},
	}
	for _, tc := range cases {
		err := svc.GrantRolePolicy("auditor", tc.object, tc.action)
		if tc.want == nil && err != nil {
			t.Fatalf("grant %s %s failed: %v", tc.action, tc.object, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("grant %s %s want %v got %v", tc.action, tc.object, tc.want, err)
		}
	}
}

func TestGetAdminPoliciesIncludesInheritedRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.SetAdminRoles(9, []string{"front_desk"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	policies, err := svc.GetAdminPolicies(9)
	if err != nil {
		t.Fatalf("get admin policies failed: %v", err)
	}
	found := false
	for _, policy := range policies {
		if policy.Subject == "role:security_guard" && policy.Object == "/visitors/qr-scan" {
			found = true
		}
	}
	if !found {
		t.Fatalf("inherited guard policy missing: %+v", policies)
	}
	if _, err := svc.GetAdminPolicies(0); !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("zero admin want ErrAdminRequired got %v", err)
	}
}
