package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 预置角色：审计只读、保安、前台、人事、公司管理员
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
				{Object: "/visitors/verify-details/:id", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role: "security_guard",
			Policies: []Policy{
				{Object: "/visitors/qr-scan", Action: "POST"},
				{Object: "/visitors/verify-details/:id", Action: "GET"},
				{Object: "/admin/visitors/:id", Action: "GET"},
				{Object: "/admin/visitors/:id/card", Action: "GET"},
				{Object: "/admin/dashboard", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "front_desk",
			Inherits: []string{"security_guard"},
			Policies: []Policy{
				{Object: "/visitors/approve/:id", Action: "PUT"},
				{Object: "/visitors/reject/:id", Action: "PUT"},
				{Object: "/admin/visitors", Action: "GET"},
				{Object: "/admin/visitors/:id", Action: "PUT"},
				{Object: "/admin/visitors/:id/status", Action: "PUT"},
				{Object: "/admin/visitors/:id/audit-logs", Action: "GET"},
				{Object: "/admin/appointments", Action: "*"},
				{Object: "/admin/appointments/:id", Action: "*"},
				{Object: "/admin/appointments/:id/remarks", Action: "GET"},
				{Object: "/admin/upload", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "hr_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/departments", Action: "*"},
				{Object: "/admin/departments/:id", Action: "*"},
				{Object: "/admin/designations", Action: "*"},
				{Object: "/admin/designations/:id", Action: "*"},
				{Object: "/admin/employees", Action: "*"},
				{Object: "/admin/employees/:id", Action: "*"},
				{Object: "/admin/upload", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "company_admin",
			Inherits: []string{"front_desk", "hr_manager"},
			Policies: []Policy{
				{Object: "/admin/companies", Action: "*"},
				{Object: "/admin/companies/:id", Action: "*"},
				{Object: "/admin/purposes", Action: "*"},
				{Object: "/admin/purposes/:id", Action: "*"},
				{Object: "/admin/reports/*", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色、继承关系与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		if err := s.anchorRole(role); err != nil {
			return fmt.Errorf("create builtin role %s failed: %w", role, err)
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			object, action, err := normalizePolicyTarget(policy.Object, policy.Action)
			if err != nil {
				return fmt.Errorf("builtin policy %s %s invalid: %w", policy.Action, policy.Object, err)
			}
			if _, err := s.enforcer.AddPolicy(role, object, action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
		if seed.Immutable {
			s.builtin[role] = struct{}{}
		}
	}
	return nil
}
