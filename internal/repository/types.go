package repository

import "time"

// VisitorListFilter 查询访客列表的过滤条件
type VisitorListFilter struct {
	Page       int
	PageSize   int
	QRStatus   string
	IsVerified *int
	CompanyID  uint
	Keyword    string
}

// VisitorReportFilter 访客报表过滤条件
type VisitorReportFilter struct {
	Page      int
	PageSize  int
	From      *time.Time
	To        *time.Time
	CompanyID uint
	QRStatus  string
}

// AppointmentListFilter 查询预约列表的过滤条件
type AppointmentListFilter struct {
	Page      int
	PageSize  int
	From      *time.Time
	To        *time.Time
	CompanyID uint
}

// EmployeeListFilter 查询员工列表的过滤条件
type EmployeeListFilter struct {
	Page      int
	PageSize  int
	CompanyID uint
	Status    string
	Keyword   string
}

// DropdownFilter 级联下拉过滤条件
type DropdownFilter struct {
	CompanyID     uint
	DepartmentID  uint
	DesignationID uint
}

// VisitorAuditLogListFilter 访客流转审计日志过滤条件
type VisitorAuditLogListFilter struct {
	Page      int
	PageSize  int
	VisitorID uint
	Source    string
}

// AuthzAuditLogListFilter 查询权限审计日志列表的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	CompanyID       uint
	Action          string
	Role            string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
