package repository

import (
	"time"

	"gorm.io/gorm"
)

// VisitorReportRow 访客报表行
type VisitorReportRow struct {
	VisitorID       uint       `json:"visitor_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Gender          string     `json:"gender"`
	CompanyID       uint       `json:"company_id"`
	CompanyName     string     `json:"company_name"`
	DepartmentName  string     `json:"department_name"`
	DesignationName string     `json:"designation_name"`
	WhomToMeet      string     `json:"whom_to_meet"`
	Purpose         string     `json:"purpose"`
	SignInTime      *time.Time `json:"sign_in_time"`
	SignOutTime     *time.Time `json:"sign_out_time"`
	QRStatus        string     `json:"qr_status"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ReportRepository 报表查询接口
type ReportRepository interface {
	ListVisitorReport(filter VisitorReportFilter) ([]VisitorReportRow, int64, error)
	ListAppointmentReport(filter AppointmentListFilter) ([]AppointmentTableRow, int64, error)
}

// GormReportRepository GORM 实现
type GormReportRepository struct {
	db           *gorm.DB
	appointments *GormAppointmentRepository
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db, appointments: NewAppointmentRepository(db)}
}

// ListVisitorReport 访客报表，按登记时间倒序
func (r *GormReportRepository) ListVisitorReport(filter VisitorReportFilter) ([]VisitorReportRow, int64, error) {
	base := r.db.Table("visitors AS v")
	if filter.CompanyID != 0 {
		base = base.Where("v.company_id = ?", filter.CompanyID)
	}
	if filter.QRStatus != "" {
		base = base.Where("v.qr_status = ?", filter.QRStatus)
	}
	if filter.From != nil {
		base = base.Where("v.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("v.created_at <= ?", *filter.To)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]VisitorReportRow, 0)
	query := base.
		Select("v.visitor_id AS visitor_id, v.first_name AS first_name, v.last_name AS last_name, v.email AS email, v.phone AS phone, v.gender AS gender, v.company_id AS company_id, c.company_name AS company_name, d.dept_name AS department_name, g.designation_name AS designation_name, " + fullNameExpr("e") + " AS whom_to_meet, p.purpose AS purpose, v.sign_in_time AS sign_in_time, v.sign_out_time AS sign_out_time, v.qr_status AS qr_status, v.created_at AS created_at").
		Joins("LEFT JOIN employees e ON e.emp_id = v.whom_to_meet").
		Joins("LEFT JOIN companies c ON c.company_id = v.company_id").
		Joins("LEFT JOIN departments d ON d.department_id = v.department_id").
		Joins("LEFT JOIN designations g ON g.designation_id = v.designation_id").
		Joins("LEFT JOIN purpose p ON p.purpose_id = v.purpose").
		Order("v.created_at DESC").
		Order("v.visitor_id DESC")
	if err := applyPagination(query, filter.Page, filter.PageSize).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAppointmentReport 预约报表
func (r *GormReportRepository) ListAppointmentReport(filter AppointmentListFilter) ([]AppointmentTableRow, int64, error) {
	return r.appointments.ListTable(filter)
}
