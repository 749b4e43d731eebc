package repository

import (
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetStats(dayStart, dayEnd time.Time) (DashboardStatsRow, error)
	GetRecentVisitors(limit int) ([]DashboardRecentVisitorRow, error)
	GetUpcomingAppointments(from time.Time, limit int) ([]DashboardUpcomingAppointmentRow, error)
}

// DashboardStatsRow 仪表盘计数
type DashboardStatsRow struct {
	TotalVisitors     int64
	TotalEmployees    int64
	TotalCompanies    int64
	TodayAppointments int64
	VisitorsCheckedIn int64
	PendingReview     int64
}

// DashboardRecentVisitorRow 最近访客
type DashboardRecentVisitorRow struct {
	VisitorID   uint
	Name        string
	CompanyName string
	SignInTime  *time.Time
	QRStatus    string
}

// DashboardUpcomingAppointmentRow 即将到来的预约
type DashboardUpcomingAppointmentRow struct {
	AppointmentID   uint
	VisitorName     string
	EmployeeName    string
	AppointmentDate time.Time
	AppointmentTime string
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetStats 获取计数统计，dayStart/dayEnd 为当天时间窗口
func (r *GormDashboardRepository) GetStats(dayStart, dayEnd time.Time) (DashboardStatsRow, error) {
	result := DashboardStatsRow{}

	if err := r.db.Model(&models.Visitor{}).Count(&result.TotalVisitors).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Employee{}).
		Where("status = ?", constants.DirectoryStatusActive).
		Count(&result.TotalEmployees).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Company{}).
		Where("status = ?", constants.DirectoryStatusActive).
		Count(&result.TotalCompanies).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayEnd).
		Count(&result.TodayAppointments).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Visitor{}).
		Where("qr_status = ?", constants.QRStatusCheckedIn).
		Count(&result.VisitorsCheckedIn).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Visitor{}).
		Where("is_verified = ?", models.VerificationUnverified).
		Count(&result.PendingReview).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetRecentVisitors 最近登记的访客
func (r *GormDashboardRepository) GetRecentVisitors(limit int) ([]DashboardRecentVisitorRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardRecentVisitorRow, 0, limit)
	err := r.db.Table("visitors AS v").
		Select("v.visitor_id AS visitor_id, " + fullNameExpr("v") + " AS name, c.company_name AS company_name, v.sign_in_time AS sign_in_time, v.qr_status AS qr_status").
		Joins("LEFT JOIN companies c ON c.company_id = v.company_id").
		Order("v.created_at DESC").
		Order("v.visitor_id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetUpcomingAppointments 从指定日期起最近的预约
func (r *GormDashboardRepository) GetUpcomingAppointments(from time.Time, limit int) ([]DashboardUpcomingAppointmentRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardUpcomingAppointmentRow, 0, limit)
	err := r.db.Table("appointment_scheduling AS a").
		Select("a.appointment_id AS appointment_id, " + fullNameExpr("v") + " AS visitor_name, " + fullNameExpr("e") + " AS employee_name, a.appointment_date AS appointment_date, a.appointment_time AS appointment_time").
		Joins("JOIN visitors v ON v.visitor_id = a.visitor_id").
		Joins("JOIN employees e ON e.emp_id = a.whom_to_meet").
		Where("a.appointment_date >= ?", from).
		Order("a.appointment_date ASC").
		Order("a.appointment_time ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
