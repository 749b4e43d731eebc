package repository

import (
	"errors"
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// AppointmentDetail 预约详情（附访客与被访员工信息）
type AppointmentDetail struct {
	models.Appointment
	VisitorFirstName string `json:"visitor_first_name"`
	VisitorLastName  string `json:"visitor_last_name"`
	VisitorEmail     string `json:"visitor_email"`
	VisitorPhone     string `json:"visitor_phone"`
	EmpFirstName     string `json:"emp_first_name"`
	EmpLastName      string `json:"emp_last_name"`
	EmpEmail         string `json:"emp_email"`
}

// AppointmentTableRow 预约表格行
type AppointmentTableRow struct {
	AppointmentID   uint      `json:"appointment_id"`
	VisitorID       uint      `json:"visitor_id"`
	VisitorName     string    `json:"visitor_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Duration        string    `json:"duration"`
	CompanyID       uint      `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	EmployeeName    string    `json:"employee_name"`
	Purpose         string    `json:"purpose"`
	Reminder        string    `json:"reminder"`
	Remarks         string    `json:"remarks"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppointmentLookupRow 访客凭联系方式查询到的预约与二维码
type AppointmentLookupRow struct {
	VisitorID     uint    `json:"visitor_id"`
	AppointmentID uint    `json:"appointment_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Image         string  `json:"image"`
	WhomToMeet    string  `json:"whom_to_meet"`
	Purpose       string  `json:"purpose"`
	QRStatus      string  `json:"qr_status"`
	QRCode        *string `json:"qr_code"`
}

// AppointmentRepository 预约数据访问接口
type AppointmentRepository interface {
	WithTx(tx *gorm.DB) AppointmentRepository
	Create(appointment *models.Appointment) error
	Update(appointment *models.Appointment) error
	GetByID(id uint) (*models.Appointment, error)
	GetDetail(id uint) (*AppointmentDetail, error)
	ListTable(filter AppointmentListFilter) ([]AppointmentTableRow, int64, error)
	FindActiveByContact(contact string) (*AppointmentLookupRow, error)
}

// GormAppointmentRepository GORM 实现
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository 创建预约仓库
func NewAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAppointmentRepository) WithTx(tx *gorm.DB) AppointmentRepository {
	if tx == nil {
		return r
	}
	return &GormAppointmentRepository{db: tx}
}

// Create 创建预约
func (r *GormAppointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// Update 更新预约
func (r *GormAppointmentRepository) Update(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}

// GetByID 根据 ID 获取预约
func (r *GormAppointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.Where("appointment_id = ?", id).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// GetDetail 获取预约详情
func (r *GormAppointmentRepository) GetDetail(id uint) (*AppointmentDetail, error) {
	rows := make([]AppointmentDetail, 0, 1)
	err := r.db.Table("appointment_scheduling AS a").
		Select("a.*, v.first_name AS visitor_first_name, v.last_name AS visitor_last_name, v.email AS visitor_email, v.phone AS visitor_phone, e.first_name AS emp_first_name, e.last_name AS emp_last_name, e.email AS emp_email").
		Joins("JOIN visitors v ON v.visitor_id = a.visitor_id").
		Joins("LEFT JOIN employees e ON e.emp_id = a.whom_to_meet").
		Where("a.appointment_id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListTable 预约表格数据，按预约日期倒序
func (r *GormAppointmentRepository) ListTable(filter AppointmentListFilter) ([]AppointmentTableRow, int64, error) {
	base := applyAppointmentFilter(r.db.Table("appointment_scheduling AS a"), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]AppointmentTableRow, 0)
	query := base.
		Select("a.appointment_id AS appointment_id, a.visitor_id AS visitor_id, " + fullNameExpr("v") + " AS visitor_name, v.email AS email, v.phone AS phone, a.appointment_date AS appointment_date, a.appointment_time AS appointment_time, a.duration AS duration, a.company_id AS company_id, k.company_name AS company_name, " + fullNameExpr("e") + " AS employee_name, p.purpose AS purpose, a.reminder AS reminder, a.remarks AS remarks, a.created_at AS created_at").
		Joins("JOIN visitors v ON v.visitor_id = a.visitor_id").
		Joins("LEFT JOIN employees e ON e.emp_id = a.whom_to_meet").
		Joins("LEFT JOIN purpose p ON p.purpose_id = a.purpose_of_visit").
		Joins("LEFT JOIN companies k ON k.company_id = a.company_id").
		Order("a.appointment_date DESC").
		Order("a.appointment_time DESC")
	if err := applyPagination(query, filter.Page, filter.PageSize).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindActiveByContact 按邮箱或手机号查找二维码有效的预约访客
func (r *GormAppointmentRepository) FindActiveByContact(contact string) (*AppointmentLookupRow, error) {
	rows := make([]AppointmentLookupRow, 0, 1)
	err := r.db.Table("visitors AS v").
		Select("v.visitor_id AS visitor_id, a.appointment_id AS appointment_id, v.first_name AS first_name, v.last_name AS last_name, v.email AS email, v.phone AS phone, v.address AS address, v.image AS image, " + fullNameExpr("e") + " AS whom_to_meet, p.purpose AS purpose, v.qr_status AS qr_status, v.qr_code AS qr_code").
		Joins("JOIN appointment_scheduling a ON a.visitor_id = v.visitor_id").
		Joins("LEFT JOIN employees e ON e.emp_id = a.whom_to_meet").
		Joins("LEFT JOIN purpose p ON p.purpose_id = v.purpose").
		Where("(v.email = ? OR v.phone = ?) AND v.qr_status = ?", contact, contact, constants.QRStatusActive).
		Order("a.appointment_id DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func applyAppointmentFilter(query *gorm.DB, filter AppointmentListFilter) *gorm.DB {
	if filter.CompanyID != 0 {
		query = query.Where("a.company_id = ?", filter.CompanyID)
	}
	if filter.From != nil {
		query = query.Where("a.appointment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("a.appointment_date <= ?", *filter.To)
	}
	return query
}
