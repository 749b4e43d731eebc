package models

import "time"

// Company 公司表
type Company struct {
	ID          uint      `gorm:"column:company_id;primaryKey" json:"company_id"`                 // 主键
	CompanyName string    `gorm:"type:varchar(200);not null;index" json:"company_name"`           // 公司名称
	Status      string    `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"` // Active / Inactive
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Company) TableName() string {
	return "companies"
}

// Department 部门表
type Department struct {
	ID        uint      `gorm:"column:department_id;primaryKey" json:"department_id"`
	CompanyID uint      `gorm:"index;not null" json:"company_id"`
	DeptName  string    `gorm:"type:varchar(200);not null" json:"dept_name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Department) TableName() string {
	return "departments"
}

// Designation 岗位表
type Designation struct {
	ID              uint      `gorm:"column:designation_id;primaryKey" json:"designation_id"`
	CompanyID       uint      `gorm:"index;not null" json:"company_id"`
	DepartmentID    uint      `gorm:"index;not null" json:"department_id"`
	DesignationName string    `gorm:"type:varchar(200);not null" json:"designation_name"`
	Status          string    `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Designation) TableName() string {
	return "designations"
}

// Employee 员工表，被访人与公司管理员都在此表
type Employee struct {
	ID            uint      `gorm:"column:emp_id;primaryKey" json:"emp_id"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone         string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	CompanyID     uint      `gorm:"index;not null" json:"company_id"`
	DepartmentID  uint      `gorm:"index" json:"department_id"`
	DesignationID uint      `gorm:"index" json:"designation_id"`
	Role          string    `gorm:"type:varchar(20);not null;default:'employee';index" json:"role"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Employee) TableName() string {
	return "employees"
}

// FullName 员工全名
func (e Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

// Purpose 来访目的字典
type Purpose struct {
	ID        uint      `gorm:"column:purpose_id;primaryKey" json:"purpose_id"`
	Purpose   string    `gorm:"column:purpose;type:varchar(200);not null" json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Purpose) TableName() string {
	return "purpose"
}
