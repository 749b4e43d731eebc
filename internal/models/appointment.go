package models

import "time"

// Appointment 预约表
type Appointment struct {
	ID              uint      `gorm:"column:appointment_id;primaryKey" json:"appointment_id"`
	VisitorID       uint      `gorm:"index;not null" json:"visitor_id"`
	AppointmentDate time.Time `gorm:"type:date;index;not null" json:"appointment_date"`
	AppointmentTime string    `gorm:"type:varchar(10);not null" json:"appointment_time"` // HH:MM
	Duration        string    `gorm:"type:varchar(50)" json:"duration"`
	PurposeOfVisit  uint      `gorm:"index" json:"purpose_of_visit"`
	CompanyID       uint      `gorm:"index" json:"company_id"`
	DepartmentID    uint      `gorm:"index" json:"department_id"`
	DesignationID   uint      `gorm:"index" json:"designation_id"`
	WhomToMeet      uint      `gorm:"column:whom_to_meet;index" json:"whom_to_meet"`
	Reminder        string    `gorm:"type:varchar(50)" json:"reminder"`
	Remarks         string    `gorm:"type:text" json:"remarks"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Appointment) TableName() string {
	return "appointment_scheduling"
}
