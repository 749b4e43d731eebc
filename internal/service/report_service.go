package service

import (
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/repository"
)

// ReportService 访客与预约报表
type ReportService struct {
	repo repository.ReportRepository
}

// NewReportService 创建报表服务
func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// ReportQuery 报表查询条件，To 为包含当天的结束日期
type ReportQuery struct {
	Page      int
	PageSize  int
	From      *time.Time
	To        *time.Time
	CompanyID uint
	QRStatus  string
}

// VisitorReport 访客报表
func (s *ReportService) VisitorReport(query ReportQuery) ([]repository.VisitorReportRow, int64, error) {
	if !isReportQRStatus(query.QRStatus) {
		return nil, 0, ErrInvalidInput
	}
	from, to, err := normalizeReportRange(query.From, query.To)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListVisitorReport(repository.VisitorReportFilter{
		Page:      query.Page,
		PageSize:  query.PageSize,
		From:      from,
		To:        to,
		CompanyID: query.CompanyID,
		QRStatus:  query.QRStatus,
	})
}

// AppointmentReport 预约报表
func (s *ReportService) AppointmentReport(query ReportQuery) ([]repository.AppointmentTableRow, int64, error) {
	from, to, err := normalizeReportRange(query.From, query.To)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListAppointmentReport(repository.AppointmentListFilter{
		Page:      query.Page,
		PageSize:  query.PageSize,
		From:      from,
		To:        to,
		CompanyID: query.CompanyID,
	})
}

func isReportQRStatus(status string) bool {
	switch status {
	case "", constants.QRStatusActive, constants.QRStatusCheckedIn, constants.QRStatusCheckedOut, constants.QRStatusExpired:
		return true
	default:
		return false
	}
}

// normalizeReportRange 结束日期扩展到当天最后一秒
func normalizeReportRange(from, to *time.Time) (*time.Time, *time.Time, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrInvalidInput
	}
	if to == nil {
		return from, nil, nil
	}
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	return from, &end, nil
}
