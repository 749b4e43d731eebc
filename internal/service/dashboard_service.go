package service

import (
	"context"
	"strings"
	"time"

	"github.com/vms-next/internal/cache"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/repository"
)

const (
	dashboardCacheTTL  = 45 * time.Second
	dashboardListLimit = 5
)

// DashboardService 后台首页统计
type DashboardService struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	Timezone     string
	ForceRefresh bool
}

// DashboardStats 仪表盘计数
type DashboardStats struct {
	TotalVisitors     int64 `json:"total_visitors"`
	TotalEmployees    int64 `json:"total_employees"`
	TotalCompanies    int64 `json:"total_companies"`
	TodayAppointments int64 `json:"today_appointments"`
	VisitorsCheckedIn int64 `json:"visitors_checked_in"`
	PendingReview     int64 `json:"pending_review"`
}

// DashboardRecentVisitor 最近访客
type DashboardRecentVisitor struct {
	VisitorID   uint       `json:"visitor_id"`
	Name        string     `json:"name"`
	CompanyName string     `json:"company_name"`
	SignInTime  *time.Time `json:"sign_in_time"`
	QRStatus    string     `json:"qr_status"`
}

// DashboardUpcomingAppointment 即将到来的预约
type DashboardUpcomingAppointment struct {
	AppointmentID   uint   `json:"appointment_id"`
	VisitorName     string `json:"visitor_name"`
	EmployeeName    string `json:"employee_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

// DashboardStatsResponse 仪表盘响应
type DashboardStatsResponse struct {
	Date                 string                         `json:"date"`
	Timezone             string                         `json:"timezone"`
	Stats                DashboardStats                 `json:"stats"`
	RecentVisitors       []DashboardRecentVisitor       `json:"recent_visitors"`
	UpcomingAppointments []DashboardUpcomingAppointment `json:"upcoming_appointments"`
}

// GetStats 获取仪表盘统计，按时区切分“今天”
func (s *DashboardService) GetStats(ctx context.Context, input DashboardQueryInput) (*DashboardStatsResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardStatsResponse{}, nil
	}
	location, timezone, err := resolveDashboardLocation(input.Timezone)
	if err != nil {
		return nil, err
	}
	now := s.now().In(location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	cacheKey := cache.Key("dashboard", "stats", timezone, dayStart.Unix())
	if !input.ForceRefresh {
		var cached DashboardStatsResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetStats(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecentVisitors(dashboardListLimit)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.GetUpcomingAppointments(dayStart, dashboardListLimit)
	if err != nil {
		return nil, err
	}

	response := &DashboardStatsResponse{
		Date:     dayStart.Format("2006-01-02"),
		Timezone: timezone,
		Stats: DashboardStats{
			TotalVisitors:     row.TotalVisitors,
			TotalEmployees:    row.TotalEmployees,
			TotalCompanies:    row.TotalCompanies,
			TodayAppointments: row.TodayAppointments,
			VisitorsCheckedIn: row.VisitorsCheckedIn,
			PendingReview:     row.PendingReview,
		},
		RecentVisitors:       make([]DashboardRecentVisitor, 0, len(recent)),
		UpcomingAppointments: make([]DashboardUpcomingAppointment, 0, len(upcoming)),
	}
	for _, item := range recent {
		response.RecentVisitors = append(response.RecentVisitors, DashboardRecentVisitor{
			VisitorID:   item.VisitorID,
			Name:        strings.TrimSpace(item.Name),
			CompanyName: item.CompanyName,
			SignInTime:  item.SignInTime,
			QRStatus:    item.QRStatus,
		})
	}
	for _, item := range upcoming {
		response.UpcomingAppointments = append(response.UpcomingAppointments, DashboardUpcomingAppointment{
			AppointmentID:   item.AppointmentID,
			VisitorName:     strings.TrimSpace(item.VisitorName),
			EmployeeName:    strings.TrimSpace(item.EmployeeName),
			AppointmentDate: item.AppointmentDate.Format("2006-01-02"),
			AppointmentTime: item.AppointmentTime,
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL); err != nil {
		logger.Component("dashboard").Warnw("dashboard_cache_set_failed", "error", err)
	}
	return response, nil
}

func resolveDashboardLocation(raw string) (*time.Location, string, error) {
	timezone := strings.TrimSpace(raw)
	if timezone == "" {
		return time.Local, time.Local.String(), nil
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, "", ErrInvalidInput
	}
	return location, timezone, nil
}
