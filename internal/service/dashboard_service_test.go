package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"gorm.io/gorm"
)

func seedReportingData(t *testing.T, db *gorm.DB, day time.Time) {
	t.Helper()
	company := &models.Company{CompanyName: "Acme", Status: constants.DirectoryStatusActive}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	employee := &models.Employee{FirstName: "Devi", LastName: "Nair", Email: "devi@acme.test", Phone: "9000000020", CompanyID: company.ID, Status: constants.DirectoryStatusActive}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	signIn := day.Add(9 * time.Hour)
	inside := &models.Visitor{FirstName: "Asha", LastName: "Rao", CompanyID: company.ID, WhomToMeet: employee.ID, IsVerified: models.VerificationVerified, QRStatus: constants.QRStatusCheckedIn, SignInTime: &signIn}
	pending := &models.Visitor{FirstName: "Ravi", LastName: "Kumar", CompanyID: company.ID, WhomToMeet: employee.ID}
	for _, visitor := range []*models.Visitor{inside, pending} {
		if err := db.Create(visitor).Error; err != nil {
			t.Fatalf("create visitor failed: %v", err)
		}
	}
	appointment := &models.Appointment{VisitorID: inside.ID, AppointmentDate: day, AppointmentTime: "10:30", WhomToMeet: employee.ID, CompanyID: company.ID}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("create appointment failed: %v", err)
	}
}

func TestDashboardGetStats(t *testing.T) {
	db := openVisitorServiceDB(t)
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	seedReportingData(t, db, day)

	svc := NewDashboardService(repository.NewDashboardRepository(db))
	svc.now = func() time.Time { return day.Add(8 * time.Hour) }

	resp, err := svc.GetStats(context.Background(), DashboardQueryInput{Timezone: "UTC"})
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if resp.Date != "2026-05-04" || resp.Timezone != "UTC" {
		t.Fatalf("unexpected window: %s %s", resp.Date, resp.Timezone)
	}
	stats := resp.Stats
	if stats.TotalVisitors != 2 || stats.TotalEmployees != 1 || stats.TotalCompanies != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.TodayAppointments != 1 || stats.VisitorsCheckedIn != 1 || stats.PendingReview != 1 {
		t.Fatalf("unexpected daily stats: %+v", stats)
	}
	if len(resp.RecentVisitors) != 2 {
		t.Fatalf("unexpected recent visitors: %+v", resp.RecentVisitors)
	}
	if len(resp.UpcomingAppointments) != 1 || resp.UpcomingAppointments[0].EmployeeName != "Devi Nair" {
		t.Fatalf("unexpected upcoming appointments: %+v", resp.UpcomingAppointments)
	}
}

func TestDashboardRejectsUnknownTimezone(t *testing.T) {
	db := openVisitorServiceDB(t)
	svc := NewDashboardService(repository.NewDashboardRepository(db))
	if _, err := svc.GetStats(context.Background(), DashboardQueryInput{Timezone: "Mars/Olympus"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid timezone, got: %v", err)
	}
}

func TestReportServiceFilters(t *testing.T) {
	db := openVisitorServiceDB(t)
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	seedReportingData(t, db, day)
	svc := NewReportService(repository.NewReportRepository(db))

	rows, total, err := svc.VisitorReport(ReportQuery{Page: 1, PageSize: 20, QRStatus: constants.QRStatusCheckedIn})
	if err != nil {
		t.Fatalf("visitor report failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].FirstName != "Asha" || rows[0].CompanyName != "Acme" {
		t.Fatalf("unexpected visitor report: total=%d rows=%+v", total, rows)
	}

	if _, _, err := svc.VisitorReport(ReportQuery{QRStatus: "teleported"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid status, got: %v", err)
	}
	from := day
	to := day.AddDate(0, 0, -1)
	if _, _, err := svc.AppointmentReport(ReportQuery{From: &from, To: &to}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid range, got: %v", err)
	}

	appointments, total, err := svc.AppointmentReport(ReportQuery{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("appointment report failed: %v", err)
	}
	if total != 1 || len(appointments) != 1 || appointments[0].EmployeeName != "Devi Nair" {
		t.Fatalf("unexpected appointment report: total=%d rows=%+v", total, appointments)
	}
}

func TestNormalizeReportRangeExtendsEndOfDay(t *testing.T) {
	to := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	_, end, err := normalizeReportRange(nil, &to)
	if err != nil {
		t.Fatalf("normalize range failed: %v", err)
	}
	if end.Format(time.RFC3339) != "2026-05-04T23:59:59Z" {
		t.Fatalf("unexpected end: %s", end.Format(time.RFC3339))
	}
}
