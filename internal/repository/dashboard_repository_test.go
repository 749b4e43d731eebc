package repository

import (
	"testing"
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"
)

func TestDashboardStatsAndLists(t *testing.T) {
	_, db := setupVisitorRepositoryTest(t)
	repo := NewDashboardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	active := &models.Company{CompanyName: "Acme", Status: constants.DirectoryStatusActive}
	inactive := &models.Company{CompanyName: "Closed", Status: constants.DirectoryStatusInactive}
	for _, company := range []*models.Company{active, inactive} {
		if err := db.Create(company).Error; err != nil {
			t.Fatalf("create company failed: %v", err)
		}
	}
	employee := &models.Employee{FirstName: "Meera", LastName: "Shah", Email: "meera@acme.test", Phone: "9000000001", CompanyID: active.ID, Status: constants.DirectoryStatusActive}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("create employee failed: %v", err)
	}

	inside := &models.Visitor{FirstName: "Asha", LastName: "Rao", CompanyID: active.ID, IsVerified: models.VerificationVerified, QRStatus: constants.QRStatusCheckedIn, SignInTime: &now}
	pending := &models.Visitor{FirstName: "Ravi", LastName: "K", CompanyID: active.ID}
	for _, visitor := range []*models.Visitor{inside, pending} {
		if err := db.Create(visitor).Error; err != nil {
			t.Fatalf("create visitor failed: %v", err)
		}
	}

	today := &models.Appointment{VisitorID: inside.ID, AppointmentDate: dayStart, AppointmentTime: "09:00", WhomToMeet: employee.ID, CompanyID: active.ID}
	later := &models.Appointment{VisitorID: pending.ID, AppointmentDate: dayStart.AddDate(0, 0, 2), AppointmentTime: "11:00", WhomToMeet: employee.ID, CompanyID: active.ID}
	past := &models.Appointment{VisitorID: pending.ID, AppointmentDate: dayStart.AddDate(0, 0, -3), AppointmentTime: "11:00", WhomToMeet: employee.ID, CompanyID: active.ID}
	for _, appointment := range []*models.Appointment{today, later, past} {
		if err := db.Create(appointment).Error; err != nil {
			t.Fatalf("create appointment failed: %v", err)
		}
	}

	stats, err := repo.GetStats(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if stats.TotalVisitors != 2 || stats.TotalEmployees != 1 || stats.TotalCompanies != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.TodayAppointments != 1 || stats.VisitorsCheckedIn != 1 || stats.PendingReview != 1 {
		t.Fatalf("unexpected day stats: %+v", stats)
	}

	recent, err := repo.GetRecentVisitors(5)
	if err != nil {
		t.Fatalf("get recent visitors failed: %v", err)
	}
	if len(recent) != 2 || recent[0].CompanyName != "Acme" {
		t.Fatalf("unexpected recent visitors: %+v", recent)
	}

	upcoming, err := repo.GetUpcomingAppointments(dayStart, 5)
	if err != nil {
		t.Fatalf("get upcoming appointments failed: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].AppointmentID != today.ID {
		t.Fatalf("unexpected upcoming appointments: %+v", upcoming)
	}
}
