//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Appointment{},
		&models.Visitor{},
		&models.Purpose{},
		&models.Employee{},
		&models.Company{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Employee{},
		&models.Purpose{},
		&models.Visitor{},
		&models.Appointment{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresVisitorKeywordSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewVisitorRepository(db)

	visitor := &models.Visitor{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210"}
	if err := db.Create(visitor).Error; err != nil {
		t.Fatalf("create visitor failed: %v", err)
	}

	rows, total, err := repo.ListAdmin(VisitorListFilter{Page: 1, PageSize: 10, Keyword: "ASHA"})
	if err != nil {
		t.Fatalf("list visitors failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected ILIKE match, total=%d rows=%d", total, len(rows))
	}
}

func TestPostgresDashboardQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	company := &models.Company{CompanyName: "PG Corp", Status: constants.DirectoryStatusActive}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	employee := &models.Employee{FirstName: "Meera", LastName: "Shah", Email: "meera@pg.test", Phone: "9000000001", CompanyID: company.ID, Status: constants.DirectoryStatusActive}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	visitor := &models.Visitor{FirstName: "Asha", LastName: "Rao", CompanyID: company.ID, WhomToMeet: employee.ID, QRStatus: constants.QRStatusCheckedIn, SignInTime: &now}
	if err := db.Create(visitor).Error; err != nil {
		t.Fatalf("create visitor failed: %v", err)
	}
	appointment := &models.Appointment{VisitorID: visitor.ID, AppointmentDate: dayStart, AppointmentTime: "10:30", WhomToMeet: employee.ID, CompanyID: company.ID}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("create appointment failed: %v", err)
	}

	stats, err := repo.GetStats(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if stats.TotalVisitors != 1 || stats.TodayAppointments != 1 || stats.VisitorsCheckedIn != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	upcoming, err := repo.GetUpcomingAppointments(dayStart, 5)
	if err != nil {
		t.Fatalf("get upcoming appointments failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].EmployeeName != "Meera Shah" {
		t.Fatalf("unexpected upcoming appointments: %+v", upcoming)
	}
}
