package service

import (
	"errors"
	"testing"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/repository"
)

func setupDirectoryServiceTest(t *testing.T) *DirectoryService {
	t.Helper()
	db := openVisitorServiceDB(t)
	return NewDirectoryService(
		repository.NewCompanyRepository(db),
		repository.NewDepartmentRepository(db),
		repository.NewDesignationRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewPurposeRepository(db),
	)
}

func TestDirectoryCascade(t *testing.T) {
	svc := setupDirectoryServiceTest(t)

	company, err := svc.CreateCompany(CompanyInput{Name: "  Acme  "})
	if err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	if company.CompanyName != "Acme" || company.Status != constants.DirectoryStatusActive {
		t.Fatalf("unexpected company: %+v", company)
	}
	other, err := svc.CreateCompany(CompanyInput{Name: "Globex"})
	if err != nil {
		t.Fatalf("create company failed: %v", err)
	}

	dept, err := svc.CreateDepartment(DepartmentInput{CompanyID: company.ID, Name: "Engineering"})
	if err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	if _, err := svc.CreateDesignation(DesignationInput{CompanyID: other.ID, DepartmentID: dept.ID, Name: "Lead"}); !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("designation under foreign department should fail, got: %v", err)
	}
	designation, err := svc.CreateDesignation(DesignationInput{CompanyID: company.ID, DepartmentID: dept.ID, Name: "Lead"})
	if err != nil {
		t.Fatalf("create designation failed: %v", err)
	}

	employee, err := svc.CreateEmployee(EmployeeInput{
		FirstName:     "Priya",
		LastName:      "Sharma",
		Email:         "Priya@Acme.example",
		Phone:         "9000000001",
		CompanyID:     company.ID,
		DepartmentID:  dept.ID,
		DesignationID: designation.ID,
	})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	if employee.Email != "priya@acme.example" || employee.Role != constants.EmployeeRoleEmployee {
		t.Fatalf("unexpected employee: %+v", employee)
	}

	employees, err := svc.DropdownEmployees(repository.DropdownFilter{CompanyID: company.ID, DepartmentID: dept.ID})
	if err != nil || len(employees) != 1 {
		t.Fatalf("dropdown employees unexpected: %v %v", employees, err)
	}
	if items, _ := svc.DropdownEmployees(repository.DropdownFilter{}); len(items) != 0 {
		t.Fatalf("dropdown without company should be empty: %v", items)
	}
	if items, _ := svc.DropdownDesignations(company.ID, 0); len(items) != 0 {
		t.Fatalf("dropdown designations without department should be empty: %v", items)
	}

	if err := svc.DeactivateDepartment(dept.ID); err != nil {
		t.Fatalf("deactivate department failed: %v", err)
	}
	departments, err := svc.DropdownDepartments(company.ID)
	if err != nil {
		t.Fatalf("dropdown departments failed: %v", err)
	}
	if len(departments) != 0 {
		t.Fatalf("inactive department should be hidden: %v", departments)
	}
}

func TestDirectoryEmployeeUniqueness(t *testing.T) {
	svc := setupDirectoryServiceTest(t)
	company, err := svc.CreateCompany(CompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	input := EmployeeInput{FirstName: "Rahul", Email: "rahul@acme.example", Phone: "9000000002", CompanyID: company.ID}
	first, err := svc.CreateEmployee(input)
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}

	dup := input
	dup.Email = "other@acme.example"
	if _, err := svc.CreateEmployee(dup); !errors.Is(err, ErrEmployeeExists) {
		t.Fatalf("duplicate phone should fail, got: %v", err)
	}

	update := input
	update.Role = "ADMIN"
	updated, err := svc.UpdateEmployee(first.ID, update)
	if err != nil {
		t.Fatalf("updating self with same contact should pass: %v", err)
	}
	if updated.Role != constants.EmployeeRoleAdmin {
		t.Fatalf("role should be normalized, got %s", updated.Role)
	}

	bad := input
	bad.Role = "owner"
	if _, err := svc.UpdateEmployee(first.ID, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role should fail, got: %v", err)
	}
	if _, err := svc.GetEmployee(first.ID + 100); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("missing employee should fail, got: %v", err)
	}
	inactive := input
	inactive.CompanyID = company.ID + 100
	if _, err := svc.UpdateEmployee(first.ID, inactive); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("unknown company should fail, got: %v", err)
	}
}

func TestDirectoryPurposes(t *testing.T) {
	svc := setupDirectoryServiceTest(t)
	if _, err := svc.CreatePurpose("   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank purpose should fail, got: %v", err)
	}
	purpose, err := svc.CreatePurpose("Interview")
	if err != nil {
		t.Fatalf("create purpose failed: %v", err)
	}
	if _, err := svc.UpdatePurpose(purpose.ID, "Meeting"); err != nil {
		t.Fatalf("update purpose failed: %v", err)
	}
	if err := svc.DeletePurpose(purpose.ID); err != nil {
		t.Fatalf("delete purpose failed: %v", err)
	}
	if err := svc.DeletePurpose(purpose.ID); !errors.Is(err, ErrPurposeNotFound) {
		t.Fatalf("second delete should report not found, got: %v", err)
	}
}
