package main

import (
	"errors"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"
)

type seedEmployee struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Department  string
	Designation string
	Role        string
}

type seedCompany struct {
	Name         string
	Designations map[string][]string
	Employees    []seedEmployee
}

var seedCompanies = []seedCompany{
	{
		Name: "Acme Technologies",
		Designations: map[string][]string{
			"Engineering":     {"Software Engineer", "Engineering Manager"},
			"Human Resources": {"HR Executive"},
		},
		Employees: []seedEmployee{
			{FirstName: "Priya", LastName: "Sharma", Email: "priya.sharma@acme.example", Phone: "9000000001", Department: "Engineering", Designation: "Engineering Manager", Role: "admin"},
			{FirstName: "Rahul", LastName: "Verma", Email: "rahul.verma@acme.example", Phone: "9000000002", Department: "Engineering", Designation: "Software Engineer", Role: "employee"},
			{FirstName: "Neha", LastName: "Iyer", Email: "neha.iyer@acme.example", Phone: "9000000003", Department: "Human Resources", Designation: "HR Executive", Role: "employee"},
		},
	},
	{
		Name: "Globex Logistics",
		Designations: map[string][]string{
			"Operations": {"Operations Lead"},
			"Security":   {"Security Supervisor"},
		},
		Employees: []seedEmployee{
			{FirstName: "Arjun", LastName: "Mehta", Email: "arjun.mehta@globex.example", Phone: "9000000011", Department: "Operations", Designation: "Operations Lead", Role: "admin"},
			{FirstName: "Kavya", LastName: "Nair", Email: "kavya.nair@globex.example", Phone: "9000000012", Department: "Security", Designation: "Security Supervisor", Role: "employee"},
		},
	},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitFromConfig(cfg.Database); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaultPurposes(); err != nil {
		stdLog.Printf("Failed to create default purposes: %v", err)
	}

	db := models.DB
	directory := service.NewDirectoryService(
		repository.NewCompanyRepository(db),
		repository.NewDepartmentRepository(db),
		repository.NewDesignationRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewPurposeRepository(db),
	)

	for _, item := range seedCompanies {
		var company models.Company
		if err := db.Where("company_name = ?", item.Name).First(&company).Error; err == nil {
			stdLog.Printf("Company already exists: %s", item.Name)
			continue
		}
		created, err := directory.CreateCompany(service.CompanyInput{Name: item.Name})
		if err != nil {
			stdLog.Printf("Failed to create company %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created company: %s", item.Name)

		departmentIDs := map[string]uint{}
		designationIDs := map[string]uint{}
		for deptName, designations := range item.Designations {
			dept, err := directory.CreateDepartment(service.DepartmentInput{CompanyID: created.ID, Name: deptName})
			if err != nil {
				stdLog.Printf("Failed to create department %s: %v", deptName, err)
				continue
			}
			departmentIDs[deptName] = dept.ID
			for _, name := range designations {
				designation, err := directory.CreateDesignation(service.DesignationInput{
					CompanyID:    created.ID,
					DepartmentID: dept.ID,
					Name:         name,
				})
				if err != nil {
					stdLog.Printf("Failed to create designation %s: %v", name, err)
					continue
				}
				designationIDs[name] = designation.ID
			}
		}

		for _, emp := range item.Employees {
			_, err := directory.CreateEmployee(service.EmployeeInput{
				FirstName:     emp.FirstName,
				LastName:      emp.LastName,
				Email:         emp.Email,
				Phone:         emp.Phone,
				CompanyID:     created.ID,
				DepartmentID:  departmentIDs[emp.Department],
				DesignationID: designationIDs[emp.Designation],
				Role:          emp.Role,
			})
			switch {
			case errors.Is(err, service.ErrEmployeeExists):
				stdLog.Printf("Employee already exists: %s", emp.Email)
			case err != nil:
				stdLog.Printf("Failed to create employee %s: %v", emp.Email, err)
			default:
				stdLog.Printf("Created employee: %s %s", emp.FirstName, emp.LastName)
			}
		}
	}

	stdLog.Printf("Seed completed")
}
