package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

// Creates the workflow tables and a small demo org: one department with a
// manager, two projects (one with two managers, one with none) and a GM.
func main() {
	dsn := os.Getenv("DSN") // "root:development@tcp(localhost:3306)/tempora?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal(err)
	}

	models := []interface{}{
		&model.Department{},
		&model.Project{},
		&model.Employee{},
		&model.ProjectManager{},
		&model.DepartmentManager{},
		&model.Timesheet{},
		&model.TimesheetRow{},
		&model.TimesheetApproval{},
		&model.TimesheetWorkflowHistory{},
		&model.TimesheetChatMessage{},
	}

	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			if err := db.Migrator().CreateTable(m); err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}

	if os.Getenv("SEED_DEMO") == "" {
		return
	}

	departments := []model.Department{
		{DepartmentID: 1, Code: "ENG", Description: "Engineering"},
	}
	projects := []model.Project{
		{ProjectID: 10, ProjectNo: "P-0010", Description: "Platform rebuild"},
		{ProjectID: 11, ProjectNo: "P-0011", Description: "Internal tooling"},
	}
	employees := []model.Employee{
		{EmployeeID: 100, Code: "E100", FirstName: "Dana", Surname: "Wells", DepartmentID: utils.Ptr(int32(1)), Status: "active"},
		{EmployeeID: 200, Code: "E200", FirstName: "Priya", Surname: "Nair", Status: "active"},
		{EmployeeID: 201, Code: "E201", FirstName: "Marcus", Surname: "Cole", Status: "active"},
		{EmployeeID: 300, Code: "E300", FirstName: "Ingrid", Surname: "Olsen", Status: "active"},
		{EmployeeID: 400, Code: "E400", FirstName: "Sam", Surname: "Reed", Role: model.RoleGeneralManager, Status: "active"},
	}
	projectManagers := []model.ProjectManager{
		{ProjectID: 10, EmployeeID: 200},
		{ProjectID: 10, EmployeeID: 201},
	}
	departmentManagers := []model.DepartmentManager{
		{DepartmentID: 1, EmployeeID: 300},
	}

	seed := func(value interface{}) {
		if err := db.Create(value).Error; err != nil {
			log.Fatalf("failed to seed %T: %v", value, err)
		}
	}
	seed(&departments)
	seed(&projects)
	seed(&employees)
	seed(&projectManagers)
	seed(&departmentManagers)

	log.Println("demo org seeded")
}
