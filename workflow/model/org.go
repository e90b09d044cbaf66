package model

import (
	"time"

	"gorm.io/datatypes"
)

// The organisation tables below are owned by the surrounding application.
// The workflow core only reads them: who manages which project, who manages
// which department, who holds the general-manager role, and which department
// an employee belongs to.

type Employee struct {
	EmployeeID   int32   `gorm:"primaryKey;column:employeeid"`
	Code         string  `gorm:"column:code"`
	FirstName    string  `gorm:"column:firstname"`
	Surname      string  `gorm:"column:surname"`
	Email        *string `gorm:"column:email"`
	DepartmentID *int32  `gorm:"column:departmentid"`
	Role         string  `gorm:"column:role;type:varchar(20)"`
	Status       string  `gorm:"column:status"`

	Attributes datatypes.JSON `gorm:"column:attributes"`

	StartDate *time.Time `gorm:"column:startdate"`
	EndDate   *time.Time `gorm:"column:enddate"`
}

func (Employee) TableName() string {
	return "employees"
}

// RoleGeneralManager marks GM/CEO-role employees in employees.role.
const RoleGeneralManager = "gm"

type Department struct {
	DepartmentID int32  `gorm:"primaryKey;column:departmentid"`
	Code         string `gorm:"column:code"`
	Description  string `gorm:"column:description"`
}

func (Department) TableName() string {
	return "departments"
}

type Project struct {
	ProjectID   int32  `gorm:"primaryKey;column:projectid"`
	ProjectNo   string `gorm:"column:projectno"`
	Description string `gorm:"column:description"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectManager is the project → manager association, one row per pair.
type ProjectManager struct {
	ID         int32 `gorm:"primaryKey;column:id"`
	ProjectID  int32 `gorm:"column:project_id;not null;index"`
	EmployeeID int32 `gorm:"column:employee_id;not null"`
}

func (ProjectManager) TableName() string {
	return "projectmanagers"
}

// DepartmentManager is the department → manager association.
type DepartmentManager struct {
	ID           int32 `gorm:"primaryKey;column:id"`
	DepartmentID int32 `gorm:"column:department_id;not null;index"`
	EmployeeID   int32 `gorm:"column:employee_id;not null"`
}

func (DepartmentManager) TableName() string {
	return "departmentmanagers"
}
