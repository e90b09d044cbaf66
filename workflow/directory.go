package workflow

import (
	"errors"

	"gorm.io/gorm"

	"tempora.com/tempora/workflow/model"
)

// Directory answers the read-only organisation lookups the workflow needs:
// who manages which project or department, who holds the general-manager
// role, and which department an employee belongs to. The association tables
// behind it belong to the surrounding application; the workflow never
// writes them, and staleness is acceptable (resolved at the next escalation).
type Directory interface {
	// ProjectManagers returns the distinct employee ids managing any of the
	// given projects.
	ProjectManagers(db *gorm.DB, projectIDs []int32) ([]int32, error)
	// DepartmentManagers returns the employee ids managing the department.
	DepartmentManagers(db *gorm.DB, departmentID int32) ([]int32, error)
	// GeneralManagers returns the employee ids holding the GM/CEO role.
	GeneralManagers(db *gorm.DB) ([]int32, error)
	// DepartmentOf returns the employee's department, nil if unassigned.
	DepartmentOf(db *gorm.DB, employeeID int32) (*int32, error)
	// IsManager reports whether the employee manages at least one project
	// or department, or holds the GM role.
	IsManager(db *gorm.DB, employeeID int32) (bool, error)
}

// OrgDirectory is the production Directory over the organisation tables.
type OrgDirectory struct{}

func (OrgDirectory) ProjectManagers(db *gorm.DB, projectIDs []int32) ([]int32, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var ids []int32
	err := db.Model(&model.ProjectManager{}).
		Distinct("employee_id").
		Where("project_id IN ?", projectIDs).
		Order("employee_id").
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (OrgDirectory) DepartmentManagers(db *gorm.DB, departmentID int32) ([]int32, error) {
	var ids []int32
	err := db.Model(&model.DepartmentManager{}).
		Distinct("employee_id").
		Where("department_id = ?", departmentID).
		Order("employee_id").
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (OrgDirectory) GeneralManagers(db *gorm.DB) ([]int32, error) {
	var ids []int32
	err := db.Model(&model.Employee{}).
		Where("role = ?", model.RoleGeneralManager).
		Order("employeeid").
		Pluck("employeeid", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (OrgDirectory) DepartmentOf(db *gorm.DB, employeeID int32) (*int32, error) {
	var emp model.Employee
	err := db.Select("employeeid", "departmentid").First(&emp, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("employee %d not found", employeeID)
	}
	if err != nil {
		return nil, err
	}
	return emp.DepartmentID, nil
}

func (OrgDirectory) IsManager(db *gorm.DB, employeeID int32) (bool, error) {
	var count int64
	if err := db.Model(&model.ProjectManager{}).Where("employee_id = ?", employeeID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := db.Model(&model.DepartmentManager{}).Where("employee_id = ?", employeeID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := db.Model(&model.Employee{}).
		Where("employeeid = ? AND role = ?", employeeID, model.RoleGeneralManager).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
