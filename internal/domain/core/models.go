package core

type Employee struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	UserEmail  string `json:"userEmail"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate"`
}

type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EmployeePatch holds the fields supplied on update; nil fields are kept.
type EmployeePatch struct {
	EmployeeID *string `json:"employeeId"`
	UserEmail  *string `json:"userEmail"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	HireDate   *string `json:"hireDate"`
}

func (p EmployeePatch) Apply(emp *Employee) {
	if p.EmployeeID != nil {
		emp.EmployeeID = *p.EmployeeID
	}
	if p.UserEmail != nil {
		emp.UserEmail = *p.UserEmail
	}
	if p.Position != nil {
		emp.Position = *p.Position
	}
	if p.Department != nil {
		emp.Department = *p.Department
	}
	if p.HireDate != nil {
		emp.HireDate = *p.HireDate
	}
}

type DepartmentPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p DepartmentPatch) Apply(dep *Department) {
	if p.Name != nil {
		dep.Name = *p.Name
	}
	if p.Description != nil {
		dep.Description = *p.Description
	}
}
