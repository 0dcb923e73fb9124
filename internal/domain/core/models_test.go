package core

import "testing"

func TestEmployeePatchKeepsMissingFields(t *testing.T) {
	emp := Employee{ID: 3, EmployeeID: "E-3", UserEmail: "c@example.com", Position: "Engineer", Department: "Engineering", HireDate: "2024-01-02"}
	position := "Lead"

	EmployeePatch{Position: &position}.Apply(&emp)

	if emp.Position != "Lead" {
		t.Fatalf("expected position to change, got %q", emp.Position)
	}
	if emp.EmployeeID != "E-3" || emp.UserEmail != "c@example.com" || emp.Department != "Engineering" || emp.HireDate != "2024-01-02" {
		t.Fatalf("expected other fields untouched, got %+v", emp)
	}
	if emp.ID != 3 {
		t.Fatalf("id must never change, got %d", emp.ID)
	}
}

func TestEmployeePatchAllowsClearingField(t *testing.T) {
	emp := Employee{Position: "Engineer"}
	empty := ""

	EmployeePatch{Position: &empty}.Apply(&emp)

	if emp.Position != "" {
		t.Fatalf("expected explicit empty value to clear position, got %q", emp.Position)
	}
}

func TestDepartmentPatch(t *testing.T) {
	dep := Department{ID: 1, Name: "HR", Description: "Human Resources"}
	name := "People"

	DepartmentPatch{Name: &name}.Apply(&dep)

	if dep.Name != "People" || dep.Description != "Human Resources" {
		t.Fatalf("unexpected department after patch: %+v", dep)
	}
}
