package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"hrportal/internal/domain/core"
)

const unassignedDepartment = "Unassigned"

type Roster struct {
	Employees  []core.Employee
	Headcounts []Headcount
}

type Headcount struct {
	Department  string
	Description string
	Employees   int
}

var rosterColumns = []string{"ID", "Employee ID", "Email", "Position", "Department", "Hire date"}

// DepartmentHeadcounts counts employees per known department, in department
// order. Employees naming an unknown or empty department land in Unassigned.
func DepartmentHeadcounts(employees []core.Employee, departments []core.Department) []Headcount {
	index := make(map[string]int, len(departments))
	out := make([]Headcount, 0, len(departments)+1)
	for _, dep := range departments {
		if _, ok := index[dep.Name]; ok {
			continue
		}
		index[dep.Name] = len(out)
		out = append(out, Headcount{Department: dep.Name, Description: dep.Description})
	}

	unassigned := 0
	for _, emp := range employees {
		if i, ok := index[emp.Department]; ok && emp.Department != "" {
			out[i].Employees++
			continue
		}
		unassigned++
	}
	if unassigned > 0 {
		out = append(out, Headcount{Department: unassignedDepartment, Employees: unassigned})
	}
	return out
}

func rosterRow(emp core.Employee) []string {
	return []string{
		strconv.FormatInt(emp.ID, 10),
		emp.EmployeeID,
		emp.UserEmail,
		emp.Position,
		emp.Department,
		emp.HireDate,
	}
}

func RenderPDF(roster Roster, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee roster")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d employee(s)", generatedAt.UTC().Format(time.RFC3339), len(roster.Employees)))
	pdf.Ln(10)

	widths := []float64{15, 35, 75, 55, 55, 30}
	pdf.SetFont("Helvetica", "B", 10)
	for i, col := range rosterColumns {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, emp := range roster.Employees {
		for i, value := range rosterRow(emp) {
			pdf.CellFormat(widths[i], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Headcount by department")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	for _, hc := range roster.Headcounts {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", hc.Department, hc.Employees))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render roster pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func RenderXLSX(roster Roster) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const employeesSheet = "Employees"
	const departmentsSheet = "Departments"

	if err := f.SetSheetName("Sheet1", employeesSheet); err != nil {
		return nil, fmt.Errorf("render roster xlsx: %w", err)
	}
	header := make([]any, len(rosterColumns))
	for i, col := range rosterColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(employeesSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("render roster xlsx: %w", err)
	}
	for i, emp := range roster.Employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("render roster xlsx: %w", err)
		}
		row := []any{emp.ID, emp.EmployeeID, emp.UserEmail, emp.Position, emp.Department, emp.HireDate}
		if err := f.SetSheetRow(employeesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("render roster xlsx: %w", err)
		}
	}

	if _, err := f.NewSheet(departmentsSheet); err != nil {
		return nil, fmt.Errorf("render roster xlsx: %w", err)
	}
	if err := f.SetSheetRow(departmentsSheet, "A1", &[]any{"Department", "Description", "Employees"}); err != nil {
		return nil, fmt.Errorf("render roster xlsx: %w", err)
	}
	for i, hc := range roster.Headcounts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("render roster xlsx: %w", err)
		}
		if err := f.SetSheetRow(departmentsSheet, cell, &[]any{hc.Department, hc.Description, hc.Employees}); err != nil {
			return nil, fmt.Errorf("render roster xlsx: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render roster xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func RenderCSV(roster Roster) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(rosterColumns); err != nil {
		return nil, fmt.Errorf("render roster csv: %w", err)
	}
	for _, emp := range roster.Employees {
		if err := writer.Write(rosterRow(emp)); err != nil {
			return nil, fmt.Errorf("render roster csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("render roster csv: %w", err)
	}
	return buf.Bytes(), nil
}
