package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const userSheet = "Users"

// UserRow is one line of the user workbook, both for export and import.
type UserRow struct {
	EmployeeID string
	CardID     string
	FirstName  string
	LastName   string
	Role       string
	Kind       string
	Status     string
	Department string
	Cohort     string
	Email      string
	Phone      string
}

var userHeaders = []string{
	"Employee ID", "Card ID", "First Name", "Last Name", "Role",
	"Kind", "Status", "Department", "Cohort", "Email", "Phone",
}

// BuildUserWorkbook writes the rows into a fresh workbook and saves it
// under fileName.
func BuildUserWorkbook(rows []UserRow, fileName string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", userSheet)

	for i, header := range userHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(userSheet, cell, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.EmployeeID, row.CardID, row.FirstName, row.LastName, row.Role,
			row.Kind, row.Status, row.Department, row.Cohort, row.Email, row.Phone,
		}
		for j, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+2)
			if err := f.SetCellValue(userSheet, cell, value); err != nil {
				return fmt.Errorf("writing row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?\d+$`)
)

// ReadUserWorkbook parses an uploaded import workbook. Rows failing the
// format checks are reported by their spreadsheet row number instead of
// aborting the whole file.
func ReadUserWorkbook(filePath string) ([]UserRow, []int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := userSheet
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}

	var users []UserRow
	var incompleteRows []int
	localEmployeeIDs := make(map[string]int)
	localCardIDs := make(map[string]int)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNumber := i + 1

		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		user := UserRow{
			EmployeeID: cell(0),
			CardID:     cell(1),
			FirstName:  cell(2),
			LastName:   cell(3),
			Role:       cell(4),
			Kind:       cell(5),
			Status:     cell(6),
			Department: cell(7),
			Cohort:     cell(8),
			Email:      cell(9),
			Phone:      cell(10),
		}

		if user.EmployeeID == "" || user.FirstName == "" || user.LastName == "" {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		if prev, exists := localEmployeeIDs[user.EmployeeID]; exists {
			incompleteRows = append(incompleteRows, prev, rowNumber)
			continue
		}
		if user.CardID != "" {
			if prev, exists := localCardIDs[user.CardID]; exists {
				incompleteRows = append(incompleteRows, prev, rowNumber)
				continue
			}
		}

		if user.Email != "" && !emailRegex.MatchString(user.Email) {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if user.Phone != "" && !phoneRegex.MatchString(user.Phone) {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		localEmployeeIDs[user.EmployeeID] = rowNumber
		if user.CardID != "" {
			localCardIDs[user.CardID] = rowNumber
		}

		users = append(users, user)
	}

	return users, incompleteRows, nil
}
