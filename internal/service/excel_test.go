package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", userSheet)

	for i, header := range userHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(userSheet, cell, header))
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(userSheet, cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), "import.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadUserWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"EMP001", "CARD-1", "Alice", "Martin", "", "employee", "", "IT", "", "alice@example.com", "+33612345678"},
		{"", "", "Bob", "Durand"},
		{"EMP002", "", "Chloe", "Petit", "", "learner", "", "", "2026A", "not-an-email", ""},
		{"EMP003", "CARD-1", "David", "Leroy"},
		{"EMP001", "", "Emma", "Roux"},
	})

	users, incomplete, err := ReadUserWorkbook(path)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "EMP001", users[0].EmployeeID)
	assert.Equal(t, "CARD-1", users[0].CardID)
	assert.Equal(t, "Alice", users[0].FirstName)
	assert.Equal(t, "IT", users[0].Department)

	// Rows 3-6 of the sheet are rejected; the duplicates also flag the row
	// they collide with.
	assert.Contains(t, incomplete, 3)
	assert.Contains(t, incomplete, 4)
	assert.Contains(t, incomplete, 5)
	assert.Contains(t, incomplete, 6)
}

func TestReadUserWorkbookPhoneValidation(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"EMP001", "", "Alice", "Martin", "", "", "", "", "", "", "letters"},
		{"EMP002", "", "Bob", "Durand", "", "", "", "", "", "", "+33612345678"},
	})

	users, incomplete, err := ReadUserWorkbook(path)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "EMP002", users[0].EmployeeID)
	assert.Equal(t, []int{2}, incomplete)
}
