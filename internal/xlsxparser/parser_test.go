package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "fields.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"fullName", "label", "type", "length"},
		{"A__c", "Alpha", "Text", 40},
		{"B__c", "Beta", "Checkbox", nil},
	})

	data, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"fullName", "label", "type", "length"}, data.Headers)
	require.Len(t, data.Records, 2)

	assert.Equal(t, "A__c", data.Records[0]["fullName"])
	assert.Equal(t, "40", data.Records[0]["length"])
	assert.Equal(t, "B__c", data.Records[1]["fullName"])
	assert.False(t, data.Records[1].Has("length"))
}

func TestParse_SkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"fullName", "label", "type"},
		{"A__c", "Alpha", "Text"},
		{"", "", ""},
		{"B__c", "Beta", "Text"},
	})

	data, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, data.Records, 2)
	assert.Equal(t, "B__c", data.Records[1]["fullName"])
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
