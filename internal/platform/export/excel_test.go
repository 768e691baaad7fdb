package export

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcel_CellContents(t *testing.T) {
	table := Table{
		Title:   "Medicines",
		Headers: []string{"Name", "Quantity"},
		Rows:    [][]string{{"Amoxicillin", "120"}, {"Ibuprofen", "0"}},
	}
	buf, err := Excel(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "Name",
		"B1": "Quantity",
		"A2": "Amoxicillin",
		"B2": "120",
		"A3": "Ibuprofen",
		"B3": "0",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Sheet1", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s: expected %q, got %q", cell, want, got)
		}
	}
}

func TestExcel_EmptyTable(t *testing.T) {
	buf, err := Excel(Table{Title: "Empty"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty workbook bytes")
	}
}
