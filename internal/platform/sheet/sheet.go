// Package sheet writes tabular exports as .xlsx workbooks.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Table is one worksheet: a header row followed by data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Write saves tables into a new workbook at path, one sheet per table in
// order. The first table takes over the default sheet.
func Write(path string, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if table.Name == "" {
			return fmt.Errorf("table %d has no name", i)
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("create sheet %s: %w", table.Name, err)
		}
		if err := writeTable(f, table); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, table Table) error {
	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header %s: %w", table.Name, err)
	}
	for i, row := range table.Rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+1, table.Name, err)
		}
	}
	return nil
}

// Read returns every row of the named sheet as strings.
func Read(path, name string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return rows, nil
}
