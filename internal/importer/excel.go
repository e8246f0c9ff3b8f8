package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Template header sets per entity kind. Column names match the entity field
// names the reconciler reads, so a filled-in template round-trips untouched.
var templateHeaders = map[string][]string{
	KindBranches: {"name", "province", "phone", "phase", "zone"},
	KindMachines: {"name", "sn", "branchId", "pos", "status", "installDate"},
	KindExpenses: {"date", "branchId", "type", "amount", "detail", "technician"},
	KindParts:    {"date", "branchId", "device", "partName", "qty", "unitPrice", "technician"},
}

var templateNames = map[string]string{
	KindBranches: "MK_Branch_Template",
	KindMachines: "MK_Machine_Template",
	KindExpenses: "MK_Expense_Template",
	KindParts:    "MK_SparePart_Template",
}

// TemplateHeaders returns the expected header row for an entity kind.
func TemplateHeaders(kind string) ([]string, error) {
	headers, ok := templateHeaders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
	return headers, nil
}

// ParseRows reads the first sheet of an uploaded workbook into key/value rows
// keyed by the header row. Legacy .xls books go through the xls reader,
// everything else through excelize. Rows with no non-empty cell are skipped.
func ParseRows(r io.ReadSeeker, filename string) ([]Row, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xls") {
		return parseXLS(r)
	}
	return parseXLSX(r)
}

func parseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rowsFromCells(rows), nil
}

func parseXLS(r io.ReadSeeker) ([]Row, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open legacy workbook: %w", err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("legacy workbook has no sheets")
	}

	cells := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			cells = append(cells, nil)
			continue
		}
		line := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			line = append(line, row.Col(j))
		}
		cells = append(cells, line)
	}
	return rowsFromCells(cells), nil
}

func rowsFromCells(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}
	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	out := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" || i >= len(line) {
				continue
			}
			value := strings.TrimSpace(line[i])
			if value == "" {
				continue
			}
			row[header] = value
			empty = false
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// WriteRows builds a single-sheet workbook with a header row followed by the
// given data rows.
func WriteRows(headers []string, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for ci, h := range headers {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
