package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"meteradmin/internal/domain"
	"meteradmin/internal/meter"
)

const (
	OfficersFilename = "officer_data.xlsx"
	UsersFilename    = "user_data.xlsx"

	OfficersSheet = "DataOfficer"
	UsersSheet    = "DataUser"

	// ContentType is the MIME type of the workbooks written here.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	headerHeight = 30
	rowHeight    = 25
	minColWidth  = 10
)

// Table is a header plus data rows, before numbering.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

// OfficerTable lays officers out as ID Officer, Name, Email, Phone Number.
func OfficerTable(officers []domain.Owner) Table {
	t := Table{Sheet: OfficersSheet, Header: []string{"ID Officer", "Name", "Email", "Phone Number"}}
	for _, o := range officers {
		t.Rows = append(t.Rows, []string{o.OfficerID, o.Name, o.Email, o.PhoneNumber})
	}
	return t
}

// UserTable lays users out with their address and one ID/Address column
// pair per meter, as many pairs as the user with the most meters needs.
func UserTable(users []domain.Owner) Table {
	t := Table{Sheet: UsersSheet, Header: []string{
		"Name", "Email", "Phone Number", "Street", "City", "Province", "Country",
	}}
	widest := 0
	for _, u := range users {
		if n := len(u.Meters); n > widest {
			widest = n
		}
	}
	for i := 1; i <= widest; i++ {
		t.Header = append(t.Header, fmt.Sprintf("Water Meter %d ID", i), fmt.Sprintf("Water Meter %d Address", i))
	}
	for _, u := range users {
		row := []string{u.Name, u.Email, u.PhoneNumber, u.Street, u.City, u.Province, u.Country}
		for _, rec := range meter.Load(u.Meters).Finalize() {
			row = append(row, rec.ID, rec.Address)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Write renders t as a workbook to w. Rows whose cells are all blank are
// dropped and the rest are numbered from 1 in a leading "No." column.
func Write(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
		return err
	}

	header := append([]string{"No."}, t.Header...)
	grid := [][]string{header}
	for _, row := range t.Rows {
		if blankRow(row) {
			continue
		}
		grid = append(grid, append([]string{strconv.Itoa(len(grid))}, row...))
	}

	widths := make([]int, len(header))
	for r, row := range grid {
		for c, v := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if r > 0 && c == 0 {
				n, _ := strconv.Atoi(v)
				err = f.SetCellInt(t.Sheet, cell, int64(n))
			} else {
				err = f.SetCellStr(t.Sheet, cell, v)
			}
			if err != nil {
				return err
			}
			if n := utf8.RuneCountInString(v); n > widths[c] {
				widths[c] = n
			}
		}
	}

	if err := styleGrid(f, t.Sheet, len(grid), len(widths)); err != nil {
		return err
	}
	for c, n := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Sheet, col, col, float64(max(n+2, minColWidth))); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func styleGrid(f *excelize.File, sheet string, rows, cols int) error {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: center})
	if err != nil {
		return err
	}
	rowStyle, err := f.NewStyle(&excelize.Style{Alignment: center})
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	for r := 1; r <= rows; r++ {
		style, height := rowStyle, float64(rowHeight)
		if r == 1 {
			style, height = headerStyle, headerHeight
		}
		if err := f.SetCellStyle(sheet, "A"+strconv.Itoa(r), last+strconv.Itoa(r), style); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheet, r, height); err != nil {
			return err
		}
	}
	return nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
