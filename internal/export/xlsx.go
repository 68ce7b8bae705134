package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Dostępność"
)

var xlsxHeader = []string{"Od", "Do", "Dni", "Status", "Kod"}

// statusFill цвет заливки ячейки статуса
var statusFill = map[availability.Status]string{
	availability.StatusAvailable:          "#C6EFCE",
	availability.StatusPartiallyAvailable: "#FFEB9C",
	availability.StatusUnavailable:        "#FFC7CE",
}

// XLSX формирует таблицу: строка заголовка и по строке на интервал, отсортированные по дате начала
func XLSX(cal *domain.Calendar, set availability.Set) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: new sheet: %v", ErrGenerate, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%w: delete default sheet: %v", ErrGenerate, err)
	}

	f.SetColWidth(sheetName, "A", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 8)
	f.SetColWidth(sheetName, "D", "D", 22)
	f.SetColWidth(sheetName, "E", "E", 22)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: header style: %v", ErrGenerate, err)
	}

	statusStyles := make(map[availability.Status]int, len(statusFill))
	for status, color := range statusFill {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: status style: %v", ErrGenerate, err)
		}
		statusStyles[status] = style
	}

	for i, title := range xlsxHeader {
		if err := f.SetCellValue(sheetName, cell(i, 1), title); err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrGenerate, err)
		}
	}
	f.SetCellStyle(sheetName, cell(0, 1), cell(len(xlsxHeader)-1, 1), headerStyle)

	row := 2
	for _, interval := range set.Sorted() {
		values := []interface{}{
			interval.Start.String(),
			interval.End.String(),
			interval.Days(),
			interval.Status.String(),
			interval.Status.Code(),
		}
		for col, v := range values {
			if err := f.SetCellValue(sheetName, cell(col, row), v); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrGenerate, row, err)
			}
		}
		if style, ok := statusStyles[interval.Status]; ok {
			f.SetCellStyle(sheetName, cell(3, row), cell(3, row), style)
		}
		row++
	}

	f.SetDocProps(&excelize.DocProperties{
		Title:   cal.Name,
		Subject: cal.Slug,
		Creator: "SMC-CalendarService",
	})

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: write: %v", ErrGenerate, err)
	}
	return buf, nil
}

// XLSXFilename имя файла выгрузки
func XLSXFilename(cal *domain.Calendar) string {
	return fmt.Sprintf("dostepnosc_%s.xlsx", cal.Slug)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
