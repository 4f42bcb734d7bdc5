package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"velora/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var columns = []string{"ID", "Service", "Variant", "Price", "Date", "Time", "Customer", "Phone", "Status", "Created", "Confirmed"}

// BuildWorkbook renders the confirmed-booking history into an xlsx
// workbook, most recent first as stored. The caller owns closing the file.
func BuildWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for col, header := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, style)

	for row, b := range bookings {
		values := []any{
			b.ID,
			b.Service.Name,
			b.Variant.Name,
			b.Variant.Price,
			b.Date,
			b.Time,
			customerName(b),
			customerPhone(b),
			b.Status,
			b.CreatedAt.Format("2006-01-02 15:04"),
			confirmedAt(b),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "K", 18)

	_ = f.DeleteSheet("Sheet1")

	return f, nil
}

// Save writes the workbook into dir under a dated file name and returns the
// full path.
func Save(f *excelize.File, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	return filePath, nil
}

func customerName(b models.Booking) string {
	if b.Customer == nil {
		return ""
	}
	return b.Customer.Name
}

func customerPhone(b models.Booking) string {
	if b.Customer == nil {
		return ""
	}
	return b.Customer.Phone
}

func confirmedAt(b models.Booking) string {
	if b.ConfirmedAt == nil {
		return ""
	}
	return b.ConfirmedAt.Format("2006-01-02 15:04")
}
