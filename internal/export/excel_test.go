package export

import (
	"os"
	"testing"
	"time"

	"velora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBookings() []models.Booking {
	confirmed := time.Date(2026, 8, 15, 18, 30, 0, 0, time.UTC)
	return []models.Booking{
		{
			ID:      "b-2",
			Service: models.Service{ID: 2, Name: "City Tour"},
			Variant: models.Variant{ID: "2-1", Name: "Half day", Price: 25000},
			Date:    "2026-08-20",
			Time:    "14:00",
			Customer: &models.CustomerInfo{
				Name:  "Arjun",
				Phone: "+91 98765 43210",
			},
			Status:      models.StatusConfirmed,
			CreatedAt:   confirmed.Add(-time.Hour),
			ConfirmedAt: &confirmed,
		},
		{
			ID:        "b-1",
			Service:   models.Service{ID: 1, Name: "Dinner Date"},
			Variant:   models.Variant{ID: "1-1", Name: "Two hours", Price: 12000},
			Status:    models.StatusConfirmed,
			CreatedAt: confirmed.Add(-48 * time.Hour),
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleBookings())
	require.NoError(t, err)
	defer f.Close()

	t.Run("SheetLayout", func(t *testing.T) {
		sheets := f.GetSheetList()
		assert.Equal(t, []string{sheetName}, sheets)

		header, err := f.GetCellValue(sheetName, "A1")
		require.NoError(t, err)
		assert.Equal(t, "ID", header)

		last, err := f.GetCellValue(sheetName, "K1")
		require.NoError(t, err)
		assert.Equal(t, "Confirmed", last)
	})

	t.Run("RowsInStoredOrder", func(t *testing.T) {
		id, err := f.GetCellValue(sheetName, "A2")
		require.NoError(t, err)
		assert.Equal(t, "b-2", id)

		service, err := f.GetCellValue(sheetName, "B2")
		require.NoError(t, err)
		assert.Equal(t, "City Tour", service)

		customer, err := f.GetCellValue(sheetName, "G2")
		require.NoError(t, err)
		assert.Equal(t, "Arjun", customer)

		confirmed, err := f.GetCellValue(sheetName, "K2")
		require.NoError(t, err)
		assert.Equal(t, "2026-08-15 18:30", confirmed)
	})

	t.Run("MissingCustomerAndConfirmation", func(t *testing.T) {
		customer, err := f.GetCellValue(sheetName, "G3")
		require.NoError(t, err)
		assert.Empty(t, customer)

		confirmed, err := f.GetCellValue(sheetName, "K3")
		require.NoError(t, err)
		assert.Empty(t, confirmed)
	})
}

func TestSave(t *testing.T) {
	f, err := BuildWorkbook(sampleBookings())
	require.NoError(t, err)
	defer f.Close()

	dir := t.TempDir()
	path, err := Save(f, dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, path, "bookings_")
}
