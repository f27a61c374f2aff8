package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/ptr"
)

var bookingColumns = []string{
	"ID", "Time", "Status", "Customer", "Vehicle", "License Plate", "Service", "Premium",
	"Price", "Payment", "Payment Status", "Bay", "Team", "Cycle", "Washer", "Rating", "Review",
}

// writeBookingsXLSX пишет бронирования дня в XLSX, одна строка на бронирование
func writeBookingsXLSX(w io.Writer, sheet string, bookings []*domain.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	// Excel ограничивает имя листа 31 символом
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, toAny(bookingColumns)); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, style)
	}

	for i, b := range bookings {
		row := []interface{}{
			b.ID,
			b.TimeLabel.String(),
			string(b.Status),
			b.UserID,
			b.VehicleID,
			ptr.Value(b.LicensePlate),
			b.ServiceName,
			b.IsPremium,
			b.ServicePrice,
			b.Payment.Method,
			string(b.Payment.Status),
			"", "", "",
			ptr.Value(b.WasherID),
			"",
			ptr.Value(b.Review),
		}
		if a := b.Assignment; a != nil {
			row[11], row[12], row[13] = a.Bay, a.Team, a.CycleCode
		}
		if b.Rating != nil {
			row[15] = *b.Rating
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
