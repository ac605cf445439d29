package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportColumns = []string{
	"ID", "Reference", "Property ID", "Property", "Customer", "Email", "Phone",
	"Start Date", "End Date", "Check-in", "Check-out", "Guests", "Status",
	"Total Amount", "Rejection Reason", "Created At",
}

// Export writes every booking, newest first, to a single-sheet workbook.
func (s *BookingService) Export(ctx context.Context) (*excelize.File, error) {
	list, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, toCells(exportColumns)); err != nil {
		return nil, err
	}
	for i, b := range list {
		row := []any{
			b.ID, b.ReferenceCode, b.PropertyID, b.PropertyTitle,
			b.CustomerName, b.CustomerEmail, b.CustomerPhone,
			b.StartDate.Format(DateLayout), b.EndDate.Format(DateLayout),
			b.StartTime, b.EndTime, b.Guests, b.Status,
			b.TotalAmount, b.RejectionReason, b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}
	return f, nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toCells(cols []string) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
