package inventory

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"solarops/internal/domain"
)

const exportSheet = "Requisitions"

// ExportRequisitions renders the requisition log as an XLSX workbook.
func (s *Service) ExportRequisitions(ctx context.Context, status string) (*bytes.Buffer, error) {
	list, err := s.requisitions.List(ctx, domain.RequisitionStatus(status))
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Project", "Kind", "Item", "Quantity", "Reason", "Status", "Requested By", "Decided By", "Decided At", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	for row, r := range list {
		decidedAt := ""
		if r.DecidedAt != nil {
			decidedAt = r.DecidedAt.Format("2006-01-02 15:04")
		}
		values := []any{
			r.ID,
			r.ProjectID,
			string(r.Kind),
			r.ItemName,
			r.Quantity,
			r.Reason,
			string(r.Status),
			r.RequestedBy,
			r.DecidedBy,
			decidedAt,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "K", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
