package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"billscan/internal/csvexport"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// reportBatchSize bounds how many bills one export page fetches.
const reportBatchSize = 500

// ReportService exports stored bills as spreadsheet files.
type ReportService interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type reportService struct {
	billRepo     port.BillRepository
	businessRepo port.BusinessRepository
}

// NewReportService creates a ReportService implementation.
func NewReportService(billRepo port.BillRepository, businessRepo port.BusinessRepository) ReportService {
	return &reportService{billRepo: billRepo, businessRepo: businessRepo}
}

func (s *reportService) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.collectRows(ctx)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteRows(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) ExportXLSX(ctx context.Context, w io.Writer) error {
	rows, err := s.collectRows(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Bills"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := []interface{}{
		"Bill Name", "Business", "Business Type", "Amount", "Pay Code",
		"Pay Model", "Call Number", "Period Start", "Period End", "Paid", "Date Paid",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating row %d: %w", i+2, err)
		}
		amount, _ := row.Bill.Amount.Round(2).Float64()
		values := []interface{}{
			row.Bill.Name,
			row.BusinessName,
			string(row.BusinessType),
			amount,
			row.Bill.PayCode,
			row.Bill.PayModel,
			row.Bill.CallNumber,
			row.Bill.PeriodStart.Format("2006-01-02"),
			row.Bill.PeriodEnd.Format("2006-01-02"),
			row.Bill.Paid,
			row.Bill.DatePaid.Format("2006-01-02"),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

// collectRows pages through all stored bills and joins in the payee name.
func (s *reportService) collectRows(ctx context.Context) ([]csvexport.Row, error) {
	names, types, err := s.businessIndex(ctx)
	if err != nil {
		return nil, err
	}

	var rows []csvexport.Row
	for offset := 0; ; offset += reportBatchSize {
		bills, total, err := s.billRepo.List(ctx, offset, reportBatchSize)
		if err != nil {
			return nil, fmt.Errorf("listing bills: %w", err)
		}
		for _, bill := range bills {
			rows = append(rows, csvexport.Row{
				Bill:         bill,
				BusinessName: names[bill.BusinessID],
				BusinessType: types[bill.BusinessID],
			})
		}
		if offset+len(bills) >= total || len(bills) == 0 {
			return rows, nil
		}
	}
}

func (s *reportService) businessIndex(ctx context.Context) (map[uuid.UUID]string, map[uuid.UUID]domain.BusinessType, error) {
	names := make(map[uuid.UUID]string)
	types := make(map[uuid.UUID]domain.BusinessType)
	for offset := 0; ; offset += reportBatchSize {
		businesses, total, err := s.businessRepo.List(ctx, offset, reportBatchSize)
		if err != nil {
			return nil, nil, fmt.Errorf("listing businesses: %w", err)
		}
		for _, b := range businesses {
			names[b.ID] = b.Name
			types[b.ID] = b.Type
		}
		if offset+len(businesses) >= total || len(businesses) == 0 {
			return names, types, nil
		}
	}
}
