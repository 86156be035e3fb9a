package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

const (
	CSVReportName  = "inventory_report.csv"
	XLSXReportName = "inventory_report.xlsx"

	reportSheet = "Inventory"
)

type ReportService interface {
	ExportCSV(ctx context.Context, sess model.Session) ([]byte, error)
	// ExportXLSX converts the backend's CSV report into a spreadsheet.
	ExportXLSX(ctx context.Context, sess model.Session) ([]byte, error)
}

func (s *service) ExportCSV(ctx context.Context, sess model.Session) ([]byte, error) {
	data, err := s.client(sess).ExportCSV(ctx)
	if err != nil {
		return nil, fmt.Errorf("api client export csv: %w", err)
	}
	return data, nil
}

func (s *service) ExportXLSX(ctx context.Context, sess model.Session) ([]byte, error) {
	data, err := s.ExportCSV(ctx, sess)
	if err != nil {
		return nil, err
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv report: %w", err)
	}

	return buildWorkbook(records)
}

func buildWorkbook(records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, record := range records {
		row := make([]any, len(record))
		for j, v := range record {
			row[j] = cellValue(i, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("set row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 {
		if err := f.SetPanes(reportSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("freeze header: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue keeps numeric body cells numeric so they sum in a spreadsheet.
func cellValue(row int, v string) any {
	if row == 0 {
		return v
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
