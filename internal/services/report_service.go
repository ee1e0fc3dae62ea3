// internal/services/report_service.go
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"

	isoTimestamp = "2006-01-02T15:04:05.000Z"
)

var (
	orderReportHeader     = []string{"Order ID", "Product ID", "Quantity", "Status", "Created At", "Updated At"}
	inventoryReportHeader = []string{"Product ID", "Hub ID", "Stock", "Pending", "Status", "Last Updated"}
)

func ParseReportFormat(value string) (ReportFormat, error) {
	switch ReportFormat(value) {
	case "", ReportFormatCSV:
		return ReportFormatCSV, nil
	case ReportFormatXLSX:
		return ReportFormatXLSX, nil
	}
	return "", fmt.Errorf("%w: unknown report format %q", models.ErrInvalidInput, value)
}

func (f ReportFormat) ContentType() string {
	if f == ReportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Report is a rendered file ready to be downloaded.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

type ReportService struct {
	orders    *OrderService
	inventory *InventoryService
	now       func() time.Time
}

func NewReportService(orders *OrderService, inventory *InventoryService) *ReportService {
	return &ReportService{
		orders:    orders,
		inventory: inventory,
		now:       time.Now,
	}
}

// Orders renders the orders of a hub.
func (s *ReportService) Orders(ctx context.Context, session ledger.Session, hubID string, format ReportFormat) (*Report, error) {
	orders, err := s.orders.forHub(ctx, session, hubID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no orders to export", models.ErrInvalidInput)
	}

	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.ID,
			o.ProductID,
			strconv.FormatInt(o.Quantity, 10),
			string(o.Status),
			isoTime(o.CreatedAt),
			isoTime(o.UpdatedAt),
		})
	}

	return s.render("orders-report", "Orders", orderReportHeader, rows, format)
}

// Inventory renders every inventory item visible to the caller.
func (s *ReportService) Inventory(ctx context.Context, session ledger.Session, format ReportFormat) (*Report, error) {
	items, err := s.inventory.Export(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no inventory to export", models.ErrInvalidInput)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ProductID,
			item.HubID,
			strconv.FormatInt(item.Stock, 10),
			strconv.FormatInt(item.Pending, 10),
			string(item.Status),
			isoTime(item.LastUpdated),
		})
	}

	return s.render("inventory-report", "Inventory", inventoryReportHeader, rows, format)
}

func (s *ReportService) render(prefix, sheet string, header []string, rows [][]string, format ReportFormat) (*Report, error) {
	var data []byte
	var err error
	switch format {
	case ReportFormatXLSX:
		data, err = renderXLSX(sheet, header, rows)
	default:
		format = ReportFormatCSV
		data, err = renderCSV(header, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", prefix, err)
	}

	logrus.WithFields(logrus.Fields{
		"report": prefix,
		"format": format,
		"rows":   len(rows),
	}).Info("Report generated")

	return &Report{
		Filename:    fmt.Sprintf("%s-%d.%s", prefix, s.now().UnixMilli(), format),
		ContentType: format.ContentType(),
		Data:        data,
		Rows:        len(rows),
	}, nil
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	write := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := write(1, header); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := write(i+2, r); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isoTime(ns int64) string {
	return time.Unix(0, ns).UTC().Format(isoTimestamp)
}
