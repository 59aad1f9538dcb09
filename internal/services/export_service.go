package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"warehouse/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders reports as downloadable documents. PDF covers the
// dashboard's print/export button; CSV opens in spreadsheet tools.
type ExportService struct {
	RequestID string
}

func (s ExportService) StockReportPDF(rep StockReport) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "export", "stock_pdf", fmt.Sprintf("items=%d", len(rep.Items)))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Stock Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "STOCK REPORT")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+utils.FormatDateTime(time.Now()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("SKUs: %d   Units: %d   Value: %s   Low stock: %d",
		rep.TotalSKUs, rep.TotalUnits, formatAmount(rep.TotalValue), rep.LowStockCount))
	pdf.Ln(10)

	headers := []string{"SKU", "Name", "Category", "Warehouse", "Qty", "Reorder", "Unit Price"}
	widths := []float64{30, 80, 40, 25, 20, 20, 30}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range rep.Items {
		cols := []string{
			it.SKU,
			truncate(it.Name, 45),
			safe(it.Category, "-"),
			strconv.FormatInt(it.WarehouseID, 10),
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.ReorderLevel),
			formatAmount(it.UnitPrice),
		}
		for i, v := range cols {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("stock_report_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func (s ExportService) StockReportCSV(rep StockReport) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "export", "stock_csv", fmt.Sprintf("items=%d", len(rep.Items)))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"sku", "name", "category", "warehouse_id", "quantity", "reorder_level", "unit_price"})
	for _, it := range rep.Items {
		_ = w.Write([]string{
			it.SKU,
			it.Name,
			it.Category,
			strconv.FormatInt(it.WarehouseID, 10),
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.ReorderLevel),
			strconv.FormatFloat(it.UnitPrice, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("stock_report_%s.csv", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func (s ExportService) MovementReportPDF(rep MovementReport) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "export", "movement_pdf", fmt.Sprintf("orders=%d", len(rep.Orders)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Order Movement Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ORDER MOVEMENT REPORT")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+utils.FormatDateTime(time.Now()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Orders: %d   Total: %s", rep.TotalOrders, formatAmount(rep.TotalAmount)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "By status:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, status := range []string{"pending", "picking", "shipped", "delivered", "cancelled"} {
		if n, ok := rep.CountByStatus[status]; ok {
			pdf.Cell(0, 6, fmt.Sprintf("%-10s %d", status, n))
			pdf.Ln(6)
		}
	}
	pdf.Ln(4)

	headers := []string{"Reference", "Customer", "Status", "Items", "Amount", "Created"}
	widths := []float64{30, 55, 25, 15, 30, 35}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, o := range rep.Orders {
		cols := []string{
			o.Reference,
			truncate(o.CustomerName, 30),
			o.Status,
			strconv.Itoa(o.ItemCount),
			formatAmount(o.TotalAmount),
			o.CreatedAt,
		}
		for i, v := range cols {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("movement_report_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func (s ExportService) MovementReportCSV(rep MovementReport) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "export", "movement_csv", fmt.Sprintf("orders=%d", len(rep.Orders)))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"reference", "customer_name", "status", "item_count", "total_amount", "created_at"})
	for _, o := range rep.Orders {
		_ = w.Write([]string{
			o.Reference,
			o.CustomerName,
			o.Status,
			strconv.Itoa(o.ItemCount),
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			o.CreatedAt,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("movement_report_%s.csv", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

func formatAmount(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
