package services

import (
	"warehouse/internal/repositories"
)

// StockReportFilter narrows the stock report; zero values mean all.
type StockReportFilter struct {
	WarehouseID int64
	Category    string
}

// StockReport is the aggregated inventory view for the reports module.
type StockReport struct {
	Items         []repositories.InventoryItem `json:"items"`
	TotalSKUs     int                          `json:"total_skus"`
	TotalUnits    int                          `json:"total_units"`
	TotalValue    float64                      `json:"total_value"`
	LowStockCount int                          `json:"low_stock_count"`
}

// MovementReportFilter bounds the order-movement report by creation date.
type MovementReportFilter struct {
	StartDate   string
	EndDate     string
	WarehouseID int64
}

// MovementReport summarizes order flow per status over a date range.
type MovementReport struct {
	Orders        []repositories.Order `json:"orders"`
	CountByStatus map[string]int       `json:"count_by_status"`
	TotalOrders   int                  `json:"total_orders"`
	TotalAmount   float64              `json:"total_amount"`
}

type ReportsService struct {
	Inventory repositories.InventoryRepository
	Orders    repositories.OrderRepository
}

// StockReport aggregates the full (unpaged) inventory matching the filter.
func (s ReportsService) StockReport(f StockReportFilter) (StockReport, error) {
	items, _, err := s.Inventory.List(repositories.InventoryFilter{
		WarehouseID: f.WarehouseID,
		Category:    f.Category,
	})
	if err != nil {
		return StockReport{}, err
	}

	rep := StockReport{Items: items, TotalSKUs: len(items)}
	for _, it := range items {
		rep.TotalUnits += it.Quantity
		rep.TotalValue += float64(it.Quantity) * it.UnitPrice
		if it.Quantity <= it.ReorderLevel {
			rep.LowStockCount++
		}
	}
	return rep, nil
}

// MovementReport lists orders in the range and counts them per status.
func (s ReportsService) MovementReport(f MovementReportFilter) (MovementReport, error) {
	orders, total, err := s.Orders.List(repositories.OrderFilter{
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		WarehouseID: f.WarehouseID,
	})
	if err != nil {
		return MovementReport{}, err
	}

	rep := MovementReport{
		Orders:        orders,
		CountByStatus: map[string]int{},
		TotalOrders:   total,
	}
	for _, o := range orders {
		rep.CountByStatus[o.Status]++
		rep.TotalAmount += o.TotalAmount
	}
	return rep, nil
}
