package handlers

import (
	"net/http"
	"strconv"

	"warehouse/internal/http/middleware"
	"warehouse/internal/services"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
)

func reportsService() services.ReportsService {
	return services.ReportsService{Inventory: inventoryRepo, Orders: orderRepo}
}

func stockFilter(c *gin.Context) services.StockReportFilter {
	warehouseID, _ := strconv.ParseInt(c.Query("warehouse_id"), 10, 64)
	return services.StockReportFilter{
		WarehouseID: warehouseID,
		Category:    utils.TrimOrEmpty(c.Query("category")),
	}
}

func movementFilter(c *gin.Context) (services.MovementReportFilter, error) {
	warehouseID, _ := strconv.ParseInt(c.Query("warehouse_id"), 10, 64)
	start, err := dateQuery(c, "start_date")
	if err != nil {
		return services.MovementReportFilter{}, err
	}
	end, err := dateQuery(c, "end_date")
	if err != nil {
		return services.MovementReportFilter{}, err
	}
	return services.MovementReportFilter{
		StartDate:   start,
		EndDate:     end,
		WarehouseID: warehouseID,
	}, nil
}

// GET /api/reports/stock
func GetStockReport(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	rep, err := reportsService().StockReport(stockFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/reports/stock/pdf
func GetStockReportPDF(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	rep, err := reportsService().StockReport(stockFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.StockReportPDF(rep)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", "could not render PDF", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/reports/stock/csv
func GetStockReportCSV(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	rep, err := reportsService().StockReport(stockFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	csvBytes, filename, err := svc.StockReportCSV(rep)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", "could not render CSV", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", csvBytes)
}

// GET /api/reports/movements
func GetMovementReport(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	filter, err := movementFilter(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	rep, err := reportsService().MovementReport(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/reports/movements/pdf
func GetMovementReportPDF(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	filter, err := movementFilter(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	rep, err := reportsService().MovementReport(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.MovementReportPDF(rep)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", "could not render PDF", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/reports/movements/csv
func GetMovementReportCSV(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	filter, err := movementFilter(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	rep, err := reportsService().MovementReport(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	csvBytes, filename, err := svc.MovementReportCSV(rep)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", "could not render CSV", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", csvBytes)
}
