package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"warehouse/internal/domain"
	"warehouse/internal/http/middleware"
	"warehouse/internal/repositories"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/orders
func GetOrders(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	page, limit := pageParams(c)
	warehouseID, _ := strconv.ParseInt(c.Query("warehouse_id"), 10, 64)

	startDate, err := dateQuery(c, "start_date")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	endDate, err := dateQuery(c, "end_date")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	orders, total, err := orderRepo.List(repositories.OrderFilter{
		Status:      utils.TrimOrEmpty(c.Query("status")),
		Search:      utils.TrimOrEmpty(c.Query("search")),
		WarehouseID: warehouseID,
		StartDate:   startDate,
		EndDate:     endDate,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	if !requireDB(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := orderRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	if !requireDB(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req orderStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	order, err := orderRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := strings.ToLower(utils.TrimOrEmpty(req.Status))
	if !repositories.ValidStatusTransition(order.Status, status) {
		RespondDomainError(c, domain.ValidationError{
			Field: "status",
			Msg:   "cannot move from " + order.Status + " to " + status,
		})
		return
	}

	if err := orderRepo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "orders", "status_change",
		"id="+strconv.FormatInt(id, 10)+" to="+status)
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
