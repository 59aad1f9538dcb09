package handlers

import (
	"net/http"
	"strconv"

	intconfig "warehouse/internal/config"
	"warehouse/internal/domain"
	"warehouse/internal/repositories"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
)

func requireDB(c *gin.Context) bool {
	if intconfig.DB == nil && inventoryRepo.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

// GET /api/inventory
// Supports page/limit plus search, category and warehouse filters; the
// response meta mirrors the dashboard's pagination state shape.
func GetInventory(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	page, limit := pageParams(c)
	warehouseID, _ := strconv.ParseInt(c.Query("warehouse_id"), 10, 64)

	items, total, err := inventoryRepo.List(repositories.InventoryFilter{
		Search:      utils.TrimOrEmpty(c.Query("search")),
		Category:    utils.TrimOrEmpty(c.Query("category")),
		SKUs:        utils.SplitSKUList(c.Query("skus")),
		WarehouseID: warehouseID,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GET /api/inventory/:id
func GetInventoryItem(c *gin.Context) {
	if !requireDB(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := inventoryRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type inventoryItemRequest struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	WarehouseID  int64   `json:"warehouse_id"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
}

func (r inventoryItemRequest) validate() error {
	if utils.TrimOrEmpty(r.SKU) == "" {
		return domain.ValidationError{Field: "sku", Msg: "is required"}
	}
	if utils.NormalizeSpace(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if r.WarehouseID <= 0 {
		return domain.ValidationError{Field: "warehouse_id", Msg: "is required"}
	}
	if r.Quantity < 0 || r.ReorderLevel < 0 || r.UnitPrice < 0 {
		return domain.ValidationError{Msg: "quantity, reorder_level and unit_price must not be negative"}
	}
	return nil
}

// POST /api/inventory
func CreateInventoryItem(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	var req inventoryItemRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := inventoryRepo.Create(repositories.InventoryItem{
		SKU:          utils.TrimOrEmpty(req.SKU),
		Name:         utils.NormalizeSpace(req.Name),
		Category:     utils.TrimOrEmpty(req.Category),
		WarehouseID:  req.WarehouseID,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "item created", "id": id})
}

// PUT /api/inventory/:id
func UpdateInventoryItem(c *gin.Context) {
	if !requireDB(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req inventoryItemRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	err := inventoryRepo.Update(repositories.InventoryItem{
		ID:           id,
		SKU:          utils.TrimOrEmpty(req.SKU),
		Name:         utils.NormalizeSpace(req.Name),
		Category:     utils.TrimOrEmpty(req.Category),
		WarehouseID:  req.WarehouseID,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

// DELETE /api/inventory/:id
func DeleteInventoryItem(c *gin.Context) {
	if !requireDB(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := inventoryRepo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// GET /api/inventory/low-stock
func GetLowStock(c *gin.Context) {
	if !requireDB(c) {
		return
	}

	warehouseID, _ := strconv.ParseInt(c.Query("warehouse_id"), 10, 64)
	items, err := inventoryRepo.ListLowStock(warehouseID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
