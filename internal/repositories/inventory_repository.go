package repositories

import (
	"database/sql"
	"strings"

	intconfig "warehouse/internal/config"
	"warehouse/internal/domain"
)

// InventoryItem is one stock row of a warehouse.
type InventoryItem struct {
	ID           int64   `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	WarehouseID  int64   `json:"warehouse_id"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
	UpdatedAt    string  `json:"updated_at"`
}

// InventoryFilter narrows List queries. Zero values mean "no filter".
type InventoryFilter struct {
	Search      string
	Category    string
	SKUs        []string
	WarehouseID int64
	Limit       int
	Offset      int
}

type InventoryRepository struct {
	DB *sql.DB
}

func (r InventoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const inventoryColumns = `id, sku, name, COALESCE(category,''), warehouse_id, quantity, reorder_level, unit_price, COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')`

func inventoryWhere(f InventoryFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(sku LIKE ? OR name LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		where = append(where, "category = ?")
		args = append(args, c)
	}
	if len(f.SKUs) > 0 {
		placeholders := make([]string, len(f.SKUs))
		for i, sku := range f.SKUs {
			placeholders[i] = "?"
			args = append(args, sku)
		}
		where = append(where, "sku IN ("+strings.Join(placeholders, ",")+")")
	}
	if f.WarehouseID > 0 {
		where = append(where, "warehouse_id = ?")
		args = append(args, f.WarehouseID)
	}
	return strings.Join(where, " AND "), args
}

// List returns one page of items plus the unpaged total for pagination.
func (r InventoryRepository) List(f InventoryFilter) ([]InventoryItem, int, error) {
	where, args := inventoryWhere(f)

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM inventory_items WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE ` + where + ` ORDER BY sku ASC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []InventoryItem{}
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.WarehouseID, &it.Quantity, &it.ReorderLevel, &it.UnitPrice, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func (r InventoryRepository) GetByID(id int64) (InventoryItem, error) {
	var it InventoryItem
	err := r.db().QueryRow(`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = ?`, id).
		Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.WarehouseID, &it.Quantity, &it.ReorderLevel, &it.UnitPrice, &it.UpdatedAt)
	if err == sql.ErrNoRows {
		return it, domain.NotFoundError{Resource: "inventory item"}
	}
	return it, err
}

func (r InventoryRepository) Create(it InventoryItem) (int64, error) {
	res, err := r.db().Exec(`
        INSERT INTO inventory_items (sku, name, category, warehouse_id, quantity, reorder_level, unit_price, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
    `, it.SKU, it.Name, it.Category, it.WarehouseID, it.Quantity, it.ReorderLevel, it.UnitPrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r InventoryRepository) Update(it InventoryItem) error {
	res, err := r.db().Exec(`
        UPDATE inventory_items
        SET sku=?, name=?, category=?, warehouse_id=?, quantity=?, reorder_level=?, unit_price=?, updated_at=NOW()
        WHERE id=?
    `, it.SKU, it.Name, it.Category, it.WarehouseID, it.Quantity, it.ReorderLevel, it.UnitPrice, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "inventory item"}
	}
	return nil
}

func (r InventoryRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM inventory_items WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "inventory item"}
	}
	return nil
}

// ListLowStock returns items at or below their reorder level.
func (r InventoryRepository) ListLowStock(warehouseID int64) ([]InventoryItem, error) {
	where := `quantity <= reorder_level`
	args := []any{}
	if warehouseID > 0 {
		where += ` AND warehouse_id = ?`
		args = append(args, warehouseID)
	}

	rows, err := r.db().Query(`SELECT `+inventoryColumns+` FROM inventory_items WHERE `+where+` ORDER BY quantity ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []InventoryItem{}
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.WarehouseID, &it.Quantity, &it.ReorderLevel, &it.UnitPrice, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
