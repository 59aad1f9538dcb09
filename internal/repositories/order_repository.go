package repositories

import (
	"database/sql"
	"strings"

	intconfig "warehouse/internal/config"
	"warehouse/internal/domain"
)

// Order statuses move pending → picking → shipped → delivered, with
// cancelled reachable from pending and picking only.
const (
	OrderPending   = "pending"
	OrderPicking   = "picking"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	CustomerName string  `json:"customer_name"`
	Status       string  `json:"status"`
	WarehouseID  int64   `json:"warehouse_id"`
	ItemCount    int     `json:"item_count"`
	TotalAmount  float64 `json:"total_amount"`
	CreatedAt    string  `json:"created_at"`
}

type OrderFilter struct {
	Status      string
	Search      string
	WarehouseID int64
	StartDate   string
	EndDate     string
	Limit       int
	Offset      int
}

type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const orderColumns = `id, reference, customer_name, status, warehouse_id, item_count, total_amount, COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

func orderWhere(f OrderFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status = ?")
		args = append(args, strings.ToLower(s))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(reference LIKE ? OR customer_name LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like)
	}
	if f.WarehouseID > 0 {
		where = append(where, "warehouse_id = ?")
		args = append(args, f.WarehouseID)
	}
	if s := strings.TrimSpace(f.StartDate); s != "" {
		where = append(where, "DATE(created_at) >= ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.EndDate); s != "" {
		where = append(where, "DATE(created_at) <= ?")
		args = append(args, s)
	}
	return strings.Join(where, " AND "), args
}

// List returns one page of orders plus the unpaged total.
func (r OrderRepository) List(f OrderFilter) ([]Order, int, error) {
	where, args := orderWhere(f)

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where + ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.CustomerName, &o.Status, &o.WarehouseID, &o.ItemCount, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r OrderRepository) GetByID(id int64) (Order, error) {
	var o Order
	err := r.db().QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.Reference, &o.CustomerName, &o.Status, &o.WarehouseID, &o.ItemCount, &o.TotalAmount, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "order"}
	}
	return o, err
}

func (r OrderRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE orders SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "order"}
	}
	return nil
}

// ValidStatusTransition checks the allowed order workflow.
func ValidStatusTransition(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	switch from {
	case OrderPending:
		return to == OrderPicking || to == OrderCancelled
	case OrderPicking:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered
	default:
		return false
	}
}
