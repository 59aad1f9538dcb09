package repositories

import (
	"database/sql"
	"strconv"
	"strings"

	intconfig "warehouse/internal/config"
	"warehouse/internal/domain"
)

// UserRecord is the users table row. PasswordHash never leaves the
// repository layer.
type UserRecord struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	WarehouseIDs []int64
}

// ToUser converts the row into the identity record issued at login.
// Permissions come from the role, admin gets the sentinel.
func (r UserRecord) ToUser() *domain.User {
	perms := domain.RolePermissions[r.Role]
	granted := make([]string, len(perms))
	copy(granted, perms)
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		Permissions:  granted,
		WarehouseIDs: r.WarehouseIDs,
	}
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, password_hash, role, status, COALESCE(warehouse_ids,'')`

func scanUser(row *sql.Row) (UserRecord, error) {
	var (
		rec UserRecord
		ids string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &rec.Role, &rec.Status, &ids)
	if err != nil {
		return rec, err
	}
	rec.WarehouseIDs = parseIDList(ids)
	return rec, nil
}

func (r UserRepository) FindByEmail(email string) (UserRecord, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	rec, err := scanUser(row)
	if err == sql.ErrNoRows {
		return rec, domain.NotFoundError{Resource: "user"}
	}
	return rec, err
}

func (r UserRepository) FindByID(id int64) (UserRecord, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	rec, err := scanUser(row)
	if err == sql.ErrNoRows {
		return rec, domain.NotFoundError{Resource: "user"}
	}
	return rec, err
}

func (r UserRepository) List() ([]UserRecord, error) {
	rows, err := r.db().Query(`SELECT ` + userColumns + ` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserRecord{}
	for rows.Next() {
		var (
			rec UserRecord
			ids string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &rec.Role, &rec.Status, &ids); err != nil {
			return nil, err
		}
		rec.WarehouseIDs = parseIDList(ids)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r UserRepository) Create(rec UserRecord) (int64, error) {
	res, err := r.db().Exec(`
        INSERT INTO users (name, email, password_hash, role, status, warehouse_ids, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
    `, rec.Name, rec.Email, rec.PasswordHash, rec.Role, rec.Status, formatIDList(rec.WarehouseIDs))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) Update(rec UserRecord) error {
	res, err := r.db().Exec(`
        UPDATE users SET name=?, email=?, role=?, status=?, warehouse_ids=?, updated_at=NOW()
        WHERE id=?
    `, rec.Name, rec.Email, rec.Role, rec.Status, formatIDList(rec.WarehouseIDs), rec.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) UpdatePassword(email, passwordHash string) error {
	res, err := r.db().Exec(`UPDATE users SET password_hash=?, updated_at=NOW() WHERE email=?`, passwordHash, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func parseIDList(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

func formatIDList(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
