package repositories

import (
	"regexp"
	"testing"

	"warehouse/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var userCols = []string{"id", "name", "email", "password_hash", "role", "status", "warehouse_ids"}

func TestFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, role, status, COALESCE(warehouse_ids,'') FROM users WHERE email = ?`)).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "Admin User", "admin@example.com", "hash", "admin", "active", "1,2"))

	rec, err := UserRepository{DB: db}.FindByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if rec.Name != "Admin User" || rec.Role != "admin" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(rec.WarehouseIDs) != 2 || rec.WarehouseIDs[0] != 1 || rec.WarehouseIDs[1] != 2 {
		t.Fatalf("warehouse ids not parsed: %v", rec.WarehouseIDs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = ?`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err = UserRepository{DB: db}.FindByEmail("nobody@example.com")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(7, "Maya Ortega", "manager@example.com", "hash", "manager", "active", ""))

	rec, err := UserRepository{DB: db}.FindByID(7)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if rec.ID != 7 || rec.WarehouseIDs != nil {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Sam Reyes", "staff@example.com", "hash", "staff", "active", "3").
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := UserRepository{DB: db}.Create(UserRecord{
		Name: "Sam Reyes", Email: "staff@example.com", PasswordHash: "hash",
		Role: "staff", Status: "active", WarehouseIDs: []int64{3},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
}

func TestUpdatePasswordNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password_hash=?, updated_at=NOW() WHERE email=?`)).
		WithArgs("hash", "nobody@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = UserRepository{DB: db}.UpdatePassword("nobody@example.com", "hash")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id=?`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (UserRepository{DB: db}).Delete(4); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestIDListRoundTrip(t *testing.T) {
	if got := formatIDList(nil); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := formatIDList([]int64{1, 2, 3}); got != "1,2,3" {
		t.Fatalf("got %q", got)
	}
	ids := parseIDList(" 1, 2 ,junk, -5, 3 ")
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("got %v", ids)
	}
}

func TestRoleToPermissions(t *testing.T) {
	admin := UserRecord{ID: 1, Role: domain.RoleAdmin}.ToUser()
	if len(admin.Permissions) != 1 || admin.Permissions[0] != domain.PermissionAll {
		t.Fatalf("admin permissions %v", admin.Permissions)
	}

	staff := UserRecord{ID: 2, Role: domain.RoleStaff}.ToUser()
	for _, p := range staff.Permissions {
		if p == domain.PermInventoryEdit {
			t.Fatalf("staff must not receive edit permissions: %v", staff.Permissions)
		}
	}
}
