package services

import "warehouse/internal/repositories"

// UserStore is the full user management surface: the auth lookups plus
// the CRUD the users module needs. Satisfied by both the MySQL repository
// and the seeded in-memory directory.
type UserStore interface {
	UserDirectory
	List() ([]repositories.UserRecord, error)
	Create(rec repositories.UserRecord) (int64, error)
	Update(rec repositories.UserRecord) error
	Delete(id int64) error
}
