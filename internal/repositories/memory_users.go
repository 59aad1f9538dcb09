package repositories

import (
	"sync"

	"warehouse/internal/domain"
	"warehouse/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// MemoryUserDirectory is the mock-auth fallback when no database is
// configured. It seeds one account per role so every permission path is
// reachable out of the box.
type MemoryUserDirectory struct {
	mu     sync.Mutex
	byID   map[int64]UserRecord
	nextID int64
}

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{"Admin User", "admin@example.com", "admin123", domain.RoleAdmin},
	{"Maya Ortega", "manager@example.com", "manager123", domain.RoleManager},
	{"Sam Reyes", "staff@example.com", "staff123", domain.RoleStaff},
}

func NewMemoryUserDirectory() *MemoryUserDirectory {
	d := &MemoryUserDirectory{byID: map[int64]UserRecord{}, nextID: 1}
	for _, s := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		d.byID[d.nextID] = UserRecord{
			ID:           d.nextID,
			Name:         s.name,
			Email:        s.email,
			PasswordHash: string(hash),
			Role:         s.role,
			Status:       "active",
		}
		d.nextID++
	}
	return d
}

func (d *MemoryUserDirectory) FindByEmail(email string) (UserRecord, error) {
	email = utils.NormalizeEmail(email)
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, rec := range d.byID {
		if rec.Email == email {
			return rec, nil
		}
	}
	return UserRecord{}, domain.NotFoundError{Resource: "user"}
}

func (d *MemoryUserDirectory) FindByID(id int64) (UserRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.byID[id]
	if !ok {
		return UserRecord{}, domain.NotFoundError{Resource: "user"}
	}
	return rec, nil
}

func (d *MemoryUserDirectory) List() ([]UserRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]UserRecord, 0, len(d.byID))
	for id := int64(1); id < d.nextID; id++ {
		if rec, ok := d.byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (d *MemoryUserDirectory) Create(rec UserRecord) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.byID {
		if existing.Email == rec.Email {
			return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
	}
	rec.ID = d.nextID
	d.byID[rec.ID] = rec
	d.nextID++
	return rec.ID, nil
}

func (d *MemoryUserDirectory) Update(rec UserRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	existing, ok := d.byID[rec.ID]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	rec.PasswordHash = existing.PasswordHash
	d.byID[rec.ID] = rec
	return nil
}

func (d *MemoryUserDirectory) UpdatePassword(email, passwordHash string) error {
	email = utils.NormalizeEmail(email)
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, rec := range d.byID {
		if rec.Email == email {
			rec.PasswordHash = passwordHash
			d.byID[id] = rec
			return nil
		}
	}
	return domain.NotFoundError{Resource: "user"}
}

func (d *MemoryUserDirectory) Delete(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[id]; !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	delete(d.byID, id)
	return nil
}
