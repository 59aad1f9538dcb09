package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/utils"
)

const (
	pinTTL         = 10 * time.Minute
	maxPinAttempts = 5
)

// PinService runs the forgot-password flow: it stores a one-time PIN per
// email, verifies a submitted PIN exactly once, and locks the entry after
// too many failed attempts. Entries live in memory; a restart simply
// forces the user to request a new PIN.
type PinService struct {
	mu      sync.Mutex
	entries map[string]*pinEntry

	// now is swappable in tests.
	now func() time.Time

	// Sender delivers the PIN (mail, SMS). Nil logs it instead, which is
	// what the demo setup uses.
	Sender func(email, pin string) error
}

type pinEntry struct {
	pin      string
	issuedAt time.Time
	attempts int
}

func NewPinService() *PinService {
	return &PinService{entries: map[string]*pinEntry{}, now: time.Now}
}

// Request issues a fresh 6-digit PIN for the email, replacing any
// previous one (and its attempt counter).
func (s *PinService) Request(email string) (string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return "", domain.ValidationError{Field: "email", Msg: "is required"}
	}

	pin := fmt.Sprintf("%06d", rand.Intn(1000000))

	s.mu.Lock()
	s.entries[email] = &pinEntry{pin: pin, issuedAt: s.now()}
	s.mu.Unlock()

	if s.Sender != nil {
		if err := s.Sender(email, pin); err != nil {
			return "", domain.InternalError{Msg: "failed to deliver PIN", Err: err}
		}
	} else {
		utils.LogEvent("", "password", "pin_issued", "email="+email)
	}
	return pin, nil
}

// Verify checks a submitted PIN. A correct PIN is single-use: success
// invalidates the stored entry. After maxPinAttempts wrong submissions the
// entry locks until a new PIN is requested.
func (s *PinService) Verify(email, pin string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || utils.TrimOrEmpty(pin) == "" {
		return domain.ValidationError{Msg: "email and PIN are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return domain.ValidationError{Msg: "no PIN requested for this email"}
	}
	if entry.attempts >= maxPinAttempts {
		return domain.LockedError{Msg: "too many attempts, request a new PIN"}
	}
	if s.now().Sub(entry.issuedAt) > pinTTL {
		delete(s.entries, email)
		return domain.ValidationError{Msg: "PIN expired, request a new one"}
	}
	if entry.pin != utils.TrimOrEmpty(pin) {
		entry.attempts++
		if entry.attempts >= maxPinAttempts {
			return domain.LockedError{Msg: "too many attempts, request a new PIN"}
		}
		return domain.ValidationError{Msg: "incorrect PIN"}
	}

	delete(s.entries, email)
	return nil
}
