package persist

import (
	"encoding/json"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/utils"
)

const (
	// SnapshotVersion must match a stored record exactly or the record is
	// discarded. Bump it whenever the snapshot shape changes.
	SnapshotVersion = "1.0"

	// MaxAge invalidates snapshots older than a day.
	MaxAge = 24 * time.Hour

	snapshotKey = "dashboard_state"
	tokenKey    = "auth_token"
)

// Bridge persists the UI snapshot and the session token. Every failure
// degrades to a no-op with a warning; Save/Load/Clear never propagate
// errors into caller code.
type Bridge struct {
	storage Storage

	// now is swappable in tests.
	now func() time.Time
}

func NewBridge(storage Storage) *Bridge {
	return &Bridge{storage: storage, now: time.Now}
}

// Save stamps the snapshot with the running version and the current time,
// fills defaults for missing fields and writes it to the slot.
func (b *Bridge) Save(snap domain.PersistedSnapshot) {
	snap.Version = SnapshotVersion
	snap.Timestamp = b.now()
	if snap.ActiveModule == "" {
		snap.ActiveModule = "dashboard"
	}
	if snap.Pagination == nil {
		snap.Pagination = map[string]domain.PaginationState{}
	}
	if snap.Filters == nil {
		snap.Filters = map[string]map[string]string{}
	}
	if snap.SearchTerms == nil {
		snap.SearchTerms = map[string]string{}
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		utils.LogEvent("", "persist", "save_failed", err.Error())
		return
	}
	if err := b.storage.Set(snapshotKey, string(raw)); err != nil {
		utils.LogEvent("", "persist", "save_failed", err.Error())
	}
}

// Load returns the stored snapshot, or ok=false when there is none or the
// stored record is not trustworthy. The version check runs before the age
// check; a mismatched version is never treated as merely old. Any rejected
// or unreadable record is cleared so the next Load starts clean: the
// bridge returns full data or no data, never a partial record.
func (b *Bridge) Load() (domain.PersistedSnapshot, bool) {
	var snap domain.PersistedSnapshot

	raw, ok, err := b.storage.Get(snapshotKey)
	if err != nil {
		utils.LogEvent("", "persist", "load_failed", err.Error())
		return snap, false
	}
	if !ok {
		return snap, false
	}

	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		utils.LogEvent("", "persist", "load_corrupt", err.Error())
		b.Clear()
		return domain.PersistedSnapshot{}, false
	}

	if snap.Version != SnapshotVersion {
		utils.LogEvent("", "persist", "load_version_mismatch", snap.Version)
		b.Clear()
		return domain.PersistedSnapshot{}, false
	}
	if b.now().Sub(snap.Timestamp) > MaxAge {
		utils.LogEvent("", "persist", "load_expired", snap.Timestamp.Format(time.RFC3339))
		b.Clear()
		return domain.PersistedSnapshot{}, false
	}

	return snap, true
}

// Clear drops the stored snapshot.
func (b *Bridge) Clear() {
	if err := b.storage.Delete(snapshotKey); err != nil {
		utils.LogEvent("", "persist", "clear_failed", err.Error())
	}
}

// Token returns the persisted session token. Implements the session
// manager's TokenSlot.
func (b *Bridge) Token() (string, bool) {
	raw, ok, err := b.storage.Get(tokenKey)
	if err != nil {
		utils.LogEvent("", "persist", "token_read_failed", err.Error())
		return "", false
	}
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func (b *Bridge) SetToken(token string) {
	if err := b.storage.Set(tokenKey, token); err != nil {
		utils.LogEvent("", "persist", "token_write_failed", err.Error())
	}
}

func (b *Bridge) ClearToken() {
	if err := b.storage.Delete(tokenKey); err != nil {
		utils.LogEvent("", "persist", "token_clear_failed", err.Error())
	}
}
