// Package feed implements the client-local in-app notification feed: a
// bounded, priority-sorted collection per (tenant, user) with read/unread
// state and durable snapshots.
//
// Two producers push into the same feed — the reminder dispatcher and direct
// booking actions — and both go through Add, so the priority/sort contract
// holds regardless of origin. Ordering is by category rank ascending
// (overdue first, see domain.CategoryRank) and createdAt descending within a
// rank. The feed keeps at most Cap entries per user; older entries beyond
// the cap are dropped on every mutation.
//
// Every mutation writes a JSON snapshot to disk. Snapshots store instants as
// RFC 3339 strings, so Load reconstructs proper time.Time values; entries
// whose stored instant no longer parses are dropped rather than breaking
// startup.
package feed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pawdesk/go-vet-backend/internal/clock"
	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// DefaultCap is the per-user feed bound.
const DefaultCap = 100

// Feed is an in-memory notification feed with durable JSON snapshots.
// It is safe for concurrent use.
type Feed struct {
	// Path is the snapshot file. Empty disables persistence (tests).
	Path string
	// Cap bounds each user's entries; <=0 means DefaultCap.
	Cap int

	mu    sync.RWMutex
	users map[string][]*domain.InAppNotification
}

// New returns an empty feed persisting to path.
func New(path string) *Feed {
	return &Feed{Path: path, Cap: DefaultCap, users: make(map[string][]*domain.InAppNotification)}
}

// key namespaces a user's entries by tenant.
func key(tenantID, userID string) string { return tenantID + "/" + userID }

// Add inserts a notification into the owner's feed, re-sorts the collection,
// applies the cap, and snapshots. The notification's TenantID/UserID select
// the feed; CreatedAt defaults to now when unset.
func (f *Feed) Add(n *domain.InAppNotification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	f.mu.Lock()
	k := key(n.TenantID, n.UserID)
	entries := append(f.users[k], n)
	sortEntries(entries)
	if cap := f.capacity(); len(entries) > cap {
		entries = evictOldest(entries, cap)
	}
	f.users[k] = entries
	f.mu.Unlock()

	f.snapshot()
}

// List returns the user's entries in display order. The returned slice is a
// copy; mutating it does not affect the feed.
func (f *Feed) List(tenantID, userID string) []domain.InAppNotification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries := f.users[key(tenantID, userID)]
	out := make([]domain.InAppNotification, len(entries))
	for i, n := range entries {
		out[i] = *n
	}
	return out
}

// Unread returns the number of unread entries for the user.
func (f *Feed) Unread(tenantID, userID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := 0
	for _, e := range f.users[key(tenantID, userID)] {
		if !e.Read {
			n++
		}
	}
	return n
}

// MarkRead flags one entry as read. It reports whether the entry existed.
func (f *Feed) MarkRead(tenantID, userID, id string) bool {
	f.mu.Lock()
	found := false
	for _, e := range f.users[key(tenantID, userID)] {
		if e.ID == id {
			e.Read = true
			found = true
			break
		}
	}
	f.mu.Unlock()

	if found {
		f.snapshot()
	}
	return found
}

// MarkAllRead flags every entry of the user as read.
func (f *Feed) MarkAllRead(tenantID, userID string) {
	f.mu.Lock()
	for _, e := range f.users[key(tenantID, userID)] {
		e.Read = true
	}
	f.mu.Unlock()

	f.snapshot()
}

func (f *Feed) capacity() int {
	if f.Cap <= 0 {
		return DefaultCap
	}
	return f.Cap
}

// sortEntries orders by rank ascending, then createdAt descending, then ID
// for a stable tiebreak.
func sortEntries(entries []*domain.InAppNotification) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Rank(), entries[j].Rank()
		if ri != rj {
			return ri < rj
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}

// evictOldest drops entries beyond cap, removing the oldest by createdAt
// first regardless of rank, and returns the remainder in display order.
func evictOldest(entries []*domain.InAppNotification, cap int) []*domain.InAppNotification {
	byAge := make([]*domain.InAppNotification, len(entries))
	copy(byAge, entries)
	sort.SliceStable(byAge, func(i, j int) bool {
		return byAge[i].CreatedAt.After(byAge[j].CreatedAt)
	})
	keep := make(map[string]struct{}, cap)
	for _, e := range byAge[:cap] {
		keep[e.ID] = struct{}{}
	}

	out := entries[:0]
	for _, e := range entries {
		if _, ok := keep[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

// snapshotEntry is the on-disk shape of one notification. CreatedAt is a
// string on purpose: snapshots survive process restarts and the instant is
// reconstructed on load.
type snapshotEntry struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	UserID        string          `json:"user_id"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	Category      domain.Category `json:"category"`
	AppointmentID string          `json:"appointment_id,omitempty"`
	Read          bool            `json:"read"`
	CreatedAt     string          `json:"created_at"`
}

// snapshot writes the whole feed to Path atomically (write temp + rename).
// Persistence failures are logged, never propagated: losing a snapshot must
// not fail the mutation that triggered it.
func (f *Feed) snapshot() {
	if f.Path == "" {
		return
	}

	f.mu.RLock()
	var entries []snapshotEntry
	for _, list := range f.users {
		for _, n := range list {
			entries = append(entries, snapshotEntry{
				ID:            n.ID,
				TenantID:      n.TenantID,
				UserID:        n.UserID,
				Title:         n.Title,
				Message:       n.Message,
				Category:      n.Category,
				AppointmentID: n.AppointmentID,
				Read:          n.Read,
				CreatedAt:     n.CreatedAt.Format(time.RFC3339Nano),
			})
		}
	}
	f.mu.RUnlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("feed snapshot marshal failed")
		return
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Error().Err(err).Str("path", tmp).Msg("feed snapshot write failed")
		return
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		log.Error().Err(err).Str("path", f.Path).Msg("feed snapshot rename failed")
	}
}

// Load reads the snapshot at Path (when present) and rebuilds the in-memory
// feed, parsing stored instants back into time.Time. Entries with an
// unparsable instant are dropped with a warning. A missing file is not an
// error; a corrupt file is.
func (f *Feed) Load() error {
	if f.Path == "" {
		return nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []snapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	users := make(map[string][]*domain.InAppNotification)
	for _, e := range entries {
		created, err := clock.ParseInstant(e.CreatedAt)
		if err != nil {
			log.Warn().Str("id", e.ID).Str("created_at", e.CreatedAt).Msg("dropping feed entry with unparsable instant")
			continue
		}
		k := key(e.TenantID, e.UserID)
		users[k] = append(users[k], &domain.InAppNotification{
			ID:            e.ID,
			TenantID:      e.TenantID,
			UserID:        e.UserID,
			Title:         e.Title,
			Message:       e.Message,
			Category:      e.Category,
			AppointmentID: e.AppointmentID,
			Read:          e.Read,
			CreatedAt:     created,
		})
	}
	for _, list := range users {
		sortEntries(list)
	}

	f.mu.Lock()
	f.users = users
	f.mu.Unlock()
	return nil
}

// EnsureDir creates the parent directory of the snapshot path.
func (f *Feed) EnsureDir() error {
	if f.Path == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(f.Path), 0o755)
}
