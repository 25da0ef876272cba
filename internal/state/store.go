package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/asana/internal/pose"
)

// Page is one list response as the UI received it.
type Page struct {
	Poses    []pose.Record
	Page     int
	HasMore  bool
	Fallback bool
}

// Snapshot represents the list data available to the UI.
type Snapshot struct {
	Poses               []pose.Record
	Page                int // last page loaded, 0 before the first load
	HasMore             bool
	Fallback            bool // any loaded page came from bundled data
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // number of consecutive failed loads
}

// IsOffline reports whether the list is showing bundled data or the API has
// failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.Fallback || s.ConsecutiveFailures >= 2
}

// Store holds the pose list shown by the UI. Responses are applied in the
// order they are delivered, so a slow earlier load can overwrite a faster
// later one.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace installs p as the whole list. When err is non-nil the previous
// list is kept and the error recorded.
func (s *Store) Replace(p Page, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recordErrorLocked(err) {
		return
	}
	s.snapshot.Poses = clonePoses(p.Poses)
	s.snapshot.Page = p.Page
	s.snapshot.HasMore = p.HasMore
	s.snapshot.Fallback = p.Fallback
	s.recordSuccessLocked()
}

// Append adds p after the current list. When err is non-nil the list is
// kept and the error recorded.
func (s *Store) Append(p Page, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recordErrorLocked(err) {
		return
	}
	s.snapshot.Poses = append(clonePoses(s.snapshot.Poses), p.Poses...)
	s.snapshot.Page = p.Page
	s.snapshot.HasMore = p.HasMore
	s.snapshot.Fallback = s.snapshot.Fallback || p.Fallback
	s.recordSuccessLocked()
}

// Reset forgets the list, keeping nothing from earlier loads.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Poses = clonePoses(s.snapshot.Poses)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) recordErrorLocked(err error) bool {
	if err == nil {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

func (s *Store) recordSuccessLocked() {
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func clonePoses(items []pose.Record) []pose.Record {
	if len(items) == 0 {
		return nil
	}
	dup := make([]pose.Record, len(items))
	copy(dup, items)
	return dup
}
