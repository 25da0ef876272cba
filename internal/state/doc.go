// Package state holds the pose list shared between load commands and the
// UI.
//
// # Overview
//
// List loads run as background commands. Each result is written to the
// Store with Replace (a fresh search or filter) or Append (load more), and
// the view renders from Snapshot.
//
// # Update Semantics
//
//	// Success: install the data
//	store.Replace(page, nil)
//	→ snapshot.Poses = page.Poses
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error: keep old data, record error
//	store.Append(state.Page{}, err)
//	→ snapshot.Poses = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Snapshot copies the pose slice and wraps the error, so callers may keep
// or modify what they get.
//
// # Ordering
//
// Writes are applied in delivery order with no request tracking. When two
// loads overlap, whichever response arrives last is what the list shows,
// even if it answers the older request.
//
// # Offline Indicator
//
// IsOffline is true when any page on screen came from the bundled dataset,
// or when two or more loads in a row have failed.
package state
