// Package ui provides the terminal user interface for asana.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model holds every view's state and
// switches on the active View; network calls run as tea.Cmd functions that
// call the catalog facade and return messages. Nothing in this package
// talks HTTP directly.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and the Run entry point
//   - commands.go: messages and the commands that call the catalog
//   - list.go: pose list, search box, difficulty and effect filters
//   - detail.go: pose detail page and bookmark toggling
//   - auth.go: login / signup form and the account box
//   - header.go: status bar, command bar and footer
//   - toast.go: transient notifications
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings (bubbles/key)
//   - theme.go, style_helpers.go: palettes and lipgloss helpers
//   - text.go: zh / en copy
//
// # Views
//
//   - List: poses from state.Store, filtered locally by effect tag
//   - Detail: one pose, refreshed from the API when opened
//   - Auth: login or signup form for guests, logout for users
//
// # Data Flow
//
// List loads write into the shared state.Store (Replace for a new query,
// Append for load more) and the resulting snapshot is delivered back as a
// message. The store applies results in arrival order, so overlapping
// loads resolve to whichever answered last.
//
// Fallback notices arrive on the channel from NoticeSink and become warning
// toasts. Toasts expire after ToastDuration; a newer toast is never cleared
// by an older expiry.
//
// # Preferences
//
// Theme and language changes (T and L) are saved to the prefs file right
// away. Failures to save are logged and otherwise ignored.
package ui
