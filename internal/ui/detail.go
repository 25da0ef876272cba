package ui

import (
	"errors"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/catalog"
	"github.com/five82/asana/internal/pose"
)

// detailState holds the pose on the detail page.
type detailState struct {
	record        pose.Record
	fallback      bool // record came from bundled data
	loading       bool
	bookmarked    bool
	bookmarkKnown bool
	pending       bool // a bookmark change is in flight
}

// loggedIn reports whether a session is stored.
func (m Model) loggedIn() bool {
	return m.service != nil && m.service.Session().LoggedIn()
}

// openDetail shows rec at once and refreshes it from the API.
func (m *Model) openDetail(rec pose.Record) tea.Cmd {
	m.detail = detailState{record: rec, loading: m.service != nil}
	m.currentView = ViewDetail
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	if m.service == nil {
		return nil
	}

	cmds := []tea.Cmd{getPoseCmd(m.ctx, m.service, rec.ID)}
	if m.loggedIn() {
		cmds = append(cmds, bookmarkStateCmd(m.ctx, m.service, rec.ID))
	}
	return tea.Batch(cmds...)
}

// handlePoseLoaded installs a fetched pose if it is still on screen.
func (m Model) handlePoseLoaded(msg poseLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.detail.record.ID {
		return m, nil
	}
	m.detail.loading = false
	if msg.err != nil {
		m.logger.Warn("pose load failed", slog.Int("id", msg.id), slog.Any("error", msg.err))
		key := txtLoadFailed
		if errors.Is(msg.err, api.ErrNotFound) {
			key = txtPoseNotFound
		}
		m.updateDetailViewport()
		cmd := m.showToast(toastDanger, text(key, m.lang))
		return m, cmd
	}
	m.detail.record = msg.detail.Pose
	m.detail.fallback = msg.detail.Fallback
	m.updateDetailViewport()
	return m, nil
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Bookmark):
		if !m.loggedIn() {
			cmd := m.showToast(toastWarning, text(txtLoginRequired, m.lang))
			return m, cmd
		}
		if m.detail.pending {
			return m, nil
		}
		m.detail.pending = true
		cmd := toggleBookmarkCmd(m.ctx, m.service, m.detail.record.ID, m.detail.bookmarked)
		return m, cmd

	case keyMatches(msg, m.keys.Account):
		cmd := m.openAuth()
		return m, cmd

	case keyMatches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil

	case keyMatches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// handleBookmarkToggled applies a bookmark change result.
func (m Model) handleBookmarkToggled(msg bookmarkToggledMsg) (tea.Model, tea.Cmd) {
	if msg.id == m.detail.record.ID {
		m.detail.pending = false
	}

	if msg.err != nil {
		m.logger.Warn("bookmark change failed", slog.Int("id", msg.id), slog.Any("error", msg.err))
		key := txtBookmarkFailed
		if errors.Is(msg.err, catalog.ErrNotLoggedIn) || errors.Is(msg.err, api.ErrUnauthorized) {
			m.user = ""
			key = txtLoginRequired
		}
		m.updateDetailViewport()
		cmd := m.showToast(toastDanger, text(key, m.lang))
		return m, cmd
	}

	if msg.id == m.detail.record.ID {
		m.detail.bookmarked = msg.bookmarked
		m.detail.bookmarkKnown = true
		m.updateDetailViewport()
	}
	key := ternaryKey(msg.bookmarked, txtBookmarkAdded, txtBookmarkRemoved)
	cmd := m.showToast(toastSuccess, text(key, m.lang))
	return m, cmd
}

// updateDetailViewport re-renders the detail page into the viewport.
func (m *Model) updateDetailViewport() {
	if !m.ready || m.currentView != ViewDetail {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

// renderDetail renders the scrollable detail page.
func (m Model) renderDetail() string {
	return m.detailViewport.View()
}

// detailContent lays out every field of the current pose.
func (m Model) detailContent() string {
	styles := m.theme.Styles()
	rec := m.detail.record
	width := maxInt(20, m.width-4)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	// Title: name in the current language, counterpart beneath
	b.WriteString(styles.AccentText.Bold(true).Render(rec.DisplayName(m.lang)))
	if m.detail.loading {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(rec.DisplayName(m.lang.Toggle())))
	b.WriteString("\n\n")

	// Badges
	badges := []string{styles.DifficultyStyle(rec.Difficulty).Render(pose.DifficultyLabel(rec.Difficulty, m.lang))}
	for _, tag := range rec.EffectTags {
		badges = append(badges, styles.TagStyle(tag).Render(pose.TagLabel(tag, m.lang)))
	}
	b.WriteString(strings.Join(badges, " "))
	if m.detail.fallback {
		b.WriteString("  " + styles.WarningText.Bold(true).Render(text(txtOffline, m.lang)))
	}
	b.WriteString("\n")
	b.WriteString(m.bookmarkLine())
	b.WriteString("\n\n")

	m.writeSection(&b, text(txtEffect, m.lang), wrap.Render(rec.DisplayEffect(m.lang)))
	if caution := rec.DisplayCaution(m.lang); caution != "" {
		m.writeSection(&b, text(txtCaution, m.lang), wrap.Render(styles.WarningText.Render(caution)))
	}
	m.writeSection(&b, text(txtImage, m.lang), styles.InfoText.Render(rec.Image))
	if rec.Video != "" {
		m.writeSection(&b, text(txtVideo, m.lang), styles.InfoText.Render(pose.EmbedURL(rec.Video)))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) writeSection(b *strings.Builder, title, body string) {
	styles := m.theme.Styles()
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

// bookmarkLine renders the bookmark state, or a login hint for guests.
func (m Model) bookmarkLine() string {
	styles := m.theme.Styles()
	switch {
	case !m.loggedIn():
		return styles.FaintText.Render(text(txtLoginRequired, m.lang))
	case m.detail.pending || !m.detail.bookmarkKnown:
		return styles.MutedText.Render("…")
	case m.detail.bookmarked:
		return styles.WarningText.Render(text(txtBookmarked, m.lang))
	default:
		return styles.MutedText.Render(text(txtNotBookmarked, m.lang))
	}
}

func ternaryKey(cond bool, a, b textKey) textKey {
	if cond {
		return a
	}
	return b
}
