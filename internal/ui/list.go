package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/asana/internal/pose"
)

// visible returns the list rows after the local tag filter.
func (m Model) visible() []pose.Record {
	return visiblePoses(m.snapshot.Poses, m.tag)
}

// selected returns the highlighted pose, if any.
func (m Model) selected() (pose.Record, bool) {
	items := m.visible()
	if m.selectedRow < 0 || m.selectedRow >= len(items) {
		return pose.Record{}, false
	}
	return items[m.selectedRow], true
}

// clampSelection keeps the selection inside the visible rows.
func (m *Model) clampSelection() {
	count := len(m.visible())
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// reload replaces the list with page 1 of the current query.
func (m *Model) reload() tea.Cmd {
	if m.service == nil {
		return nil
	}
	m.loading = true
	m.selectedRow = 0
	return loadPosesCmd(m.ctx, m.service, m.store, m.listParams(1), false)
}

// handleListKey processes keyboard input for the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.visible())
	half := maxInt(1, m.listRows()/2)

	switch {
	case keyMatches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case keyMatches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case keyMatches(msg, m.keys.Top):
		m.selectedRow = 0
	case keyMatches(msg, m.keys.Bottom):
		m.selectedRow = maxInt(0, count-1)
	case keyMatches(msg, m.keys.HalfPageDown):
		m.selectedRow = maxInt(0, minInt(count-1, m.selectedRow+half))
	case keyMatches(msg, m.keys.HalfPageUp):
		m.selectedRow = maxInt(0, m.selectedRow-half)

	case keyMatches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case keyMatches(msg, m.keys.CycleDifficulty):
		m.difficulty = nextDifficulty(m.difficulty)
		cmd := m.reload()
		return m, cmd

	case keyMatches(msg, m.keys.CycleTag):
		m.tag = nextTag(m.tag)
		m.selectedRow = 0

	case keyMatches(msg, m.keys.LoadMore):
		if m.service == nil || m.loading || !m.snapshot.HasMore {
			return m, nil
		}
		m.loading = true
		cmd := loadPosesCmd(m.ctx, m.service, m.store, m.listParams(m.snapshot.Page+1), true)
		return m, cmd

	case keyMatches(msg, m.keys.Retry):
		cmd := m.reload()
		return m, cmd

	case keyMatches(msg, m.keys.Open):
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.openDetail(rec)
		return m, cmd

	case keyMatches(msg, m.keys.Account):
		cmd := m.openAuth()
		return m, cmd
	}

	return m, nil
}

// handleSearchKey edits the search box. enter applies the query, esc
// abandons the edit.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		query := strings.TrimSpace(m.searchInput.Value())
		if query == m.query && m.snapshot.Loaded {
			return m, nil
		}
		m.query = query
		cmd := m.reload()
		return m, cmd
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// nextDifficulty cycles all → beginner → intermediate → advanced → all.
func nextDifficulty(d pose.Difficulty) pose.Difficulty {
	if d == "" {
		return pose.Difficulties[0]
	}
	for i, v := range pose.Difficulties {
		if v == d && i+1 < len(pose.Difficulties) {
			return pose.Difficulties[i+1]
		}
	}
	return ""
}

// nextTag cycles all → each effect tag → all.
func nextTag(t pose.Tag) pose.Tag {
	if t == "" {
		return pose.Tags[0]
	}
	for i, v := range pose.Tags {
		if v == t && i+1 < len(pose.Tags) {
			return pose.Tags[i+1]
		}
	}
	return ""
}

// listRows is the number of pose rows that fit, leaving a status line.
func (m Model) listRows() int {
	return maxInt(1, m.contentHeight()-1)
}

// renderList renders the pose table and its status line.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	items := m.visible()

	if len(items) == 0 {
		var msg string
		switch {
		case m.loading || (!m.snapshot.Loaded && m.snapshot.LastError == nil):
			msg = m.spinner.View() + " " + styles.MutedText.Render(text(txtLoading, m.lang))
		case m.snapshot.LastError != nil:
			msg = styles.DangerText.Render(text(txtLoadFailed, m.lang)) + "  " +
				styles.MutedText.Render(text(txtRetrying, m.lang))
		default:
			msg = styles.MutedText.Render(text(txtNoPoses, m.lang))
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	rows := m.listRows()
	start := 0
	if m.selectedRow >= rows {
		start = m.selectedRow - rows + 1
	}
	end := minInt(len(items), start+rows)

	lines := make([]string, 0, rows+1)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(items[i], i == m.selectedRow))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderListStatus(len(items)))
	return strings.Join(lines, "\n")
}

// renderRow renders one pose line: name, counterpart name, difficulty and
// tags, plus the effect on wide terminals.
func (m Model) renderRow(rec pose.Record, selected bool) string {
	styles := m.theme.Styles()
	compact := m.width < LayoutCompactWidth
	wide := m.width >= LayoutWideWidth

	bg := NewBgStyle(m.theme.Background)
	nameStyle := styles.Text
	if selected {
		bg = NewBgStyle(m.theme.SelectionBg)
		nameStyle = styles.Selected.Bold(true)
	}

	nameWidth := 24
	if compact {
		nameWidth = 18
	}

	cursor := bg.Spaces(2)
	if selected {
		cursor = bg.Render("▸", styles.AccentText) + bg.Space()
	}

	parts := []string{
		cursor + bg.Render(padRight(truncate(rec.DisplayName(m.lang), nameWidth), nameWidth), nameStyle),
	}
	if !compact {
		other := rec.DisplayName(m.lang.Toggle())
		parts = append(parts, bg.Render(padRight(truncate(other, nameWidth), nameWidth), styles.MutedText))
	}
	parts = append(parts, styles.DifficultyStyle(rec.Difficulty).Render(pose.DifficultyLabel(rec.Difficulty, m.lang)))
	for _, tag := range rec.EffectTags {
		parts = append(parts, styles.TagStyle(tag).Render(pose.TagLabel(tag, m.lang)))
	}
	line := bg.Join(parts, " ")

	if wide {
		if room := m.width - lipgloss.Width(line) - 3; room > 10 {
			line += bg.Spaces(2) + bg.Render(truncate(rec.DisplayEffect(m.lang), room), styles.FaintText)
		}
	}
	return bg.FillLine(line, m.width)
}

// renderListStatus renders the count and paging hint under the table.
func (m Model) renderListStatus(shown int) string {
	styles := m.theme.Styles()
	total := len(m.snapshot.Poses)

	count := fmt.Sprintf("%d", shown)
	if shown != total {
		count = fmt.Sprintf("%d/%d", shown, total)
	}
	parts := []string{styles.MutedText.Render(count)}

	switch {
	case m.loading:
		parts = append(parts, m.spinner.View()+" "+styles.MutedText.Render(text(txtLoading, m.lang)))
	case m.snapshot.HasMore:
		parts = append(parts, styles.AccentText.Render(text(txtMore, m.lang)))
	default:
		parts = append(parts, styles.FaintText.Render(text(txtEnd, m.lang)))
	}
	return " " + strings.Join(parts, "  ")
}

// searchBox renders the search input or the applied query.
func (m Model) searchBox() string {
	styles := m.theme.Styles()
	if m.searching {
		return m.searchInput.View()
	}
	if m.query == "" {
		return styles.FaintText.Render("/ " + text(txtSearch, m.lang))
	}
	return styles.AccentText.Render("/ ") + styles.Text.Render(m.query)
}
