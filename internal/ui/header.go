package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/asana/internal/pose"
)

// renderHeader renders the status bar: logo, session and offline badge.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("asana", styles.Logo)}

	if user := m.displayUser(); user != "" {
		parts = append(parts, bg.Render("●", styles.SuccessText)+bg.Space()+bg.Render(user, styles.Text))
	} else {
		parts = append(parts, bg.Render("○", styles.FaintText)+bg.Space()+bg.Render(text(txtGuest, m.lang), styles.MutedText))
	}

	if m.snapshot.IsOffline() || (m.currentView == ViewDetail && m.detail.fallback) {
		parts = append(parts, styles.WarningText.Bold(true).
			Foreground(lipgloss.Color(m.theme.Surface)).
			Background(lipgloss.Color(m.theme.Warning)).
			Padding(0, 1).
			Render(text(txtOffline, m.lang)))
	}

	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.Render(string(m.lang), styles.FaintText),
			bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the second header line for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	var parts []string
	switch m.currentView {
	case ViewList:
		parts = append(parts,
			m.searchBox(),
			bg.Render(text(txtDifficulty, m.lang)+":", styles.MutedText)+bg.Space()+m.difficultyFilterLabel(),
			bg.Render(text(txtTags, m.lang)+":", styles.MutedText)+bg.Space()+m.tagFilterLabel(),
		)
	case ViewDetail:
		parts = append(parts,
			bg.Render("esc", styles.WarningText)+bg.Space()+bg.Render(m.keys.Escape.Help().Desc, styles.MutedText),
			bg.Render("b", styles.WarningText)+bg.Space()+bg.Render(m.keys.Bookmark.Help().Desc, styles.MutedText),
		)
	case ViewAuth:
		title := text(ternaryKey(m.auth.signup, txtSignup, txtLogin), m.lang)
		parts = append(parts, bg.Render(title, styles.AccentText.Bold(true)))
	}

	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) difficultyFilterLabel() string {
	styles := m.theme.Styles()
	if m.difficulty == "" {
		return styles.Text.Render(text(txtAll, m.lang))
	}
	return styles.DifficultyStyle(m.difficulty).Render(pose.DifficultyLabel(m.difficulty, m.lang))
}

func (m Model) tagFilterLabel() string {
	styles := m.theme.Styles()
	if m.tag == "" {
		return styles.Text.Render(text(txtAll, m.lang))
	}
	return styles.TagStyle(m.tag).Render(pose.TagLabel(m.tag, m.lang))
}

// renderFooter shows the current toast, or the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.toast.visible() {
		return styles.Footer.Width(m.width).Render(m.toastStyle(m.toast.level).Render(m.toast.text))
	}
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys))
}
