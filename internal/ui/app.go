package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/asana/internal/catalog"
	"github.com/five82/asana/internal/fallback"
	"github.com/five82/asana/internal/logger"
	"github.com/five82/asana/internal/pose"
	"github.com/five82/asana/internal/prefs"
	"github.com/five82/asana/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewAuth
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Service *catalog.Service
	Store   *state.Store
	// Notices delivers fallback notices from the resolver. May be nil.
	Notices   <-chan fallback.Notice
	ThemeName string
	Language  pose.Language
	PrefsPath string
	PageSize  int
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	service   *catalog.Service
	store     *state.Store
	notices   <-chan fallback.Notice
	prefsPath string
	pageSize  int
	logger    *slog.Logger
	keys      keyMap

	// UI state
	theme       Theme
	lang        pose.Language
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	help        help.Model
	spinner     spinner.Model
	toast       toast
	user        string // logged in user, empty for guests

	// List state
	snapshot    state.Snapshot
	selectedRow int
	loading     bool
	searching   bool
	searchInput textinput.Model
	query       string
	difficulty  pose.Difficulty // empty means all
	tag         pose.Tag        // empty means all

	// Detail state
	detail         detailState
	detailViewport viewport.Model

	// Auth state
	auth authForm
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	lang := opts.Language
	if lang == "" {
		lang = pose.LangZH
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Placeholder = text(txtSearchPlaceholder, lang)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		service:     opts.Service,
		store:       store,
		notices:     opts.Notices,
		prefsPath:   prefsPath,
		pageSize:    pageSize,
		logger:      log,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		lang:        lang,
		currentView: ViewList,
		help:        help.New(),
		spinner:     sp,
		searchInput: search,
		snapshot:    store.Snapshot(),
		auth:        newAuthForm(lang),
	}
	if opts.Service != nil {
		m.user = opts.Service.Session().UserID()
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.spinner.Tick,
		waitNoticeCmd(m.notices),
	}
	if m.service != nil {
		cmds = append(cmds, checkAuthCmd(m.ctx, m.service))
		if !m.snapshot.Loaded {
			cmds = append(cmds, loadPosesCmd(m.ctx, m.service, m.store, m.listParams(1), false))
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.help.Width = msg.Width
		m.detailViewport.Width = msg.Width
		m.detailViewport.Height = m.contentHeight()
		m.updateDetailViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case posesLoadedMsg:
		m.loading = false
		m.snapshot = msg.snapshot
		m.clampSelection()
		if msg.err != nil {
			m.logger.Warn("pose list load failed", slog.Any("error", msg.err))
			cmd := m.showToast(toastDanger, text(txtLoadFailed, m.lang))
			return m, cmd
		}
		return m, nil

	case poseLoadedMsg:
		return m.handlePoseLoaded(msg)

	case bookmarkStateMsg:
		if msg.err == nil && m.detail.record.ID == msg.id {
			m.detail.bookmarked = msg.bookmarked
			m.detail.bookmarkKnown = true
			m.updateDetailViewport()
		}
		return m, nil

	case bookmarkToggledMsg:
		return m.handleBookmarkToggled(msg)

	case authCheckedMsg:
		if msg.err == nil {
			m.user = ""
			if msg.status.LoggedIn {
				m.user = msg.status.User
			}
		}
		return m, nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case noticeMsg:
		cmds := []tea.Cmd{
			m.showToast(toastWarning, fallback.Notice(msg).Message(m.lang)),
			waitNoticeCmd(m.notices),
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		if m.toast.id == msg.id {
			m.toast = toast{}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return text(txtLoading, m.lang)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Text entry owns the keyboard
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.currentView == ViewAuth && !m.loggedIn() {
		return m.handleAuthKey(msg)
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit

	case keyMatches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case keyMatches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.updateDetailViewport()
		m.savePrefs()
		return m, nil

	case keyMatches(msg, m.keys.ToggleLanguage):
		m.setLanguage(m.lang.Toggle())
		m.savePrefs()
		return m, nil

	case keyMatches(msg, m.keys.Escape):
		m.currentView = ViewList
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		return m.handleListKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewAuth:
		return m.handleAccountKey(msg)
	}

	return m, nil
}

// setLanguage switches the display language of every view.
func (m *Model) setLanguage(lang pose.Language) {
	m.lang = lang
	m.searchInput.Placeholder = text(txtSearchPlaceholder, lang)
	m.auth.relabel(lang)
	m.updateDetailViewport()
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.searchInput.PromptStyle = styles.AccentText
	m.searchInput.TextStyle = styles.Text
	m.searchInput.PlaceholderStyle = styles.FaintText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	m.auth.style(styles)
}

// savePrefs persists the display choices. Failures only cost persistence.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Language: string(m.lang)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", slog.Any("error", err))
	}
}

// contentHeight is the height left for the active view.
func (m Model) contentHeight() int {
	return maxInt(1, m.height-headerHeight-commandHeight-footerHeight)
}

// listParams builds the request for one page of the current list view.
func (m Model) listParams(page int) catalog.ListParams {
	return catalog.ListParams{
		Search:     m.query,
		Difficulty: m.difficulty,
		Page:       page,
		Limit:      m.pageSize,
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + session
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: filters or search box
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())
	b.WriteString("\n")

	// Footer: toast or key hints
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.renderList()
	case ViewDetail:
		return m.renderDetail()
	case ViewAuth:
		return m.renderAuth()
	default:
		return ""
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
