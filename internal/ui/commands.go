package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/asana/internal/catalog"
	"github.com/five82/asana/internal/fallback"
	"github.com/five82/asana/internal/pose"
	"github.com/five82/asana/internal/state"
)

// Messages

type posesLoadedMsg struct {
	snapshot state.Snapshot
	err      error
}

type poseLoadedMsg struct {
	id     int
	detail catalog.PoseDetail
	err    error
}

type bookmarkStateMsg struct {
	id         int
	bookmarked bool
	err        error
}

type bookmarkToggledMsg struct {
	id         int
	bookmarked bool
	err        error
}

type authCheckedMsg struct {
	status catalog.AuthStatus
	err    error
}

type authDoneMsg struct {
	signup bool
	result catalog.AuthResult
	err    error
}

type noticeMsg fallback.Notice

type toastExpiredMsg struct {
	id int
}

// Commands

// loadPosesCmd fetches one page into the store. appendPage adds it after
// the current list instead of replacing it.
func loadPosesCmd(ctx context.Context, svc *catalog.Service, store *state.Store, params catalog.ListParams, appendPage bool) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.Poses.List(ctx, params)
		page := state.Page{
			Poses:    list.Poses,
			Page:     params.Page,
			HasMore:  list.HasMore,
			Fallback: list.Fallback,
		}
		if appendPage {
			store.Append(page, err)
		} else {
			store.Replace(page, err)
		}
		return posesLoadedMsg{snapshot: store.Snapshot(), err: err}
	}
}

func getPoseCmd(ctx context.Context, svc *catalog.Service, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := svc.Poses.Get(ctx, id)
		return poseLoadedMsg{id: id, detail: detail, err: err}
	}
}

func bookmarkStateCmd(ctx context.Context, svc *catalog.Service, id int) tea.Cmd {
	return func() tea.Msg {
		ok, err := svc.Bookmarks.Contains(ctx, id)
		return bookmarkStateMsg{id: id, bookmarked: ok, err: err}
	}
}

func toggleBookmarkCmd(ctx context.Context, svc *catalog.Service, id int, bookmarked bool) tea.Cmd {
	return func() tea.Msg {
		now, err := svc.Bookmarks.Toggle(ctx, id, bookmarked)
		return bookmarkToggledMsg{id: id, bookmarked: now, err: err}
	}
}

func checkAuthCmd(ctx context.Context, svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		status, err := svc.Auth.CheckAuth(ctx)
		return authCheckedMsg{status: status, err: err}
	}
}

func loginCmd(ctx context.Context, svc *catalog.Service, c catalog.Credentials) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Auth.Login(ctx, c)
		return authDoneMsg{result: res, err: err}
	}
}

func signupCmd(ctx context.Context, svc *catalog.Service, r catalog.Registration) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Auth.Signup(ctx, r)
		return authDoneMsg{signup: true, result: res, err: err}
	}
}

// waitNoticeCmd waits for the next fallback notice. A nil channel never
// delivers.
func waitNoticeCmd(ch <-chan fallback.Notice) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

// NoticeSink returns a buffered channel and a callback suitable for
// fallback.Options.OnFallback. Notices are dropped when the buffer is full.
func NoticeSink(size int) (<-chan fallback.Notice, func(fallback.Notice)) {
	if size <= 0 {
		size = 1
	}
	ch := make(chan fallback.Notice, size)
	return ch, func(n fallback.Notice) {
		select {
		case ch <- n:
		default:
		}
	}
}

// visiblePoses applies the local effect tag filter.
func visiblePoses(records []pose.Record, tag pose.Tag) []pose.Record {
	return pose.FilterByTag(records, tag)
}
