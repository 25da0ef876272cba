package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/session"
)

// Server messages for bookmark changes.
const (
	MessageBookmarked        = "newly bookmarked"
	MessageAlreadyBookmarked = "already bookmarked"
	MessageRemoved           = "bookmark removed"
	MessageNotBookmarked     = "not bookmarked"
)

// Bookmark is one saved pose.
type Bookmark struct {
	ItemID int
}

// Bookmarks is the bookmark resource. Every call needs a session.
type Bookmarks struct {
	client  *api.Client
	session *session.Store
}

type bookmarkList struct {
	ItemIDs []flexInt `json:"item_ids"`
}

type bookmarkMessage struct {
	Message string `json:"message"`
}

// List returns the saved poses.
func (b *Bookmarks) List(ctx context.Context) ([]Bookmark, error) {
	if !b.session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	res, err := b.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/bookmarks"})
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	var body bookmarkList
	if err := res.Decode(&body); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	out := make([]Bookmark, 0, len(body.ItemIDs))
	for _, id := range body.ItemIDs {
		out = append(out, Bookmark{ItemID: int(id)})
	}
	return out, nil
}

// Contains reports whether id is bookmarked.
func (b *Bookmarks) Contains(ctx context.Context, id int) (bool, error) {
	list, err := b.List(ctx)
	if err != nil {
		return false, err
	}
	for _, bm := range list {
		if bm.ItemID == id {
			return true, nil
		}
	}
	return false, nil
}

// Add bookmarks id and returns the server message.
func (b *Bookmarks) Add(ctx context.Context, id int) (string, error) {
	msg, err := b.change(ctx, http.MethodPost, id)
	if err != nil {
		return "", fmt.Errorf("add bookmark %d: %w", id, err)
	}
	return msg, nil
}

// Remove drops the bookmark on id and returns the server message.
func (b *Bookmarks) Remove(ctx context.Context, id int) (string, error) {
	msg, err := b.change(ctx, http.MethodDelete, id)
	if err != nil {
		return "", fmt.Errorf("remove bookmark %d: %w", id, err)
	}
	return msg, nil
}

// Toggle flips the bookmark on id given its current state and returns the
// new state.
func (b *Bookmarks) Toggle(ctx context.Context, id int, bookmarked bool) (bool, error) {
	if bookmarked {
		if _, err := b.Remove(ctx, id); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := b.Add(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Bookmarks) change(ctx context.Context, method string, id int) (string, error) {
	if !b.session.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	res, err := b.client.Do(ctx, api.Request{Method: method, Path: "/bookmarks/" + strconv.Itoa(id)})
	if err != nil {
		return "", err
	}
	if !res.JSON {
		return "", nil
	}
	var body bookmarkMessage
	if err := res.Decode(&body); err != nil {
		return "", err
	}
	return body.Message, nil
}
