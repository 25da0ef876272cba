package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/asana/internal/catalog"
	"github.com/five82/asana/internal/state"
)

// preloadTimeout bounds the startup load.
const preloadTimeout = 15 * time.Second

// Preload fetches the first page into the store before the UI starts.
// Failures are recorded in the store and logged.
func Preload(ctx context.Context, store *state.Store, svc *catalog.Service, pageSize int, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, preloadTimeout)
	defer cancel()

	list, err := svc.Poses.List(ctx, catalog.ListParams{Page: 1, Limit: pageSize})
	store.Replace(state.Page{
		Poses:    list.Poses,
		Page:     1,
		HasMore:  list.HasMore,
		Fallback: list.Fallback,
	}, err)
	if err != nil {
		logger.Warn("initial pose load failed", slog.Any("error", err))
	}
}
