// Package app is the composition root for asana.
//
// # Overview
//
// Build turns configuration into a wired object graph, and Run starts the
// TUI on top of it. Nothing here holds domain logic; every piece lives in
// its own package and is connected here.
//
// # Initialization
//
//  1. Load .env into the process environment (existing variables win)
//  2. Load ~/.config/asana/config.toml and apply ASANA_* overrides
//  3. Open the log file and build the slog logger
//  4. Open the session file shared by the API client and the catalog
//  5. Build the rate limited API client
//  6. Load the bundled pose dataset (or dataset_path) and its resolver
//  7. Build the catalog facade
//  8. Resolve theme and language: -lang flag, then prefs, then config
//  9. Preload the first page into state.Store, then run the UI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Build()           config, logger, session, client,
//	       │                         dataset, resolver, catalog
//	       ├─────> Preload()         first page into state.Store
//	       └─────> ui.Run()          TUI (blocks)
//
//	Fallback notices:
//	  resolver.OnFallback ──> ui.NoticeSink channel ──> toast
//
// # Error Handling
//
// Fatal errors (returned from Build / Run):
//   - Invalid config file or values
//   - Unwritable log file or unreadable session file
//   - Unreadable or unrecognized dataset_path
//
// Recoverable errors (logged, shown in the UI):
//   - API failures during preload or later loads
//   - Preference save failures
//
// A cancelled context (SIGINT / SIGTERM) ends the UI and Run returns nil.
//
// # Usage Example
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("asana failed: %v", err)
//	}
package app
