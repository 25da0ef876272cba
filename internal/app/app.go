package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/catalog"
	"github.com/five82/asana/internal/config"
	"github.com/five82/asana/internal/fallback"
	"github.com/five82/asana/internal/logger"
	"github.com/five82/asana/internal/pose"
	"github.com/five82/asana/internal/prefs"
	"github.com/five82/asana/internal/session"
	"github.com/five82/asana/internal/state"
	"github.com/five82/asana/internal/ui"
)

// Options configure the asana application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/asana/prefs.toml
	Language   string // overrides prefs and config when set
	// OfflineFilter overrides offline_filter when non-nil.
	OfflineFilter *bool
}

// Components is the wired object graph behind the UI.
type Components struct {
	Config   config.Config
	Logger   *slog.Logger
	Session  *session.Store
	Dataset  *fallback.Dataset
	Service  *catalog.Service
	Store    *state.Store
	Notices  <-chan fallback.Notice
	Theme    string
	Language pose.Language

	closers []func() error
}

// Close releases the dataset index and the log file.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run boots the asana TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	c, err := Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	// Populate the store before the UI starts
	Preload(ctx, c.Store, c.Service, c.Config.PageSize, c.Logger)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Service:   c.Service,
		Store:     c.Store,
		Notices:   c.Notices,
		ThemeName: c.Theme,
		Language:  c.Language,
		PrefsPath: opts.PrefsPath,
		PageSize:  c.Config.PageSize,
		Logger:    c.Logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Build loads configuration and wires every component without starting
// the UI.
func Build(opts Options) (*Components, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.OfflineFilter != nil {
		cfg.OfflineFilter = *opts.OfflineFilter
	}

	c := &Components{Config: cfg, Store: &state.Store{}}

	logOut, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	c.closers = append(c.closers, logOut.Close)
	c.Logger = logger.New(logger.Config{
		Writer: logOut,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
	})

	fail := func(err error) (*Components, error) {
		_ = c.Close()
		return nil, err
	}

	c.Session, err = session.Open(cfg.SessionPath)
	if err != nil {
		return fail(fmt.Errorf("open session: %w", err))
	}

	client, err := api.New(api.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		Session:   c.Session,
		Logger:    c.Logger,
		RateLimit: cfg.RateLimitRPS,
		Burst:     cfg.RateLimitBurst,
	})
	if err != nil {
		return fail(fmt.Errorf("init api client: %w", err))
	}

	c.Dataset, err = fallback.Load(cfg.DatasetPath)
	if err != nil {
		return fail(fmt.Errorf("load bundled poses: %w", err))
	}
	c.closers = append(c.closers, c.Dataset.Close)

	notices, onFallback := ui.NoticeSink(8)
	c.Notices = notices
	resolver := fallback.NewResolver(fallback.Options{
		Dataset:    c.Dataset,
		Logger:     c.Logger,
		OnFallback: onFallback,
		Filter:     cfg.OfflineFilter,
	})

	c.Service, err = catalog.New(catalog.Options{
		Client:   client,
		Resolver: resolver,
		ListPath: cfg.ListPath,
		Logger:   c.Logger,
	})
	if err != nil {
		return fail(fmt.Errorf("init catalog: %w", err))
	}

	// Stored preferences win over config; the flag wins over both
	userPrefs, _ := prefs.Load(opts.PrefsPath)
	theme, lang := userPrefs.Resolve(cfg.Theme, cfg.Language)
	if opts.Language != "" {
		lang = opts.Language
	}
	c.Theme = theme
	c.Language = pose.ParseLanguage(lang)

	c.Logger.Info("asana starting",
		slog.String("api", cfg.APIBaseURL),
		slog.Int("bundled_poses", c.Dataset.Len()),
		slog.Bool("offline_filter", cfg.OfflineFilter),
		slog.Bool("logged_in", c.Session.LoggedIn()))
	return c, nil
}
