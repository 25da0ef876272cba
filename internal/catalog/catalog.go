package catalog

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/fallback"
	"github.com/five82/asana/internal/logger"
	"github.com/five82/asana/internal/session"
)

// DefaultListPath is the pose collection path on current servers.
const DefaultListPath = "/yoga-actions"

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// Options configures a Service.
type Options struct {
	Client *api.Client
	// Resolver supplies bundled data for failed pose calls. Nil disables
	// fallback.
	Resolver *fallback.Resolver
	ListPath string
	Logger   *slog.Logger
}

// Service groups the resource facades over one client.
type Service struct {
	Poses     *Poses
	Auth      *Auth
	Bookmarks *Bookmarks
}

// New builds the facades.
func New(opts Options) (*Service, error) {
	if opts.Client == nil {
		return nil, errors.New("catalog: client is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = fallback.NewResolver(fallback.Options{Logger: log})
	}
	listPath := "/" + strings.Trim(strings.TrimSpace(opts.ListPath), "/")
	if listPath == "/" {
		listPath = DefaultListPath
	}

	sess := opts.Client.Session()
	return &Service{
		Poses: &Poses{
			client:   opts.Client,
			resolver: resolver,
			listPath: listPath,
			logger:   log,
		},
		Auth: &Auth{
			client:    opts.Client,
			session:   sess,
			validator: newValidator(),
			logger:    log,
		},
		Bookmarks: &Bookmarks{
			client:  opts.Client,
			session: sess,
		},
	}, nil
}

// Session returns the session store shared by every facade.
func (s *Service) Session() *session.Store {
	return s.Auth.session
}
