package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/logger"
	"github.com/five82/asana/internal/pose"
)

// Resource names used in notices.
const (
	ResourceList = "list"
	ResourcePose = "pose"
)

// Notice describes one substitution of bundled data for a failed call.
type Notice struct {
	Resource string
	Kind     api.Kind
	Cause    error
}

// Message returns the user-facing text for the notice.
func (n Notice) Message(lang pose.Language) string {
	if lang == pose.LangEN {
		return "Offline data in use, some features may be limited"
	}
	return "當前使用離線數據，部分功能可能受限"
}

// Query is the view a list call asked for. A zero Limit asks for every
// record.
type Query struct {
	Search     string
	Difficulty pose.Difficulty
	Page       int
	Limit      int
}

// Slice is a page of records with its origin.
type Slice struct {
	Records  []pose.Record
	HasMore  bool
	Fallback bool
}

// Options configures a Resolver.
type Options struct {
	Dataset *Dataset
	Logger  *slog.Logger
	// OnFallback is called after bundled data replaced a failed call.
	OnFallback func(Notice)
	// Filter applies the query's search and difficulty to bundled data.
	Filter bool
}

// Resolver substitutes bundled data for failed facade calls.
type Resolver struct {
	dataset    *Dataset
	logger     *slog.Logger
	onFallback func(Notice)
	filter     bool
}

// NewResolver returns a resolver over opts.Dataset. A nil or empty dataset
// disables substitution.
func NewResolver(opts Options) *Resolver {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{
		dataset:    opts.Dataset,
		logger:     log,
		onFallback: opts.OnFallback,
		filter:     opts.Filter,
	}
}

// Dataset returns the bundled dataset, possibly nil.
func (r *Resolver) Dataset() *Dataset {
	return r.dataset
}

// Eligible reports whether err may be answered from bundled data.
func Eligible(err error) bool {
	switch api.KindOf(err) {
	case api.KindTimeout, api.KindNetwork, api.KindInjected, api.KindDecode, api.KindNotFound:
		return true
	default:
		return false
	}
}

// List runs fetch and, on an eligible failure, answers q from the dataset.
func (r *Resolver) List(ctx context.Context, q Query, fetch func(context.Context) ([]pose.Record, error)) (Slice, error) {
	records, err := fetch(ctx)
	if err == nil {
		return Slice{
			Records: records,
			HasMore: q.Limit > 0 && len(records) >= q.Limit,
		}, nil
	}
	if !r.usable(ctx, err) {
		return Slice{}, err
	}

	all := r.dataset.Records()
	if r.filter {
		matched, searchErr := r.dataset.Search(ctx, q.Search)
		if searchErr != nil {
			return Slice{}, fmt.Errorf("filter bundled poses: %w", searchErr)
		}
		all = matched
		all = pose.FilterByDifficulty(all, q.Difficulty)
	}
	page, hasMore := slicePage(all, q.Page, q.Limit)

	r.notify(Notice{Resource: ResourceList, Kind: api.KindOf(err), Cause: err})
	return Slice{Records: page, HasMore: hasMore, Fallback: true}, nil
}

// Get runs fetch and, on an eligible failure, looks id up in the dataset.
// A miss returns ErrNotFound wrapping the original failure.
func (r *Resolver) Get(ctx context.Context, id int, fetch func(context.Context) (pose.Record, error)) (pose.Record, bool, error) {
	rec, err := fetch(ctx)
	if err == nil {
		return rec, false, nil
	}
	if !r.usable(ctx, err) {
		return pose.Record{}, false, err
	}

	rec, ok := r.dataset.Find(id)
	if !ok {
		return pose.Record{}, false, api.NewError(api.KindNotFound, fmt.Sprintf("pose %d not found", id)).WithCause(err)
	}
	r.notify(Notice{Resource: ResourcePose, Kind: api.KindOf(err), Cause: err})
	return rec, true, nil
}

func (r *Resolver) usable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	return Eligible(err) && r.dataset.Len() > 0
}

func (r *Resolver) notify(n Notice) {
	r.logger.Warn("using bundled poses",
		slog.String("resource", n.Resource),
		slog.String("kind", string(n.Kind)),
		slog.Any("error", n.Cause))
	if r.onFallback != nil {
		r.onFallback(n)
	}
}

// slicePage returns page (1-based) of size limit. A non-positive limit
// returns every record.
func slicePage(records []pose.Record, page, limit int) ([]pose.Record, bool) {
	if limit <= 0 {
		return records, false
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(records) {
		return []pose.Record{}, false
	}
	end := min(start+limit, len(records))
	return records[start:end], end < len(records)
}
