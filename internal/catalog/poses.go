package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/fallback"
	"github.com/five82/asana/internal/pose"
)

// ListParams filters and pages a pose list. Zero values are not sent. A
// zero Limit asks for the whole collection.
type ListParams struct {
	Search     string
	Difficulty pose.Difficulty
	Page       int
	Limit      int
}

// Values encodes the params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Difficulty != "" {
		v.Set("difficulty", string(p.Difficulty))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// PoseList is one page of poses.
type PoseList struct {
	Poses    []pose.Record
	Page     int
	Limit    int
	HasMore  bool
	Fallback bool
}

// PoseDetail is a single pose.
type PoseDetail struct {
	Pose     pose.Record
	Fallback bool
}

// Poses is the pose resource.
type Poses struct {
	client   *api.Client
	resolver *fallback.Resolver
	listPath string
	logger   *slog.Logger
}

// ListPath returns the collection path in use.
func (p *Poses) ListPath() string {
	return p.listPath
}

// List fetches a page of poses, substituting bundled data when the API is
// unreachable.
func (p *Poses) List(ctx context.Context, params ListParams) (PoseList, error) {
	q := fallback.Query{
		Search:     params.Search,
		Difficulty: params.Difficulty,
		Page:       params.Page,
		Limit:      params.Limit,
	}
	slice, err := p.resolver.List(ctx, q, func(ctx context.Context) ([]pose.Record, error) {
		return p.fetchList(ctx, params)
	})
	if err != nil {
		return PoseList{}, fmt.Errorf("list poses: %w", err)
	}
	return PoseList{
		Poses:    slice.Records,
		Page:     params.Page,
		Limit:    params.Limit,
		HasMore:  slice.HasMore,
		Fallback: slice.Fallback,
	}, nil
}

// Get fetches one pose by id, substituting bundled data when the API is
// unreachable.
func (p *Poses) Get(ctx context.Context, id int) (PoseDetail, error) {
	rec, used, err := p.resolver.Get(ctx, id, func(ctx context.Context) (pose.Record, error) {
		return p.fetchOne(ctx, id)
	})
	if err != nil {
		return PoseDetail{}, fmt.Errorf("get pose %d: %w", id, err)
	}
	return PoseDetail{Pose: rec, Fallback: used}, nil
}

func (p *Poses) fetchList(ctx context.Context, params ListParams) ([]pose.Record, error) {
	res, err := p.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   p.listPath,
		Query:  params.Values(),
	})
	if err != nil {
		return nil, err
	}
	if !res.JSON {
		return nil, api.NewError(api.KindDecode, "pose list is not JSON")
	}

	raws, shape, ok := pose.ExtractList(res.Body)
	if !ok {
		p.logger.Warn("unrecognized pose list shape", slog.Int("bytes", len(res.Body)))
	} else {
		p.logger.Debug("pose list", slog.String("shape", shape), slog.Int("count", len(raws)))
	}
	return pose.NormalizeAll(raws), nil
}

func (p *Poses) fetchOne(ctx context.Context, id int) (pose.Record, error) {
	res, err := p.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   p.listPath + "/" + strconv.Itoa(id),
	})
	if err != nil {
		return pose.Record{}, err
	}
	if !res.JSON {
		return pose.Record{}, api.NewError(api.KindDecode, "pose is not JSON")
	}
	raw, ok := pose.ExtractItem(res.Body)
	if !ok {
		return pose.Record{}, api.NewError(api.KindDecode, "unrecognized pose shape")
	}
	rec := pose.Normalize(raw)
	if rec.ID == 0 {
		rec.ID = id
	}
	return rec, nil
}
