package exporter

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	routeGroupPosts = "posts"
	routePostDetail = "detail"
	routeTagDetail  = "tag"
)

// Permalinks builds absolute URLs for posts and tag pages against the
// configured base URL.
type Permalinks struct {
	base  string
	group *urlkit.Group
}

// NewPermalinks wires the route group every artifact links through.
func NewPermalinks(baseURL string) (*Permalinks, error) {
	base := normalizeBaseURL(baseURL)

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroupPosts,
				BaseURL: base,
				Paths: map[string]string{
					routePostDetail: "/posts/:slug",
					routeTagDetail:  "/tags/:tag",
				},
			},
		},
	})

	group, err := lookupGroup(manager, routeGroupPosts)
	if err != nil {
		return nil, err
	}
	return &Permalinks{base: base, group: group}, nil
}

// Base returns the normalized base URL.
func (p *Permalinks) Base() string {
	return p.base
}

// Post returns the permalink of a post detail page.
func (p *Permalinks) Post(slug string) (string, error) {
	return p.build(routePostDetail, "slug", slug)
}

// Tag returns the permalink of a tag listing page.
func (p *Permalinks) Tag(tag string) (string, error) {
	return p.build(routeTagDetail, "tag", tag)
}

func (p *Permalinks) build(route, param, value string) (string, error) {
	builder, err := safeBuilder(p.group, route)
	if err != nil {
		return "", err
	}
	builder.WithParam(param, value)
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("exporter: build %s url for %q: %w", route, value, err)
	}
	return url, nil
}

func normalizeBaseURL(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("exporter: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("exporter: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("exporter: route group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("exporter: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
