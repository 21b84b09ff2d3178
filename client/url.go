// Package client talks to a running websearch front end and resolves its
// search endpoint the same way the served page does.
package client

import (
	"fmt"
	"net/url"
	"strings"
)

// searchPath is the endpoint name resolved against the page location.
const searchPath = "search"

// PageContext describes where the page was loaded from.
type PageContext struct {
	// PageURL is the absolute URL the page was served at (window.location.href).
	PageURL string
	// ProxyBasePath mirrors window.__PROXY_BASE_PATH__.
	ProxyBasePath string
	// BaseHref mirrors the href of a <base> element, if any.
	BaseHref string
}

// ResolveSearchURL applies the page's endpoint rules in priority order:
// the proxy base marker is concatenated with "search" and returned as is;
// otherwise "search" is resolved against the base href (itself resolved
// against the page origin); otherwise against the page URL with a trailing
// slash.
func ResolveSearchURL(pc PageContext) (string, error) {
	if pc.ProxyBasePath != "" {
		return pc.ProxyBasePath + searchPath, nil
	}

	page, err := url.Parse(pc.PageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL %q: %w", pc.PageURL, err)
	}
	if !page.IsAbs() {
		return "", fmt.Errorf("page URL %q must be absolute", pc.PageURL)
	}
	rel := &url.URL{Path: searchPath}

	if pc.BaseHref != "" {
		origin := &url.URL{Scheme: page.Scheme, Host: page.Host, Path: "/"}
		base, err := url.Parse(pc.BaseHref)
		if err != nil {
			return "", fmt.Errorf("parsing base href %q: %w", pc.BaseHref, err)
		}
		return origin.ResolveReference(base).ResolveReference(rel).String(), nil
	}

	href := pc.PageURL
	if !strings.HasSuffix(href, "/") {
		href += "/"
	}
	base, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing page URL %q: %w", href, err)
	}
	return base.ResolveReference(rel).String(), nil
}

// absolute turns a possibly relative endpoint into a request URL by resolving
// it against the page URL.
func absolute(endpoint, pageURL string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL %q: %w", pageURL, err)
	}
	return page.ResolveReference(ref).String(), nil
}
