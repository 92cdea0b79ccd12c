// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/seo"
	"github.com/sakshamfoundation/saksham-web/internal/service"
)

// crawlerDisallow keeps machine endpoints out of search indexes.
var crawlerDisallow = []string{"/api/", "/health", "/metrics"}

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	site        *service.SiteService
	siteURL     string
	disallowAll bool
}

// NewSEOHandler creates the handler. With disallowAll set, robots.txt asks
// crawlers to stay away entirely.
func NewSEOHandler(site *service.SiteService, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{site: site, siteURL: siteURL, disallowAll: disallowAll}
}

// Sitemap lists every fixed page, each status listing, every school and every post.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.siteURL)
	for _, route := range RouteTable().Routes() {
		if !route.IsParameterized() {
			b.AddPath(route.Pattern)
		}
	}
	for _, status := range model.SchoolStatuses() {
		b.AddPath("/schools/" + status)
	}

	schools, err := h.site.Schools(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list schools for sitemap", "error", err)
		return
	}
	for _, s := range schools {
		b.AddSchool(seo.SitemapSchool{ProjectCode: s.ProjectCode, UpdatedAt: s.UpdatedAt})
	}

	posts, err := h.site.Posts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list posts for sitemap", "error", err)
		return
	}
	for _, p := range posts {
		b.AddPost(seo.SitemapPost{Slug: p.Slug, PublishedAt: p.PublishedAt})
	}

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write(out); err != nil {
		slog.Debug("sitemap write failed", "error", err)
	}
}

// Robots serves robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:       h.siteURL,
		DisallowAll:   h.disallowAll,
		DisallowPaths: crawlerDisallow,
	}).Build()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
