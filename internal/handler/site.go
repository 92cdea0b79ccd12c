// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the public site, its read-only JSON API and the
// health endpoints.
package handler

import (
	"net/http"

	"github.com/sakshamfoundation/saksham-web/internal/render"
	"github.com/sakshamfoundation/saksham-web/internal/router"
	"github.com/sakshamfoundation/saksham-web/internal/service"
)

// Route names. Each GET route renders the page template of the same name.
const (
	RouteHome      = "home"
	RouteStory     = "story"
	RouteTeam      = "team"
	RouteSchools   = "schools"
	RouteMap       = "map"
	RouteSchool    = "school"
	RouteDashboard = "dashboard"
	RouteEvents    = "events"
	RouteBlog      = "blog"
	RouteNGO       = "ngo"
	RouteCSR       = "csr"
	RouteImpact    = "impact"
	RouteDonate    = "donate"
	RouteContact   = "contact"
)

// siteRoutes declares every public page in declaration order. The table is
// built once and never changes.
var siteRoutes = []router.Route[string]{
	{Pattern: "/", Name: RouteHome},
	{Pattern: "/about/story", Name: RouteStory},
	{Pattern: "/about/team", Name: RouteTeam},
	{Pattern: "/schools/:status", Name: RouteSchools},
	{Pattern: "/schools/map", Name: RouteMap},
	{Pattern: "/school/:projectCode", Name: RouteSchool},
	{Pattern: "/dashboard", Name: RouteDashboard},
	{Pattern: "/events", Name: RouteEvents},
	{Pattern: "/blog/:slug", Name: RouteBlog},
	{Pattern: "/partner/ngo", Name: RouteNGO},
	{Pattern: "/partner/csr", Name: RouteCSR},
	{Pattern: "/impact", Name: RouteImpact},
	{Pattern: "/donate", Name: RouteDonate},
	{Pattern: "/contact", Name: RouteContact},
}

// RouteTable returns the site's route declarations with each route's name as
// its content.
func RouteTable() *router.Table[string] {
	routes := make([]router.Route[string], len(siteRoutes))
	for i, r := range siteRoutes {
		routes[i] = router.Route[string]{Pattern: r.Pattern, Name: r.Name, Content: r.Name}
	}
	return router.NewTable(routes...)
}

// Recorder receives site traffic counters. *metrics.Metrics implements it.
type Recorder interface {
	RecordPageView(route string)
	RecordNotFound()
	RecordNavigation(route string)
	RecordFormSubmission(form, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordPageView(string)               {}
func (nopRecorder) RecordNotFound()                     {}
func (nopRecorder) RecordNavigation(string)             {}
func (nopRecorder) RecordFormSubmission(string, string) {}

// page is the content of a site route.
type page struct {
	get  http.HandlerFunc
	post http.HandlerFunc
}

// SiteHandler renders the public pages. Every request gets its own Router
// bound to the request; the route table decides which page is active.
type SiteHandler struct {
	renderer *render.Renderer
	site     *service.SiteService
	forms    *service.FormService
	metrics  Recorder
	routes   *router.Table[page]
}

// NewSiteHandler creates the site handler. metrics may be nil.
func NewSiteHandler(renderer *render.Renderer, site *service.SiteService, forms *service.FormService, metrics Recorder) *SiteHandler {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	h := &SiteHandler{
		renderer: renderer,
		site:     site,
		forms:    forms,
		metrics:  metrics,
	}

	pages := map[string]page{
		RouteHome:      {get: h.home},
		RouteStory:     {get: h.static(RouteStory, "Our Story & Vision", "How an IIM Bangalore initiative set out to rebuild government schools")},
		RouteTeam:      {get: h.team},
		RouteSchools:   {get: h.schools},
		RouteMap:       {get: h.schoolMap},
		RouteSchool:    {get: h.school},
		RouteDashboard: {get: h.dashboard},
		RouteEvents:    {get: h.events},
		RouteBlog:      {get: h.blogPost},
		RouteNGO:       {get: h.static(RouteNGO, "NGO Partnership", "Register your NGO as an implementation partner"), post: h.submitNGO},
		RouteCSR:       {get: h.csr, post: h.submitCSR},
		RouteImpact:    {get: h.impact},
		RouteDonate:    {get: h.donate, post: h.submitDonation},
		RouteContact:   {get: h.static(RouteContact, "Contact Us", "Get in touch with the Saksham team"), post: h.submitContact},
	}

	routes := make([]router.Route[page], len(siteRoutes))
	for i, r := range siteRoutes {
		routes[i] = router.Route[page]{Pattern: r.Pattern, Name: r.Name, Content: pages[r.Name]}
	}
	h.routes = router.NewTable(routes...)
	return h
}

// ServeHTTP resolves the request path and runs the active page. A page that
// navigates during a POST is answered with 303 See Other to the new path.
func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	history := router.NewRequestHistory(r)
	rt := router.New(history)
	defer rt.Close()

	resolved, ok := h.routes.Resolve(rt.Current())
	if !ok {
		h.notFound(w, r)
		return
	}

	ctx := router.WithParam(router.WithRouter(r.Context(), rt), resolved.Param)
	r = r.WithContext(ctx)
	route := resolved.Route

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.metrics.RecordPageView(route.Pattern)
		route.Content.get(w, r)
	case http.MethodPost:
		if route.Content.post == nil {
			methodNotAllowed(w, route.Content)
			return
		}
		route.Content.post(w, r)
	default:
		methodNotAllowed(w, route.Content)
		return
	}

	if target, ok := history.Target(); ok {
		h.metrics.RecordNavigation(route.Pattern)
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func methodNotAllowed(w http.ResponseWriter, p page) {
	allow := "GET, HEAD"
	if p.post != nil {
		allow += ", POST"
	}
	w.Header().Set("Allow", allow)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
