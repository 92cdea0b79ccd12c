// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/render"
	"github.com/sakshamfoundation/saksham-web/internal/router"
	"github.com/sakshamfoundation/saksham-web/internal/service"
	"github.com/sakshamfoundation/saksham-web/internal/store"
)

// dashboardRefreshSeconds is how often the dashboard reloads itself.
const dashboardRefreshSeconds = 300

// static returns a handler for a page without data.
func (h *SiteHandler) static(name, title, description string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, name, render.TemplateData{Title: title, Description: description})
	}
}

func (h *SiteHandler) home(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Home(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load home page", err)
		return
	}
	h.render(w, r, RouteHome, render.TemplateData{
		Description: "Revitalizing government schools across Karnataka",
		Data:        data,
	})
}

func (h *SiteHandler) team(w http.ResponseWriter, r *http.Request) {
	sections, err := h.site.Team(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load team", err)
		return
	}
	h.render(w, r, RouteTeam, render.TemplateData{Title: "Leadership & Team", Data: sections})
}

// schools lists schools of the status named by the route parameter. An
// unknown status is a missing page.
func (h *SiteHandler) schools(w http.ResponseWriter, r *http.Request) {
	status := router.Param(r.Context())
	data, err := h.site.SchoolsByStatus(r.Context(), status, r.URL.Query().Get("district"))
	if errors.Is(err, service.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to list schools", err)
		return
	}
	h.render(w, r, RouteSchools, render.TemplateData{
		Title:       data.Title,
		Description: data.Description,
		Data:        data,
	})
}

func (h *SiteHandler) schoolMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.site.Map(r.Context(), q.Get("state"), q.Get("district"))
	if err != nil {
		h.serverError(w, r, "failed to load map", err)
		return
	}
	h.render(w, r, RouteMap, render.TemplateData{Title: "Interactive Map", Data: data})
}

func (h *SiteHandler) school(w http.ResponseWriter, r *http.Request) {
	code := router.Param(r.Context())
	data, err := h.site.SchoolDetail(r.Context(), code)
	if errors.Is(err, service.ErrNotFound) {
		h.missing(w, r, "School not found", backLink{Href: "/schools/" + model.SchoolStatusCompleted, Label: "Back to Schools"})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to load school", err)
		return
	}
	h.render(w, r, RouteSchool, render.TemplateData{
		Title:       data.School.Name,
		Description: data.School.District + ", " + data.School.State,
		Data:        data,
	})
}

func (h *SiteHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Dashboard(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load dashboard", err)
		return
	}
	h.render(w, r, RouteDashboard, render.TemplateData{
		Title:   "Project Dashboard",
		Data:    data,
		Refresh: dashboardRefreshSeconds,
	})
}

func (h *SiteHandler) events(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Events(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load events", err)
		return
	}
	h.render(w, r, RouteEvents, render.TemplateData{Title: "Events & Media", Data: data})
}

func (h *SiteHandler) blogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.site.BlogPost(r.Context(), router.Param(r.Context()))
	if errors.Is(err, service.ErrNotFound) {
		h.missing(w, r, "Post not found", backLink{Href: "/events", Label: "Back to Events & Media"})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to load post", err)
		return
	}
	h.render(w, r, RouteBlog, render.TemplateData{
		Title:       post.Title,
		Description: post.Excerpt.String,
		Data:        post,
	})
}

func (h *SiteHandler) impact(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Impact(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load impact", err)
		return
	}
	h.render(w, r, RouteImpact, render.TemplateData{Title: "Our Impact", Data: data})
}

func (h *SiteHandler) csr(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, RouteCSR, render.TemplateData{
		Title:       "CSR Partnership",
		Description: "Partner with Saksham through CSR investments in education",
		Data:        model.CSRBudgetRanges,
	})
}

// donatePage is the data behind the donation form.
type donatePage struct {
	Schools   []store.School
	Causes    []model.Cause
	Amounts   []int
	MinAmount int
	// Selected is the school preselected by ?school=.
	Selected string
}

func (h *SiteHandler) donate(w http.ResponseWriter, r *http.Request) {
	schools, err := h.site.DonatableSchools(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load donatable schools", err)
		return
	}
	h.render(w, r, RouteDonate, render.TemplateData{
		Title:       "Donate",
		Description: "Support a school, a cause or the general fund",
		Data: donatePage{
			Schools:   schools,
			Causes:    model.Causes(),
			Amounts:   model.PredefinedAmounts,
			MinAmount: service.MinDonationAmount,
			Selected:  r.URL.Query().Get("school"),
		},
	})
}
