// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakshamfoundation/saksham-web/internal/render"
	"github.com/sakshamfoundation/saksham-web/internal/router"
)

// backLink is the call to action on a not-found page.
type backLink struct {
	Href  string
	Label string
}

// flashAndNavigate sets a flash message and navigates the request's router
// to path. ServeHTTP answers the navigation with 303 See Other.
func flashAndNavigate(r *http.Request, renderer *render.Renderer, path, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	router.FromContext(r.Context()).Navigate(path)
}

// flashError sets an error flash message and navigates back to path.
func flashError(r *http.Request, renderer *render.Renderer, path, message string) {
	flashAndNavigate(r, renderer, path, message, render.FlashError)
}

// flashSuccess sets a success flash message and navigates back to path.
func flashSuccess(r *http.Request, renderer *render.Renderer, path, message string) {
	flashAndNavigate(r, renderer, path, message, render.FlashSuccess)
}

// parseFormOrNavigate parses the request form and flashes an error on failure.
// Returns true if parsing succeeded.
func parseFormOrNavigate(r *http.Request, renderer *render.Renderer, path string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(r, renderer, path, "Invalid form data")
		return false
	}
	return true
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// render renders a template, falling back to a plain 500 if rendering fails.
func (h *SiteHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	h.renderStatus(w, r, http.StatusOK, name, data)
}

func (h *SiteHandler) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := h.renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render page", "template", name, "error", err)
	}
}

// notFound renders the not-found page with status 404.
func (h *SiteHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordNotFound()
	h.renderStatus(w, r, http.StatusNotFound, "notfound", render.TemplateData{Title: "Page not found"})
}

// missing renders the not-found page for a record that does not exist.
func (h *SiteHandler) missing(w http.ResponseWriter, r *http.Request, title string, back backLink) {
	h.metrics.RecordNotFound()
	h.renderStatus(w, r, http.StatusNotFound, "notfound", render.TemplateData{
		Title: title,
		Data:  back,
	})
}

// serverError logs err and renders the error page with status 500.
func (h *SiteHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path)
	h.renderStatus(w, r, http.StatusInternalServerError, "error", render.TemplateData{Title: "Something went wrong"})
}
