// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"

	"github.com/sakshamfoundation/saksham-web/internal/render"
	"github.com/sakshamfoundation/saksham-web/internal/service"
	"github.com/sakshamfoundation/saksham-web/internal/testutil"
	"github.com/sakshamfoundation/saksham-web/web"
)

// recorder counts metric calls.
type recorder struct {
	mu          sync.Mutex
	views       []string
	notFound    int
	navigations []string
	forms       []string
}

func (r *recorder) RecordPageView(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, route)
}

func (r *recorder) RecordNotFound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound++
}

func (r *recorder) RecordNavigation(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigations = append(r.navigations, route)
}

func (r *recorder) RecordFormSubmission(form, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms = append(r.forms, form+":"+outcome)
}

type testSite struct {
	db      *sql.DB
	handler http.Handler
	metrics *recorder
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	db := testutil.TestSeededDB(t)
	sm := scs.New()

	sub, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: sub, SessionManager: sm})
	require.NoError(t, err)

	rec := &recorder{}
	h := NewSiteHandler(renderer, service.NewSiteService(db), service.NewFormService(db, nil), rec)
	return &testSite{db: db, handler: sm.LoadAndSave(h), metrics: rec}
}

func (s *testSite) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testSite) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// follow posts a form and returns the page the browser lands on.
func (s *testSite) follow(t *testing.T, target string, form url.Values) string {
	t.Helper()
	w := s.post(t, target, form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	return s.get(t, w.Header().Get("Location"), w.Result().Cookies()...).Body.String()
}
