// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing documents: sitemap.xml and robots.txt.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapSchool is a school detail page.
type SitemapSchool struct {
	ProjectCode string
	UpdatedAt   time.Time
}

// SitemapPost is a blog post.
type SitemapPost struct {
	Slug        string
	PublishedAt time.Time
}

// SitemapBuilder collects the site's crawlable URLs.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for absolute URLs under siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddPath adds a fixed page. The home page gets top priority.
func (b *SitemapBuilder) AddPath(path string) {
	u := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if path == "/" {
		u.ChangeFreq = ChangeFreqDaily
		u.Priority = "1.0"
	}
	b.urls = append(b.urls, u)
}

// AddSchool adds a school detail page.
func (b *SitemapBuilder) AddSchool(s SitemapSchool) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/school/" + s.ProjectCode,
		LastMod:    lastMod(s.UpdatedAt),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.7",
	})
}

// AddPost adds a blog post.
func (b *SitemapBuilder) AddPost(p SitemapPost) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/blog/" + p.Slug,
		LastMod:    lastMod(p.PublishedAt),
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	})
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
