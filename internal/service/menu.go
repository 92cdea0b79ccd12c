// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "strings"

// MenuItem is an entry of the header navigation. Items with children render
// as dropdowns and have no URL of their own.
type MenuItem struct {
	Title    string
	URL      string
	IsActive bool
	Children []MenuItem
}

// siteMenu is the header navigation in display order.
var siteMenu = []MenuItem{
	{Title: "Home", URL: "/"},
	{Title: "About", Children: []MenuItem{
		{Title: "Our Story & Vision", URL: "/about/story"},
		{Title: "Leadership & Team", URL: "/about/team"},
	}},
	{Title: "Projects", Children: []MenuItem{
		{Title: "Completed Projects", URL: "/schools/completed"},
		{Title: "Ongoing Projects", URL: "/schools/ongoing"},
		{Title: "Pipeline Projects", URL: "/schools/pipeline"},
		{Title: "Interactive Map", URL: "/schools/map"},
	}},
	{Title: "Dashboard", URL: "/dashboard"},
	{Title: "Events & Media", URL: "/events"},
	{Title: "Partner with Us", Children: []MenuItem{
		{Title: "Register as NGO", URL: "/partner/ngo"},
		{Title: "Register as Donor/CSR", URL: "/partner/csr"},
	}},
	{Title: "Impact", URL: "/impact"},
	{Title: "Contact", URL: "/contact"},
}

// IsActivePath reports whether a menu link to path should be highlighted
// while current is shown. The root link is active only on the root itself;
// other links are active for their own path and anything below it.
func IsActivePath(current, path string) bool {
	if path == "/" {
		return current == "/"
	}
	return current == path || strings.HasPrefix(current, path+"/")
}

// Menu returns the header navigation with IsActive set for current. A
// dropdown is active when one of its children is.
func Menu(current string) []MenuItem {
	return markActive(siteMenu, current)
}

func markActive(items []MenuItem, current string) []MenuItem {
	out := make([]MenuItem, len(items))
	for i, item := range items {
		out[i] = MenuItem{Title: item.Title, URL: item.URL}
		if len(item.Children) > 0 {
			out[i].Children = markActive(item.Children, current)
			for _, child := range out[i].Children {
				out[i].IsActive = out[i].IsActive || child.IsActive
			}
			continue
		}
		out[i].IsActive = IsActivePath(current, item.URL)
	}
	return out
}
