// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "github.com/mileusna/useragent"

// Client describes the browser that submitted a form.
type Client struct {
	Browser    string
	OS         string
	DeviceType string
}

// String returns the compact form stored with submissions, e.g.
// "mobile/Chrome/Android". The zero Client is "".
func (c Client) String() string {
	if c == (Client{}) {
		return ""
	}
	return c.DeviceType + "/" + c.Browser + "/" + c.OS
}

// ParseClient extracts browser, OS and device class from a User-Agent header.
func ParseClient(uaString string) Client {
	ua := useragent.Parse(uaString)

	c := Client{
		Browser: ua.Name,
		OS:      ua.OS,
	}
	if c.Browser == "" {
		c.Browser = "Unknown"
	}
	if c.OS == "" {
		c.OS = "Unknown"
	}

	switch {
	case ua.Mobile:
		c.DeviceType = "mobile"
	case ua.Tablet:
		c.DeviceType = "tablet"
	case ua.Bot:
		c.DeviceType = "bot"
	default:
		c.DeviceType = "desktop"
	}

	return c
}
