// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
)

// StatsResponse holds the site-wide funding and impact figures.
type StatsResponse struct {
	Schools          int     `json:"schools"`
	Completed        int     `json:"completed"`
	Ongoing          int     `json:"ongoing"`
	Pipeline         int     `json:"pipeline"`
	TotalTarget      float64 `json:"total_target"`
	TotalRaised      float64 `json:"total_raised"`
	Progress         int     `json:"progress"`
	StudentsImpacted int64   `json:"students_impacted"`
	PartnersEngaged  int64   `json:"partners_engaged"`
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	dash, err := h.site.Dashboard(r.Context())
	if err != nil {
		slog.Error("api: failed to load dashboard", "error", err)
		WriteInternalError(w, "Failed to load statistics")
		return
	}
	impact, err := h.site.Impact(r.Context())
	if err != nil {
		slog.Error("api: failed to load impact", "error", err)
		WriteInternalError(w, "Failed to load statistics")
		return
	}

	WriteSuccess(w, StatsResponse{
		Schools:          dash.Counts.Total,
		Completed:        dash.Counts.Completed,
		Ongoing:          dash.Counts.Ongoing,
		Pipeline:         dash.Counts.Pipeline,
		TotalTarget:      dash.TotalTarget,
		TotalRaised:      dash.TotalRaised,
		Progress:         dash.Progress,
		StudentsImpacted: impact.StudentsImpacted,
		PartnersEngaged:  impact.PartnersEngaged,
	}, nil)
}
