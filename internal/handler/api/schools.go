// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/service"
	"github.com/sakshamfoundation/saksham-web/internal/store"
)

// SchoolResponse represents a school in API responses.
type SchoolResponse struct {
	ProjectCode    string             `json:"project_code"`
	Name           string             `json:"name"`
	District       string             `json:"district"`
	Taluk          string             `json:"taluk"`
	State          string             `json:"state"`
	Status         string             `json:"status"`
	StudentCount   int64              `json:"student_count"`
	TeacherCount   int64              `json:"teacher_count"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	TotalCost      float64            `json:"total_cost"`
	AmountRaised   float64            `json:"amount_raised"`
	FundingPercent int                `json:"funding_percent"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	ExpectedAt     *time.Time         `json:"expected_completion,omitempty"`
	PrincipalQuote string             `json:"principal_quote,omitempty"`
	CostBreakdown  []CostItemResponse `json:"cost_breakdown,omitempty"`
	CostTotal      float64            `json:"cost_total,omitempty"`
}

// CostItemResponse is one budget line of a school.
type CostItemResponse struct {
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

func storeSchoolToResponse(s store.School) SchoolResponse {
	resp := SchoolResponse{
		ProjectCode:    s.ProjectCode,
		Name:           s.Name,
		District:       s.District,
		Taluk:          s.Taluk,
		State:          s.State,
		Status:         s.Status,
		StudentCount:   s.StudentCount,
		TeacherCount:   s.TeacherCount,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		TotalCost:      s.TotalCost,
		AmountRaised:   s.AmountRaised,
		FundingPercent: service.FundingPercentage(s.AmountRaised, s.TotalCost),
		PrincipalQuote: s.PrincipalQuote.String,
	}
	if s.ActualCompletionDate.Valid {
		resp.CompletedAt = &s.ActualCompletionDate.Time
	}
	if s.ExpectedCompletionDate.Valid {
		resp.ExpectedAt = &s.ExpectedCompletionDate.Time
	}
	return resp
}

// ListSchools handles GET /api/v1/schools.
// Optional filters: status, district.
func (h *Handler) ListSchools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status != "" && !model.IsValidSchoolStatus(status) {
		WriteBadRequest(w, "Invalid status", map[string]string{
			"status": "must be one of completed, ongoing, pipeline",
		})
		return
	}

	schools, err := h.site.Schools(r.Context())
	if err != nil {
		slog.Error("api: failed to list schools", "error", err)
		WriteInternalError(w, "Failed to list schools")
		return
	}
	if status != "" {
		schools = service.FilterByStatus(schools, status)
	}
	if district := q.Get("district"); district != "" {
		schools = service.FilterByDistrict(schools, district)
	}

	out := make([]SchoolResponse, len(schools))
	for i, s := range schools {
		out[i] = storeSchoolToResponse(s)
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// GetSchool handles GET /api/v1/schools/{code}.
func (h *Handler) GetSchool(w http.ResponseWriter, r *http.Request) {
	detail, err := h.site.SchoolDetail(r.Context(), chi.URLParam(r, "code"))
	if errors.Is(err, service.ErrNotFound) {
		WriteNotFound(w, "School not found")
		return
	}
	if err != nil {
		slog.Error("api: failed to load school", "error", err)
		WriteInternalError(w, "Failed to load school")
		return
	}

	resp := storeSchoolToResponse(detail.School)
	for _, item := range detail.CostItems {
		resp.CostBreakdown = append(resp.CostBreakdown, CostItemResponse{
			Category:    item.Category,
			Description: item.Description.String,
			Amount:      item.Amount,
		})
	}
	resp.CostTotal = detail.CostTotal
	WriteSuccess(w, resp, nil)
}
