// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain constants shared by the store, services and
// handlers.
package model

// School project statuses
const (
	SchoolStatusPipeline  = "pipeline"
	SchoolStatusOngoing   = "ongoing"
	SchoolStatusCompleted = "completed"
)

// SchoolStatuses returns all school statuses in lifecycle order.
func SchoolStatuses() []string {
	return []string{SchoolStatusPipeline, SchoolStatusOngoing, SchoolStatusCompleted}
}

// IsValidSchoolStatus checks if a status is a known school status.
func IsValidSchoolStatus(status string) bool {
	for _, s := range SchoolStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// SchoolStatusTitle returns the listing heading for a status.
func SchoolStatusTitle(status string) string {
	switch status {
	case SchoolStatusCompleted:
		return "Completed Projects"
	case SchoolStatusOngoing:
		return "Ongoing Projects"
	case SchoolStatusPipeline:
		return "Pipeline Projects"
	default:
		return "Schools"
	}
}

// SchoolStatusDescription returns the listing description for a status.
func SchoolStatusDescription(status string) string {
	switch status {
	case SchoolStatusCompleted:
		return "Schools we have successfully transformed with complete renovations"
	case SchoolStatusOngoing:
		return "Projects currently under execution with active renovation work"
	case SchoolStatusPipeline:
		return "Schools identified and assessed, awaiting funding and project initiation"
	default:
		return ""
	}
}

// Photo stages
const (
	PhotoBefore = "before"
	PhotoDuring = "during"
	PhotoAfter  = "after"
)
