// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Team member categories
const (
	TeamLeadership       = "leadership"
	TeamCoreTeam         = "core_team"
	TeamFaculty          = "faculty"
	TeamFieldCoordinator = "field_coordinator"
	TeamAssociate        = "associate"
)

// TeamCategories returns the categories in the order they are displayed.
func TeamCategories() []string {
	return []string{TeamLeadership, TeamFaculty, TeamCoreTeam, TeamFieldCoordinator, TeamAssociate}
}

// TeamCategoryTitle returns the section heading for a category.
func TeamCategoryTitle(category string) string {
	switch category {
	case TeamLeadership:
		return "Leadership"
	case TeamFaculty:
		return "Faculty Advisors"
	case TeamCoreTeam:
		return "Core Team"
	case TeamFieldCoordinator:
		return "Field Coordinators"
	case TeamAssociate:
		return "Associates & Project Coordinators"
	default:
		return ""
	}
}

// TeamCategoryDescription returns the subtitle shown under a section heading.
func TeamCategoryDescription(category string) string {
	switch category {
	case TeamLeadership:
		return "Visionary leaders guiding Saksham's mission and strategy"
	case TeamFaculty:
		return "IIM Bangalore faculty providing expertise and academic rigor"
	case TeamCoreTeam:
		return "Full-time staff and student volunteers managing operations and projects"
	case TeamFieldCoordinator:
		return "On-ground team members ensuring quality execution and monitoring"
	case TeamAssociate:
		return "Key contributors from IIM Bangalore's Centre for Public Policy and dedicated project coordinators driving on-ground impact."
	default:
		return ""
	}
}

// Event (calendar) types
const (
	EventUpcoming = "upcoming"
	EventPast     = "past"
)
