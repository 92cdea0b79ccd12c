// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/store"
)

// AllDistricts is the filter value that selects every district.
const AllDistricts = "all"

// DefaultMapState is the state preselected on the map page.
const DefaultMapState = "Karnataka"

// FundingPercentage returns raised as a whole percentage of target.
// A zero target yields 0. The result is not capped at 100 but stays within
// the int32 range, and non-finite inputs yield 0.
func FundingPercentage(raised, target float64) int {
	if target == 0 {
		return 0
	}
	p := math.Round(raised / target * 100)
	switch {
	case math.IsNaN(p), math.IsInf(raised, 0), math.IsInf(target, 0):
		return 0
	case p > math.MaxInt32:
		return math.MaxInt32
	case p < math.MinInt32:
		return math.MinInt32
	}
	return int(p)
}

// StatusCounts holds the number of schools in each status.
type StatusCounts struct {
	Total     int
	Completed int
	Ongoing   int
	Pipeline  int
}

// CountByStatus tallies schools per status.
func CountByStatus(schools []store.School) StatusCounts {
	c := StatusCounts{Total: len(schools)}
	for _, s := range schools {
		switch s.Status {
		case model.SchoolStatusCompleted:
			c.Completed++
		case model.SchoolStatusOngoing:
			c.Ongoing++
		case model.SchoolStatusPipeline:
			c.Pipeline++
		}
	}
	return c
}

// SumDonations adds up pledged amounts.
func SumDonations(amounts []float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return total
}

// TotalCost sums the renovation budget of every school.
func TotalCost(schools []store.School) float64 {
	var total float64
	for _, s := range schools {
		total += s.TotalCost
	}
	return total
}

// TotalStudents sums student_count over schools.
func TotalStudents(schools []store.School) int64 {
	var total int64
	for _, s := range schools {
		total += s.StudentCount
	}
	return total
}

// FilterByStatus returns the schools with status, keeping order.
func FilterByStatus(schools []store.School, status string) []store.School {
	var out []store.School
	for _, s := range schools {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

// YearCount is the number of schools completed in a calendar year.
type YearCount struct {
	Year    string
	Schools int
	// Percent is the bar height relative to the busiest year.
	Percent int
}

// YearlyCompletions groups completed schools by the year of their actual
// completion date, oldest year first. Schools without a date are skipped.
func YearlyCompletions(schools []store.School) []YearCount {
	byYear := make(map[string]int)
	for _, s := range schools {
		if s.Status != model.SchoolStatusCompleted || !s.ActualCompletionDate.Valid {
			continue
		}
		byYear[strconv.Itoa(s.ActualCompletionDate.Time.Year())]++
	}

	out := make([]YearCount, 0, len(byYear))
	peak := 0
	for year, n := range byYear {
		out = append(out, YearCount{Year: year, Schools: n})
		peak = max(peak, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	for i := range out {
		out[i].Percent = out[i].Schools * 100 / peak
	}
	return out
}

// Districts returns "all" followed by each district in first-seen order.
func Districts(schools []store.School) []string {
	out := []string{AllDistricts}
	seen := make(map[string]bool)
	for _, s := range schools {
		if !seen[s.District] {
			seen[s.District] = true
			out = append(out, s.District)
		}
	}
	return out
}

// FilterByDistrict returns schools in district; "all" or empty keeps every school.
func FilterByDistrict(schools []store.School, district string) []store.School {
	if district == "" || district == AllDistricts {
		return schools
	}
	var out []store.School
	for _, s := range schools {
		if s.District == district {
			out = append(out, s)
		}
	}
	return out
}

// States returns each state in first-seen order.
func States(schools []store.School) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range schools {
		if !seen[s.State] {
			seen[s.State] = true
			out = append(out, s.State)
		}
	}
	return out
}

// FilterByState returns the schools in state.
func FilterByState(schools []store.School, state string) []store.School {
	var out []store.School
	for _, s := range schools {
		if s.State == state {
			out = append(out, s)
		}
	}
	return out
}

// DistrictGroup is the schools of one district on the map page.
type DistrictGroup struct {
	District string
	Schools  []store.School
}

// GroupByDistrict groups schools by district in first-seen order.
func GroupByDistrict(schools []store.School) []DistrictGroup {
	var groups []DistrictGroup
	index := make(map[string]int)
	for _, s := range schools {
		i, ok := index[s.District]
		if !ok {
			i = len(groups)
			index[s.District] = i
			groups = append(groups, DistrictGroup{District: s.District})
		}
		groups[i].Schools = append(groups[i].Schools, s)
	}
	return groups
}

// TeamSection is one category block of the team page.
type TeamSection struct {
	Category    string
	Title       string
	Description string
	Members     []store.TeamMember
}

// GroupTeam splits members into sections in display order. Empty
// categories are omitted.
func GroupTeam(members []store.TeamMember) []TeamSection {
	byCategory := make(map[string][]store.TeamMember)
	for _, m := range members {
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}

	var sections []TeamSection
	for _, c := range model.TeamCategories() {
		if len(byCategory[c]) == 0 {
			continue
		}
		sections = append(sections, TeamSection{
			Category:    c,
			Title:       model.TeamCategoryTitle(c),
			Description: model.TeamCategoryDescription(c),
			Members:     byCategory[c],
		})
	}
	return sections
}

// SplitEvents separates events dated at or after now from earlier ones.
// Input order is kept in both slices.
func SplitEvents(events []store.Event, now time.Time) (upcoming, past []store.Event) {
	for _, e := range events {
		if !e.EventDate.Before(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return upcoming, past
}

// PhotoGroups holds a school's photos per renovation stage.
type PhotoGroups struct {
	Before []store.SchoolPhoto
	During []store.SchoolPhoto
	After  []store.SchoolPhoto
}

// Empty reports whether there are no photos at all.
func (g PhotoGroups) Empty() bool {
	return len(g.Before)+len(g.During)+len(g.After) == 0
}

// GroupPhotos sorts photos into before, during and after.
func GroupPhotos(photos []store.SchoolPhoto) PhotoGroups {
	var g PhotoGroups
	for _, p := range photos {
		switch p.PhotoType {
		case model.PhotoBefore:
			g.Before = append(g.Before, p)
		case model.PhotoDuring:
			g.During = append(g.During, p)
		case model.PhotoAfter:
			g.After = append(g.After, p)
		}
	}
	return g
}

// TimeSince describes how long ago t was, relative to now.
func TimeSince(now, t time.Time) string {
	seconds := int(now.Sub(t) / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%d seconds ago", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	}
	hours := minutes / 60
	return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
