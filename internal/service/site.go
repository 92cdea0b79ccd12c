// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service assembles page data from the store and computes the
// derived statistics shown across the site.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/store"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

const (
	recentCompletedLimit = 3
	recentDonationsLimit = 10
	mediaCoverageLimit   = 20
)

// SiteService loads the data behind each public page.
type SiteService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewSiteService creates a SiteService.
func NewSiteService(db *sql.DB) *SiteService {
	return &SiteService{
		queries: store.New(db),
		now:     time.Now,
	}
}

// HomeData is shown on the landing page.
type HomeData struct {
	SchoolsCompleted int
	OngoingProjects  int
	ChildrenImpacted int64
	FundsRaised      float64
	RecentSchools    []store.School
}

// Home loads the landing page statistics.
func (s *SiteService) Home(ctx context.Context) (HomeData, error) {
	schools, err := s.queries.ListSchools(ctx)
	if err != nil {
		return HomeData{}, fmt.Errorf("listing schools: %w", err)
	}
	amounts, err := s.queries.ListDonationAmounts(ctx)
	if err != nil {
		return HomeData{}, fmt.Errorf("listing donations: %w", err)
	}
	recent, err := s.queries.ListRecentlyCompletedSchools(ctx, recentCompletedLimit)
	if err != nil {
		return HomeData{}, fmt.Errorf("listing completed schools: %w", err)
	}

	counts := CountByStatus(schools)
	return HomeData{
		SchoolsCompleted: counts.Completed,
		OngoingProjects:  counts.Ongoing,
		ChildrenImpacted: TotalStudents(schools),
		FundsRaised:      SumDonations(amounts),
		RecentSchools:    recent,
	}, nil
}

// DashboardData is shown on the live dashboard.
type DashboardData struct {
	Counts          StatusCounts
	TotalTarget     float64
	TotalRaised     float64
	Progress        int
	RecentDonations []store.Donation
	LoadedAt        time.Time
}

// Dashboard loads project and funding totals with the latest donations.
func (s *SiteService) Dashboard(ctx context.Context) (DashboardData, error) {
	schools, err := s.queries.ListSchools(ctx)
	if err != nil {
		return DashboardData{}, fmt.Errorf("listing schools: %w", err)
	}
	amounts, err := s.queries.ListDonationAmounts(ctx)
	if err != nil {
		return DashboardData{}, fmt.Errorf("listing donations: %w", err)
	}
	recent, err := s.queries.ListRecentDonations(ctx, recentDonationsLimit)
	if err != nil {
		return DashboardData{}, fmt.Errorf("listing recent donations: %w", err)
	}

	target := TotalCost(schools)
	raised := SumDonations(amounts)
	return DashboardData{
		Counts:          CountByStatus(schools),
		TotalTarget:     target,
		TotalRaised:     raised,
		Progress:        FundingPercentage(raised, target),
		RecentDonations: recent,
		LoadedAt:        s.now(),
	}, nil
}

// ImpactData is shown on the impact page.
type ImpactData struct {
	SchoolsCompleted int
	StudentsImpacted int64
	FundsRaised      float64
	PartnersEngaged  int64
	Yearly           []YearCount
}

// Impact loads outcome statistics.
func (s *SiteService) Impact(ctx context.Context) (ImpactData, error) {
	schools, err := s.queries.ListSchools(ctx)
	if err != nil {
		return ImpactData{}, fmt.Errorf("listing schools: %w", err)
	}
	amounts, err := s.queries.ListDonationAmounts(ctx)
	if err != nil {
		return ImpactData{}, fmt.Errorf("listing donations: %w", err)
	}
	partners, err := s.queries.CountVerifiedNGOPartners(ctx)
	if err != nil {
		return ImpactData{}, fmt.Errorf("counting partners: %w", err)
	}

	completed := FilterByStatus(schools, model.SchoolStatusCompleted)
	return ImpactData{
		SchoolsCompleted: len(completed),
		StudentsImpacted: TotalStudents(completed),
		FundsRaised:      SumDonations(amounts),
		PartnersEngaged:  partners,
		Yearly:           YearlyCompletions(completed),
	}, nil
}

// SchoolListData is shown on a status listing.
type SchoolListData struct {
	Status      string
	Title       string
	Description string
	Districts   []string
	District    string
	Schools     []store.School
}

// SchoolsByStatus loads a status listing filtered to district.
func (s *SiteService) SchoolsByStatus(ctx context.Context, status, district string) (SchoolListData, error) {
	if !model.IsValidSchoolStatus(status) {
		return SchoolListData{}, ErrNotFound
	}
	schools, err := s.queries.ListSchoolsByStatus(ctx, status)
	if err != nil {
		return SchoolListData{}, fmt.Errorf("listing %s schools: %w", status, err)
	}

	districts := Districts(schools)
	if district == "" || !contains(districts, district) {
		district = AllDistricts
	}
	return SchoolListData{
		Status:      status,
		Title:       model.SchoolStatusTitle(status),
		Description: model.SchoolStatusDescription(status),
		Districts:   districts,
		District:    district,
		Schools:     FilterByDistrict(schools, district),
	}, nil
}

// SchoolDetailData is shown on a school's page.
type SchoolDetailData struct {
	School    store.School
	CostItems []store.CostItem
	CostTotal float64
	Photos    PhotoGroups
	Funding   int
}

// SchoolDetail loads a school with its budget and photos.
func (s *SiteService) SchoolDetail(ctx context.Context, projectCode string) (SchoolDetailData, error) {
	school, err := s.queries.GetSchoolByProjectCode(ctx, projectCode)
	if errors.Is(err, sql.ErrNoRows) {
		return SchoolDetailData{}, ErrNotFound
	}
	if err != nil {
		return SchoolDetailData{}, fmt.Errorf("loading school %q: %w", projectCode, err)
	}
	items, err := s.queries.ListCostItemsBySchool(ctx, school.ID)
	if err != nil {
		return SchoolDetailData{}, fmt.Errorf("listing cost items: %w", err)
	}
	photos, err := s.queries.ListPhotosBySchool(ctx, school.ID)
	if err != nil {
		return SchoolDetailData{}, fmt.Errorf("listing photos: %w", err)
	}

	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return SchoolDetailData{
		School:    school,
		CostItems: items,
		CostTotal: total,
		Photos:    GroupPhotos(photos),
		Funding:   FundingPercentage(school.AmountRaised, school.TotalCost),
	}, nil
}

// MapData is shown on the interactive map page.
type MapData struct {
	States    []string
	State     string
	Districts []string
	District  string
	Schools   []store.School
	Counts    StatusCounts
	Groups    []DistrictGroup
}

// Map loads schools for state, narrowed to district.
func (s *SiteService) Map(ctx context.Context, state, district string) (MapData, error) {
	schools, err := s.queries.ListSchoolsForMap(ctx)
	if err != nil {
		return MapData{}, fmt.Errorf("listing schools: %w", err)
	}

	if state == "" {
		state = DefaultMapState
	}
	inState := FilterByState(schools, state)
	districts := Districts(inState)
	if district == "" || !contains(districts, district) {
		district = AllDistricts
	}
	filtered := FilterByDistrict(inState, district)

	return MapData{
		States:    States(schools),
		State:     state,
		Districts: districts,
		District:  district,
		Schools:   filtered,
		Counts:    CountByStatus(filtered),
		Groups:    GroupByDistrict(filtered),
	}, nil
}

// Team loads the team page sections.
func (s *SiteService) Team(ctx context.Context) ([]TeamSection, error) {
	members, err := s.queries.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	return GroupTeam(members), nil
}

// EventsData is shown on the events and media page.
type EventsData struct {
	Upcoming []store.Event
	Past     []store.Event
	Media    []store.MediaCoverage
	Posts    []store.BlogPost
}

// Events loads events split around the current time, press and blog posts.
func (s *SiteService) Events(ctx context.Context) (EventsData, error) {
	events, err := s.queries.ListEvents(ctx)
	if err != nil {
		return EventsData{}, fmt.Errorf("listing events: %w", err)
	}
	media, err := s.queries.ListMediaCoverage(ctx, mediaCoverageLimit)
	if err != nil {
		return EventsData{}, fmt.Errorf("listing media coverage: %w", err)
	}
	posts, err := s.queries.ListBlogPosts(ctx)
	if err != nil {
		return EventsData{}, fmt.Errorf("listing blog posts: %w", err)
	}

	upcoming, past := SplitEvents(events, s.now())
	return EventsData{Upcoming: upcoming, Past: past, Media: media, Posts: posts}, nil
}

// BlogPost loads a post by slug.
func (s *SiteService) BlogPost(ctx context.Context, slug string) (store.BlogPost, error) {
	post, err := s.queries.GetBlogPostBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return store.BlogPost{}, ErrNotFound
	}
	if err != nil {
		return store.BlogPost{}, fmt.Errorf("loading post %q: %w", slug, err)
	}
	return post, nil
}

// DonatableSchools lists ongoing and pipeline schools by name.
func (s *SiteService) DonatableSchools(ctx context.Context) ([]store.School, error) {
	schools, err := s.queries.ListSchoolsByStatuses(ctx,
		[]string{model.SchoolStatusOngoing, model.SchoolStatusPipeline})
	if err != nil {
		return nil, fmt.Errorf("listing donatable schools: %w", err)
	}
	return schools, nil
}

// Schools returns every school, newest first.
func (s *SiteService) Schools(ctx context.Context) ([]store.School, error) {
	schools, err := s.queries.ListSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	return schools, nil
}

// Posts returns every blog post, newest first.
func (s *SiteService) Posts(ctx context.Context) ([]store.BlogPost, error) {
	posts, err := s.queries.ListBlogPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}
	return posts, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
