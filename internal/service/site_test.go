// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/testutil"
)

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newSeededSite(t *testing.T) *SiteService {
	t.Helper()
	s := NewSiteService(testutil.TestSeededDB(t))
	s.now = func() time.Time { return testNow }
	return s
}

func TestSiteService_Home(t *testing.T) {
	data, err := newSeededSite(t).Home(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, data.SchoolsCompleted)
	assert.Equal(t, 1, data.OngoingProjects)
	assert.Equal(t, int64(1339), data.ChildrenImpacted)
	assert.Equal(t, 535000.0, data.FundsRaised)
	require.Len(t, data.RecentSchools, 2)
	assert.Equal(t, "KA-MYS-002", data.RecentSchools[0].ProjectCode)
	assert.Equal(t, "KA-BGM-001", data.RecentSchools[1].ProjectCode)
}

func TestSiteService_HomeEmptyDatabase(t *testing.T) {
	data, err := NewSiteService(testutil.TestDB(t)).Home(context.Background())
	require.NoError(t, err)
	assert.Zero(t, data.SchoolsCompleted)
	assert.Zero(t, data.FundsRaised)
	assert.Empty(t, data.RecentSchools)
}

func TestSiteService_Dashboard(t *testing.T) {
	data, err := newSeededSite(t).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusCounts{Total: 5, Completed: 2, Ongoing: 1, Pipeline: 2}, data.Counts)
	assert.Equal(t, 4250000.0, data.TotalTarget)
	assert.Equal(t, 535000.0, data.TotalRaised)
	assert.Equal(t, 13, data.Progress)
	assert.Equal(t, testNow, data.LoadedAt)

	require.Len(t, data.RecentDonations, 3)
	assert.Equal(t, model.DonationGeneral, data.RecentDonations[0].DonationType)
	assert.True(t, data.RecentDonations[0].IsAnonymous)
	assert.Equal(t, model.DonationSpecificSchool, data.RecentDonations[2].DonationType)
}

func TestSiteService_Impact(t *testing.T) {
	data, err := newSeededSite(t).Impact(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, data.SchoolsCompleted)
	assert.Equal(t, int64(458), data.StudentsImpacted)
	assert.Equal(t, 535000.0, data.FundsRaised)
	assert.Zero(t, data.PartnersEngaged)
	assert.Equal(t, []YearCount{
		{Year: "2022", Schools: 1, Percent: 100},
		{Year: "2024", Schools: 1, Percent: 100},
	}, data.Yearly)
}

func TestSiteService_SchoolsByStatus(t *testing.T) {
	s := newSeededSite(t)
	ctx := context.Background()

	data, err := s.SchoolsByStatus(ctx, model.SchoolStatusPipeline, "")
	require.NoError(t, err)
	assert.Equal(t, "Pipeline Projects", data.Title)
	assert.Equal(t, AllDistricts, data.District)
	assert.Len(t, data.Schools, 2)
	assert.Len(t, data.Districts, 3)
	assert.Equal(t, AllDistricts, data.Districts[0])

	data, err = s.SchoolsByStatus(ctx, model.SchoolStatusPipeline, "Shivamogga")
	require.NoError(t, err)
	require.Len(t, data.Schools, 1)
	assert.Equal(t, "KA-SMG-005", data.Schools[0].ProjectCode)

	data, err = s.SchoolsByStatus(ctx, model.SchoolStatusPipeline, "Nowhere")
	require.NoError(t, err)
	assert.Equal(t, AllDistricts, data.District)
	assert.Len(t, data.Schools, 2)

	_, err = s.SchoolsByStatus(ctx, "archived", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteService_SchoolDetail(t *testing.T) {
	s := newSeededSite(t)
	ctx := context.Background()

	data, err := s.SchoolDetail(ctx, "KA-BGM-001")
	require.NoError(t, err)
	assert.Equal(t, "Belagavi", data.School.District)
	require.Len(t, data.CostItems, 4)
	assert.Equal(t, 320000.0, data.CostItems[0].Amount)
	assert.Equal(t, 850000.0, data.CostTotal)
	assert.Equal(t, 100, data.Funding)
	assert.Len(t, data.Photos.Before, 1)
	assert.Len(t, data.Photos.During, 1)
	assert.Len(t, data.Photos.After, 1)

	ongoing, err := s.SchoolDetail(ctx, "KA-BLR-003")
	require.NoError(t, err)
	assert.Equal(t, 52, ongoing.Funding)

	_, err = s.SchoolDetail(ctx, "KA-XXX-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteService_Map(t *testing.T) {
	s := newSeededSite(t)
	ctx := context.Background()

	data, err := s.Map(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultMapState, data.State)
	assert.Equal(t, []string{"Karnataka"}, data.States)
	assert.Equal(t, []string{"all", "Belagavi", "Bengaluru Rural", "Kalaburagi", "Mysuru", "Shivamogga"}, data.Districts)
	assert.Equal(t, StatusCounts{Total: 5, Completed: 2, Ongoing: 1, Pipeline: 2}, data.Counts)
	assert.Len(t, data.Groups, 5)

	data, err = s.Map(ctx, "Karnataka", "Mysuru")
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Total: 1, Completed: 1}, data.Counts)
	require.Len(t, data.Groups, 1)
	assert.Equal(t, "Mysuru", data.Groups[0].District)

	data, err = s.Map(ctx, "Kerala", "")
	require.NoError(t, err)
	assert.Empty(t, data.Schools)
	assert.Equal(t, []string{"all"}, data.Districts)
}

func TestSiteService_Team(t *testing.T) {
	sections, err := newSeededSite(t).Team(context.Background())
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, model.TeamLeadership, sections[0].Category)
	assert.Equal(t, "Prof. Gopal Naik", sections[0].Members[0].Name)
	assert.Equal(t, model.TeamAssociate, sections[1].Category)
	assert.Len(t, sections[1].Members, 4)
}

func TestSiteService_Events(t *testing.T) {
	data, err := newSeededSite(t).Events(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Upcoming, 1)
	assert.Equal(t, "Annual Partners Meet", data.Upcoming[0].Title)
	require.Len(t, data.Past, 1)
	assert.Equal(t, "Hirebagewadi School Handover", data.Past[0].Title)
	assert.Len(t, data.Media, 1)
	assert.Len(t, data.Posts, 1)
}

func TestSiteService_BlogPost(t *testing.T) {
	s := newSeededSite(t)

	post, err := s.BlogPost(context.Background(), "how-hirebagewadi-got-its-toilets-back")
	require.NoError(t, err)
	assert.Equal(t, "How Hirebagewadi Got Its Toilets Back", post.Title)

	_, err = s.BlogPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteService_DonatableSchools(t *testing.T) {
	schools, err := newSeededSite(t).DonatableSchools(context.Background())
	require.NoError(t, err)

	names := make([]string, len(schools))
	for i, s := range schools {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"Government Higher Primary School, Kalaburagi Rural",
		"Government Model Primary School, Doddaballapur",
		"Government Urdu Primary School, Shivamogga",
	}, names)
}

func TestSiteService_StoreFailure(t *testing.T) {
	db := testutil.TestDB(t)
	s := NewSiteService(db)
	require.NoError(t, db.Close())

	_, err := s.Home(context.Background())
	assert.Error(t, err)
	_, err = s.Dashboard(context.Background())
	assert.Error(t, err)
}
