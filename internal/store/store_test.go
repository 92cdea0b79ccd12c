// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "saksham-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustCreateSchool(t *testing.T, q *Queries, code, status string, mutate ...func(*CreateSchoolParams)) School {
	t.Helper()
	arg := CreateSchoolParams{
		Name:         "School " + code,
		District:     "Belagavi",
		State:        "Karnataka",
		StudentCount: 100,
		ProjectCode:  code,
		Status:       status,
		TotalCost:    100000,
	}
	for _, m := range mutate {
		m(&arg)
	}
	s, err := q.CreateSchool(context.Background(), arg)
	require.NoError(t, err)
	return s
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, Migrate(db))

	v, err := MigrationVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_time_format=sqlite", dsn("a.db"))
	assert.Equal(t, "a.db?mode=ro&_time_format=sqlite", dsn("a.db?mode=ro"))
	assert.Equal(t, "a.db?_time_format=sqlite", dsn("a.db?_time_format=sqlite"))
}

func TestCreateAndGetSchool(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	created := mustCreateSchool(t, q, "KA-001", "ongoing", func(p *CreateSchoolParams) {
		p.WorkStartDate = sql.NullTime{Time: date(2025, 1, 15), Valid: true}
		p.PrincipalQuote = sql.NullString{String: "Thank you", Valid: true}
	})
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := q.GetSchoolByProjectCode(ctx, "KA-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ongoing", got.Status)
	assert.True(t, got.WorkStartDate.Valid)
	assert.True(t, got.WorkStartDate.Time.Equal(date(2025, 1, 15)))
	assert.Equal(t, "Thank you", got.PrincipalQuote.String)
	assert.False(t, got.ActualCompletionDate.Valid)

	byID, err := q.GetSchoolByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "KA-001", byID.ProjectCode)

	_, err = q.GetSchoolByProjectCode(ctx, "NOPE")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestCreateSchool_RejectsDuplicateCodeAndBadStatus(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	mustCreateSchool(t, q, "KA-001", "pipeline")

	_, err := q.CreateSchool(ctx, CreateSchoolParams{Name: "dup", ProjectCode: "KA-001", Status: "pipeline"})
	assert.Error(t, err)

	_, err = q.CreateSchool(ctx, CreateSchoolParams{Name: "bad", ProjectCode: "KA-002", Status: "map"})
	assert.Error(t, err)
}

func TestListSchools_Orderings(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	mustCreateSchool(t, q, "A", "completed", func(p *CreateSchoolParams) {
		p.Name = "Zeta"
		p.District = "Mysuru"
		p.CreatedAt = date(2024, 1, 1)
		p.ActualCompletionDate = sql.NullTime{Time: date(2023, 5, 1), Valid: true}
	})
	mustCreateSchool(t, q, "B", "completed", func(p *CreateSchoolParams) {
		p.Name = "Alpha"
		p.District = "Belagavi"
		p.CreatedAt = date(2024, 2, 1)
		p.ActualCompletionDate = sql.NullTime{Time: date(2024, 5, 1), Valid: true}
	})
	mustCreateSchool(t, q, "C", "ongoing", func(p *CreateSchoolParams) {
		p.Name = "Mid"
		p.District = "Kalaburagi"
		p.CreatedAt = date(2024, 3, 1)
	})
	mustCreateSchool(t, q, "D", "pipeline", func(p *CreateSchoolParams) {
		p.Name = "Beta"
		p.District = "Belagavi"
		p.CreatedAt = date(2024, 4, 1)
	})

	all, err := q.ListSchools(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C", "B", "A"}, codes(all))

	completed, err := q.ListSchoolsByStatus(ctx, "completed")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, codes(completed))

	donatable, err := q.ListSchoolsByStatuses(ctx, []string{"ongoing", "pipeline"})
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C"}, codes(donatable))

	none, err := q.ListSchoolsByStatuses(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	byDistrict, err := q.ListSchoolsForMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D", "C", "A"}, codes(byDistrict))

	recent, err := q.ListRecentlyCompletedSchools(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, codes(recent))

	n, err := q.CountSchools(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func codes(schools []School) []string {
	out := make([]string, len(schools))
	for i, s := range schools {
		out[i] = s.ProjectCode
	}
	return out
}

func TestCostItemsAndPhotos(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	school := mustCreateSchool(t, q, "KA-001", "completed")
	other := mustCreateSchool(t, q, "KA-002", "completed")

	for _, amount := range []float64{1000, 5000, 3000} {
		_, err := q.CreateCostItem(ctx, CreateCostItemParams{SchoolID: school.ID, Category: "Civil", Amount: amount})
		require.NoError(t, err)
	}
	_, err := q.CreateCostItem(ctx, CreateCostItemParams{SchoolID: other.ID, Category: "Other", Amount: 1})
	require.NoError(t, err)

	items, err := q.ListCostItemsBySchool(ctx, school.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 5000.0, items[0].Amount)
	assert.Equal(t, 1000.0, items[2].Amount)

	_, err = q.CreateSchoolPhoto(ctx, CreateSchoolPhotoParams{SchoolID: school.ID, PhotoURL: "/a.jpg", PhotoType: "before"})
	require.NoError(t, err)
	_, err = q.CreateSchoolPhoto(ctx, CreateSchoolPhotoParams{SchoolID: school.ID, PhotoURL: "/b.jpg", PhotoType: "sideways"})
	assert.Error(t, err, "photo_type is constrained")

	photos, err := q.ListPhotosBySchool(ctx, school.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "/a.jpg", photos[0].PhotoURL)
}

func TestDonations(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	school := mustCreateSchool(t, q, "KA-001", "ongoing")

	_, err := q.CreateDonation(ctx, CreateDonationParams{
		SchoolID:     sql.NullString{String: school.ID, Valid: true},
		DonorName:    sql.NullString{String: "Anita", Valid: true},
		DonorEmail:   sql.NullString{String: "anita@example.org", Valid: true},
		Amount:       5000,
		DonationType: "specific_school",
		DonationDate: date(2025, 1, 1),
	})
	require.NoError(t, err)
	_, err = q.CreateDonation(ctx, CreateDonationParams{
		IsAnonymous:  true,
		Amount:       1000,
		DonationType: "general",
		DonationDate: date(2025, 3, 1),
	})
	require.NoError(t, err)

	amounts, err := q.ListDonationAmounts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{5000, 1000}, amounts)

	recent, err := q.ListRecentDonations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].IsAnonymous)
	assert.False(t, recent[0].DonorName.Valid)
	assert.Equal(t, "anita@example.org", recent[1].DonorEmail.String)

	require.NoError(t, q.AddSchoolAmountRaised(ctx, AddSchoolAmountRaisedParams{
		Amount: 5000, UpdatedAt: time.Now(), ID: school.ID,
	}))
	got, err := q.GetSchoolByID(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, got.AmountRaised)

	n, err := q.CountDonations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = q.CreateDonation(ctx, CreateDonationParams{Amount: 1, DonationType: "crypto"})
	assert.Error(t, err)
}

func TestTeamMembers(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	for i, name := range []string{"Second", "First"} {
		_, err := q.CreateTeamMember(ctx, CreateTeamMemberParams{
			Name: name, Role: "Coordinator", Category: "core_team", DisplayOrder: int64(2 - i),
		})
		require.NoError(t, err)
	}

	members, err := q.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "First", members[0].Name)
}

func TestEvents_RollOver(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	now := date(2026, 6, 1)

	for _, e := range []CreateEventParams{
		{Title: "past upcoming", EventDate: date(2026, 5, 1), EventType: "upcoming"},
		{Title: "future", EventDate: date(2026, 7, 1), EventType: "upcoming"},
		{Title: "already past", EventDate: date(2025, 1, 1), EventType: "past"},
	} {
		_, err := q.CreateEvent(ctx, e)
		require.NoError(t, err)
	}

	n, err := q.RollOverPastEvents(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = q.RollOverPastEvents(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	events, err := q.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "future", events[0].Title)
	assert.Equal(t, "upcoming", events[0].EventType)
	assert.Equal(t, "past", events[1].EventType)
}

func TestMediaAndBlog(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	_, err := q.CreateMediaCoverage(ctx, CreateMediaCoverageParams{Title: "undated", PublicationName: "Local"})
	require.NoError(t, err)
	_, err = q.CreateMediaCoverage(ctx, CreateMediaCoverageParams{
		Title: "dated", PublicationName: "The Hindu",
		PublishedDate: sql.NullTime{Time: date(2024, 3, 1), Valid: true},
	})
	require.NoError(t, err)

	media, err := q.ListMediaCoverage(ctx, 10)
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "dated", media[0].Title)

	_, err = q.CreateBlogPost(ctx, CreateBlogPostParams{Slug: "old", Title: "Old", Content: "x", PublishedAt: date(2023, 1, 1)})
	require.NoError(t, err)
	_, err = q.CreateBlogPost(ctx, CreateBlogPostParams{Slug: "new", Title: "New", Content: "y", PublishedAt: date(2024, 1, 1)})
	require.NoError(t, err)
	_, err = q.CreateBlogPost(ctx, CreateBlogPostParams{Slug: "new", Title: "Dup", Content: "z"})
	assert.Error(t, err, "slug is unique")

	posts, err := q.ListBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Slug)

	post, err := q.GetBlogPostBySlug(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "Old", post.Title)

	_, err = q.GetBlogPostBySlug(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSubmissions(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	c, err := q.CreateContactSubmission(ctx, CreateContactSubmissionParams{
		Name: "Ravi", Email: "ravi@example.org", Message: "Hello", Client: "desktop/Chrome/Windows",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "desktop/Chrome/Windows", c.Client)

	ngo, err := q.CreateNGOPartner(ctx, CreateNGOPartnerParams{
		Name: "Seva", RegistrationNumber: "R1", Pan: "ABCDE1234F",
		AreasOfOperation: `["Mysuru"]`, ContactPerson: "Lata", Email: "l@example.org", Phone: "1",
	})
	require.NoError(t, err)
	assert.False(t, ngo.IsVerified)
	assert.Equal(t, `["Mysuru"]`, ngo.AreasOfOperation)

	n, err := q.CountVerifiedNGOPartners(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, q.VerifyNGOPartner(ctx, ngo.ID))
	n, err = q.CountVerifiedNGOPartners(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	csr, err := q.CreateCSRPartner(ctx, CreateCSRPartnerParams{
		CompanyName: "Tech Corp", ContactPerson: "Sunita", Email: "s@example.org", Phone: "2",
		PreferredStates: `["Karnataka"]`, BudgetRange: "₹10-25 Lakhs", ReceiveProposals: true,
	})
	require.NoError(t, err)
	assert.True(t, csr.ReceiveProposals)
	assert.Equal(t, "₹10-25 Lakhs", csr.BudgetRange)
}

func TestEventLog(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	base := date(2026, 1, 1)

	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, q.CreateEventLog(ctx, CreateEventLogParams{
			Level: "warning", Category: "form", Message: msg, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := q.ListEventLog(ctx, ListEventLogParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "{}", entries[0].Metadata)

	deleted, err := q.DeleteEventLogBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = New(db).WithTx(tx).CreateSchool(ctx, CreateSchoolParams{Name: "x", ProjectCode: "TX", Status: "pipeline"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	n, err := New(db).CountSchools(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
