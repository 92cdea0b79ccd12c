// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/util"
)

//go:embed seed/content.yaml
var defaultSeed []byte

// SeedContent is the document format read by SeedFromYAML.
type SeedContent struct {
	Schools   []SeedSchool   `yaml:"schools"`
	Donations []SeedDonation `yaml:"donations"`
	Team      []SeedMember   `yaml:"team"`
	Events    []SeedEvent    `yaml:"events"`
	Media     []SeedMedia    `yaml:"media"`
	Blog      []SeedPost     `yaml:"blog"`
}

// SeedSchool is a school with its budget lines and photos.
type SeedSchool struct {
	Name                   string      `yaml:"name"`
	Address                string      `yaml:"address"`
	District               string      `yaml:"district"`
	Taluk                  string      `yaml:"taluk"`
	State                  string      `yaml:"state"`
	StudentCount           int64       `yaml:"student_count"`
	TeacherCount           int64       `yaml:"teacher_count"`
	Latitude               float64     `yaml:"latitude"`
	Longitude              float64     `yaml:"longitude"`
	ProjectCode            string      `yaml:"project_code"`
	Status                 string      `yaml:"status"`
	TotalCost              float64     `yaml:"total_cost"`
	AmountRaised           float64     `yaml:"amount_raised"`
	WorkStartDate          string      `yaml:"work_start_date"`
	ExpectedCompletionDate string      `yaml:"expected_completion_date"`
	ActualCompletionDate   string      `yaml:"actual_completion_date"`
	PrincipalQuote         string      `yaml:"principal_quote"`
	NeedAssessment         string      `yaml:"need_assessment"`
	CostItems              []SeedCost  `yaml:"cost_items"`
	Photos                 []SeedPhoto `yaml:"photos"`
}

// SeedCost is one budget line.
type SeedCost struct {
	Category    string  `yaml:"category"`
	Description string  `yaml:"description"`
	Amount      float64 `yaml:"amount"`
}

// SeedPhoto is one gallery picture.
type SeedPhoto struct {
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
	Type    string `yaml:"type"`
}

// SeedDonation is a historical pledge. ProjectCode links it to a school.
type SeedDonation struct {
	ProjectCode string  `yaml:"project_code"`
	DonorName   string  `yaml:"donor_name"`
	Anonymous   bool    `yaml:"anonymous"`
	Amount      float64 `yaml:"amount"`
	Type        string  `yaml:"type"`
	Cause       string  `yaml:"cause"`
	Date        string  `yaml:"date"`
}

// SeedMember is a team member.
type SeedMember struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
	Photo    string `yaml:"photo"`
	LinkedIn string `yaml:"linkedin"`
	Category string `yaml:"category"`
	Order    int64  `yaml:"order"`
}

// SeedEvent is a calendar event. Type defaults to upcoming.
type SeedEvent struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Location    string `yaml:"location"`
	Type        string `yaml:"type"`
}

// SeedMedia is a press mention.
type SeedMedia struct {
	Title       string `yaml:"title"`
	Publication string `yaml:"publication"`
	Logo        string `yaml:"logo"`
	URL         string `yaml:"url"`
	Date        string `yaml:"date"`
}

// SeedPost is a blog post. The slug is derived from the title when empty.
type SeedPost struct {
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Date    string `yaml:"date"`
	Excerpt string `yaml:"excerpt"`
	Cover   string `yaml:"cover"`
	Content string `yaml:"content"`
}

// Seed loads the embedded site content.
func Seed(ctx context.Context, db *sql.DB) error {
	return SeedFromYAML(ctx, db, defaultSeed)
}

// SeedFromYAML inserts the content described by data in one transaction.
// It does nothing when the database already holds a school.
func SeedFromYAML(ctx context.Context, db *sql.DB, data []byte) error {
	var content SeedContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("parsing seed content: %w", err)
	}

	n, err := New(db).CountSchools(ctx)
	if err != nil {
		return fmt.Errorf("checking existing schools: %w", err)
	}
	if n > 0 {
		slog.Info("schools already exist, skipping seed", "count", n)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedContent(ctx, New(db).WithTx(tx), content); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded site content",
		"schools", len(content.Schools),
		"donations", len(content.Donations),
		"team", len(content.Team),
		"events", len(content.Events),
		"media", len(content.Media),
		"blog_posts", len(content.Blog),
	)
	return nil
}

func seedContent(ctx context.Context, q *Queries, c SeedContent) error {
	schoolIDs := make(map[string]string, len(c.Schools))
	for _, s := range c.Schools {
		school, err := seedSchool(ctx, q, s)
		if err != nil {
			return fmt.Errorf("seeding school %s: %w", s.ProjectCode, err)
		}
		schoolIDs[school.ProjectCode] = school.ID
	}

	for i, d := range c.Donations {
		if err := seedDonation(ctx, q, d, schoolIDs); err != nil {
			return fmt.Errorf("seeding donation %d: %w", i, err)
		}
	}

	for _, m := range c.Team {
		if _, err := q.CreateTeamMember(ctx, CreateTeamMemberParams{
			Name:         m.Name,
			Role:         m.Role,
			Bio:          util.NullStringFromValue(m.Bio),
			PhotoURL:     util.NullStringFromValue(m.Photo),
			LinkedinURL:  util.NullStringFromValue(m.LinkedIn),
			Category:     m.Category,
			DisplayOrder: m.Order,
		}); err != nil {
			return fmt.Errorf("seeding team member %q: %w", m.Name, err)
		}
	}

	for _, e := range c.Events {
		date, err := util.ParseNullDate(e.Date)
		if err != nil {
			return fmt.Errorf("seeding event %q: %w", e.Title, err)
		}
		eventType := e.Type
		if eventType == "" {
			eventType = model.EventUpcoming
		}
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			Title:       e.Title,
			Description: util.NullStringFromValue(e.Description),
			EventDate:   date.Time,
			Location:    util.NullStringFromValue(e.Location),
			EventType:   eventType,
		}); err != nil {
			return fmt.Errorf("seeding event %q: %w", e.Title, err)
		}
	}

	for _, m := range c.Media {
		date, err := util.ParseNullDate(m.Date)
		if err != nil {
			return fmt.Errorf("seeding media %q: %w", m.Title, err)
		}
		if _, err := q.CreateMediaCoverage(ctx, CreateMediaCoverageParams{
			Title:              m.Title,
			PublicationName:    m.Publication,
			PublicationLogoURL: util.NullStringFromValue(m.Logo),
			ArticleURL:         util.NullStringFromValue(m.URL),
			PublishedDate:      date,
		}); err != nil {
			return fmt.Errorf("seeding media %q: %w", m.Title, err)
		}
	}

	for _, p := range c.Blog {
		date, err := util.ParseNullDate(p.Date)
		if err != nil {
			return fmt.Errorf("seeding post %q: %w", p.Title, err)
		}
		slug := p.Slug
		if slug == "" {
			slug = util.Slugify(p.Title)
		}
		if !util.IsValidSlug(slug) {
			return fmt.Errorf("seeding post %q: invalid slug %q", p.Title, slug)
		}
		if _, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
			Slug:          slug,
			Title:         p.Title,
			Content:       p.Content,
			Excerpt:       util.NullStringFromValue(p.Excerpt),
			Author:        util.NullStringFromValue(p.Author),
			CoverImageURL: util.NullStringFromValue(p.Cover),
			PublishedAt:   date.Time,
		}); err != nil {
			return fmt.Errorf("seeding post %q: %w", p.Title, err)
		}
	}

	return nil
}

func seedSchool(ctx context.Context, q *Queries, s SeedSchool) (School, error) {
	if !model.IsValidSchoolStatus(s.Status) {
		return School{}, fmt.Errorf("invalid status %q", s.Status)
	}

	var dates [3]sql.NullTime
	for i, raw := range []string{s.WorkStartDate, s.ExpectedCompletionDate, s.ActualCompletionDate} {
		d, err := util.ParseNullDate(raw)
		if err != nil {
			return School{}, err
		}
		dates[i] = d
	}

	school, err := q.CreateSchool(ctx, CreateSchoolParams{
		Name:                   s.Name,
		Address:                s.Address,
		District:               s.District,
		Taluk:                  s.Taluk,
		State:                  s.State,
		StudentCount:           s.StudentCount,
		TeacherCount:           s.TeacherCount,
		Latitude:               s.Latitude,
		Longitude:              s.Longitude,
		ProjectCode:            s.ProjectCode,
		Status:                 s.Status,
		TotalCost:              s.TotalCost,
		AmountRaised:           s.AmountRaised,
		WorkStartDate:          dates[0],
		ExpectedCompletionDate: dates[1],
		ActualCompletionDate:   dates[2],
		PrincipalQuote:         util.NullStringFromValue(s.PrincipalQuote),
		NeedAssessment:         util.NullStringFromValue(s.NeedAssessment),
	})
	if err != nil {
		return School{}, err
	}

	for _, c := range s.CostItems {
		if _, err := q.CreateCostItem(ctx, CreateCostItemParams{
			SchoolID:    school.ID,
			Category:    c.Category,
			Description: util.NullStringFromValue(c.Description),
			Amount:      c.Amount,
		}); err != nil {
			return School{}, fmt.Errorf("cost item %q: %w", c.Category, err)
		}
	}

	for _, p := range s.Photos {
		if _, err := q.CreateSchoolPhoto(ctx, CreateSchoolPhotoParams{
			SchoolID:  school.ID,
			PhotoURL:  p.URL,
			Caption:   util.NullStringFromValue(p.Caption),
			PhotoType: p.Type,
		}); err != nil {
			return School{}, fmt.Errorf("photo %q: %w", p.URL, err)
		}
	}

	return school, nil
}

func seedDonation(ctx context.Context, q *Queries, d SeedDonation, schoolIDs map[string]string) error {
	date, err := util.ParseNullDate(d.Date)
	if err != nil {
		return err
	}

	var schoolID sql.NullString
	if d.ProjectCode != "" {
		id, ok := schoolIDs[d.ProjectCode]
		if !ok {
			return fmt.Errorf("unknown project code %q", d.ProjectCode)
		}
		schoolID = sql.NullString{String: id, Valid: true}
	}

	donationType := d.Type
	if donationType == "" {
		donationType = model.DonationGeneral
	}
	donorName := util.NullStringFromValue(d.DonorName)
	if d.Anonymous {
		donorName = sql.NullString{}
	}

	donationDate := date.Time
	if !date.Valid {
		donationDate = time.Now().UTC()
	}

	_, err = q.CreateDonation(ctx, CreateDonationParams{
		SchoolID:      schoolID,
		DonorName:     donorName,
		IsAnonymous:   d.Anonymous,
		Amount:        d.Amount,
		DonationType:  donationType,
		CauseCategory: util.NullStringFromValue(d.Cause),
		DonationDate:  donationDate,
	})
	return err
}
