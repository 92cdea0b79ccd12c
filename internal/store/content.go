// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const teamMemberColumns = `id, name, role, bio, photo_url, linkedin_url, category, display_order, created_at`

func scanTeamMember(s scanner) (TeamMember, error) {
	var i TeamMember
	err := s.Scan(&i.ID, &i.Name, &i.Role, &i.Bio, &i.PhotoURL, &i.LinkedinURL,
		&i.Category, &i.DisplayOrder, &i.CreatedAt)
	return i, err
}

// CreateTeamMemberParams holds the fields of a team member.
type CreateTeamMemberParams struct {
	Name         string
	Role         string
	Bio          sql.NullString
	PhotoURL     sql.NullString
	LinkedinURL  sql.NullString
	Category     string
	DisplayOrder int64
}

const createTeamMember = `INSERT INTO team_members (` + teamMemberColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + teamMemberColumns

// CreateTeamMember inserts a team member.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, createTeamMember,
		newID(), arg.Name, arg.Role, arg.Bio, arg.PhotoURL, arg.LinkedinURL,
		arg.Category, arg.DisplayOrder, time.Now().UTC())
	return scanTeamMember(row)
}

const listTeamMembers = `SELECT ` + teamMemberColumns + ` FROM team_members ORDER BY display_order ASC, name ASC`

// ListTeamMembers returns every team member in display order.
func (q *Queries) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	return queryAll(ctx, q.db, scanTeamMember, listTeamMembers)
}

const eventColumns = `id, title, description, event_date, location, event_type, created_at`

func scanEvent(s scanner) (Event, error) {
	var i Event
	err := s.Scan(&i.ID, &i.Title, &i.Description, &i.EventDate, &i.Location, &i.EventType, &i.CreatedAt)
	return i, err
}

// CreateEventParams holds the fields of a calendar event.
type CreateEventParams struct {
	Title       string
	Description sql.NullString
	EventDate   time.Time
	Location    sql.NullString
	EventType   string
}

const createEvent = `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

// CreateEvent inserts a calendar event.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		newID(), arg.Title, arg.Description, arg.EventDate, arg.Location, arg.EventType, time.Now().UTC())
	return scanEvent(row)
}

const listEvents = `SELECT ` + eventColumns + ` FROM events ORDER BY event_date DESC`

// ListEvents returns every event, latest first.
func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	return queryAll(ctx, q.db, scanEvent, listEvents)
}

const rollOverPastEvents = `UPDATE events SET event_type = 'past' WHERE event_type = 'upcoming' AND event_date < ?`

// RollOverPastEvents marks upcoming events dated before now as past and
// returns how many rows changed.
func (q *Queries) RollOverPastEvents(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, rollOverPastEvents, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const mediaColumns = `id, title, publication_name, publication_logo_url, article_url, published_date, created_at`

func scanMediaCoverage(s scanner) (MediaCoverage, error) {
	var i MediaCoverage
	err := s.Scan(&i.ID, &i.Title, &i.PublicationName, &i.PublicationLogoURL, &i.ArticleURL,
		&i.PublishedDate, &i.CreatedAt)
	return i, err
}

// CreateMediaCoverageParams holds the fields of a press mention.
type CreateMediaCoverageParams struct {
	Title              string
	PublicationName    string
	PublicationLogoURL sql.NullString
	ArticleURL         sql.NullString
	PublishedDate      sql.NullTime
}

const createMediaCoverage = `INSERT INTO media_coverage (` + mediaColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + mediaColumns

// CreateMediaCoverage inserts a press mention.
func (q *Queries) CreateMediaCoverage(ctx context.Context, arg CreateMediaCoverageParams) (MediaCoverage, error) {
	row := q.db.QueryRowContext(ctx, createMediaCoverage,
		newID(), arg.Title, arg.PublicationName, arg.PublicationLogoURL, arg.ArticleURL,
		arg.PublishedDate, time.Now().UTC())
	return scanMediaCoverage(row)
}

const listMediaCoverage = `SELECT ` + mediaColumns + ` FROM media_coverage
ORDER BY published_date IS NULL, published_date DESC
LIMIT ?`

// ListMediaCoverage returns the latest press mentions.
func (q *Queries) ListMediaCoverage(ctx context.Context, limit int64) ([]MediaCoverage, error) {
	return queryAll(ctx, q.db, scanMediaCoverage, listMediaCoverage, limit)
}

const blogPostColumns = `id, slug, title, content, excerpt, author, cover_image_url, published_at, created_at`

func scanBlogPost(s scanner) (BlogPost, error) {
	var i BlogPost
	err := s.Scan(&i.ID, &i.Slug, &i.Title, &i.Content, &i.Excerpt, &i.Author, &i.CoverImageURL,
		&i.PublishedAt, &i.CreatedAt)
	return i, err
}

// CreateBlogPostParams holds the fields of a blog post.
type CreateBlogPostParams struct {
	Slug          string
	Title         string
	Content       string
	Excerpt       sql.NullString
	Author        sql.NullString
	CoverImageURL sql.NullString
	PublishedAt   time.Time
}

const createBlogPost = `INSERT INTO blog_posts (` + blogPostColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

// CreateBlogPost inserts a blog post.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	now := time.Now().UTC()
	published := arg.PublishedAt
	if published.IsZero() {
		published = now
	}
	row := q.db.QueryRowContext(ctx, createBlogPost,
		newID(), arg.Slug, arg.Title, arg.Content, arg.Excerpt, arg.Author, arg.CoverImageURL,
		published, now)
	return scanBlogPost(row)
}

const listBlogPosts = `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY published_at DESC`

// ListBlogPosts returns every post, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return queryAll(ctx, q.db, scanBlogPost, listBlogPosts)
}

const getBlogPostBySlug = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = ?`

// GetBlogPostBySlug returns sql.ErrNoRows when no post has the slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}
