// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// School is a renovation project.
type School struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	Address                string         `json:"address"`
	District               string         `json:"district"`
	Taluk                  string         `json:"taluk"`
	State                  string         `json:"state"`
	StudentCount           int64          `json:"student_count"`
	TeacherCount           int64          `json:"teacher_count"`
	Latitude               float64        `json:"latitude"`
	Longitude              float64        `json:"longitude"`
	ProjectCode            string         `json:"project_code"`
	Status                 string         `json:"status"`
	TotalCost              float64        `json:"total_cost"`
	AmountRaised           float64        `json:"amount_raised"`
	WorkStartDate          sql.NullTime   `json:"work_start_date"`
	ExpectedCompletionDate sql.NullTime   `json:"expected_completion_date"`
	ActualCompletionDate   sql.NullTime   `json:"actual_completion_date"`
	PrincipalQuote         sql.NullString `json:"principal_quote"`
	NeedAssessment         sql.NullString `json:"need_assessment"`
	NgoPartnerID           sql.NullString `json:"ngo_partner_id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// CostItem is one line of a school's renovation budget.
type CostItem struct {
	ID          string         `json:"id"`
	SchoolID    string         `json:"school_id"`
	Category    string         `json:"category"`
	Description sql.NullString `json:"description"`
	Amount      float64        `json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
}

// SchoolPhoto is a before/during/after picture of a school.
type SchoolPhoto struct {
	ID         string         `json:"id"`
	SchoolID   string         `json:"school_id"`
	PhotoURL   string         `json:"photo_url"`
	Caption    sql.NullString `json:"caption"`
	PhotoType  string         `json:"photo_type"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

// Donation is a pledge captured by the donate form.
type Donation struct {
	ID            string         `json:"id"`
	SchoolID      sql.NullString `json:"school_id"`
	DonorName     sql.NullString `json:"donor_name"`
	DonorEmail    sql.NullString `json:"-"`
	IsAnonymous   bool           `json:"is_anonymous"`
	Amount        float64        `json:"amount"`
	DonationType  string         `json:"donation_type"`
	CauseCategory sql.NullString `json:"cause_category"`
	DonationDate  time.Time      `json:"donation_date"`
	CreatedAt     time.Time      `json:"created_at"`
}

// TeamMember is a person shown on the team page.
type TeamMember struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Role         string         `json:"role"`
	Bio          sql.NullString `json:"bio"`
	PhotoURL     sql.NullString `json:"photo_url"`
	LinkedinURL  sql.NullString `json:"linkedin_url"`
	Category     string         `json:"category"`
	DisplayOrder int64          `json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Event is a calendar event (not a log entry).
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	EventDate   time.Time      `json:"event_date"`
	Location    sql.NullString `json:"location"`
	EventType   string         `json:"event_type"`
	CreatedAt   time.Time      `json:"created_at"`
}

// MediaCoverage is a press mention.
type MediaCoverage struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	PublicationName    string         `json:"publication_name"`
	PublicationLogoURL sql.NullString `json:"publication_logo_url"`
	ArticleURL         sql.NullString `json:"article_url"`
	PublishedDate      sql.NullTime   `json:"published_date"`
	CreatedAt          time.Time      `json:"created_at"`
}

// BlogPost is a markdown article.
type BlogPost struct {
	ID            string         `json:"id"`
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Excerpt       sql.NullString `json:"excerpt"`
	Author        sql.NullString `json:"author"`
	CoverImageURL sql.NullString `json:"cover_image_url"`
	PublishedAt   time.Time      `json:"published_at"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ContactSubmission is a message from the contact form.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	Client    string
	CreatedAt time.Time
}

// NgoPartner is an NGO partnership registration.
type NgoPartner struct {
	ID                 string
	Name               string
	RegistrationNumber string
	Pan                string
	AreasOfOperation   string // JSON array
	ContactPerson      string
	Email              string
	Phone              string
	IsVerified         bool
	Client             string
	CreatedAt          time.Time
}

// CsrPartner is a corporate CSR partnership registration.
type CsrPartner struct {
	ID                    string
	CompanyName           string
	CsrRegistrationNumber string
	ContactPerson         string
	Email                 string
	Phone                 string
	PreferredStates       string // JSON array
	BudgetRange           string
	ReceiveProposals      bool
	Client                string
	CreatedAt             time.Time
}

// EventLog is a persisted warning or error.
type EventLog struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
