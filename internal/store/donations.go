// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const donationColumns = `id, school_id, donor_name, donor_email, is_anonymous, amount, donation_type,
	cause_category, donation_date, created_at`

func scanDonation(s scanner) (Donation, error) {
	var i Donation
	err := s.Scan(
		&i.ID,
		&i.SchoolID,
		&i.DonorName,
		&i.DonorEmail,
		&i.IsAnonymous,
		&i.Amount,
		&i.DonationType,
		&i.CauseCategory,
		&i.DonationDate,
		&i.CreatedAt,
	)
	return i, err
}

// CreateDonationParams holds the fields of a pledge.
type CreateDonationParams struct {
	SchoolID      sql.NullString
	DonorName     sql.NullString
	DonorEmail    sql.NullString
	IsAnonymous   bool
	Amount        float64
	DonationType  string
	CauseCategory sql.NullString
	DonationDate  time.Time
}

const createDonation = `INSERT INTO donations (` + donationColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + donationColumns

// CreateDonation inserts a pledge.
func (q *Queries) CreateDonation(ctx context.Context, arg CreateDonationParams) (Donation, error) {
	now := time.Now().UTC()
	date := arg.DonationDate
	if date.IsZero() {
		date = now
	}
	row := q.db.QueryRowContext(ctx, createDonation,
		newID(),
		arg.SchoolID,
		arg.DonorName,
		arg.DonorEmail,
		arg.IsAnonymous,
		arg.Amount,
		arg.DonationType,
		arg.CauseCategory,
		date,
		now,
	)
	return scanDonation(row)
}

const listDonationAmounts = `SELECT amount FROM donations`

// ListDonationAmounts returns the amount of every pledge.
func (q *Queries) ListDonationAmounts(ctx context.Context) ([]float64, error) {
	return queryAll(ctx, q.db, func(s scanner) (float64, error) {
		var amount float64
		err := s.Scan(&amount)
		return amount, err
	}, listDonationAmounts)
}

const listRecentDonations = `SELECT ` + donationColumns + ` FROM donations ORDER BY donation_date DESC LIMIT ?`

// ListRecentDonations returns the latest pledges.
func (q *Queries) ListRecentDonations(ctx context.Context, limit int64) ([]Donation, error) {
	return queryAll(ctx, q.db, scanDonation, listRecentDonations, limit)
}

const countDonations = `SELECT COUNT(*) FROM donations`

// CountDonations returns the number of pledges.
func (q *Queries) CountDonations(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countDonations).Scan(&n)
	return n, err
}
