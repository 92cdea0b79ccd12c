// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CreateContactSubmissionParams holds a contact form message.
type CreateContactSubmissionParams struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Client  string
}

const createContactSubmission = `INSERT INTO contact_submissions (id, name, email, phone, message, client, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, email, phone, message, client, created_at`

// CreateContactSubmission stores a contact form message.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, createContactSubmission,
		newID(), arg.Name, arg.Email, arg.Phone, arg.Message, arg.Client, time.Now().UTC())
	var i ContactSubmission
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.Message, &i.Client, &i.CreatedAt)
	return i, err
}

// CreateNGOPartnerParams holds an NGO partnership registration.
type CreateNGOPartnerParams struct {
	Name               string
	RegistrationNumber string
	Pan                string
	AreasOfOperation   string
	ContactPerson      string
	Email              string
	Phone              string
	Client             string
}

const createNGOPartner = `INSERT INTO ngo_partners (id, name, registration_number, pan, areas_of_operation,
	contact_person, email, phone, is_verified, client, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
RETURNING id, name, registration_number, pan, areas_of_operation, contact_person, email, phone,
	is_verified, client, created_at`

// CreateNGOPartner stores an NGO registration. New partners start unverified.
func (q *Queries) CreateNGOPartner(ctx context.Context, arg CreateNGOPartnerParams) (NgoPartner, error) {
	row := q.db.QueryRowContext(ctx, createNGOPartner,
		newID(), arg.Name, arg.RegistrationNumber, arg.Pan, arg.AreasOfOperation,
		arg.ContactPerson, arg.Email, arg.Phone, arg.Client, time.Now().UTC())
	var i NgoPartner
	err := row.Scan(&i.ID, &i.Name, &i.RegistrationNumber, &i.Pan, &i.AreasOfOperation,
		&i.ContactPerson, &i.Email, &i.Phone, &i.IsVerified, &i.Client, &i.CreatedAt)
	return i, err
}

const countVerifiedNGOPartners = `SELECT COUNT(*) FROM ngo_partners WHERE is_verified = 1`

// CountVerifiedNGOPartners returns the number of verified partners.
func (q *Queries) CountVerifiedNGOPartners(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countVerifiedNGOPartners).Scan(&n)
	return n, err
}

const verifyNGOPartner = `UPDATE ngo_partners SET is_verified = 1 WHERE id = ?`

// VerifyNGOPartner marks a partner as verified.
func (q *Queries) VerifyNGOPartner(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, verifyNGOPartner, id)
	return err
}

// CreateCSRPartnerParams holds a corporate CSR registration.
type CreateCSRPartnerParams struct {
	CompanyName           string
	CsrRegistrationNumber string
	ContactPerson         string
	Email                 string
	Phone                 string
	PreferredStates       string
	BudgetRange           string
	ReceiveProposals      bool
	Client                string
}

const createCSRPartner = `INSERT INTO csr_partners (id, company_name, csr_registration_number, contact_person,
	email, phone, preferred_states, budget_range, receive_proposals, client, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, company_name, csr_registration_number, contact_person, email, phone, preferred_states,
	budget_range, receive_proposals, client, created_at`

// CreateCSRPartner stores a CSR registration.
func (q *Queries) CreateCSRPartner(ctx context.Context, arg CreateCSRPartnerParams) (CsrPartner, error) {
	row := q.db.QueryRowContext(ctx, createCSRPartner,
		newID(), arg.CompanyName, arg.CsrRegistrationNumber, arg.ContactPerson, arg.Email, arg.Phone,
		arg.PreferredStates, arg.BudgetRange, arg.ReceiveProposals, arg.Client, time.Now().UTC())
	var i CsrPartner
	err := row.Scan(&i.ID, &i.CompanyName, &i.CsrRegistrationNumber, &i.ContactPerson, &i.Email,
		&i.Phone, &i.PreferredStates, &i.BudgetRange, &i.ReceiveProposals, &i.Client, &i.CreatedAt)
	return i, err
}
