// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/notify"
	"github.com/sakshamfoundation/saksham-web/internal/store"
	"github.com/sakshamfoundation/saksham-web/internal/util"
)

// MinDonationAmount is the smallest pledge the donate form accepts, in rupees.
const MinDonationAmount = 100

// ValidationError lists the fields a submission is missing, keyed by form
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return "invalid submission: " + strings.Join(names, ", ")
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Notifier delivers lead events. *notify.Dispatcher implements it.
type Notifier interface {
	Dispatch(ctx context.Context, eventType string, data any) error
}

// FormService stores lead submissions and announces them.
type FormService struct {
	db       *sql.DB
	queries  *store.Queries
	events   *EventService
	notifier Notifier
	policy   *bluemonday.Policy
}

// NewFormService creates a FormService. notifier may be nil.
func NewFormService(db *sql.DB, notifier Notifier) *FormService {
	return &FormService{
		db:       db,
		queries:  store.New(db),
		events:   NewEventService(db),
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
	}
}

// sanitize trims s and strips any markup, leaving plain text.
func (s *FormService) sanitize(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(strings.TrimSpace(v))))
}

// SplitList turns repeated or comma separated form values into a list of
// unique entries in first-seen order.
func SplitList(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

type requiredFields map[string]string

func (r requiredFields) check(name, value, label string) {
	if value == "" {
		r[name] = label + " is required"
	}
}

func (r requiredFields) err() error {
	if len(r) == 0 {
		return nil
	}
	return &ValidationError{Fields: r}
}

func (s *FormService) announce(ctx context.Context, eventType string, data any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Dispatch(ctx, eventType, data); err != nil {
		slog.Warn("failed to queue notification", "error", err, "event_type", eventType)
	}
}

func (s *FormService) audit(ctx context.Context, message string, metadata map[string]any) {
	_ = s.events.LogFormEvent(ctx, model.EventLevelInfo, message, metadata)
}

// DonationForm is a submitted pledge.
type DonationForm struct {
	// Type is the form choice: specific, cause or general.
	Type       string
	SchoolID   string
	Cause      string
	Amount     string
	DonorName  string
	DonorEmail string
	Anonymous  bool
	Client     util.Client
}

// SubmitDonation records a pledge. Specific-school pledges also raise the
// school's amount_raised in the same transaction.
func (s *FormService) SubmitDonation(ctx context.Context, f DonationForm) (store.Donation, error) {
	donationType := model.DonationTypeFromForm(f.Type)
	name := s.sanitize(f.DonorName)
	email := s.sanitize(f.DonorEmail)
	cause := strings.TrimSpace(f.Cause)
	schoolID := strings.TrimSpace(f.SchoolID)

	missing := requiredFields{}
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	switch {
	case strings.TrimSpace(f.Amount) == "":
		missing["amount"] = "Amount is required"
	case err != nil, math.IsInf(amount, 0), math.IsNaN(amount):
		missing["amount"] = "Amount must be a number"
	case amount < MinDonationAmount:
		missing["amount"] = fmt.Sprintf("Minimum donation is ₹%d", MinDonationAmount)
	}
	if !f.Anonymous {
		missing.check("donor_name", name, "Full name")
		missing.check("donor_email", email, "Email")
	}

	var school store.School
	switch donationType {
	case model.DonationSpecificSchool:
		if schoolID == "" {
			missing["school_id"] = "Please choose a school"
			break
		}
		school, err = s.queries.GetSchoolByID(ctx, schoolID)
		if errors.Is(err, sql.ErrNoRows) {
			missing["school_id"] = "Please choose a school"
		} else if err != nil {
			return store.Donation{}, fmt.Errorf("loading school: %w", err)
		}
	case model.DonationCause:
		if !isCause(cause) {
			missing["cause"] = "Please choose a cause"
		}
	}
	if err := missing.err(); err != nil {
		return store.Donation{}, err
	}

	arg := store.CreateDonationParams{
		DonorEmail:   util.NullStringFromValue(email),
		IsAnonymous:  f.Anonymous,
		Amount:       amount,
		DonationType: donationType,
	}
	if !f.Anonymous {
		arg.DonorName = util.NullStringFromValue(name)
	}
	if donationType == model.DonationSpecificSchool {
		arg.SchoolID = sql.NullString{String: school.ID, Valid: true}
	}
	if donationType == model.DonationCause {
		arg.CauseCategory = sql.NullString{String: cause, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Donation{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	donation, err := qtx.CreateDonation(ctx, arg)
	if err != nil {
		return store.Donation{}, fmt.Errorf("creating donation: %w", err)
	}
	if arg.SchoolID.Valid {
		err = qtx.AddSchoolAmountRaised(ctx, store.AddSchoolAmountRaisedParams{
			Amount:    amount,
			UpdatedAt: donation.CreatedAt,
			ID:        school.ID,
		})
		if err != nil {
			return store.Donation{}, fmt.Errorf("updating school total: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return store.Donation{}, fmt.Errorf("committing donation: %w", err)
	}

	s.audit(ctx, "donation pledged", map[string]any{
		"donation_id": donation.ID,
		"type":        donationType,
		"amount":      amount,
		"client":      f.Client.String(),
	})
	s.announce(ctx, notify.EventDonationPledged, notify.DonationEventData{
		ID:            donation.ID,
		DonationType:  donationType,
		Amount:        amount,
		SchoolCode:    school.ProjectCode,
		SchoolName:    school.Name,
		CauseCategory: arg.CauseCategory.String,
		DonorName:     arg.DonorName.String,
		DonorEmail:    email,
		IsAnonymous:   f.Anonymous,
	})
	return donation, nil
}

func isCause(id string) bool {
	for _, c := range model.Causes() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ContactForm is a submitted contact message.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Client  util.Client
}

// SubmitContact records a contact message.
func (s *FormService) SubmitContact(ctx context.Context, f ContactForm) (store.ContactSubmission, error) {
	arg := store.CreateContactSubmissionParams{
		Name:    s.sanitize(f.Name),
		Email:   s.sanitize(f.Email),
		Phone:   s.sanitize(f.Phone),
		Message: s.sanitize(f.Message),
		Client:  f.Client.String(),
	}

	missing := requiredFields{}
	missing.check("name", arg.Name, "Name")
	missing.check("email", arg.Email, "Email")
	missing.check("message", arg.Message, "Message")
	if err := missing.err(); err != nil {
		return store.ContactSubmission{}, err
	}

	sub, err := s.queries.CreateContactSubmission(ctx, arg)
	if err != nil {
		return store.ContactSubmission{}, fmt.Errorf("creating contact submission: %w", err)
	}

	s.audit(ctx, "contact message received", map[string]any{"submission_id": sub.ID, "client": sub.Client})
	s.announce(ctx, notify.EventContactSubmitted, notify.ContactEventData{
		ID:      sub.ID,
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Message: sub.Message,
	})
	return sub, nil
}

// NGOForm is a submitted NGO registration.
type NGOForm struct {
	Name               string
	RegistrationNumber string
	Pan                string
	AreasOfOperation   []string
	ContactPerson      string
	Email              string
	Phone              string
	Client             util.Client
}

// RegisterNGO records an NGO registration. The partner starts unverified.
func (s *FormService) RegisterNGO(ctx context.Context, f NGOForm) (store.NgoPartner, error) {
	areas := s.sanitizeList(f.AreasOfOperation)
	areasJSON, err := json.Marshal(areas)
	if err != nil {
		return store.NgoPartner{}, fmt.Errorf("encoding areas: %w", err)
	}

	arg := store.CreateNGOPartnerParams{
		Name:               s.sanitize(f.Name),
		RegistrationNumber: s.sanitize(f.RegistrationNumber),
		Pan:                s.sanitize(f.Pan),
		AreasOfOperation:   string(areasJSON),
		ContactPerson:      s.sanitize(f.ContactPerson),
		Email:              s.sanitize(f.Email),
		Phone:              s.sanitize(f.Phone),
		Client:             f.Client.String(),
	}

	missing := requiredFields{}
	missing.check("name", arg.Name, "NGO name")
	missing.check("registration_number", arg.RegistrationNumber, "Registration number")
	missing.check("pan", arg.Pan, "PAN")
	missing.check("contact_person", arg.ContactPerson, "Contact person")
	missing.check("email", arg.Email, "Email")
	missing.check("phone", arg.Phone, "Phone")
	if err := missing.err(); err != nil {
		return store.NgoPartner{}, err
	}

	partner, err := s.queries.CreateNGOPartner(ctx, arg)
	if err != nil {
		return store.NgoPartner{}, fmt.Errorf("creating NGO partner: %w", err)
	}

	s.audit(ctx, "NGO partner registered", map[string]any{"partner_id": partner.ID, "client": partner.Client})
	s.announce(ctx, notify.EventNGOPartnerRegistered, notify.NGOEventData{
		ID:                 partner.ID,
		Name:               partner.Name,
		RegistrationNumber: partner.RegistrationNumber,
		AreasOfOperation:   areas,
		ContactPerson:      partner.ContactPerson,
		Email:              partner.Email,
		Phone:              partner.Phone,
	})
	return partner, nil
}

// CSRForm is a submitted CSR registration.
type CSRForm struct {
	CompanyName           string
	CsrRegistrationNumber string
	ContactPerson         string
	Email                 string
	Phone                 string
	PreferredStates       []string
	BudgetRange           string
	ReceiveProposals      bool
	Client                util.Client
}

// RegisterCSR records a CSR registration.
func (s *FormService) RegisterCSR(ctx context.Context, f CSRForm) (store.CsrPartner, error) {
	states := s.sanitizeList(f.PreferredStates)
	statesJSON, err := json.Marshal(states)
	if err != nil {
		return store.CsrPartner{}, fmt.Errorf("encoding states: %w", err)
	}

	arg := store.CreateCSRPartnerParams{
		CompanyName:           s.sanitize(f.CompanyName),
		CsrRegistrationNumber: s.sanitize(f.CsrRegistrationNumber),
		ContactPerson:         s.sanitize(f.ContactPerson),
		Email:                 s.sanitize(f.Email),
		Phone:                 s.sanitize(f.Phone),
		PreferredStates:       string(statesJSON),
		BudgetRange:           strings.TrimSpace(f.BudgetRange),
		ReceiveProposals:      f.ReceiveProposals,
		Client:                f.Client.String(),
	}

	missing := requiredFields{}
	missing.check("company_name", arg.CompanyName, "Company name")
	missing.check("contact_person", arg.ContactPerson, "Contact person")
	missing.check("email", arg.Email, "Email")
	missing.check("phone", arg.Phone, "Phone")
	missing.check("budget_range", arg.BudgetRange, "Budget range")
	if err := missing.err(); err != nil {
		return store.CsrPartner{}, err
	}

	partner, err := s.queries.CreateCSRPartner(ctx, arg)
	if err != nil {
		return store.CsrPartner{}, fmt.Errorf("creating CSR partner: %w", err)
	}

	s.audit(ctx, "CSR partner registered", map[string]any{"partner_id": partner.ID, "client": partner.Client})
	s.announce(ctx, notify.EventCSRPartnerRegistered, notify.CSREventData{
		ID:               partner.ID,
		CompanyName:      partner.CompanyName,
		ContactPerson:    partner.ContactPerson,
		Email:            partner.Email,
		Phone:            partner.Phone,
		PreferredStates:  states,
		BudgetRange:      partner.BudgetRange,
		ReceiveProposals: partner.ReceiveProposals,
	})
	return partner, nil
}

func (s *FormService) sanitizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range SplitList(values) {
		if clean := s.sanitize(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
