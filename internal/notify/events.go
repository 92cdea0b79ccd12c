// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify posts lead notifications (pledges, messages and partner
// registrations) to a configured webhook.
package notify

import (
	"time"
)

// Lead event types.
const (
	EventDonationPledged      = "donation.pledged"
	EventContactSubmitted     = "contact.submitted"
	EventNGOPartnerRegistered = "partner.ngo.registered"
	EventCSRPartnerRegistered = "partner.csr.registered"
)

// Event is the JSON body posted to the webhook.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// DonationEventData describes a pledge.
type DonationEventData struct {
	ID            string  `json:"id"`
	DonationType  string  `json:"donation_type"`
	Amount        float64 `json:"amount"`
	SchoolCode    string  `json:"school_code,omitempty"`
	SchoolName    string  `json:"school_name,omitempty"`
	CauseCategory string  `json:"cause_category,omitempty"`
	DonorName     string  `json:"donor_name,omitempty"`
	DonorEmail    string  `json:"donor_email,omitempty"`
	IsAnonymous   bool    `json:"is_anonymous"`
}

// ContactEventData describes a contact form message.
type ContactEventData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// NGOEventData describes an NGO registration.
type NGOEventData struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	RegistrationNumber string   `json:"registration_number"`
	AreasOfOperation   []string `json:"areas_of_operation"`
	ContactPerson      string   `json:"contact_person"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
}

// CSREventData describes a CSR registration.
type CSREventData struct {
	ID               string   `json:"id"`
	CompanyName      string   `json:"company_name"`
	ContactPerson    string   `json:"contact_person"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	PreferredStates  []string `json:"preferred_states"`
	BudgetRange      string   `json:"budget_range"`
	ReceiveProposals bool     `json:"receive_proposals"`
}
