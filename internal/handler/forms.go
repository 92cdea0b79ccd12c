// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/sakshamfoundation/saksham-web/internal/metrics"
	"github.com/sakshamfoundation/saksham-web/internal/router"
	"github.com/sakshamfoundation/saksham-web/internal/service"
	"github.com/sakshamfoundation/saksham-web/internal/util"
)

// Form names reported to metrics.
const (
	FormDonation = "donation"
	FormContact  = "contact"
	FormNGO      = "ngo"
	FormCSR      = "csr"
)

const honeypotField = "_website"

// Success messages shown after each submission.
const (
	msgDonationRecorded = "Thank You for Your Generosity! Your donation has been recorded. " +
		"Our team will contact you shortly with payment details."
	msgNGORegistered = "Registration Submitted! Our team will review your application " +
		"and contact you within 5-7 business days."
	msgCSRRegistered = "Registration Submitted! Thank you for your interest. " +
		"Our team will contact you with project proposals within 3-5 business days."
	msgContactSent    = "Message Sent! We'll get back to you within 24-48 hours."
	msgSubmitFailed   = "Something went wrong while saving your submission. Please try again."
	msgInvalidSummary = "Please correct the following: "
)

// submission reads the form and handles the honeypot. It returns false when
// the response is already decided.
func (h *SiteHandler) submission(r *http.Request, form, success string) bool {
	path := router.FromContext(r.Context()).Current()
	if !parseFormOrNavigate(r, h.renderer, path) {
		h.metrics.RecordFormSubmission(form, metrics.OutcomeInvalid)
		return false
	}

	// A filled honeypot reports success and stores nothing.
	if r.PostFormValue(honeypotField) != "" {
		slog.Info("honeypot triggered", "form", form, "ip", r.RemoteAddr)
		h.metrics.RecordFormSubmission(form, metrics.OutcomeSpam)
		flashSuccess(r, h.renderer, path, success)
		return false
	}
	return true
}

// finishForm flashes the outcome of a submission and navigates back to the
// form so the browser follows a 303 to a fresh GET.
func (h *SiteHandler) finishForm(r *http.Request, form, success string, err error) {
	path := router.FromContext(r.Context()).Current()

	var ve *service.ValidationError
	switch {
	case err == nil:
		h.metrics.RecordFormSubmission(form, metrics.OutcomeAccepted)
		flashSuccess(r, h.renderer, path, success)
	case errors.As(err, &ve):
		h.metrics.RecordFormSubmission(form, metrics.OutcomeInvalid)
		flashError(r, h.renderer, path, validationMessage(ve))
	default:
		slog.Error("form submission failed", "form", form, "error", err)
		h.metrics.RecordFormSubmission(form, metrics.OutcomeError)
		flashError(r, h.renderer, path, msgSubmitFailed)
	}
}

// validationMessage joins the field messages in field-name order.
func validationMessage(ve *service.ValidationError) string {
	names := make([]string, 0, len(ve.Fields))
	for name := range ve.Fields {
		names = append(names, name)
	}
	slices.Sort(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = ve.Fields[name]
	}
	return msgInvalidSummary + strings.Join(msgs, "; ") + "."
}

func client(r *http.Request) util.Client {
	return util.ParseClient(r.UserAgent())
}

func (h *SiteHandler) submitDonation(w http.ResponseWriter, r *http.Request) {
	if !h.submission(r, FormDonation, msgDonationRecorded) {
		return
	}
	_, err := h.forms.SubmitDonation(r.Context(), service.DonationForm{
		Type:       r.PostFormValue("donation_type"),
		SchoolID:   r.PostFormValue("school_id"),
		Cause:      r.PostFormValue("cause"),
		Amount:     r.PostFormValue("amount"),
		DonorName:  r.PostFormValue("donor_name"),
		DonorEmail: r.PostFormValue("donor_email"),
		Anonymous:  r.PostFormValue("is_anonymous") == "true",
		Client:     client(r),
	})
	h.finishForm(r, FormDonation, msgDonationRecorded, err)
}

func (h *SiteHandler) submitContact(w http.ResponseWriter, r *http.Request) {
	if !h.submission(r, FormContact, msgContactSent) {
		return
	}
	_, err := h.forms.SubmitContact(r.Context(), service.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Message: r.PostFormValue("message"),
		Client:  client(r),
	})
	h.finishForm(r, FormContact, msgContactSent, err)
}

func (h *SiteHandler) submitNGO(w http.ResponseWriter, r *http.Request) {
	if !h.submission(r, FormNGO, msgNGORegistered) {
		return
	}
	_, err := h.forms.RegisterNGO(r.Context(), service.NGOForm{
		Name:               r.PostFormValue("name"),
		RegistrationNumber: r.PostFormValue("registration_number"),
		Pan:                r.PostFormValue("pan"),
		AreasOfOperation:   service.SplitList(r.PostForm["areas_of_operation"]),
		ContactPerson:      r.PostFormValue("contact_person"),
		Email:              r.PostFormValue("email"),
		Phone:              r.PostFormValue("phone"),
		Client:             client(r),
	})
	h.finishForm(r, FormNGO, msgNGORegistered, err)
}

func (h *SiteHandler) submitCSR(w http.ResponseWriter, r *http.Request) {
	if !h.submission(r, FormCSR, msgCSRRegistered) {
		return
	}
	_, err := h.forms.RegisterCSR(r.Context(), service.CSRForm{
		CompanyName:           r.PostFormValue("company_name"),
		CsrRegistrationNumber: r.PostFormValue("csr_registration_number"),
		ContactPerson:         r.PostFormValue("contact_person"),
		Email:                 r.PostFormValue("email"),
		Phone:                 r.PostFormValue("phone"),
		PreferredStates:       service.SplitList(r.PostForm["preferred_states"]),
		BudgetRange:           r.PostFormValue("budget_range"),
		ReceiveProposals:      r.PostFormValue("receive_proposals") == "true",
		Client:                client(r),
	})
	h.finishForm(r, FormCSR, msgCSRRegistered, err)
}
