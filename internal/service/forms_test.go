// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/notify"
	"github.com/sakshamfoundation/saksham-web/internal/store"
	"github.com/sakshamfoundation/saksham-web/internal/testutil"
	"github.com/sakshamfoundation/saksham-web/internal/util"
)

type dispatched struct {
	eventType string
	data      any
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []dispatched
	err    error
}

func (f *fakeNotifier) Dispatch(_ context.Context, eventType string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, dispatched{eventType, data})
	return f.err
}

func newFormService(t *testing.T) (*FormService, *sql.DB, *fakeNotifier) {
	t.Helper()
	db := testutil.TestSeededDB(t)
	n := &fakeNotifier{}
	return NewFormService(db, n), db, n
}

func schoolByCode(t *testing.T, db *sql.DB, code string) store.School {
	t.Helper()
	s, err := store.New(db).GetSchoolByProjectCode(context.Background(), code)
	require.NoError(t, err)
	return s
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Fields
}

func TestSubmitDonation_SpecificSchool(t *testing.T) {
	svc, db, n := newFormService(t)
	ctx := context.Background()
	school := schoolByCode(t, db, "KA-KLB-004")

	d, err := svc.SubmitDonation(ctx, DonationForm{
		Type:       "specific",
		SchoolID:   school.ID,
		Amount:     "25000",
		DonorName:  "  Meera Iyer ",
		DonorEmail: "meera@example.org",
		Client:     util.Client{Browser: "Firefox", OS: "Linux", DeviceType: "desktop"},
	})
	require.NoError(t, err)

	assert.Equal(t, model.DonationSpecificSchool, d.DonationType)
	assert.Equal(t, school.ID, d.SchoolID.String)
	assert.Equal(t, "Meera Iyer", d.DonorName.String)
	assert.Equal(t, "meera@example.org", d.DonorEmail.String)
	assert.False(t, d.CauseCategory.Valid)

	updated := schoolByCode(t, db, "KA-KLB-004")
	assert.Equal(t, 25000.0, updated.AmountRaised)

	require.Len(t, n.events, 1)
	assert.Equal(t, notify.EventDonationPledged, n.events[0].eventType)
	data := n.events[0].data.(notify.DonationEventData)
	assert.Equal(t, "KA-KLB-004", data.SchoolCode)
	assert.Equal(t, 25000.0, data.Amount)

	entries, err := store.New(db).ListEventLog(ctx, store.ListEventLogParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EventCategoryForm, entries[0].Category)
	assert.Contains(t, entries[0].Metadata, "desktop/Firefox/Linux")
}

func TestSubmitDonation_CauseAndGeneral(t *testing.T) {
	svc, _, _ := newFormService(t)
	ctx := context.Background()

	d, err := svc.SubmitDonation(ctx, DonationForm{
		Type: "cause", Cause: "library", Amount: "1000", DonorName: "A", DonorEmail: "a@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DonationCause, d.DonationType)
	assert.Equal(t, "library", d.CauseCategory.String)
	assert.False(t, d.SchoolID.Valid)

	d, err = svc.SubmitDonation(ctx, DonationForm{
		Type: "something-else", Amount: "100.50", DonorName: "B", DonorEmail: "b@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DonationGeneral, d.DonationType)
	assert.Equal(t, 100.5, d.Amount)
}

func TestSubmitDonation_Anonymous(t *testing.T) {
	svc, _, n := newFormService(t)

	d, err := svc.SubmitDonation(context.Background(), DonationForm{
		Type: "general", Amount: "5000", DonorName: "Hidden Name", Anonymous: true,
	})
	require.NoError(t, err)
	assert.True(t, d.IsAnonymous)
	assert.False(t, d.DonorName.Valid)

	data := n.events[0].data.(notify.DonationEventData)
	assert.Empty(t, data.DonorName)
	assert.True(t, data.IsAnonymous)
}

func TestSubmitDonation_Validation(t *testing.T) {
	svc, db, n := newFormService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		form DonationForm
		want []string
	}{
		{"missing everything", DonationForm{Type: "general"}, []string{"amount", "donor_name", "donor_email"}},
		{"not a number", DonationForm{Type: "general", Amount: "lots", Anonymous: true}, []string{"amount"}},
		{"below minimum", DonationForm{Type: "general", Amount: "99", Anonymous: true}, []string{"amount"}},
		{"infinity", DonationForm{Type: "general", Amount: "Inf", Anonymous: true}, []string{"amount"}},
		{"signed infinity", DonationForm{Type: "general", Amount: "+Inf", Anonymous: true}, []string{"amount"}},
		{"not a number literal", DonationForm{Type: "general", Amount: "NaN", Anonymous: true}, []string{"amount"}},
		{"overflow", DonationForm{Type: "general", Amount: "1e400", Anonymous: true}, []string{"amount"}},
		{"no school", DonationForm{Type: "specific", Amount: "500", Anonymous: true}, []string{"school_id"}},
		{"unknown school", DonationForm{Type: "specific", SchoolID: "nope", Amount: "500", Anonymous: true}, []string{"school_id"}},
		{"unknown cause", DonationForm{Type: "cause", Cause: "rockets", Amount: "500", Anonymous: true}, []string{"cause"}},
		{"markup only name", DonationForm{Type: "general", Amount: "500", DonorName: "<b></b>", DonorEmail: "x@example.org"}, []string{"donor_name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitDonation(ctx, tt.form)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			fields := fieldErrors(t, err)
			for _, f := range tt.want {
				assert.Contains(t, fields, f)
			}
			assert.Len(t, fields, len(tt.want))
		})
	}

	count, err := store.New(db).CountDonations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "only seeded donations remain")
	assert.Empty(t, n.events)
}

func TestSubmitDonation_NonFiniteAmount(t *testing.T) {
	svc, db, _ := newFormService(t)
	ctx := context.Background()

	for _, amount := range []string{"Inf", "+Inf", "-Inf", "infinity", "NaN", "1e400"} {
		_, err := svc.SubmitDonation(ctx, DonationForm{Type: "general", Amount: amount, Anonymous: true})
		require.Error(t, err, amount)
		assert.Equal(t, "Amount must be a number", fieldErrors(t, err)["amount"], amount)
	}

	dash, err := NewSiteService(db).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 535000.0, dash.TotalRaised)
	assert.Equal(t, 13, dash.Progress)
}

func TestSubmitContact(t *testing.T) {
	svc, _, n := newFormService(t)

	sub, err := svc.SubmitContact(context.Background(), ContactForm{
		Name:    "<b>Ravi</b> & Co",
		Email:   "ravi@example.org",
		Message: "Hello<script>alert(1)</script> there",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi & Co", sub.Name)
	assert.NotContains(t, sub.Message, "<script>")
	assert.Contains(t, sub.Message, "Hello")
	assert.Empty(t, sub.Phone)
	assert.Empty(t, sub.Client)

	require.Len(t, n.events, 1)
	assert.Equal(t, notify.EventContactSubmitted, n.events[0].eventType)

	_, err = svc.SubmitContact(context.Background(), ContactForm{Name: " ", Email: "x@example.org"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "message")
	assert.NotContains(t, fields, "email")
}

func TestRegisterNGO(t *testing.T) {
	svc, _, n := newFormService(t)

	p, err := svc.RegisterNGO(context.Background(), NGOForm{
		Name:               "Shiksha Trust",
		RegistrationNumber: "KA/123/2019",
		Pan:                "AAATS1234Q",
		AreasOfOperation:   []string{"Belagavi, Dharwad", "Belagavi", " ", "Gadag"},
		ContactPerson:      "Lakshmi",
		Email:              "lakshmi@example.org",
		Phone:              "+91 98450 00000",
	})
	require.NoError(t, err)
	assert.False(t, p.IsVerified)
	assert.JSONEq(t, `["Belagavi","Dharwad","Gadag"]`, p.AreasOfOperation)

	data := n.events[0].data.(notify.NGOEventData)
	assert.Equal(t, []string{"Belagavi", "Dharwad", "Gadag"}, data.AreasOfOperation)

	_, err = svc.RegisterNGO(context.Background(), NGOForm{Name: "Only name"})
	fields := fieldErrors(t, err)
	assert.Len(t, fields, 5)
	assert.NotContains(t, fields, "name")
}

func TestRegisterNGO_EmptyAreas(t *testing.T) {
	svc, _, _ := newFormService(t)

	p, err := svc.RegisterNGO(context.Background(), NGOForm{
		Name: "N", RegistrationNumber: "R", Pan: "P", ContactPerson: "C", Email: "e@example.org", Phone: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "[]", p.AreasOfOperation)
}

func TestRegisterCSR(t *testing.T) {
	svc, _, n := newFormService(t)

	p, err := svc.RegisterCSR(context.Background(), CSRForm{
		CompanyName:      "Acme Industries",
		ContactPerson:    "Vikram",
		Email:            "csr@acme.example",
		Phone:            "080 1234",
		PreferredStates:  []string{"Karnataka", "Tamil Nadu"},
		BudgetRange:      model.CSRBudgetRanges[2],
		ReceiveProposals: true,
	})
	require.NoError(t, err)
	assert.True(t, p.ReceiveProposals)
	assert.Empty(t, p.CsrRegistrationNumber)
	assert.JSONEq(t, `["Karnataka","Tamil Nadu"]`, p.PreferredStates)
	assert.Equal(t, notify.EventCSRPartnerRegistered, n.events[0].eventType)

	_, err = svc.RegisterCSR(context.Background(), CSRForm{CompanyName: "Acme"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "budget_range")
	assert.NotContains(t, fields, "csr_registration_number")
}

func TestFormService_NotifierFailureDoesNotFailSubmission(t *testing.T) {
	svc, _, n := newFormService(t)
	n.err = notify.ErrQueueFull

	_, err := svc.SubmitContact(context.Background(), ContactForm{Name: "A", Email: "a@example.org", Message: "m"})
	assert.NoError(t, err)
}

func TestFormService_NilNotifier(t *testing.T) {
	svc := NewFormService(testutil.TestDB(t), nil)
	_, err := svc.SubmitContact(context.Background(), ContactForm{Name: "A", Email: "a@example.org", Message: "m"})
	assert.NoError(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList([]string{"a, b", "a", "", " c "}))
	assert.Empty(t, SplitList(nil))
}
