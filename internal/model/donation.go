// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Donation types as stored.
const (
	DonationSpecificSchool = "specific_school"
	DonationCause          = "cause"
	DonationGeneral        = "general"
)

// Cause is a fundable renovation category.
type Cause struct {
	ID    string
	Label string
}

// Causes returns the causes a donor can pledge to.
func Causes() []Cause {
	return []Cause{
		{ID: "wash", Label: "WASH (Water & Sanitation)"},
		{ID: "digital", Label: "Digital Lab"},
		{ID: "furniture", Label: "Furniture & Fixtures"},
		{ID: "library", Label: "Library & Books"},
	}
}

// PredefinedAmounts are the quick-pick pledge amounts in rupees.
var PredefinedAmounts = []int{1000, 5000, 10000, 25000, 50000, 100000}

// DonationTypeFromForm maps the donate form's choice to the stored type.
// Unknown values fall back to a general donation.
func DonationTypeFromForm(choice string) string {
	switch choice {
	case "specific":
		return DonationSpecificSchool
	case "cause":
		return DonationCause
	default:
		return DonationGeneral
	}
}

// CSRBudgetRanges are the budget bands offered to CSR partners.
var CSRBudgetRanges = []string{
	"₹1-5 Lakhs",
	"₹5-10 Lakhs",
	"₹10-25 Lakhs",
	"₹25-50 Lakhs",
	"₹50 Lakhs - 1 Crore",
	"₹1 Crore+",
}
