// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount formats an integer with thousands separators, e.g. 12,345.
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatINR formats a rupee amount with no fractional digits and Indian
// digit grouping, e.g. ₹1,00,000. NaN and infinities render as "₹–".
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₹–"
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + "₹" + groupIndian(strconv.FormatFloat(math.Abs(rounded), 'f', 0, 64))
}

// groupIndian inserts separators after the last three digits and then after
// every two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
