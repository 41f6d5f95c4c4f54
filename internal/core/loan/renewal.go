// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"github.com/taibuivan/locallibrary/pkg/date"
)

const (
	// RenewalWindowDays is the furthest a due date may be pushed past today.
	RenewalWindowDays = 28

	// ProposedRenewalDays pre-fills the renewal form (three weeks).
	ProposedRenewalDays = 21
)

// RenewalReason classifies a rejected renewal date.
type RenewalReason string

const (
	ReasonPast   RenewalReason = "past"
	ReasonTooFar RenewalReason = "too_far"
)

// RenewalError reports why a renewal date was rejected.
type RenewalError struct {
	Reason RenewalReason
}

func (e *RenewalError) Error() string {
	switch e.Reason {
	case ReasonPast:
		return "Invalid date - renewal must be in the future"
	case ReasonTooFar:
		return "Invalid date - renewal more than 4 weeks ahead"
	}
	return "Invalid date"
}

// ValidateRenewalDate accepts candidate when today <= candidate <= today+28 days.
//
// Both bounds are inclusive. The function is pure: the caller supplies today.
func ValidateRenewalDate(candidate, today date.Date) error {
	if candidate.Before(today) {
		return &RenewalError{Reason: ReasonPast}
	}
	if candidate.After(today.AddDays(RenewalWindowDays)) {
		return &RenewalError{Reason: ReasonTooFar}
	}
	return nil
}

// ProposedRenewal is the date offered on first display of the renewal form.
func ProposedRenewal(today date.Date) date.Date {
	return today.AddDays(ProposedRenewalDays)
}
