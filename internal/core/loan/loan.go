// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package loan tracks the individual copies of a book and who has them.

# Core Responsibility

  - Copies: each [BookInstance] is one physical copy with its own UUID, imprint and status.
  - Borrowing: a member sees the copies on loan to them; staff see every loan.
  - Renewal: staff may move a due date within a four-week window (see renewal.go).
*/
package loan

import (
	"fmt"

	"github.com/taibuivan/locallibrary/pkg/date"
)

// # Loan Status

// Status is the single-character availability code of a copy.
type Status string

const (
	StatusMaintenance Status = "m"
	StatusOnLoan      Status = "o"
	StatusAvailable   Status = "a"
	StatusReserved    Status = "r"
)

// DefaultStatus is assigned to copies created without a status.
const DefaultStatus = StatusMaintenance

// Statuses lists every valid code in display order.
var Statuses = []Status{StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved}

// Valid reports whether s is one of the four known codes.
func (s Status) Valid() bool {
	switch s {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved:
		return true
	}
	return false
}

// Label returns the human-readable status name.
func (s Status) Label() string {
	switch s {
	case StatusMaintenance:
		return "Maintenance"
	case StatusOnLoan:
		return "On Loan"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	}
	return ""
}

// # Domain Entities

// BookInstance is a specific copy of a book that can be borrowed.
type BookInstance struct {
	ID          string    `json:"id"`
	BookID      int64     `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	Imprint     string    `json:"imprint"`
	DueBack     date.Date `json:"due_back"`
	BorrowerID  *string   `json:"borrower_id"`
	Status      Status    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Overdue     bool      `json:"is_overdue"`
}

// String returns "<id> (<book title>)".
func (instance *BookInstance) String() string {
	return fmt.Sprintf("%s (%s)", instance.ID, instance.BookTitle)
}

// IsOverdue reports whether the copy has a due date strictly before today.
func (instance *BookInstance) IsOverdue(today date.Date) bool {
	return !instance.DueBack.IsZero() && instance.DueBack.Before(today)
}

// annotate fills the derived presentation fields.
func (instance *BookInstance) annotate(today date.Date) {
	instance.StatusLabel = instance.Status.Label()
	instance.Overdue = instance.IsOverdue(today)
}

// Input carries the fields of a new copy.
type Input struct {
	BookID     int64     `json:"book_id" validate:"required,gt=0"`
	Imprint    string    `json:"imprint" validate:"required,max=200"`
	DueBack    date.Date `json:"due_back"`
	BorrowerID *string   `json:"borrower_id" validate:"omitempty,uuid"`
	Status     Status    `json:"status" validate:"omitempty,oneof=m o a r"`
}

// RenewalForm is the first display of the renewal workflow.
type RenewalForm struct {
	Instance     *BookInstance `json:"instance"`
	RenewalDate  date.Date     `json:"renewal_date"`
	LatestDate   date.Date     `json:"latest_renewal_date"`
	EarliestDate date.Date     `json:"earliest_renewal_date"`
}

// RenewalRequest is the submitted renewal.
type RenewalRequest struct {
	RenewalDate string `json:"renewal_date"`
}

// # Field Identifiers

const (
	FieldRenewalDate = "renewal_date"
	FieldBookID      = "book_id"
	FieldImprint     = "imprint"
	FieldBorrowerID  = "borrower_id"
	FieldStatus      = "status"
)
