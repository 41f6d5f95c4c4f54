package loan_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/pkg/date"
)

/*
TestValidateRenewalDate sweeps the window around today, both bounds included.
*/
func TestValidateRenewalDate(t *testing.T) {
	today := date.New(2026, 3, 10)

	for offset := -40; offset <= 40; offset++ {
		err := loan.ValidateRenewalDate(today.AddDays(offset), today)

		switch {
		case offset < 0:
			var renewal *loan.RenewalError
			require.True(t, errors.As(err, &renewal), "offset %d", offset)
			assert.Equal(t, loan.ReasonPast, renewal.Reason)
			assert.Equal(t, "Invalid date - renewal must be in the future", err.Error())
		case offset > 28:
			var renewal *loan.RenewalError
			require.True(t, errors.As(err, &renewal), "offset %d", offset)
			assert.Equal(t, loan.ReasonTooFar, renewal.Reason)
			assert.Equal(t, "Invalid date - renewal more than 4 weeks ahead", err.Error())
		default:
			assert.NoError(t, err, "offset %d", offset)
		}
	}
}

func TestValidateRenewalDate_Boundaries(t *testing.T) {
	today := date.New(2026, 12, 20)

	assert.NoError(t, loan.ValidateRenewalDate(today, today))
	assert.NoError(t, loan.ValidateRenewalDate(today.AddDays(28), today))
	assert.Error(t, loan.ValidateRenewalDate(today.AddDays(-1), today))
	assert.Error(t, loan.ValidateRenewalDate(today.AddDays(29), today))
}

func TestProposedRenewal(t *testing.T) {
	assert.Equal(t, date.New(2026, 1, 22), loan.ProposedRenewal(date.New(2026, 1, 1)))
}

func TestBookInstance_IsOverdue(t *testing.T) {
	today := date.New(2026, 5, 1)

	assert.True(t, (&loan.BookInstance{DueBack: today.AddDays(-1)}).IsOverdue(today))
	assert.False(t, (&loan.BookInstance{DueBack: today}).IsOverdue(today))
	assert.False(t, (&loan.BookInstance{}).IsOverdue(today))
}

func TestStatus(t *testing.T) {
	for _, status := range loan.Statuses {
		assert.True(t, status.Valid())
		assert.NotEmpty(t, status.Label())
	}
	assert.Equal(t, "On Loan", loan.StatusOnLoan.Label())
	assert.False(t, loan.Status("x").Valid())
}

func TestBookInstance_String(t *testing.T) {
	instance := &loan.BookInstance{ID: "6f1c", BookTitle: "Dune"}
	assert.Equal(t, "6f1c (Dune)", instance.String())
}
