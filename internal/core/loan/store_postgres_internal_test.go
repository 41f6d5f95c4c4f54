// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

const loanOrder = `ORDER BY "bi"."due_back" ASC NULLS LAST, "bi"."id" ASC`

/*
TestPageStatement_LoanedTo checks the borrower listing filters on both the
borrower and the on-loan status and keeps the due date order.
*/
func TestPageStatement_LoanedTo(t *testing.T) {
	query, args, err := postgres.Build(pageStatement(loanedToFilter("reader-1"), 10, 20))
	require.NoError(t, err)

	assert.Contains(t, query, `"bi"."borrower_id" = $1`)
	assert.Contains(t, query, `"bi"."status" = $2`)
	assert.Contains(t, query, " AND ")
	assert.Contains(t, query, loanOrder)
	assert.Contains(t, query, "LIMIT $3 OFFSET $4")

	require.Len(t, args, 4)
	assert.Equal(t, "reader-1", args[0])
	assert.Equal(t, string(StatusOnLoan), args[1])
}

/*
TestPageStatement_AllOnLoan checks the staff listing filters on status alone.
*/
func TestPageStatement_AllOnLoan(t *testing.T) {
	query, args, err := postgres.Build(pageStatement(onLoanFilter(), 15, 15))
	require.NoError(t, err)

	assert.Contains(t, query, `"bi"."status" = $1`)
	assert.NotContains(t, query, "borrower_id\" =")
	assert.Contains(t, query, loanOrder)
	assert.Contains(t, query, "COUNT(*) OVER()")

	require.Len(t, args, 3)
	assert.Equal(t, string(StatusOnLoan), args[0])
}
