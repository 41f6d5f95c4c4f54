// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Science Fiction", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("first_name", "").                        // Fails
		MaxLen("last_name", "abcdefghijk", 10).             // Fails
		OneOf("status", "x", "m", "o", "a", "r").           // Fails
		Custom("date_of_death", true, "Must not precede"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 4 errors
	assert.Len(t, ae.Details, 4)
}

type bookPayload struct {
	Title string `json:"title" validate:"required,max=20"`
	ISBN  string `json:"isbn" validate:"required,isbn"`
}

/*
TestValidator_Struct verifies tag-driven rules report JSON field names.
*/
func TestValidator_Struct(t *testing.T) {
	v := &validate.Validator{}
	require.NoError(t, v.Struct(bookPayload{Title: "Dune", ISBN: "9780441013593"}).Err())

	v = &validate.Validator{}
	err := v.Struct(bookPayload{Title: "", ISBN: "12-34"}).Err()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "title", ae.Details[0].Field)
	assert.Equal(t, "This field is required", ae.Details[0].Message)
	assert.Equal(t, "isbn", ae.Details[1].Field)
}

/*
TestIsISBN covers the accepted ISBN shapes.
*/
func TestIsISBN(t *testing.T) {
	assert.True(t, validate.IsISBN("9780441013593"))
	assert.True(t, validate.IsISBN("080442957X"))
	assert.False(t, validate.IsISBN("978044101359X"))
	assert.False(t, validate.IsISBN("978-0441013593"))
	assert.False(t, validate.IsISBN(""))
}

/*
TestName verifies trimming and NFC normalization.
*/
func TestName(t *testing.T) {
	decomposed := "Cafe\u0301"
	assert.Equal(t, "Caf\u00e9", validate.Name("  "+decomposed+" "))
}
