// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

func TestWriteError(t *testing.T) {
	book := &Book{ISBN: "9780441013593"}

	tests := []struct {
		name    string
		err     error
		code    string
		field   string
		message string
	}{
		{"duplicate_isbn", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "book_isbn_key"}, apperr.CodeConflict, "", "A book with ISBN 9780441013593 already exists"},
		{"missing_author", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "book_author_id_fkey"}, apperr.CodeValidation, FieldAuthorID, ""},
		{"missing_language", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "book_language_id_fkey"}, apperr.CodeValidation, FieldLanguageID, ""},
		{"missing_genre", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "book_genre_genre_id_fkey"}, apperr.CodeValidation, FieldGenreIDs, ""},
		{"unclassified", errors.New("connection reset"), apperr.CodeInternal, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(writeError(tt.err, book, "create_book"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)

			if tt.field != "" {
				require.Len(t, ae.Details, 1)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			}
			if tt.message != "" {
				assert.Equal(t, tt.message, ae.Message)
			}
		})
	}
}
