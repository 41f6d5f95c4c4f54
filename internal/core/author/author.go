package author

import (
	"fmt"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/pkg/date"
)

// Author represents the writer of one or more books.
type Author struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth date.Date `json:"date_of_birth"`
	DateOfDeath date.Date `json:"date_of_death"`
}

// String returns "last, first".
func (author *Author) String() string {
	return fmt.Sprintf("%s, %s", author.LastName, author.FirstName)
}

// Detail is an author with the books they wrote.
type Detail struct {
	*Author
	Name  string       `json:"name"`
	Books []*book.Book `json:"books"`
}

// Input carries the editable fields of an author. Absent dates are null.
type Input struct {
	FirstName   string    `json:"first_name" validate:"required,max=100"`
	LastName    string    `json:"last_name" validate:"required,max=100"`
	DateOfBirth date.Date `json:"date_of_birth"`
	DateOfDeath date.Date `json:"date_of_death"`
}

// InitialDateOfDeath pre-fills the create form.
var InitialDateOfDeath = date.New(2007, 11, 6)

// Global field names for validation
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"

	MaxNameLength = 100
)
