/*
Package reference manages the taxonomy shared by every book: genres and languages.

# Core Responsibility

  - Genre: free-form subject categories; a book may carry many.
  - Language: the natural language a book is written in; a book carries at most one.

Both are plain named terms with identical rules, so one [Term] type serves
both and a [Kind] selects the table and the delete semantics.
*/
package reference

// # Kinds

// Kind selects which taxonomy a [Term] belongs to.
type Kind string

const (
	KindGenre    Kind = "genre"
	KindLanguage Kind = "language"
)

// Label is the capitalized kind used in messages, e.g. "Genre".
func (k Kind) Label() string {
	switch k {
	case KindGenre:
		return "Genre"
	case KindLanguage:
		return "Language"
	}
	return string(k)
}

// Plural is the list path segment, e.g. "genres".
func (k Kind) Plural() string {
	return string(k) + "s"
}

// # Domain

// Term is a single genre or language.
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// String returns the term's human-readable label.
func (t *Term) String() string {
	return t.Name
}

// BookRef is a lightweight pointer to a book using a term.
type BookRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Detail is a term together with the books that reference it.
type Detail struct {
	*Term
	Books []BookRef `json:"books"`
}

// Input carries the editable fields of a term.
type Input struct {
	Name string `json:"name" validate:"required,max=200"`
}

// # Field Identifiers

const (
	FieldName = "name"
)

// MaxNameLength bounds genre and language names.
const MaxNameLength = 200
