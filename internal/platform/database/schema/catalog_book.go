package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table      string
	ID         string
	Title      string
	AuthorID   string
	Summary    string
	ISBN       string
	LanguageID string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:      "catalog.book",
	ID:         "id",
	Title:      "title",
	AuthorID:   "author_id",
	Summary:    "summary",
	ISBN:       "isbn",
	LanguageID: "language_id",
}

func (t CatalogBookTable) Columns() []string {
	return []string{t.ID, t.Title, t.AuthorID, t.Summary, t.ISBN, t.LanguageID}
}

// CatalogBookGenreTable represents the 'catalog.book_genre' junction table
type CatalogBookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// CatalogBookGenre is the schema definition for catalog.book_genre
var CatalogBookGenre = CatalogBookGenreTable{
	Table:   "catalog.book_genre",
	BookID:  "book_id",
	GenreID: "genre_id",
}
