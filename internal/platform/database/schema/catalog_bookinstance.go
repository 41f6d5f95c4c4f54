package schema

// CatalogBookInstanceTable represents the 'catalog.book_instance' table
type CatalogBookInstanceTable struct {
	Table      string
	ID         string
	BookID     string
	Imprint    string
	DueBack    string
	BorrowerID string
	Status     string
}

// CatalogBookInstance is the schema definition for catalog.book_instance
var CatalogBookInstance = CatalogBookInstanceTable{
	Table:      "catalog.book_instance",
	ID:         "id",
	BookID:     "book_id",
	Imprint:    "imprint",
	DueBack:    "due_back",
	BorrowerID: "borrower_id",
	Status:     "status",
}

func (t CatalogBookInstanceTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Imprint, t.DueBack, t.BorrowerID, t.Status}
}
