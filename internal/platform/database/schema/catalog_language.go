package schema

// CatalogLanguageTable represents the 'catalog.language' table
type CatalogLanguageTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogLanguage is the schema definition for catalog.language
var CatalogLanguage = CatalogLanguageTable{
	Table: "catalog.language",
	ID:    "id",
	Name:  "name",
}

func (t CatalogLanguageTable) Columns() []string {
	return []string{t.ID, t.Name}
}
