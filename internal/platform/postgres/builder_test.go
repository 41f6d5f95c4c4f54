package postgres_test

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% pure\_wool`, postgres.EscapeLike("100% pure_wool"))
	assert.Equal(t, `C:\\docs`, postgres.EscapeLike(`C:\docs`))
}

func TestBuild_PreparedPrefix(t *testing.T) {
	statement := postgres.Dialect.
		From(postgres.Table("catalog", "book")).
		Select(goqu.COUNT(goqu.Star())).
		Where(postgres.Prefix("title", "the")).
		Prepared(true)

	sql, args, err := postgres.Build(statement)
	require.NoError(t, err)

	assert.Equal(t, `SELECT COUNT(*) FROM "catalog"."book" WHERE ("title" LIKE $1)`, sql)
	assert.Equal(t, []any{"the%"}, args)
}

func TestTable(t *testing.T) {
	var table exp.IdentifierExpression = postgres.Table("catalog", "book_instance")

	assert.Equal(t, "catalog", table.GetSchema())
	assert.Equal(t, "book_instance", table.GetTable())
}
