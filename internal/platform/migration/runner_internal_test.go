package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/library", convertToPgx5DSN("postgres://u:p@db:5432/library"))
	assert.Equal(t, "pgx5://db/library", convertToPgx5DSN("postgresql://db/library"))
	assert.Equal(t, "pgx5://db/library", convertToPgx5DSN("pgx5://db/library"))
	assert.Equal(t, "host=db dbname=library", convertToPgx5DSN("host=db dbname=library"))
}
