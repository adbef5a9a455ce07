package database

import (
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/nft-maker-one/twitter-clone/internal/models"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	b, err := fs.ReadFile(migrationFS, "migrations/"+name)
	require.NoError(t, err)
	return string(b)
}

// Every column gorm reads or writes must exist in the Postgres schema.
func TestMigrationCoversModelColumns(t *testing.T) {
	up := readMigration(t, "000001_init_schema.up.sql")
	cache := &sync.Map{}

	for _, model := range models.All() {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		start := strings.Index(up, "CREATE TABLE IF NOT EXISTS "+s.Table+" (")
		require.GreaterOrEqual(t, start, 0, "table %s missing", s.Table)
		body := up[start:]
		body = body[:strings.Index(body, ");")]

		for _, f := range s.Fields {
			if f.DBName == "" {
				continue
			}
			assert.Contains(t, body, "\n    "+f.DBName+" ", "column %s.%s missing", s.Table, f.DBName)
		}
	}
}

func TestMigrationSearchIndex(t *testing.T) {
	up := readMigration(t, "000001_init_schema.up.sql")
	assert.Contains(t, up, "GENERATED ALWAYS AS (to_tsvector('english', content)) STORED")
	assert.Contains(t, up, "USING GIN (search_vector)")

	down := readMigration(t, "000001_init_schema.down.sql")
	for _, table := range []string{"users", "follows", "posts", "comments", "likes", "notifications"} {
		assert.Contains(t, down, "DROP TABLE IF EXISTS "+table+";")
	}
}
