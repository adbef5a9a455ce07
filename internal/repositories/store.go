package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
)

// dialectPostgres is the gorm dialector name of the production store.
const dialectPostgres = "postgres"

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == dialectPostgres
}

// storeErr maps a missing row to notFound and classifies everything else.
func storeErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.FromStore(err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded LIKE pattern matching s anywhere.
// Use with "LIKE ? ESCAPE '\'".
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

const likeEscapeClause = ` ESCAPE '\'`
