package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// isUUID guards UUID columns against ids Postgres would reject with a syntax error.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
