package repos

import (
	"database/sql"
	"errors"
)

func IsNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
