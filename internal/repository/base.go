package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// table holds the shared CRUD plumbing for a single database table.
// Queries are written with ? placeholders and rebound for the active driver.
type table[T any] struct {
	name     string
	idColumn string
	notFound error
}

func (t table[T]) byID(db sqlx.Ext, id string) (*T, error) {
	return t.one(db, fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", t.name, t.idColumn), id)
}

func (t table[T]) one(db sqlx.Ext, query string, args ...any) (*T, error) {
	row := new(T)
	err := sqlx.Get(db, row, db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, t.notFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (t table[T]) bySQL(db sqlx.Ext, query string, args ...any) ([]*T, error) {
	var rows []*T
	err := sqlx.Select(db, &rows, db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T]) countBySQL(db sqlx.Ext, query string, args ...any) (int, error) {
	var n int
	err := sqlx.Get(db, &n, db.Rebind(query), args...)
	return n, err
}

// insert writes the named columns of row
func (t table[T]) insert(db sqlx.Ext, row *T, columns ...string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)",
		t.name, strings.Join(columns, ", "), strings.Join(columns, ", :"))

	_, err := sqlx.NamedExec(db, query, row)
	return err
}

// update writes the named columns of row, matched on the primary key
func (t table[T]) update(db sqlx.Ext, row *T, columns ...string) error {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == t.idColumn {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = :%s", c, c))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = :%s",
		t.name, strings.Join(sets, ", "), t.idColumn, t.idColumn)

	result, err := sqlx.NamedExec(db, query, row)
	if err != nil {
		return err
	}
	return t.affected(result)
}

func (t table[T]) delete(db sqlx.Ext, id string) error {
	query := db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.name, t.idColumn))

	result, err := db.Exec(query, id)
	if err != nil {
		return err
	}
	return t.affected(result)
}

func (t table[T]) affected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return t.notFound
	}
	return nil
}

// isUniqueViolation works for both SQLite and PostgreSQL
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
