package repository

import (
	"context"
	"database/sql"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
	DriverName() string
}

// columns renders a select list with quoted lower-case aliases so Oracle's
// upper-cased column names still map onto the lower-case db tags.
func columns(names ...string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ` AS "` + n + `"`
	}
	return strings.Join(parts, ", ")
}

// textArg binds long text. go-ora refuses strings over the VARCHAR2 bind
// limit unless they are sent as a CLOB.
func textArg(exec DBTX, s string) interface{} {
	if exec.DriverName() == "oracle" {
		return go_ora.Clob{String: s, Valid: true}
	}
	return s
}

func nullTextArg(exec DBTX, s sql.NullString) interface{} {
	if exec.DriverName() == "oracle" {
		return go_ora.Clob{String: s.String, Valid: s.Valid}
	}
	return s
}
