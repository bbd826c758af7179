package sqldialect

import (
	"fmt"
	"strings"

	"github.com/QuangTung97/eventstore/model"
	"github.com/jmoiron/sqlx"
)

// Dialect of the underlying relational database
type Dialect int

const (
	// MySQL ...
	MySQL Dialect = 1

	// Postgres ...
	Postgres Dialect = 2

	// SQLite ...
	SQLite Dialect = 3
)

// ErrUnsupported when the dialect can not express an operation
var ErrUnsupported = fmt.Errorf("%w: operation not supported by dialect", model.ErrUsage)

// FromDriverName ...
func FromDriverName(name string) (Dialect, error) {
	switch name {
	case "mysql":
		return MySQL, nil
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unknown database driver %q", name)
	}
}

// DriverName returns the database/sql driver name
func (d Dialect) DriverName() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// String ...
func (d Dialect) String() string {
	return d.DriverName()
}

// Quote quotes an identifier
func (d Dialect) Quote(ident string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Rebind converts ? placeholders to the dialect's bind type
func (d Dialect) Rebind(query string) string {
	if d == Postgres {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return query
}

// TransactionalDDL reports whether DDL statements take part in transactions.
// MySQL commits implicitly on every DDL statement.
func (d Dialect) TransactionalDDL() bool {
	return d != MySQL
}

// JSONField returns an expression extracting key of a JSON object column as scalar
func (d Dialect) JSONField(column string, key string) string {
	key = strings.ReplaceAll(key, "'", "''")
	switch d {
	case Postgres:
		return fmt.Sprintf("%s->>'%s'", column, key)
	case SQLite:
		return fmt.Sprintf(`json_extract(%s, '$."%s"')`, column, key)
	default:
		return fmt.Sprintf(`JSON_UNQUOTE(JSON_EXTRACT(%s, '$."%s"'))`, column, key)
	}
}

// NumericField wraps a JSON extracted expression to compare it with numbers
func (d Dialect) NumericField(expr string) string {
	if d == Postgres {
		return fmt.Sprintf("CAST(%s AS NUMERIC)", expr)
	}
	return expr
}

// BoolValue returns how a JSON boolean compares after extraction
func (d Dialect) BoolValue(b bool) interface{} {
	if d == SQLite {
		if b {
			return 1
		}
		return 0
	}
	if b {
		return "true"
	}
	return "false"
}

// RegexOperator ...
func (d Dialect) RegexOperator() (string, error) {
	switch d {
	case MySQL, SQLite:
		return "REGEXP", nil
	case Postgres:
		return "~", nil
	default:
		return "", fmt.Errorf("%w: regex on %s", ErrUnsupported, d)
	}
}

// TableExistsQuery returns a query counting tables named by its single parameter
func (d Dialect) TableExistsQuery() string {
	switch d {
	case Postgres:
		return `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`
	case SQLite:
		return `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	default:
		return `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`
	}
}
