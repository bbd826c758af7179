package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

// DefaultEventStreamsTable ...
const DefaultEventStreamsTable = "event_streams"

// StreamRow is a row of the event streams registry
type StreamRow struct {
	No             int64          `db:"no"`
	RealStreamName string         `db:"real_stream_name"`
	StreamName     string         `db:"stream_name"`
	Metadata       sql.NullString `db:"metadata"`
	Category       sql.NullString `db:"category"`
}

// NullStreamRow ...
type NullStreamRow struct {
	Valid  bool
	Stream StreamRow
}

// StreamRepository accesses the event streams registry, executor is taken from context
type StreamRepository interface {
	Insert(ctx context.Context, row StreamRow) error
	Delete(ctx context.Context, realStreamName string) (int64, error)
	Find(ctx context.Context, realStreamName string) (NullStreamRow, error)
	UpdateMetadata(ctx context.Context, realStreamName string, metadata string) (int64, error)

	FetchStreamNames(ctx context.Context, prefix string, limit uint64, offset uint64) ([]string, error)
	FetchCategoryNames(ctx context.Context, prefix string, limit uint64, offset uint64) ([]string, error)

	TableExists(ctx context.Context, table string) (bool, error)
	CreateTable(ctx context.Context, statements []string) (int, error)
	DropTable(ctx context.Context, table string) error
}

type streamRepo struct {
	dialect sqldialect.Dialect
	table   string
}

// NewStreamRepository ...
func NewStreamRepository(d sqldialect.Dialect, table string) StreamRepository {
	if table == "" {
		table = DefaultEventStreamsTable
	}
	return &streamRepo{
		dialect: d,
		table:   d.Quote(table),
	}
}

// Insert ...
func (r *streamRepo) Insert(ctx context.Context, row StreamRow) error {
	query := fmt.Sprintf(`
INSERT INTO %s (real_stream_name, stream_name, metadata, category)
VALUES (?, ?, ?, ?)
`, r.table)

	_, err := GetExecutor(ctx).ExecContext(ctx, r.dialect.Rebind(query),
		row.RealStreamName, row.StreamName, row.Metadata, row.Category)
	return err
}

// Delete returns the number of deleted rows
func (r *streamRepo) Delete(ctx context.Context, realStreamName string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE real_stream_name = ?`, r.table)

	result, err := GetExecutor(ctx).ExecContext(ctx, r.dialect.Rebind(query), realStreamName)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Find ...
func (r *streamRepo) Find(ctx context.Context, realStreamName string) (NullStreamRow, error) {
	query := fmt.Sprintf(`
SELECT no, real_stream_name, stream_name, metadata, category
FROM %s WHERE real_stream_name = ?
`, r.table)

	var rows []StreamRow
	err := GetReadonly(ctx).SelectContext(ctx, &rows, r.dialect.Rebind(query), realStreamName)
	if err != nil {
		return NullStreamRow{}, err
	}
	if len(rows) == 0 {
		return NullStreamRow{}, nil
	}
	return NullStreamRow{Valid: true, Stream: rows[0]}, nil
}

// UpdateMetadata returns the number of matched rows
func (r *streamRepo) UpdateMetadata(ctx context.Context, realStreamName string, metadata string) (int64, error) {
	row, err := r.Find(ctx, realStreamName)
	if err != nil {
		return 0, err
	}
	if !row.Valid {
		return 0, nil
	}

	query := fmt.Sprintf(`UPDATE %s SET metadata = ? WHERE real_stream_name = ?`, r.table)
	_, err = GetExecutor(ctx).ExecContext(ctx, r.dialect.Rebind(query), metadata, realStreamName)
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func likePrefix(prefix string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return replacer.Replace(prefix) + "%"
}

func limitOffset(limit uint64, offset uint64) (string, []interface{}) {
	if limit == 0 && offset == 0 {
		return "", nil
	}
	if limit == 0 {
		// no unbounded LIMIT syntax shared by every dialect
		limit = 1<<63 - 1
	}
	return " LIMIT ? OFFSET ?", []interface{}{limit, offset}
}

// FetchStreamNames ordered by name
func (r *streamRepo) FetchStreamNames(
	ctx context.Context, prefix string, limit uint64, offset uint64,
) ([]string, error) {
	query := fmt.Sprintf(`SELECT real_stream_name FROM %s`, r.table)
	var args []interface{}
	if prefix != "" {
		query += ` WHERE real_stream_name LIKE ? ESCAPE '!'`
		args = append(args, likePrefix(prefix))
	}
	query += ` ORDER BY real_stream_name`

	limitQuery, limitArgs := limitOffset(limit, offset)
	query += limitQuery
	args = append(args, limitArgs...)

	var result []string
	err := GetReadonly(ctx).SelectContext(ctx, &result, r.dialect.Rebind(query), args...)
	return result, err
}

// FetchCategoryNames distinct categories ordered by name
func (r *streamRepo) FetchCategoryNames(
	ctx context.Context, prefix string, limit uint64, offset uint64,
) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT category FROM %s WHERE category IS NOT NULL`, r.table)
	var args []interface{}
	if prefix != "" {
		query += ` AND category LIKE ? ESCAPE '!'`
		args = append(args, likePrefix(prefix))
	}
	query += ` ORDER BY category`

	limitQuery, limitArgs := limitOffset(limit, offset)
	query += limitQuery
	args = append(args, limitArgs...)

	var result []string
	err := GetReadonly(ctx).SelectContext(ctx, &result, r.dialect.Rebind(query), args...)
	return result, err
}

// TableExists checks the physical table of a stream
func (r *streamRepo) TableExists(ctx context.Context, table string) (bool, error) {
	var count int64
	err := GetReadonly(ctx).GetContext(ctx, &count, r.dialect.TableExistsQuery(), table)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateTable executes the DDL statements in order, returns the number of succeeded statements
func (r *streamRepo) CreateTable(ctx context.Context, statements []string) (int, error) {
	executor := GetExecutor(ctx)
	for i, stmt := range statements {
		if _, err := executor.ExecContext(ctx, stmt); err != nil {
			return i, err
		}
	}
	return len(statements), nil
}

// DropTable ...
func (r *streamRepo) DropTable(ctx context.Context, table string) error {
	query := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, r.dialect.Quote(table))
	_, err := GetExecutor(ctx).ExecContext(ctx, query)
	return err
}
