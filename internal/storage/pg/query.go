package pg

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Query is a pagination.Query over a single table whose rows map onto T by db tag.
// Nothing runs until Count or List.
type Query[T any] struct {
	db      Querier
	table   string
	columns []string
	conds   []string
	args    pgx.NamedArgs
	orders  []string
	window  pagination.Window
	err     error
}

// From selects the columns named by T's db tags (lower-cased field names when untagged).
func From[T any](db Querier, table string) *Query[T] {
	return &Query[T]{
		db:      db,
		table:   quoteTable(table),
		columns: columnsOf(reflect.TypeFor[T]()),
		args:    pgx.NamedArgs{},
	}
}

func (q *Query[T]) clone() *Query[T] {
	c := *q
	c.conds = slices.Clone(q.conds)
	c.orders = slices.Clone(q.orders)
	c.args = maps.Clone(q.args)
	return &c
}

// Where adds a predicate joined with AND. cond refers to args by @name.
func (q *Query[T]) Where(cond string, args pgx.NamedArgs) *Query[T] {
	c := q.clone()
	c.conds = append(c.conds, "("+cond+")")
	maps.Copy(c.args, args)
	return c
}

func (q *Query[T]) OrderBy(key pagination.SortKey, descending bool) pagination.Query[T] {
	c := q.clone()
	if key.Nested() {
		c.err = apperr.NewArgument("sortProperty", key.Property, "nested sort properties are not supported by postgres queries")
		return c
	}

	col := columnName(key.Field())
	if !slices.Contains(c.columns, col) {
		c.err = apperr.NewArgument("sortProperty", key.Property, "sort property is not a selected column")
		return c
	}

	dir := "ASC NULLS FIRST"
	if descending {
		dir = "DESC NULLS LAST"
	}
	c.orders = append(c.orders, pgx.Identifier{col}.Sanitize()+" "+dir)
	return c
}

func (q *Query[T]) Skip(n int) pagination.Query[T] {
	c := q.clone()
	c.window = c.window.Skip(n)
	return c
}

func (q *Query[T]) Take(n int) pagination.Query[T] {
	c := q.clone()
	c.window = c.window.Take(n)
	return c
}

func (q *Query[T]) Count(ctx context.Context) (int, error) {
	if q.err != nil {
		return 0, q.err
	}

	sql := "SELECT count(*) FROM " + q.table + q.where()
	if clause := q.windowClause(); clause != "" {
		sql = "SELECT count(*) FROM (SELECT 1 FROM " + q.table + q.where() + clause + ") AS windowed"
	}

	var n int64
	if err := q.db.QueryRow(ctx, sql, q.args).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", q.table, err)
	}
	return int(n), nil
}

func (q *Query[T]) List(ctx context.Context) ([]T, error) {
	if q.err != nil {
		return nil, q.err
	}

	rows, err := q.db.Query(ctx, q.SQL(), q.args)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.table, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s rows: %w", q.table, err)
	}
	return items, nil
}

// SQL renders the select statement List executes.
func (q *Query[T]) SQL() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, col := range q.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col}.Sanitize())
	}
	b.WriteString(" FROM ")
	b.WriteString(q.table)
	b.WriteString(q.where())
	if len(q.orders) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orders, ", "))
	}
	b.WriteString(q.windowClause())
	return b.String()
}

func (q *Query[T]) where() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q *Query[T]) windowClause() string {
	var clause string
	if limit, ok := q.window.Limit(); ok {
		clause += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset := q.window.Offset(); offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", offset)
	}
	return clause
}

func quoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func columnsOf(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var cols []string
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() || f.Tag.Get("db") == "-" {
			continue
		}
		cols = append(cols, columnName(f))
	}
	return cols
}

func columnName(f reflect.StructField) string {
	if tag, _, _ := strings.Cut(f.Tag.Get("db"), ","); tag != "" {
		return tag
	}
	return strings.ToLower(f.Name)
}

var _ pagination.Query[struct{}] = (*Query[struct{}])(nil)
