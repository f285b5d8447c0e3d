package store

import (
	"context"
	"strings"
)

// Table starts builders for one collection.
type Table struct {
	s *Store
	c Collection
}

func (t *Table) Collection() Collection {
	return t.c
}

// Select starts a query. Columns may be given one per argument or as a
// single comma separated list; "*" or nothing selects every field.
func (t *Table) Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{s: t.s, req: Request{Kind: KindSelect, Collection: t.c, Columns: parseColumns(columns)}}
}

// Insert appends rows, generating ids where missing and stamping created_at.
func (t *Table) Insert(rows ...Record) *InsertBuilder {
	return &InsertBuilder{s: t.s, req: Request{Kind: KindInsert, Collection: t.c, Rows: rows}}
}

// Upsert merges each row into the record with the same id, or inserts it.
func (t *Table) Upsert(rows ...Record) *UpsertBuilder {
	return &UpsertBuilder{s: t.s, req: Request{Kind: KindUpsert, Collection: t.c, Rows: rows}}
}

// Update merges updates into every record matching the filters.
func (t *Table) Update(updates Record) *UpdateBuilder {
	return &UpdateBuilder{s: t.s, req: Request{Kind: KindUpdate, Collection: t.c, Updates: updates}}
}

// Delete removes every record matching the filters.
func (t *Table) Delete() *DeleteBuilder {
	return &DeleteBuilder{s: t.s, req: Request{Kind: KindDelete, Collection: t.c}}
}

func parseColumns(columns []string) []string {
	var out []string
	for _, c := range columns {
		for _, part := range strings.Split(c, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if part == "*" {
				return nil
			}
			out = append(out, part)
		}
	}
	return out
}

type SelectBuilder struct {
	s   *Store
	req Request
}

// Eq keeps records whose column equals value. Filters are AND-ed.
func (b *SelectBuilder) Eq(column string, value any) *SelectBuilder {
	b.req.Predicates = append(b.req.Predicates, Predicate{Column: column, Op: OpEq, Value: value})
	return b
}

// Order sorts the result by column. The sort is stable.
func (b *SelectBuilder) Order(column string, ascending bool) *SelectBuilder {
	b.req.Order = &Ordering{Column: column, Ascending: ascending}
	return b
}

// Single resolves to the first match instead of a list.
func (b *SelectBuilder) Single() *SelectBuilder {
	b.req.Single = true
	return b
}

func (b *SelectBuilder) Request() Request { return b.req }

func (b *SelectBuilder) Execute(ctx context.Context) (Result, error) {
	return b.s.Execute(ctx, b.req)
}

type InsertBuilder struct {
	s   *Store
	req Request
}

// Select is accepted for symmetry with the hosted client; insert always
// returns the inserted rows.
func (b *InsertBuilder) Select(columns ...string) *InsertBuilder {
	b.req.Returning = true
	b.req.Columns = parseColumns(columns)
	return b
}

func (b *InsertBuilder) Single() *InsertBuilder {
	b.req.Single = true
	return b
}

func (b *InsertBuilder) Request() Request { return b.req }

func (b *InsertBuilder) Execute(ctx context.Context) (Result, error) {
	return b.s.Execute(ctx, b.req)
}

type UpsertBuilder struct {
	s   *Store
	req Request
}

func (b *UpsertBuilder) Request() Request { return b.req }

func (b *UpsertBuilder) Execute(ctx context.Context) (Result, error) {
	return b.s.Execute(ctx, b.req)
}

type UpdateBuilder struct {
	s   *Store
	req Request
}

func (b *UpdateBuilder) Eq(column string, value any) *UpdateBuilder {
	b.req.Predicates = append(b.req.Predicates, Predicate{Column: column, Op: OpEq, Value: value})
	return b
}

func (b *UpdateBuilder) Neq(column string, value any) *UpdateBuilder {
	b.req.Predicates = append(b.req.Predicates, Predicate{Column: column, Op: OpNeq, Value: value})
	return b
}

// Select makes the update return the updated records.
func (b *UpdateBuilder) Select(columns ...string) *UpdateBuilder {
	b.req.Returning = true
	b.req.Columns = parseColumns(columns)
	return b
}

func (b *UpdateBuilder) Single() *UpdateBuilder {
	b.req.Single = true
	return b
}

func (b *UpdateBuilder) Request() Request { return b.req }

func (b *UpdateBuilder) Execute(ctx context.Context) (Result, error) {
	return b.s.Execute(ctx, b.req)
}

type DeleteBuilder struct {
	s   *Store
	req Request
}

func (b *DeleteBuilder) where(column string, op Op, value any) *DeleteBuilder {
	b.req.Predicates = append(b.req.Predicates, Predicate{Column: column, Op: op, Value: value})
	return b
}

func (b *DeleteBuilder) Eq(column string, value any) *DeleteBuilder {
	return b.where(column, OpEq, value)
}

func (b *DeleteBuilder) Neq(column string, value any) *DeleteBuilder {
	return b.where(column, OpNeq, value)
}

func (b *DeleteBuilder) Lt(column string, value any) *DeleteBuilder {
	return b.where(column, OpLt, value)
}

func (b *DeleteBuilder) Lte(column string, value any) *DeleteBuilder {
	return b.where(column, OpLte, value)
}

func (b *DeleteBuilder) Gt(column string, value any) *DeleteBuilder {
	return b.where(column, OpGt, value)
}

func (b *DeleteBuilder) Gte(column string, value any) *DeleteBuilder {
	return b.where(column, OpGte, value)
}

func (b *DeleteBuilder) Request() Request { return b.req }

func (b *DeleteBuilder) Execute(ctx context.Context) (Result, error) {
	return b.s.Execute(ctx, b.req)
}
