package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type memoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
	seen    map[string]struct{}
}

func NewMemoryRepository() Repository {
	return &memoryRepository{seen: make(map[string]struct{})}
}

func (r *memoryRepository) Append(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[e.ID]; dup {
		return ErrDuplicateEntry
	}
	r.seen[e.ID] = struct{}{}
	r.entries = append(r.entries, *e)
	return nil
}

// List returns newest entries first, matching the PostgreSQL store.
func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Entry, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !filter.matches(&e) {
			continue
		}
		matched = append(matched, &e)
	}

	total := len(matched)
	page, pageSize := filter.pagination()
	if page-1 > total/pageSize {
		return nil, total, nil
	}
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := min(start+pageSize, total)
	return matched[start:end], total, nil
}

func (f Filter) matches(e *Entry) bool {
	if f.HolderID != 0 && e.HolderID != f.HolderID {
		return false
	}
	if f.ResourceID != 0 && e.ResourceID != f.ResourceID {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	return true
}

func (f Filter) pagination() (page, pageSize int) {
	page, pageSize = f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	// Keeps the SQL offset inside int64 for any page number.
	if page > MaxPage {
		page = MaxPage
	}
	return page, pageSize
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const schema = `
	CREATE TABLE IF NOT EXISTS public.ledger_entries (
		id          uuid PRIMARY KEY,
		kind        text        NOT NULL,
		holder_id   bigint      NOT NULL,
		resource_id bigint      NOT NULL,
		quantity    integer     NOT NULL,
		amount      numeric     NOT NULL,
		created_at  timestamptz NOT NULL
	)
`

// EnsureSchema creates the journal table if it is missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create journal table failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Append(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.ledger_entries").
		Columns("id", "kind", "holder_id", "resource_id", "quantity", "amount", "created_at").
		Values(e.ID, string(e.Kind), e.HolderID, e.ResourceID, e.Quantity, e.Amount.String(), e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build append entry query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return classify(err, "append entry failed")
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id::text", "kind", "holder_id", "resource_id", "quantity", "amount::text", "created_at",
		"count(*) OVER() as total_count",
	).From("public.ledger_entries")

	if filter.HolderID != 0 {
		query = query.Where(squirrel.Eq{"holder_id": filter.HolderID})
	}
	if filter.ResourceID != 0 {
		query = query.Where(squirrel.Eq{"resource_id": filter.ResourceID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": string(filter.Kind)})
	}

	page, pageSize := filter.pagination()
	query = query.OrderBy("created_at DESC", "id").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list entries query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify(err, "list entries failed")
	}
	defer rows.Close()

	var entries []*Entry
	var total int

	for rows.Next() {
		var (
			e      Entry
			kind   string
			amount string
		)
		if err := rows.Scan(&e.ID, &kind, &e.HolderID, &e.ResourceID, &e.Quantity, &amount, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan entry failed: %w", err)
		}
		e.Kind = Kind(kind)
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, 0, fmt.Errorf("parse entry amount failed: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err, "list entries failed")
	}

	return entries, total, nil
}

// classify maps the PostgreSQL errors callers can act on to package errors.
func classify(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicateEntry
		case pgerrcode.UndefinedTable:
			return fmt.Errorf("%s: %w", msg, ErrSchemaMissing)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
