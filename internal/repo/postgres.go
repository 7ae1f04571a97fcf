package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

// PostgresStore keeps every table in the shared items relation, one JSONB document per row.
type PostgresStore struct { // Репозиторий для работы непосредственно с БД
	pool   *pgxpool.Pool
	schema Schema
}

func NewPostgresStore(pool *pgxpool.Pool, schema Schema) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		schema: schema,
	}
}

func (r *PostgresStore) Get(ctx context.Context, key string) (model.Item, error) {
	var it model.Item
	err := r.pool.QueryRow(ctx, `
		SELECT doc FROM items
		WHERE table_name = $1 AND item_key = $2
	`, r.schema.Table, key).Scan(&it)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, r.mapError(err, "get")
}

func (r *PostgresStore) Put(ctx context.Context, item model.Item) (model.Item, error) {
	key := item.Str(r.schema.Key)
	if key == "" {
		return nil, fmt.Errorf("%s: item has no %q key", r.schema.Table, r.schema.Key)
	}
	doc, err := json.Marshal(item)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "postgres put %s", r.schema.Table)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO items (table_name, item_key, doc) VALUES ($1, $2, $3)
		ON CONFLICT (table_name, item_key) DO UPDATE SET doc = EXCLUDED.doc
	`, r.schema.Table, key, doc)
	if err != nil {
		return nil, r.mapError(err, "put")
	}
	return item, nil
}

func (r *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM items WHERE table_name = $1 AND item_key = $2
	`, r.schema.Table, key)
	return r.mapError(err, "delete")
}

func (r *PostgresStore) Query(ctx context.Context, index, value string) ([]model.Item, error) {
	attr, err := r.schema.Attr(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w %q", r.schema.Table, err, index)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT doc FROM items
		WHERE table_name = $1 AND doc->>$2 = $3
		ORDER BY doc->>'createdAt', item_key
	`, r.schema.Table, attr, value)
	if err != nil {
		return nil, r.mapError(err, "query")
	}
	return r.collect(rows)
}

func (r *PostgresStore) Scan(ctx context.Context) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT doc FROM items WHERE table_name = $1
	`, r.schema.Table)
	if err != nil {
		return nil, r.mapError(err, "scan")
	}
	return r.collect(rows)
}

func (r *PostgresStore) collect(rows pgx.Rows) ([]model.Item, error) {
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it); err != nil {
			return nil, r.mapError(err, "scan row")
		}
		items = append(items, it)
	}
	return items, r.mapError(rows.Err(), "rows")
}

func (r *PostgresStore) mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pkgerrors.Wrapf(err, "postgres %s %s: sqlstate %s", op, r.schema.Table, pgErr.Code)
	}
	return pkgerrors.Wrapf(err, "postgres %s %s", op, r.schema.Table)
}
