package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgxpool.Pool the repository needs. Narrowing the
// dependency lets tests substitute a pgxmock pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles all file-metadata database operations.
type Repository struct {
	db querier
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db querier) *Repository {
	return &Repository{db: db}
}

// Insert persists a new record and fills in the store-assigned ID and
// creation time. A storage-key collision surfaces as a generic write failure.
func (r *Repository) Insert(ctx context.Context, rec *FileRecord) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO files (storage_key, original_name, extension)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		rec.StorageKey, rec.OriginalName, rec.Extension,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert file record: %w", err)
	}
	return nil
}

// GetByID fetches a record by its store-assigned ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*FileRecord, error) {
	return r.get(ctx,
		`SELECT id, storage_key, original_name, extension, created_at
		 FROM files WHERE id = $1`, id)
}

// GetByStorageKey fetches a record by its unique storage key.
func (r *Repository) GetByStorageKey(ctx context.Context, key string) (*FileRecord, error) {
	return r.get(ctx,
		`SELECT id, storage_key, original_name, extension, created_at
		 FROM files WHERE storage_key = $1`, key)
}

// ExistsByID reports whether a record with the given ID exists.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM files WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check file exists: %w", err)
	}
	return exists, nil
}

// DeleteByID removes a record by ID. Returns ErrNotFound when no row matched.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByStorageKey removes a record by storage key. Returns ErrNotFound
// when no row matched.
func (r *Repository) DeleteByStorageKey(ctx context.Context, key string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM files WHERE storage_key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete file record by key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) get(ctx context.Context, sql string, arg any) (*FileRecord, error) {
	rec := &FileRecord{}
	err := r.db.QueryRow(ctx, sql, arg).
		Scan(&rec.ID, &rec.StorageKey, &rec.OriginalName, &rec.Extension, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file record: %w", err)
	}
	return rec, nil
}
