package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"welcomehome/infrastructure/sqlite"
	"welcomehome/models"
)

// SQLiteBackend keeps sessions in the sessions table.
type SQLiteBackend struct {
	db *sqlite.DB
}

func NewSQLiteBackend(db *sqlite.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Load(ctx context.Context, lookupKey string) (models.Session, error) {
	var sess models.Session
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&sess).
			Where("s.lookup_key = ?", lookupKey).
			Limit(1).
			Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, s models.Session) error {
	return b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&models.Session{
				LookupKey:   s.LookupKey,
				SealedToken: s.SealedToken,
				CreatedAt:   s.CreatedAt,
			}).
			On("CONFLICT (lookup_key) DO UPDATE").
			Set("sealed_token = EXCLUDED.sealed_token").
			Set("created_at = EXCLUDED.created_at").
			Exec(ctx)
		return err
	})
}

func (b *SQLiteBackend) Delete(ctx context.Context, lookupKey string) error {
	return b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("lookup_key = ?", lookupKey).Exec(ctx)
		return err
	})
}
