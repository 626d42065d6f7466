package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/beautybook/internal/client/migrations"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/beautybook/internal/dbx"
	"github.com/dmitrijs2005/beautybook/internal/filex"
)

const (
	userKey         = "user"
	lastUsernameKey = "last_username"
	memoryDBPath    = ":memory:"
)

// SQLiteStore keeps the snapshot in the metadata table of a local file.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
// The special path ":memory:" gives a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != memoryDBPath {
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, err
		}
		dsn = abs
	}

	db, err := dbx.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (*models.User, error) {
	b, err := s.repo.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return models.UnmarshalSnapshot(b)
}

func (s *SQLiteStore) Set(ctx context.Context, u models.User) error {
	b, err := models.MarshalSnapshot(u)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, userKey, b); err != nil {
			return err
		}
		return repo.Set(ctx, lastUsernameKey, []byte(u.Username))
	})
}

// Clear logs the user out. The last username survives so the next login
// prompt can offer it.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, userKey)
}

// LastUsername returns the username of the most recent Set, or "".
func (s *SQLiteStore) LastUsername(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, lastUsernameKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
