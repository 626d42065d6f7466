package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/dbx"
)

var maria = models.User{ID: 2, Username: "maria", Name: "Мария Иванова", Role: models.RoleClient}

func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	u, err := s.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, u, "fresh store must be empty")

	require.NoError(t, s.Set(ctx, maria))
	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(maria, *got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}

	admin := models.User{ID: 1, Username: "admin", Name: "Администратор", Role: models.RoleAdmin}
	require.NoError(t, s.Set(ctx, admin))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, admin, *got, "last writer wins")

	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	// повторная очистка не ошибка
	require.NoError(t, s.Clear(ctx))
}

func TestMemoryStore_Contract(t *testing.T) {
	s := NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	storeContract(t, s)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, maria))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, maria.Name, again.Name)
}

func TestSQLiteStore_Contract_InMemory(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	storeContract(t, s)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, maria))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	got, err := s2.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, maria, *got)
}

func TestSQLiteStore_LastUsernameSurvivesClear(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	name, err := s.LastUsername(ctx)
	require.NoError(t, err)
	require.Empty(t, name)

	require.NoError(t, s.Set(ctx, maria))
	require.NoError(t, s.Clear(ctx))

	name, err = s.LastUsername(ctx)
	require.NoError(t, err)
	require.Equal(t, "maria", name)
}

func TestSQLiteStore_CorruptedSnapshot(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES ('user', 'not json')`)
	require.NoError(t, err)

	u, err := s.Get(ctx)
	require.Error(t, err)
	require.Nil(t, u)
	require.Contains(t, err.Error(), "corrupted session snapshot")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.OpenSQLite(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='metadata'`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestRedisStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	storeContract(t, s)
}

func TestRedisStore_SnapshotUnderOneKeyWithoutTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(ctx, mr.Addr(), "test:session")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, maria))
	require.Equal(t, []string{"test:session"}, mr.Keys())
	require.Zero(t, mr.TTL("test:session"))

	raw, err := mr.Get("test:session")
	require.NoError(t, err)
	require.NotContains(t, raw, "password")

	// второй клиент видит тот же слот
	other, err := NewRedisStore(ctx, mr.Addr(), "test:session")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	got, err := other.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, maria, *got)
}

func TestRedisStore_CorruptedSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(DefaultRedisKey, "{not json"))

	s, err := NewRedisStore(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	u, err := s.Get(context.Background())
	require.Error(t, err)
	require.Nil(t, u)
}

func TestRedisStore_ServerGoneAfterConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	mr.Close()

	_, err = s.Get(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get session from Redis")
}

func TestRedisStore_UnreachableServer(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "127.0.0.1:1", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}
