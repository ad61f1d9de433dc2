package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/uploads"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T, monitorPings bool) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t, false)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)

	var _ RepositoryManager = m
	var _ users.Repository = m.Users()
	var _ uploads.Repository = m.Uploads()
	assert.NotNil(t, m.Users())
	assert.NotNil(t, m.Uploads())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t, false)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	})

	require.NoError(t, RunMigrations(context.Background(), db))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t, false)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := RunMigrations(context.Background(), db)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpenPostgres_Success(t *testing.T) {
	db, mock := newDB(t, true)
	mock.ExpectPing()
	mock.ExpectClose()

	stubOpen(t, db, nil)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error { return nil })

	m, err := OpenPostgres(context.Background(), "postgres://x")
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_OpenError(t *testing.T) {
	stubOpen(t, nil, errors.New("bad dsn"))

	_, err := OpenPostgres(context.Background(), "::")
	assert.ErrorContains(t, err, "db open error")
}

func TestOpenPostgres_PingErrorClosesPool(t *testing.T) {
	db, mock := newDB(t, true)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	stubOpen(t, db, nil)

	_, err := OpenPostgres(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "db ping error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_MigrationErrorClosesPool(t *testing.T) {
	db, mock := newDB(t, true)
	mock.ExpectPing()
	mock.ExpectClose()

	stubOpen(t, db, nil)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("bad migration")
	})

	_, err := OpenPostgres(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "migration error")
	assert.NoError(t, mock.ExpectationsWereMet())
}
