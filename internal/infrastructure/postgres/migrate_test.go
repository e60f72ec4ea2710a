package postgres

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_Embebidas(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	up, err := fs.ReadFile(migrationsFS, files[0])
	require.NoError(t, err)
	for _, table := range []string{"order_documents", "order_lines", "payments", "returns", "return_items", "exchange_rates"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.True(t, strings.Contains(string(up), "deleted_at IS NULL"), "índice parcial de pagos vigentes")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

type fakeMigrator struct {
	upErr   error
	version uint
	dirty   bool
	closed  int
	dbErr   error
}

func (f *fakeMigrator) Up() error { return f.upErr }
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, nil }
func (f *fakeMigrator) Close() (error, error) {
	f.closed++
	return nil, f.dbErr
}

func TestRunMigrations_CierraElMigrador(t *testing.T) {
	cases := []struct {
		name    string
		m       *fakeMigrator
		wantErr bool
	}{
		{"aplica", &fakeMigrator{version: 1}, false},
		{"sin cambios", &fakeMigrator{upErr: migrate.ErrNoChange, version: 1}, false},
		{"falla al aplicar", &fakeMigrator{upErr: errors.New("syntax error")}, true},
		{"dirty", &fakeMigrator{version: 1, dirty: true}, true},
		{"falla al cerrar", &fakeMigrator{version: 1, dbErr: errors.New("conn busy")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			version, err := runMigrations(tc.m)
			assert.Equal(t, 1, tc.m.closed)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), version)
		})
	}
}
