// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: the first goose query fails
	err = Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrateClient_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = MigrateClient(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for _, fn := range []func(*sql.DB) error{Migrate, MigrateClient} {
		err := fn(db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db is nil")
	}
}

func TestEmbeddedMigrations_HaveGooseSections(t *testing.T) {
	for _, dir := range []string{"server", "client"} {
		entries, err := fs.ReadDir(embedMigrations, dir)
		require.NoError(t, err)
		require.NotEmpty(t, entries, dir)

		for _, e := range entries {
			data, err := fs.ReadFile(embedMigrations, dir+"/"+e.Name())
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(data), "-- +goose Up"), e.Name())
			assert.True(t, strings.Contains(string(data), "-- +goose Down"), e.Name())
		}
	}
}

func TestServerMigrations_ClientReferenceIndexesArePartial(t *testing.T) {
	for _, name := range []string{"00003_pickups.sql", "00004_transactions.sql", "00005_collections.sql"} {
		data, err := fs.ReadFile(embedMigrations, "server/"+name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "WHERE client_reference IS NOT NULL", name)
	}
}
