package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.ErrorContains(t, err, `unsupported db driver "oracle"`)
}

func TestMigrate_CreatesTables(t *testing.T) {
	gdb, err := Open("sqlite", filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb, false))

	for _, table := range []string{"users", "posts", "comments"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
	assert.True(t, gdb.Migrator().HasColumn(&model.Comment{}, "comment"))
}

func TestMigrate_ResetDropsData(t *testing.T) {
	gdb, err := Open("sqlite", filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb, false))
	require.NoError(t, gdb.Create(&model.User{Username: "alice", Email: "a@x.com", Password: "password1"}).Error)

	// migrating again without reset keeps rows
	require.NoError(t, Migrate(gdb, false))
	var count int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, Migrate(gdb, true))
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
