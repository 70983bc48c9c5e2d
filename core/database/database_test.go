package database

import (
	"strings"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "meters",
			TimeoutSeconds: 2,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", db.Dialector.Name())
		assert.NoError(t, Close(db))
	})
}

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "sync", Password: "p@ss:word", Name: "meters"}

	pg := PostgresDSN(cfg, 10)
	assert.True(t, strings.HasPrefix(pg, "postgres://sync:p%40ss%3Aword@db:5432/meters?"), pg)
	assert.Contains(t, pg, "sslmode=disable")
	assert.Contains(t, pg, "connect_timeout=10")

	cfg.Port = 3306
	my := MySQLDSN(cfg, 5)
	assert.True(t, strings.HasPrefix(my, "sync:p@ss:word@tcp(db:3306)/meters?"), my)
	assert.Contains(t, my, "timeout=5s")
	assert.Contains(t, my, "charset=utf8mb4")

	parsed, err := gomysql.ParseDSN(my)
	require.NoError(t, err)
	assert.Equal(t, "sync", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "meters", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 5*time.Second, parsed.ReadTimeout)
}
