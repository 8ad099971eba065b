package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/widget": "postgres",
		"postgresql://localhost/widget":        "postgres",
		"sqlite://widget.db":                   "sqlite",
		"file::memory:?cache=shared":           "sqlite",
	}
	for url, want := range cases {
		d, err := dialectorFor(url)
		require.NoError(t, err, url)
		assert.Equal(t, want, d.Name(), url)
	}

	_, err := dialectorFor("mysql://localhost")
	assert.Error(t, err)
}

func TestNewDBSQLiteMemory(t *testing.T) {
	db, err := NewDB("file::memory:", false)
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.GORM)
}

func TestNewDBEmpty(t *testing.T) {
	_, err := NewDB("", false)
	assert.Error(t, err)
}
