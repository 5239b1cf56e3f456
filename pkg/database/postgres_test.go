package database

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/pkg/config"
)

func TestDSN(t *testing.T) {
	raw := DSN(config.DatabaseConfig{
		Host:             "db.internal",
		Port:             5433,
		User:             "tutor",
		Password:         "p@ss word",
		Name:             "tutoring",
		SSLMode:          "require",
		StatementTimeout: 1500 * time.Millisecond,
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "/tutoring", u.Path)
	password, _ := u.User.Password()
	assert.Equal(t, "p@ss word", password)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	assert.Equal(t, "1500", u.Query().Get("statement_timeout"))
	assert.Equal(t, "tutoring-api", u.Query().Get("application_name"))
}

func TestDSNOmitsUnsetTimeout(t *testing.T) {
	u, err := url.Parse(DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, SSLMode: "disable"}))
	require.NoError(t, err)
	assert.False(t, u.Query().Has("statement_timeout"))
}
