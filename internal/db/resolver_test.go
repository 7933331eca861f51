package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/roomstat/internal/config"
)

func TestResolveConnectionParams_ConnStringWins(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"postgresql://alice@db1:5433/dormitory",
		&GranularConnFlags{},
		&EnvVars{PGHOST: "ignored", PGPASSWORD: "envpass"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "db1", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "alice", cfg.Username)
	// Password gap filled from the environment
	assert.Equal(t, "envpass", cfg.Password)
}

func TestResolveConnectionParams_ConflictingFlags(t *testing.T) {
	_, err := ResolveConnectionParams(
		"postgresql://localhost/db",
		&GranularConnFlags{Host: "otherhost"},
		&EnvVars{},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot specify both")
}

func TestResolveConnectionParams_FlagPrecedenceOverEnv(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "flaghost", Database: "flagdb"},
		&EnvVars{PGHOST: "envhost", PGPORT: "5433", PGDATABASE: "envdb"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, "flagdb", cfg.Database)
	assert.Equal(t, 5433, cfg.Port) // env fills what flags leave unset
}

func TestResolveConnectionParams_EnvPrecedenceOverYAML(t *testing.T) {
	projectCfg := &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "yamlhost",
			Port:     5440,
			Database: "yamldb",
		},
	}

	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		&EnvVars{PGHOST: "envhost"},
		projectCfg,
	)
	require.NoError(t, err)

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, 5440, cfg.Port)
	assert.Equal(t, "yamldb", cfg.Database)
}

func TestResolveConnectionParams_DatabaseURLFallback(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		&EnvVars{DatabaseURL: "postgresql://bob@dbhost/dormitory"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "dbhost", cfg.Host)
	assert.Equal(t, "dormitory", cfg.Database)
}

func TestResolveConnectionParams_MissingDatabase(t *testing.T) {
	_, err := ResolveConnectionParams("", &GranularConnFlags{Host: "somehost"}, &EnvVars{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database name is required")
}

func TestResolveConnectionParams_Defaults(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Database: "dormitory"},
		&EnvVars{},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "prefer", cfg.SSLMode)
}

func TestResolveConnectionParams_InvalidPGPORT(t *testing.T) {
	_, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Database: "dormitory"},
		&EnvVars{PGPORT: "fivethousand"},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGPORT")
}
