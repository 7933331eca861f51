package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/roomstat/internal/config"
	"github.com/vvka-141/roomstat/pkg/roomstat"
)

// GranularConnFlags holds the individual connection flags from the CLI.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no granular flag was set.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" &&
		g.Database == "" && g.SSLMode == ""
}

// EnvVars captures the PostgreSQL standard environment variables plus the
// tool-specific connection string override.
type EnvVars struct {
	PGHOST      string
	PGPORT      string
	PGUSER      string
	PGPASSWORD  string
	PGDATABASE  string
	PGSSLMODE   string
	DatabaseURL string
}

// LoadFromEnvironment reads connection-related environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:      os.Getenv("PGHOST"),
		PGPORT:      os.Getenv("PGPORT"),
		PGUSER:      os.Getenv("PGUSER"),
		PGPASSWORD:  os.Getenv("PGPASSWORD"),
		PGDATABASE:  os.Getenv("PGDATABASE"),
		PGSSLMODE:   os.Getenv("PGSSLMODE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

// ResolveConnectionParams resolves the final connection configuration from
// all sources with the precedence: --connection flag > granular flags >
// environment variables > roomstat.yaml > defaults.
//
// Returns an error if BOTH --connection and granular flags are provided,
// to prevent ambiguity about user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*roomstat.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/dormitory\"\n" +
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d dormitory\n" +
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
		)
	}

	// Connection string provided via flag or DATABASE_URL
	if connStringFlag != "" {
		return resolveFromConnectionString(connStringFlag, envVars)
	}
	if granularFlags.IsEmpty() && envVars.DatabaseURL != "" {
		return resolveFromConnectionString(envVars.DatabaseURL, envVars)
	}

	return resolveFromGranularParams(granularFlags, envVars, projectConfig)
}

func resolveFromConnectionString(connStr string, envVars *EnvVars) (*roomstat.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, err
	}

	// A password from the environment fills the gap when the URI omits one.
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}

	return cfg, nil
}

func resolveFromGranularParams(
	flags *GranularConnFlags,
	env *EnvVars,
	projectCfg *config.ProjectConfig,
) (*roomstat.ConnectionConfig, error) {
	var yamlConn config.ConnectionConfig
	if projectCfg != nil {
		yamlConn = projectCfg.Connection
	}

	cfg := &roomstat.ConnectionConfig{
		Host:     firstNonEmpty(flags.Host, env.PGHOST, yamlConn.Host, "localhost"),
		Username: firstNonEmpty(flags.Username, env.PGUSER, yamlConn.Username),
		Password: env.PGPASSWORD,
		Database: firstNonEmpty(flags.Database, env.PGDATABASE, yamlConn.Database),
		SSLMode:  firstNonEmpty(flags.SSLMode, env.PGSSLMODE, yamlConn.SSLMode, "prefer"),
	}

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case env.PGPORT != "":
		port, err := strconv.Atoi(env.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid PGPORT %q: %w", env.PGPORT, err)
		}
		cfg.Port = port
	case yamlConn.Port != 0:
		cfg.Port = yamlConn.Port
	default:
		cfg.Port = 5432
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required: use -d, $PGDATABASE, or %s: %w",
			config.ConfigFileName, roomstat.ErrInvalidConfig)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
