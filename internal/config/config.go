// Package config loads database settings for the projects CLI.
//
// Sources are applied in order, later ones winning:
//  1. built-in defaults (MySQL on localhost, schema/user/password "projects")
//  2. a YAML file, if given
//  3. PROJECTS_DB_* environment variables
//  4. command-line flags (applied by the caller)
package config

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"

	"github.com/roach88/projects/internal/dao"
)

// Environment variables read by ApplyEnv.
const (
	EnvDriver   = "PROJECTS_DB_DRIVER"
	EnvDSN      = "PROJECTS_DB_DSN"
	EnvHost     = "PROJECTS_DB_HOST"
	EnvPort     = "PROJECTS_DB_PORT"
	EnvName     = "PROJECTS_DB_NAME"
	EnvUser     = "PROJECTS_DB_USER"
	EnvPassword = "PROJECTS_DB_PASSWORD"
	EnvPath     = "PROJECTS_DB_PATH"
)

// Config is the top-level configuration file.
type Config struct {
	Database Database `yaml:"database"`
}

// Database describes how to reach the database. DSN, when set, is passed to
// the driver untouched and the other connection fields are ignored.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn,omitempty"`

	// Network databases.
	Host     string `yaml:"host"`
	Port     int    `yaml:"port,omitempty"` // 0 selects the driver's default port
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode,omitempty"` // postgres only

	// SQLite database file.
	Path string `yaml:"path,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: Database{
			Driver:   "mysql",
			Host:     "localhost",
			Name:     "projects",
			User:     "projects",
			Password: "projects",
			SSLMode:  "disable",
			Path:     "projects.db",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the PROJECTS_DB_* variables visible
// through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	db := &c.Database
	for _, v := range []struct {
		name string
		dst  *string
	}{
		{EnvDriver, &db.Driver},
		{EnvDSN, &db.DSN},
		{EnvHost, &db.Host},
		{EnvName, &db.Name},
		{EnvUser, &db.User},
		{EnvPassword, &db.Password},
		{EnvPath, &db.Path},
	} {
		if val, ok := lookup(v.name); ok {
			*v.dst = val
		}
	}

	if val, ok := lookup(EnvPort); ok && val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q: %w", EnvPort, val, err)
		}
		db.Port = port
	}
	return nil
}

// Validate checks the driver and, unless a DSN is given, the fields the
// driver needs.
func (d Database) Validate() error {
	dialect, err := dao.DialectFor(d.Driver)
	if err != nil {
		return err
	}
	if d.DSN != "" {
		return nil
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("port %d out of range", d.Port)
	}
	switch dialect.Name {
	case dao.SQLite.Name:
		if d.Path == "" {
			return fmt.Errorf("sqlite requires a database path")
		}
	default:
		if d.Host == "" || d.Name == "" {
			return fmt.Errorf("%s requires host and database name", dialect.Name)
		}
	}
	return nil
}

// DriverName returns the database/sql driver to open.
func (d Database) DriverName() (string, error) {
	dialect, err := dao.DialectFor(d.Driver)
	if err != nil {
		return "", err
	}
	return dialect.DriverName, nil
}

// DataSourceName builds the driver-specific connection string.
func (d Database) DataSourceName() (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	if d.DSN != "" {
		return d.DSN, nil
	}

	dialect, _ := dao.DialectFor(d.Driver)
	switch dialect.Name {
	case dao.MySQL.Name:
		cfg := mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(3306)))
		cfg.DBName = d.Name
		cfg.ParseTime = true
		// UPDATE reports matched rows, so an unchanged project still counts as modified.
		cfg.ClientFoundRows = true
		return cfg.FormatDSN(), nil

	case dao.Postgres.Name:
		parts := []string{
			"host=" + pgQuote(d.Host),
			"port=" + strconv.Itoa(d.portOr(5432)),
			"dbname=" + pgQuote(d.Name),
			"user=" + pgQuote(d.User),
			"password=" + pgQuote(d.Password),
		}
		if d.SSLMode != "" {
			parts = append(parts, "sslmode="+pgQuote(d.SSLMode))
		}
		return strings.Join(parts, " "), nil

	default:
		return d.Path, nil
	}
}

func (d Database) portOr(def int) int {
	if d.Port == 0 {
		return def
	}
	return d.Port
}

// pgQuote quotes a libpq key/value when it is empty or contains spaces,
// quotes or backslashes.
func pgQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, ` '\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
