package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the family tasks application
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Auth        AuthConfig
	Access      AccessConfig
	Selection   SelectionConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"FT_DB_DIR"`
	Filename       string        `env:"FT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"FT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"FT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"FT_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Address      string        `env:"FT_SERVER_ADDRESS"`
	ReadTimeout  time.Duration `env:"FT_SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"FT_SERVER_WRITE_TIMEOUT"`
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	JWTSecret  string        `env:"FT_AUTH_JWT_SECRET"`
	TokenTTL   time.Duration `env:"FT_AUTH_TOKEN_TTL"`
	BcryptCost int           `env:"FT_AUTH_BCRYPT_COST"`
}

// AccessConfig controls which gates protect task operations
type AccessConfig struct {
	RequireMemberSelection bool `env:"FT_ACCESS_REQUIRE_MEMBER"`
}

// SelectionConfig holds member selection persistence configuration
type SelectionConfig struct {
	Dir      string `env:"FT_SELECTION_DIR"`
	Filename string `env:"FT_SELECTION_FILENAME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"FT_APP_TIMEOUT"`
	Verbose bool          `env:"FT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".ft")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDataDir,
			Filename:       "ft.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:  "",
			TokenTTL:   24 * time.Hour,
			BcryptCost: 10,
		},
		Access: AccessConfig{
			RequireMemberSelection: true,
		},
		Selection: SelectionConfig{
			Dir:      defaultDataDir,
			Filename: "selection.json",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetSelectionPath returns the full path to a manager's member selection
// file. Each manager keeps their own selection, so the filename is
// prefixed with the manager id.
func (c *Config) GetSelectionPath(managerID string) string {
	return filepath.Join(c.Selection.Dir, managerID+"-"+c.Selection.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("FT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("FT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("FT_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("FT_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("FT_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Server configuration
	if addr := os.Getenv("FT_SERVER_ADDRESS"); addr != "" {
		c.Server.Address = addr
	}
	if timeout := os.Getenv("FT_SERVER_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("FT_SERVER_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.WriteTimeout = d
		}
	}

	// Auth configuration
	if secret := os.Getenv("FT_AUTH_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
	if ttl := os.Getenv("FT_AUTH_TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Auth.TokenTTL = d
		}
	}
	if cost := os.Getenv("FT_AUTH_BCRYPT_COST"); cost != "" {
		if n, err := strconv.Atoi(cost); err == nil {
			c.Auth.BcryptCost = n
		}
	}

	// Access configuration
	if require := os.Getenv("FT_ACCESS_REQUIRE_MEMBER"); require != "" {
		if b, err := strconv.ParseBool(require); err == nil {
			c.Access.RequireMemberSelection = b
		}
	}

	// Selection configuration
	if dir := os.Getenv("FT_SELECTION_DIR"); dir != "" {
		c.Selection.Dir = dir
	}
	if filename := os.Getenv("FT_SELECTION_FILENAME"); filename != "" {
		c.Selection.Filename = filename
	}

	// Application configuration
	if timeout := os.Getenv("FT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("FT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Address == "" {
		return &ConfigError{Field: "server.address", Message: "server address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 {
		return &ConfigError{Field: "server.read_timeout", Message: "read timeout must be positive"}
	}
	if c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate auth configuration
	if c.Auth.JWTSecret == "" {
		return &ConfigError{Field: "auth.jwt_secret", Message: "JWT signing secret must be configured"}
	}
	if c.Auth.TokenTTL <= 0 {
		return &ConfigError{Field: "auth.token_ttl", Message: "token TTL must be positive"}
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return &ConfigError{Field: "auth.bcrypt_cost", Message: "bcrypt cost must be between 4 and 31"}
	}

	// Validate selection configuration
	if c.Selection.Dir == "" {
		return &ConfigError{Field: "selection.dir", Message: "selection directory cannot be empty"}
	}
	if c.Selection.Filename == "" {
		return &ConfigError{Field: "selection.filename", Message: "selection filename cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
