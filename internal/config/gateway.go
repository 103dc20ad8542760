package config

import (
	"fmt"
	"os"

	"family-tasks/internal/gateway"
	"family-tasks/internal/gateway/sqlite"
)

// CreateGateway creates a data gateway instance using the configuration system
func CreateGateway(config *Config) (gateway.Gateway, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	gw, err := sqlite.New(config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return gw, nil
}

// CreateTestGateway creates an in-memory gateway for testing
func CreateTestGateway() (gateway.Gateway, error) {
	gw, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return gw, nil
}
