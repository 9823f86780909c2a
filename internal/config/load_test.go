package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		if value == "" {
			require.NoError(t, os.Unsetenv(name))
			continue
		}
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default
// values when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"EQN_SERVER_PORT":            "",
		"EQN_SERVER_LOG_LEVEL":       "",
		"EQN_SOLVER_TIMEOUT_SECONDS": "",
		"EQN_SOLVER_SEARCH_RANGE":    "",
		"EQN_SOLVER_MAX_ITERATIONS":  "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 4, cfg.Solver.TimeoutSeconds, "Default solve timeout should be 4 seconds")
	assert.Equal(t, 10.0, cfg.Solver.SearchRange, "Default search range should be 10")
	assert.Equal(t, 100, cfg.Solver.MaxIterations, "Default iteration cap should be 100")
}

// TestLoadFromEnvironment verifies that environment variables override the
// defaults.
func TestLoadFromEnvironment(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"EQN_SERVER_PORT":            "9999",
		"EQN_SERVER_LOG_LEVEL":       "debug",
		"EQN_SOLVER_TIMEOUT_SECONDS": "10",
		"EQN_SOLVER_SEARCH_RANGE":    "25",
		"EQN_SOLVER_MAX_ITERATIONS":  "50",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Solver.TimeoutSeconds)
	assert.Equal(t, 25.0, cfg.Solver.SearchRange)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
}

// TestLoadValidation verifies that out-of-range values fail validation.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "port out of range",
			envVars: map[string]string{"EQN_SERVER_PORT": "70000"},
		},
		{
			name:    "unknown log level",
			envVars: map[string]string{"EQN_SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name:    "timeout too large",
			envVars: map[string]string{"EQN_SOLVER_TIMEOUT_SECONDS": "300"},
		},
		{
			name:    "negative search range",
			envVars: map[string]string{"EQN_SOLVER_SEARCH_RANGE": "-5"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should fail validation")
			assert.Nil(t, cfg)
		})
	}
}
