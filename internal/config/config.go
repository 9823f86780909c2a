package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Solver SolverConfig `mapstructure:"solver" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// SolverConfig bounds the symbolic engine per request.
type SolverConfig struct {
	// TimeoutSeconds caps wall-clock time spent solving one equation.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=60"`

	// SearchRange is the half-width of the interval scanned by the
	// numeric fallback solver.
	SearchRange float64 `mapstructure:"search_range" validate:"required,gt=0"`

	// MaxIterations caps Newton refinement per starting point.
	MaxIterations int `mapstructure:"max_iterations" validate:"required,gt=0"`
}
