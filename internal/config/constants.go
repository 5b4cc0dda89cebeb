package config

// Application constants
const (
	AppName = "histviz"

	DefaultPort = 5000

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// File paths (relative to executable)
	DefaultDataDir = "data"
	DefaultLogsDir = "logs"
	DefaultWebDir  = "web"

	// Summary limits
	DefaultNumBins      = 10
	MaxNumBins          = 1000
	DefaultMaxBodyBytes = 1 << 20
)
