package constants

// Application Information
const (
	AppName    = "wallfeed"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
	DefaultUploadsDir  = "./uploads"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix = "wall:"
	CacheKeyFeed   = CacheKeyPrefix + "feed:"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
