package constants

// Application Information
const (
	AppName    = "schedulebob-auth"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Token types
const (
	TokenTypeBearer = "Bearer"
	BearerPrefix    = TokenTypeBearer + " "
)

// Rate limit key prefixes
const (
	RateLimitKeyPrefix = "schedulebob:rl:"
)

// Log modules
const (
	ModuleHandler    = "handler"
	ModuleService    = "service"
	ModuleRepository = "repository"
	ModuleMiddleware = "middleware"
)
