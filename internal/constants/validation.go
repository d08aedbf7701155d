package constants

// Field Length Limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 20
)

// Validation tags registered on top of validator's built-ins
const (
	TagNotBlank = "notblank"
)
