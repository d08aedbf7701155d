package constants

// Standard Response Field Keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldStatus  = "status"
)

// BuildErrorResponse renders the {message, status} error body every endpoint uses.
func BuildErrorResponse(message string, status int) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldStatus:  status,
	}
}
