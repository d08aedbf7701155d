package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
)

// Common HTTP Error Messages
const (
	MsgBadTokenFormat   = "잘못된 토큰 형식입니다."
	MsgInvalidBody      = "요청 본문 형식이 올바르지 않습니다."
	MsgUnauthorized     = "인증이 필요합니다."
	MsgTooManyRequests  = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	MsgInternalError    = "서버 내부 오류가 발생했습니다."
	MsgValidationFailed = "입력값이 올바르지 않습니다."
)
