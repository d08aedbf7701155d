package validation

import (
	"fmt"

	"github.com/schedulebob/auth/internal/constants"
)

// dto.LoginRequest's min/max tags use the same bounds.
var passwordLengthMessage = fmt.Sprintf("비밀번호는 %d자 이상 %d자 이하로 입력해주세요.",
	constants.MinPasswordLength, constants.MaxPasswordLength)

var customValidationMessages = map[string]map[string]string{
	"Email": {
		"notblank": "이메일은 필수 항목입니다.",
		"required": "이메일은 필수 항목입니다.",
		"email":    "유효한 이메일 주소를 입력해주세요.",
		"max":      "이메일 주소가 너무 깁니다.",
	},
	"Password": {
		"notblank": "비밀번호는 필수 항목입니다.",
		"required": "비밀번호는 필수 항목입니다.",
		"min":      passwordLengthMessage,
		"max":      passwordLengthMessage,
	},
}

func CustomMessage(field string) map[string]string {
	return customValidationMessages[field]
}
