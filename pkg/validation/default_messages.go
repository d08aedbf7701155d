package validation

import (
	"fmt"
	"strings"
)

func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required", "notblank":
		return fmt.Sprintf("%s은(는) 필수 항목입니다.", field)
	case "email":
		return fmt.Sprintf("%s은(는) 유효한 이메일 주소여야 합니다.", field)
	case "min":
		return fmt.Sprintf("%s이(가) 최소 길이보다 짧습니다.", field)
	case "max":
		return fmt.Sprintf("%s이(가) 최대 길이를 초과했습니다.", field)
	case "len":
		return fmt.Sprintf("%s의 길이가 올바르지 않습니다.", field)
	case "oneof":
		return fmt.Sprintf("%s은(는) 허용된 값 중 하나여야 합니다.", field)
	default:
		return fmt.Sprintf("%s 값이 올바르지 않습니다.", field)
	}
}

// Message resolves the user-facing text for a failed field/tag pair.
func Message(field, tag string) string {
	if fieldMessages := CustomMessage(field); fieldMessages != nil {
		if msg, exists := fieldMessages[tag]; exists {
			return msg
		}
	}
	return DefaultMessage(field, tag)
}
