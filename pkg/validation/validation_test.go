package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `validate:"notblank,email"`
	Password string `validate:"notblank,min=8,max=20"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidators(v))
	return v
}

func TestFirstMessage(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		form loginForm
		want string
	}{
		{"blank email", loginForm{Email: "   ", Password: "password1"}, "이메일은 필수 항목입니다."},
		{"bad email", loginForm{Email: "not-an-email", Password: "password1"}, "유효한 이메일 주소를 입력해주세요."},
		{"blank password", loginForm{Email: "a@x.com", Password: " \t"}, "비밀번호는 필수 항목입니다."},
		{"short password", loginForm{Email: "a@x.com", Password: "short"}, "비밀번호는 8자 이상 20자 이하로 입력해주세요."},
		{"long password", loginForm{Email: "a@x.com", Password: "abcdefghijklmnopqrstu"}, "비밀번호는 8자 이상 20자 이하로 입력해주세요."},
		{"email reported before password", loginForm{Email: "", Password: ""}, "이메일은 필수 항목입니다."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := FirstMessage(v.Struct(tt.form))
			require.True(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestFirstMessage_ValidAndForeignErrors(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(loginForm{Email: "a@x.com", Password: "password1"}))

	_, ok := FirstMessage(errors.New("unexpected EOF"))
	assert.False(t, ok)
}

func TestMessage_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "name은(는) 필수 항목입니다.", Message("Name", "required"))
	assert.Equal(t, "email 값이 올바르지 않습니다.", Message("Email", "uuid"))
}
