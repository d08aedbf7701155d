package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeCreateDefaultsRole(t *testing.T) {
	u := &User{Email: "a@x.com"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "USER", u.Role)

	admin := &User{Email: "b@x.com", Role: "ADMIN"}
	require.NoError(t, admin.BeforeCreate(nil))
	assert.Equal(t, "ADMIN", admin.Role)
}
