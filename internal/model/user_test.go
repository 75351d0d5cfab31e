package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("admin123"))
	assert.NotEqual(t, "admin123", u.Password)
	assert.True(t, u.CheckPassword("admin123"))
	assert.False(t, u.CheckPassword("admin124"))
}
