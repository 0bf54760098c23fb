package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordIsDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("1006543210"), HashPassword("1006543210"))
	assert.NotEqual(t, HashPassword("1006543210"), HashPassword("1006543211"))
}

func TestHashPasswordIsHexSHA256(t *testing.T) {
	digest := HashPassword("secret")
	assert.Len(t, digest, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", digest)
}

func TestCheckPassword(t *testing.T) {
	digest := HashPassword("1006543210")
	assert.True(t, CheckPassword(digest, "1006543210"))
	assert.False(t, CheckPassword(digest, "wrong"))
	assert.False(t, CheckPassword("", "1006543210"))
}
