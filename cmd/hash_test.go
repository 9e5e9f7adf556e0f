package cmd

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword(strings.NewReader("secret\n"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}

func TestHashPassword_NoTrailingNewline(t *testing.T) {
	hash, err := hashPassword(strings.NewReader("secret"))
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}

func TestHashPassword_TrimsCRLF(t *testing.T) {
	hash, err := hashPassword(strings.NewReader("secret\r\n"))
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := hashPassword(strings.NewReader("\n"))
	assert.Error(t, err)
	assert.Equal(t, "password cannot be empty", err.Error())

	_, err = hashPassword(strings.NewReader(""))
	assert.Error(t, err)
}
