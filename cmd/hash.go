package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RunHashPassword reads a password from stdin and prints its bcrypt hash,
// ready to be used as AUTH_PASSWORD_HASH.
func RunHashPassword() error {
	hash, err := hashPassword(os.Stdin)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func hashPassword(r io.Reader) (string, error) {
	// Input may end with EOF instead of a newline (echo -n | authgate ...).
	password, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}
