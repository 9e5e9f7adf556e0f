package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/markussiebert/authgate/internal/logger"
	"github.com/markussiebert/authgate/internal/util"
)

const (
	credentialsDir  = ".authgate"
	credentialsFile = "credentials"
)

// Config represents the application configuration
type Config struct {
	Username     string
	Password     string
	PasswordHash string
	Realm        string
	SSL          bool
	CertFile     string
	KeyFile      string
}

// Verifier returns the name of the password verifier the configuration
// selects: "bcrypt" when a hash is configured, "plain" otherwise.
func (c *Config) Verifier() string {
	if c.PasswordHash != "" {
		return "bcrypt"
	}
	return "plain"
}

// Secret returns the configured password secret for the selected verifier.
func (c *Config) Secret() string {
	if c.PasswordHash != "" {
		return c.PasswordHash
	}
	return c.Password
}

// LoadConfig loads the expected identity and server settings from the
// environment, falling back to the credentials file for identity fields
// the environment leaves empty. The identity is immutable for the process
// lifetime.
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Expected identity
	config.Username = os.Getenv("AUTH_USERNAME")
	config.Password = os.Getenv("AUTH_PASSWORD")
	config.PasswordHash = os.Getenv("AUTH_PASSWORD_HASH")
	config.Realm = os.Getenv("AUTH_REALM")

	if config.Username == "" || (config.Password == "" && config.PasswordHash == "") {
		logger.Debug("Environment identity incomplete, attempting to load from credentials file")
		if err := loadCredentialsFile(config); err != nil {
			return nil, err
		}
	}

	if config.Username == "" {
		return nil, fmt.Errorf("AUTH_USERNAME is required")
	}
	if config.Password == "" && config.PasswordHash == "" {
		return nil, fmt.Errorf("one of AUTH_PASSWORD or AUTH_PASSWORD_HASH is required")
	}
	if config.Password != "" && config.PasswordHash != "" {
		return nil, fmt.Errorf("AUTH_PASSWORD and AUTH_PASSWORD_HASH are mutually exclusive")
	}

	logger.Debug("Expected identity: username=%s, secret=%s (%s)",
		util.MaskValue(config.Username), util.MaskSensitive(config.Secret()), config.Verifier())

	// TLS
	if ssl := os.Getenv("SSL_ENABLED"); ssl == "true" || ssl == "1" {
		config.SSL = true
	}
	config.CertFile = os.Getenv("SSL_CERT_FILE")
	config.KeyFile = os.Getenv("SSL_KEY_FILE")
	if config.SSL && (config.CertFile == "" || config.KeyFile == "") {
		return nil, fmt.Errorf("SSL_CERT_FILE and SSL_KEY_FILE are required when SSL_ENABLED is set")
	}

	return config, nil
}

// credentialsFilePath resolves the credentials file location:
// AUTH_CREDENTIALS_FILE if set, otherwise ~/.authgate/credentials.
func credentialsFilePath() (string, error) {
	if path := os.Getenv("AUTH_CREDENTIALS_FILE"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(homeDir, credentialsDir, credentialsFile), nil
}

// loadCredentialsFile fills identity fields the environment left empty
// from a key=value file. A missing file is not an error; the caller
// validates completeness afterwards.
func loadCredentialsFile(config *Config) error {
	credFile, err := credentialsFilePath()
	if err != nil {
		return err
	}

	file, err := os.Open(credFile)
	if os.IsNotExist(err) {
		logger.Debug("No credentials file at %s", credFile)
		return nil
	} else if err != nil {
		return logger.Errorf("failed to open credentials file %s: %w", credFile, err)
	}
	defer file.Close()

	logger.Debug("Reading credentials from file: %s", credFile)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			logger.Warn("Invalid format at line %d: expected key=value", lineNum)
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "username":
			if config.Username == "" {
				config.Username = value
				logger.Debug("Loaded username from file: %s", maskForLog(key, value))
			}
		case "password":
			if config.Password == "" {
				config.Password = value
				logger.Debug("Loaded password from file: %s", maskForLog(key, value))
			}
		case "password_hash":
			if config.PasswordHash == "" {
				config.PasswordHash = value
				logger.Debug("Loaded password_hash from file: %s", maskForLog(key, value))
			}
		case "realm":
			if config.Realm == "" {
				config.Realm = value
				logger.Debug("Loaded realm from file: %s", value)
			}
		default:
			logger.Warn("Unknown key '%s' at line %d", key, lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return logger.Errorf("failed to read credentials file: %w", err)
	}

	return nil
}

// maskForLog masks a credentials file value for debug logging.
func maskForLog(key, value string) string {
	if util.IsSensitiveKey(key) {
		return util.MaskSensitive(value)
	}
	return util.MaskValue(value)
}
