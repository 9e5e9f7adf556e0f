package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/markussiebert/authgate/internal/auth"
	"github.com/markussiebert/authgate/internal/logger"
	"github.com/markussiebert/authgate/internal/util"
)

// RunCheck verifies credentials against a running gateway: it encodes the
// pair the way a browser would and issues a GET, reporting whether the
// gate accepted it.
func RunCheck(rawURL, username, password string) error {
	target, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	switch target.Scheme {
	case "https":
	case "http":
		logger.Warn("Checking over plain HTTP; credentials are visible to the network")
	default:
		return fmt.Errorf("unsupported URL scheme %q (want http or https)", target.Scheme)
	}

	logger.Debug("Checking credentials for %s against %s", util.MaskValue(username), target.Redacted())

	req, err := http.NewRequest(http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", auth.EncodeAuthorization(auth.Credentials{
		Username: username,
		Password: password,
	}))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("credentials rejected (challenge: %s)", resp.Header.Get("WWW-Authenticate"))
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		logger.Info("Credentials accepted for %s (status %d)", username, resp.StatusCode)
		return nil
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
