// Package auth implements the HTTP Basic Authentication credential gate
// (RFC 7617). Parsing and evaluation are pure functions of the request's
// Authorization header and the immutable expected identity; mapping a
// decision onto an HTTP response is left to the middleware in this package.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/markussiebert/authgate/internal/verify"
)

// schemeBasic is the authentication scheme token. The comparison is
// case-sensitive: "basic" is rejected.
const schemeBasic = "Basic"

// Parse errors. Evaluate maps them onto deny reasons; they are never
// surfaced to clients.
var (
	// ErrUnsupportedScheme means the Authorization header does not use
	// the Basic scheme.
	ErrUnsupportedScheme = errors.New("unsupported authorization scheme")
	// ErrMalformedToken means the credential token is missing, is not
	// valid standard Base64, or decodes to text without a colon.
	ErrMalformedToken = errors.New("malformed basic auth token")
)

// Credentials is a username/password pair extracted from a single request.
// It is never persisted.
type Credentials struct {
	Username string
	Password string
}

// DenyReason classifies why the gate denied a request. Reasons are for
// diagnostics only; every denial looks the same to the client (401).
type DenyReason string

const (
	// ReasonMissingHeader means no Authorization header was present.
	ReasonMissingHeader DenyReason = "missing-header"
	// ReasonUnsupportedScheme means the scheme was not exactly "Basic".
	ReasonUnsupportedScheme DenyReason = "unsupported-scheme"
	// ReasonMalformedToken means the Base64 credential token was invalid.
	ReasonMalformedToken DenyReason = "malformed-token"
	// ReasonBadCredentials means the pair did not match the expected identity.
	ReasonBadCredentials DenyReason = "bad-credentials"
)

// Decision is the outcome of evaluating one request: allow, or deny with
// a reason. User carries the authenticated username on the allow path.
type Decision struct {
	Allow  bool
	User   string
	Reason DenyReason
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// ParseAuthorization parses an Authorization header value of the form
// "Basic <base64(username:password)>". The header is split on the first
// space; the decoded text is split on the first colon, so usernames must
// not contain a colon while passwords may.
func ParseAuthorization(value string) (Credentials, error) {
	parts := strings.SplitN(value, " ", 2)
	if parts[0] != schemeBasic {
		return Credentials{}, ErrUnsupportedScheme
	}
	if len(parts) != 2 {
		return Credentials{}, ErrMalformedToken
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	pair := strings.SplitN(string(decoded), ":", 2)
	if len(pair) != 2 {
		return Credentials{}, ErrMalformedToken
	}

	return Credentials{Username: pair[0], Password: pair[1]}, nil
}

// EncodeAuthorization is the client-side inverse of ParseAuthorization:
// it renders credentials as an Authorization header value. For any
// credentials with a colon-free username,
// ParseAuthorization(EncodeAuthorization(c)) recovers c exactly.
func EncodeAuthorization(c Credentials) string {
	token := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	return schemeBasic + " " + token
}

// Config represents the expected identity the gate compares against.
type Config struct {
	// Username is the expected account name.
	Username string
	// Verifier checks presented passwords against the configured secret.
	Verifier verify.Verifier
	// Realm is included in the WWW-Authenticate challenge when non-empty.
	Realm string
}

// Gate evaluates request credentials against a fixed expected identity.
// A Gate is immutable after construction and safe for concurrent use.
type Gate struct {
	userDigest [sha256.Size]byte
	verifier   verify.Verifier
	challenge  string
}

// NewGate creates a gate for the given expected identity.
func NewGate(config Config) *Gate {
	challenge := schemeBasic
	if config.Realm != "" {
		challenge = fmt.Sprintf("Basic realm=%q", config.Realm)
	}
	return &Gate{
		userDigest: sha256.Sum256([]byte(config.Username)),
		verifier:   config.Verifier,
		challenge:  challenge,
	}
}

// Challenge returns the WWW-Authenticate header value advertised on
// denied requests: "Basic", or `Basic realm="..."` when a realm is set.
func (g *Gate) Challenge() string {
	return g.challenge
}

// Evaluate checks an Authorization header value against the expected
// identity and returns an allow or deny decision. It performs no I/O and
// completes in time independent of which credential field mismatched:
// username and password comparisons both always run.
func (g *Gate) Evaluate(authorization string) Decision {
	if authorization == "" {
		return deny(ReasonMissingHeader)
	}

	creds, err := ParseAuthorization(authorization)
	if errors.Is(err, ErrUnsupportedScheme) {
		return deny(ReasonUnsupportedScheme)
	}
	if err != nil {
		return deny(ReasonMalformedToken)
	}

	userDigest := sha256.Sum256([]byte(creds.Username))
	userMatch := subtle.ConstantTimeCompare(g.userDigest[:], userDigest[:]) == 1
	passwordMatch := g.verifier.Verify(creds.Password)
	if !userMatch || !passwordMatch {
		return deny(ReasonBadCredentials)
	}

	return Decision{Allow: true, User: creds.Username}
}
