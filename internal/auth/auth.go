package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/baitline/scam-gateway/internal/core"
	"go.uber.org/zap"
)

const bearerScheme = "Bearer "

// Verifier checks presented bearer credentials against the single configured
// API secret. There is no per-user identity: the secret either matches or it
// does not.
type Verifier struct {
	secret string
	logger *zap.Logger
}

// NewVerifier creates a new credential verifier.
func NewVerifier(secret string, logger *zap.Logger) *Verifier {
	return &Verifier{
		secret: secret,
		logger: logger,
	}
}

// FromHeader extracts the bearer token from an Authorization header value.
// A missing or malformed header means no credential was presented at all,
// which is a distinct condition from a credential that does not match.
func FromHeader(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: no authorization header", core.ErrUnauthenticated)
	}
	if !strings.HasPrefix(header, bearerScheme) {
		return "", fmt.Errorf("%w: authorization header is not a bearer credential", core.ErrUnauthenticated)
	}
	token := strings.TrimPrefix(header, bearerScheme)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", core.ErrUnauthenticated)
	}
	return token, nil
}

// Verify compares a presented credential against the configured secret. The
// comparison is constant-time so the check cannot be used as a timing oracle.
func (v *Verifier) Verify(presented string) error {
	if subtle.ConstantTimeCompare([]byte(presented), []byte(v.secret)) == 1 {
		return nil
	}

	// Only a bounded prefix of either value may ever appear in logs.
	v.logger.Warn("Invalid API key attempt",
		zap.String("received_prefix", prefix(presented)),
		zap.String("expected_prefix", prefix(v.secret)))
	return core.ErrUnauthorized
}

// prefix returns the first few characters of a credential for log context
// without leaking the credential itself. Short credentials reveal at most
// half their bytes.
func prefix(s string) string {
	n := 8
	if half := len(s) / 2; half < n {
		n = half
	}
	return s[:n] + "..."
}
