// Package token issues and verifies the stateless admin session tokens.
//
// A token is base64("admin:<issuedAt>:<expiresAt>.<hex hmac-sha256>") where the
// timestamps are milliseconds since the Unix epoch. Nothing is stored server
// side: a token stays valid until it expires, logout only drops the cookie.
package token

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	// Subject is the only principal a session can be issued for
	Subject = "admin"
	// SessionDuration is the fixed lifetime of every token
	SessionDuration = 24 * time.Hour
	// CookieName is the cookie the token travels in
	CookieName = "admin_session"
)

var (
	ErrMissingCredential    = fmt.Errorf("%w: admin credential", liberrors.ErrConfiguration)
	ErrMissingSigningSecret = fmt.Errorf("%w: session signing secret", liberrors.ErrConfiguration)
)

// Authority verifies the admin credential and issues/verifies session tokens.
// It holds no mutable state and is safe for concurrent use.
type Authority struct {
	secrets SecretProvider
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// AuthorityOption defines a function type to modify the Authority instance.
type AuthorityOption func(*Authority)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthorityOption {
	return func(a *Authority) {
		a.nowTime = nowFunc
	}
}

// NewAuthority creates an Authority reading secrets from the given provider on every call.
func NewAuthority(secrets SecretProvider, options ...AuthorityOption) (*Authority, error) {
	if secrets == nil {
		return nil, fmt.Errorf("[NewAuthority] secret provider is required")
	}

	a := &Authority{
		secrets: secrets,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

// VerifyCredential checks candidate against the configured admin password.
// A wrong password is (false, nil). Missing or unusable configuration is
// (false, err) with err wrapping errors.ErrConfiguration, so callers can
// report it as a server fault rather than a failed login.
func (a *Authority) VerifyCredential(candidate string) (bool, error) {
	if hash := a.secrets.GetAdminPasswordHash(); hash != "" {
		ok, err := checkPasswordHash(candidate, hash)
		if err != nil {
			return false, fmt.Errorf("[Authority VerifyCredential] %w", err)
		}
		return ok, nil
	}

	password := a.secrets.GetAdminPassword()
	if password == "" {
		return false, fmt.Errorf("[Authority VerifyCredential] ADMIN_PASSWORD is not set: %w", ErrMissingCredential)
	}
	return constantTimeEquals(candidate, password), nil
}

// Issue creates a new signed token valid for SessionDuration from now.
func (a *Authority) Issue() (string, error) {
	signer, err := a.signer()
	if err != nil {
		return "", fmt.Errorf("[Authority Issue] %w", err)
	}

	issuedAt := a.nowTime().UnixMilli()
	c := claims{
		subject:   Subject,
		issuedAt:  issuedAt,
		expiresAt: issuedAt + SessionDuration.Milliseconds(),
	}
	payload := c.canonical()
	raw := payload + "." + signer.Sign(payload)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Verify reports whether token is a well formed, correctly signed and
// unexpired session. Every rejection reason yields false.
func (a *Authority) Verify(token string) bool {
	signer, err := a.signer()
	if err != nil {
		log.Error().Err(err).Str("component", "token").Msg("Cannot verify admin session")
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	// The signature is hex and the payload is digits and colons, so the last
	// dot is the separator.
	raw := string(decoded)
	sep := strings.LastIndex(raw, ".")
	if sep < 0 {
		return false
	}
	payload, signature := raw[:sep], raw[sep+1:]

	if !signer.Verify(payload, signature) {
		return false
	}

	c, ok := parseClaims(payload)
	if !ok {
		return false
	}
	return a.nowTime().UnixMilli() < c.expiresAt
}

// MaxAge is the cookie Max-Age matching SessionDuration
func MaxAge() int {
	return int(SessionDuration / time.Second)
}

// signer resolves the signing secret: the dedicated session secret when set,
// otherwise the admin password.
func (a *Authority) signer() (*HMACSigner, error) {
	secret := a.secrets.GetAdminSessionSecret()
	if secret == "" {
		secret = a.secrets.GetAdminPassword()
	}
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}
	return NewHMACSigner(secret), nil
}

type claims struct {
	subject   string
	issuedAt  int64
	expiresAt int64
}

func (c claims) canonical() string {
	return c.subject + ":" + strconv.FormatInt(c.issuedAt, 10) + ":" + strconv.FormatInt(c.expiresAt, 10)
}

func parseClaims(payload string) (claims, bool) {
	fields := strings.Split(payload, ":")
	if len(fields) != 3 || fields[0] != Subject {
		return claims{}, false
	}
	// issuedAt must be well formed but does not affect validity
	issuedAt, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return claims{}, false
	}
	expiresAt, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return claims{}, false
	}
	return claims{subject: fields[0], issuedAt: issuedAt, expiresAt: expiresAt}, true
}
