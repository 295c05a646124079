// Package identity derives an opaque identifier for anonymous raters.
package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Strategy names accepted by New.
const (
	StrategyFingerprint = "fingerprint"
	StrategyCookie      = "cookie"
)

var ErrUnknownStrategy = errors.New("unknown identity strategy")

// Resolver returns a stable identifier for the client behind a request.
// Implementations may set response headers, so Resolve runs before the body is written.
type Resolver interface {
	Resolve(w http.ResponseWriter, r *http.Request) (string, error)
}

// Options configures the resolver returned by New.
type Options struct {
	Strategy     string
	Secret       string
	CookieName   string
	CookieMaxAge time.Duration
	TrustProxy   bool
	SecureCookie bool
}

// New returns the resolver selected by opts.Strategy.
func New(opts Options) (Resolver, error) {
	switch opts.Strategy {
	case StrategyFingerprint, "":
		return NewFingerprintResolver(opts.Secret, opts.TrustProxy), nil
	case StrategyCookie:
		return &CookieResolver{
			Name:   opts.CookieName,
			MaxAge: opts.CookieMaxAge,
			Secure: opts.SecureCookie,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}
}

// FingerprintResolver identifies clients by a keyed hash of their IP address and user agent.
type FingerprintResolver struct {
	key        []byte
	trustProxy bool
}

func NewFingerprintResolver(secret string, trustProxy bool) *FingerprintResolver {
	key := []byte(secret)
	// blake2b accepts keys of at most 64 bytes.
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	return &FingerprintResolver{key: key, trustProxy: trustProxy}
}

func (f *FingerprintResolver) Resolve(_ http.ResponseWriter, r *http.Request) (string, error) {
	h, err := blake2b.New256(f.key)
	if err != nil {
		return "", err
	}
	h.Write([]byte(ClientIP(r, f.trustProxy)))
	h.Write([]byte{0})
	h.Write([]byte(r.UserAgent()))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CookieResolver identifies clients by a random token kept in a long-lived cookie.
type CookieResolver struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func (c *CookieResolver) Resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.Name)
	if err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			return cookie.Value, nil
		}
	}
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// ClientIP returns the host part of the request's remote address, or the first
// X-Forwarded-For entry when trustProxy is set and the header is present.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
