package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// TokenTTL is how long a minted admin token stays valid.
const TokenTTL = 24 * time.Hour

// Status is the authentication state of the gate.
type Status int

const (
	// StatusLoading is the initial state before the stored token has been
	// read.
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrInvalidCredentials is returned when the login pair does not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials is the single fixed admin credential pair.
type Credentials struct {
	Username string
	Password string
}

// Gate is the admin session state machine. It is a low-stakes, client-side
// gate: the token is opaque and never verified by the server. The gate
// starts in the loading state until Refresh has read the stored token
// once.
type Gate struct {
	mu     sync.Mutex
	creds  Credentials
	store  TokenStore
	status Status
	now    func() time.Time
}

// NewGate builds a gate over the given token store.
func NewGate(creds Credentials, store TokenStore) *Gate {
	return &Gate{
		creds:  creds,
		store:  store,
		status: StatusLoading,
		now:    time.Now,
	}
}

// Refresh reads the stored token and resolves the loading state: a token
// with a future expiry authenticates, anything else is purged.
func (g *Gate) Refresh() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	token, expiry, ok, err := g.store.Load()
	if err != nil || !ok || token == "" {
		g.status = StatusUnauthenticated
		return g.status
	}

	if g.now().Before(expiry) {
		g.status = StatusAuthenticated
		return g.status
	}

	// Stale token: purge it.
	_ = g.store.Clear()
	g.status = StatusUnauthenticated
	return g.status
}

// Login checks the credential pair; on success it mints an opaque token
// with a 24 hour expiry, persists it, and authenticates the gate.
func (g *Gate) Login(username, password string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if username != g.creds.Username || password != g.creds.Password {
		g.status = StatusUnauthenticated
		return "", ErrInvalidCredentials
	}

	now := g.now()
	token := mintToken(username, now)
	if err := g.store.Save(token, now.Add(TokenTTL)); err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	g.status = StatusAuthenticated
	return token, nil
}

// Logout purges the stored token. It always succeeds; a failing store is
// only logged by the caller.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()

	_ = g.store.Clear()
	g.status = StatusUnauthenticated
}

// Status returns the current gate state.
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Token returns the stored token when the gate is authenticated.
func (g *Gate) Token() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusAuthenticated {
		return "", false
	}
	token, expiry, ok, err := g.store.Load()
	if err != nil || !ok || !g.now().Before(expiry) {
		return "", false
	}
	return token, true
}

// mintToken produces the opaque token content. It carries no verifiable
// claims.
func mintToken(username string, now time.Time) string {
	raw := username + ":" + strconv.FormatInt(now.UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
