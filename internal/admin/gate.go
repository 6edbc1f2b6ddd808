// Package admin is the operator side of the site: a token gate in front of the
// submissions list and its CSV export.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/thebar-catering/thebar-site/internal/apiclient"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// ErrNotAuthenticated is returned by admin operations while the gate is closed.
var ErrNotAuthenticated = errors.New("admin: not authenticated")

// AuthState is the gate's position.
type AuthState int

const (
	StateCheckingAuth AuthState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateCheckingAuth:
		return "checking_auth"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// API is the subset of apiclient.Client the admin tools call.
type API interface {
	Login(ctx context.Context, username, password string) (*apiclient.LoginResponse, error)
	Verify(ctx context.Context, token string) error
	ListSubmissions(ctx context.Context, token string) ([]submissions.Submission, error)
	ExportCSV(ctx context.Context, token string) ([]byte, error)
}

// Gate tracks whether the operator holds a working token.
type Gate struct {
	api    API
	store  TokenStore
	logger *logging.Logger

	mu       sync.Mutex
	state    AuthState
	token    string
	onLogout []func()
}

// NewGate returns a gate in StateCheckingAuth; call Init to resolve it.
func NewGate(api API, store TokenStore, logger *logging.Logger) *Gate {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gate{api: api, store: store, logger: logger, state: StateCheckingAuth}
}

// Init resolves the stored token. Without one, no request is made. A stored
// token that fails verification for any reason is purged.
func (g *Gate) Init(ctx context.Context) (AuthState, error) {
	token, err := g.store.Load()
	if errors.Is(err, ErrCorruptTokenFile) {
		g.logger.Warn("discarding unreadable admin token", "error", err)
		if clearErr := g.store.Clear(); clearErr != nil {
			g.logger.Warn("failed to purge admin token", "error", clearErr)
		}
		g.setState(StateUnauthenticated, "")
		return StateUnauthenticated, nil
	}
	if err != nil {
		g.setState(StateUnauthenticated, "")
		return StateUnauthenticated, fmt.Errorf("admin: load token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		g.setState(StateUnauthenticated, "")
		return StateUnauthenticated, nil
	}

	if err := g.api.Verify(ctx, token); err != nil {
		g.logger.Info("stored admin token rejected", "kind", apiclient.Kind(err).String())
		if clearErr := g.store.Clear(); clearErr != nil {
			g.logger.Warn("failed to purge admin token", "error", clearErr)
		}
		g.setState(StateUnauthenticated, "")
		return StateUnauthenticated, nil
	}

	g.setState(StateAuthenticated, token)
	return StateAuthenticated, nil
}

// Login persists token and opens the gate.
func (g *Gate) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("admin: empty token")
	}
	if err := g.store.Save(token); err != nil {
		return fmt.Errorf("admin: save token: %w", err)
	}
	g.setState(StateAuthenticated, token)
	return nil
}

// LoginWithPassword exchanges credentials for a token, then calls Login.
func (g *Gate) LoginWithPassword(ctx context.Context, username, password string) error {
	resp, err := g.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return g.Login(resp.Token)
}

// Logout purges the token, closes the gate and runs the logout hooks.
func (g *Gate) Logout() error {
	err := g.store.Clear()
	g.mu.Lock()
	g.state = StateUnauthenticated
	g.token = ""
	hooks := append([]func(){}, g.onLogout...)
	g.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	if err != nil {
		return fmt.Errorf("admin: clear token: %w", err)
	}
	return nil
}

// ForceLogout is Logout after the backend rejected the token.
func (g *Gate) ForceLogout() {
	g.logger.Warn("admin token rejected by backend, logging out")
	if err := g.Logout(); err != nil {
		g.logger.Warn("forced logout incomplete", "error", err)
	}
}

// OnLogout registers a hook run on every logout.
func (g *Gate) OnLogout(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLogout = append(g.onLogout, fn)
}

// State returns the current gate state.
func (g *Gate) State() AuthState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Token returns the active token, or ErrNotAuthenticated.
func (g *Gate) Token() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticated {
		return "", ErrNotAuthenticated
	}
	return g.token, nil
}

func (g *Gate) setState(state AuthState, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.token = token
}
