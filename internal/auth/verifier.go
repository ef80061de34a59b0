package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pupperworks/pupper/pkg/lifecycle"
)

// Verifier validates a raw bearer token and resolves the caller's
// identity.
type Verifier interface {
	Verify(ctx context.Context, raw string) (*Identity, error)
}

// System provides credential verification with lifecycle coordination.
type System interface {
	Verifier
	// Start registers startup hooks (OIDC discovery in oidc mode).
	Start(lc *lifecycle.Coordinator) error
}

// New creates a verification system for the configured mode.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	log := logger.With("system", "auth")

	switch cfg.Mode {
	case ModeOIDC:
		return &oidcSystem{
			issuer:   cfg.Issuer,
			audience: cfg.Audience,
			logger:   log,
		}, nil
	case ModeLocal:
		return &localSystem{
			secret: []byte(cfg.Secret),
			logger: log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Mode)
	}
}

// oidcSystem verifies hosted-issuer ID tokens against the issuer's JWKS.
// Discovery happens during startup so request paths never block on it.
type oidcSystem struct {
	issuer   string
	audience string
	logger   *slog.Logger

	mu       sync.RWMutex
	verifier *oidc.IDTokenVerifier
}

func (s *oidcSystem) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting auth system", "mode", ModeOIDC)

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), s.issuer)
		if err != nil {
			s.logger.Error("issuer discovery failed", "issuer", s.issuer, "error", err)
			return
		}

		s.mu.Lock()
		s.verifier = provider.Verifier(&oidc.Config{ClientID: s.audience})
		s.mu.Unlock()

		s.logger.Info("issuer discovered", "issuer", s.issuer)
	})

	return nil
}

func (s *oidcSystem) Verify(ctx context.Context, raw string) (*Identity, error) {
	s.mu.RLock()
	verifier := s.verifier
	s.mu.RUnlock()

	if verifier == nil {
		return nil, ErrNotReady
	}

	token, err := verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims struct {
		Email    string `json:"email"`
		TokenUse string `json:"token_use"`
	}
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// Cognito issues both access and id tokens; only id tokens carry the
	// audience and profile claims this service relies on.
	if claims.TokenUse != "" && claims.TokenUse != "id" {
		return nil, fmt.Errorf("%w: only ID tokens are accepted", ErrInvalidToken)
	}

	return &Identity{Subject: token.Subject, Email: claims.Email}, nil
}

// localSystem verifies HS256 tokens signed with a shared secret.
type localSystem struct {
	secret []byte
	logger *slog.Logger
}

func (s *localSystem) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting auth system", "mode", ModeLocal)
	return nil
}

type localClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func (s *localSystem) Verify(_ context.Context, raw string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &localClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*localClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email}, nil
}
