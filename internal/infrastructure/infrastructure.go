// Package infrastructure provides core service initialization for
// application startup. It assembles the shared dependencies (logging,
// database, object storage, model client, auth, events) that domain
// systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/pupperworks/pupper/internal/auth"
	"github.com/pupperworks/pupper/internal/config"
	"github.com/pupperworks/pupper/internal/events"
	"github.com/pupperworks/pupper/internal/model"
	"github.com/pupperworks/pupper/internal/validation"
	"github.com/pupperworks/pupper/internal/vision"
	"github.com/pupperworks/pupper/pkg/database"
	"github.com/pupperworks/pupper/pkg/lifecycle"
	"github.com/pupperworks/pupper/pkg/secrets"
	"github.com/pupperworks/pupper/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle
// coordination, logging, persistence, storage, and model access.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Model     model.System
	Vision    vision.System
	Validator *validation.Validator
	Events    events.Publisher
	Auth      auth.System
	Cipher    *secrets.Cipher
}

// New creates an Infrastructure from the application configuration. It
// initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config load failed: %w", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, awsCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	m := model.New(&cfg.Model, awsCfg, logger)

	authSystem, err := auth.New(&cfg.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("auth init failed: %w", err)
	}

	cipher, err := nameCipher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("cipher init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Model:     m,
		Vision:    vision.New(m, logger),
		Validator: validation.New(m, logger),
		Events:    events.New(&cfg.Events, awsCfg, logger),
		Auth:      authSystem,
		Cipher:    cipher,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle
// coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Auth.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("auth start failed: %w", err)
	}
	return nil
}

// nameCipher builds the name encryption cipher, generating a throwaway
// key for environments that never configured one.
func nameCipher(cfg *config.Config, logger *slog.Logger) (*secrets.Cipher, error) {
	key := cfg.Secrets.NameKey
	if key == "" {
		generated, err := secrets.GenerateKey()
		if err != nil {
			return nil, err
		}
		key = generated
		logger.Warn("no name key configured, generated a throwaway key; existing records cannot be decrypted")
	}

	return secrets.NewCipher(key)
}
