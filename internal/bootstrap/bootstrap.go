package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	backendclient "github.com/GregMSThompson/sharefair-gateway/internal/client/backend"
	"github.com/GregMSThompson/sharefair-gateway/internal/config"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	JWTSecret []byte
	Backend   *backendclient.Adapter
	Sessions  *session.Registry

	secrets *secretmanager.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.HandlerFor(cfg.LogFormat))
	bs.JWTSecret, err = bs.loadJWTSecret(applicationCtx, cfg)
	if err != nil {
		return bs, fmt.Errorf("jwt secret: %w", err)
	}
	bs.Backend = InitBackend(cfg.BackendBaseURL, cfg.BackendTimeout)
	bs.Sessions = session.NewRegistry()

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.secrets != nil {
		if err := bs.secrets.Close(); err != nil {
			bs.Log.Warn("secret manager close failed", "error", err)
		}
	}
}
