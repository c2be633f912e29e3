package bootstrap

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/sharefair-gateway/internal/config"
	"github.com/GregMSThompson/sharefair-gateway/internal/store"
)

func InitSecretManager(ctx context.Context) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}

// loadJWTSecret prefers the inline secret; the Secret Manager client is only opened
// when the secret is referenced by name.
func (bs *Bootstrap) loadJWTSecret(ctx context.Context, cfg *config.Config) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}

	client, err := InitSecretManager(ctx)
	if err != nil {
		return nil, err
	}
	bs.secrets = client

	secret, err := store.NewSecretsStore(client, cfg.ProjectID).GetSecret(ctx, cfg.JWTSecretName)
	if err != nil {
		return nil, err
	}
	return []byte(secret), nil
}
