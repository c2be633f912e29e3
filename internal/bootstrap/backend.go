package bootstrap

import (
	"net/http"
	"time"

	backendclient "github.com/GregMSThompson/sharefair-gateway/internal/client/backend"
)

func InitBackend(baseURL string, timeout time.Duration) *backendclient.Adapter {
	return backendclient.NewAdapter(baseURL, timeout, &http.Client{Timeout: timeout})
}
