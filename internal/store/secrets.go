package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
)

// Secrets path
// projects/{project}/secrets/{name}/versions/{version}

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type secretsStore struct {
	client    secretAccessor
	projectID string
}

// NewSecretsStore reads secrets of projectID; *secretmanager.Client satisfies client.
func NewSecretsStore(client secretAccessor, projectID string) *secretsStore {
	return &secretsStore{
		client:    client,
		projectID: projectID,
	}
}

// versionName accepts a bare secret id, a secret resource name, or a full version name.
func (s *secretsStore) versionName(name string) string {
	switch {
	case strings.Contains(name, "/versions/"):
		return name
	case strings.HasPrefix(name, "projects/"):
		return name + "/versions/latest"
	default:
		return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, name)
	}
}

func (s *secretsStore) GetSecret(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", errs.NewValidationError("secret name is required")
	}

	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.versionName(name),
	})
	if status.Code(err) == codes.NotFound {
		return "", errs.NewNotFoundError(fmt.Sprintf("secret %s not found", name))
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.GetPayload().GetData())), nil
}
