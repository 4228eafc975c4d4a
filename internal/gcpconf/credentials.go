package gcpconf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2/google"
)

// CredentialsEnvVar is the variable Application Default Credentials reads the
// credentials file location from. Loading a Config sets it.
const CredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"

// DefaultServiceAccount is the email used when the credentials are not a
// service account key. Compute Engine resolves it to the project's default
// compute service account.
const DefaultServiceAccount = "default"

// DefaultCredentialsPath returns <install root>/auth/auth.json, where the
// install root is the parent of the directory holding the running binary.
func DefaultCredentialsPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("auth", "auth.json")
	}
	root := filepath.Dir(filepath.Dir(exe))
	return filepath.Join(root, "auth", "auth.json")
}

// loadCredentials registers path for Application Default Credentials and
// loads it with the cloud-platform scope.
func loadCredentials(ctx context.Context, path string) (*google.Credentials, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: no credentials JSON found in %q, pass a valid path: %v", ErrConfiguration, path, err)
	}

	if err := os.Setenv(CredentialsEnvVar, path); err != nil {
		return nil, fmt.Errorf("%w: failed to set %s: %v", ErrConfiguration, CredentialsEnvVar, err)
	}

	creds, err := google.FindDefaultCredentials(ctx, CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load credentials from %q: %v", ErrConfiguration, path, err)
	}
	if creds.ProjectID == "" {
		return nil, fmt.Errorf("%w: credentials in %q do not name a project", ErrConfiguration, path)
	}
	return creds, nil
}

// serviceAccountEmail returns the client_email of a service account key.
func serviceAccountEmail(creds *google.Credentials) string {
	var key struct {
		ClientEmail string `json:"client_email"`
	}
	if len(creds.JSON) == 0 || json.Unmarshal(creds.JSON, &key) != nil || key.ClientEmail == "" {
		return DefaultServiceAccount
	}
	return key.ClientEmail
}
