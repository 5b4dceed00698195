package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const secretName = "client_secret"

// Secrets stores the client secret outside the configuration file.
type Secrets interface {
	// Get returns the stored secret for a project, or "" when none exists.
	Get(projectID string) (string, error)
	Put(projectID, secret string) error
	Delete(projectID string) error
}

// Vault stores secrets in the OS credential vault (Keychain, Secret Service,
// Credential Manager).
type Vault struct{}

// Entries are keyed application:project:name so multiple project scopes can
// coexist in one vault.
func vaultKey(projectID string) string {
	return fmt.Sprintf("%s:%s:%s", ApplicationID, projectID, secretName)
}

func (Vault) Get(projectID string) (string, error) {
	secret, err := keyring.Get(ApplicationID, vaultKey(projectID))
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to access credential store")
	}
	return secret, nil
}

func (Vault) Put(projectID, secret string) error {
	if err := keyring.Set(ApplicationID, vaultKey(projectID), secret); err != nil {
		return errors.Wrap(err, "failed to access credential store")
	}
	return nil
}

func (Vault) Delete(projectID string) error {
	err := keyring.Delete(ApplicationID, vaultKey(projectID))
	if err != nil && err != keyring.ErrNotFound {
		return errors.Wrap(err, "failed to access credential store")
	}
	return nil
}
