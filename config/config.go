// Package config persists the client configuration. Endpoint identifiers
// live in a YAML file under the OS config directory; the client secret never
// touches the file and is kept in the OS credential vault instead.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// ApplicationID names the config subdirectory and the vault service.
	ApplicationID = "uamcli"

	// FileName of the configuration file inside the config directory.
	FileName = "config.yml"
)

// ErrCredentialsNotProvided is returned when the configuration file exists
// but no client secret is stored for its project.
var ErrCredentialsNotProvided = errors.New("credentials not provided")

// Config holds the identifiers and credentials for one project scope.
//
// ClientSecret is deliberately excluded from both file serialization and
// JSON output; it is stored through the Secrets vault keyed by project.
type Config struct {
	OrganizationID string `mapstructure:"organization_id" json:"organization_id"`
	ProjectID      string `mapstructure:"project_id" json:"project_id"`
	EnvironmentID  string `mapstructure:"environment_id" json:"environment_id"`
	ClientID       string `mapstructure:"client_id" json:"client_id"`
	ClientSecret   string `mapstructure:"-" json:"-"`
}

// DefaultPath returns the canonical location of the configuration file.
func DefaultPath() (string, error) {
	if xdg.ConfigHome == "" {
		return "", errors.New("failed to resolve the configuration directory")
	}
	return filepath.Join(xdg.ConfigHome, ApplicationID, FileName), nil
}

// Load reads the configuration from the default location and resolves the
// client secret from the vault. A missing secret for an existing file is
// ErrCredentialsNotProvided.
func Load(secrets Secrets) (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path, secrets)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string, secrets Secrets) (*Config, error) {
	logrus.WithField("path", path).Debug("Loading configuration")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration data")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration data")
	}

	secret, err := secrets.Get(cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	if secret == "" {
		// The file half of the configuration is still usable; callers that
		// only need identifiers may proceed past this error.
		return &cfg, ErrCredentialsNotProvided
	}
	cfg.ClientSecret = secret
	return &cfg, nil
}

// Save writes the configuration file, creating its directory when needed,
// and stores the client secret in the vault. The secret is never written to
// the file.
func (c *Config) Save(path string, secrets Secrets) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to resolve the configuration directory")
	}

	v := viper.New()
	v.Set("organization_id", c.OrganizationID)
	v.Set("project_id", c.ProjectID)
	v.Set("environment_id", c.EnvironmentID)
	v.Set("client_id", c.ClientID)
	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "failed to write configuration data")
	}

	if c.ClientSecret != "" {
		if err := secrets.Put(c.ProjectID, c.ClientSecret); err != nil {
			return err
		}
	}
	return nil
}

// SaveDefault writes the configuration to the default location.
func (c *Config) SaveDefault(secrets Secrets) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.Save(path, secrets)
}

// Delete removes the configuration file and the stored secret.
func (c *Config) Delete(secrets Secrets) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return errors.WithStack(err)
	}
	return secrets.Delete(c.ProjectID)
}
