package config

import (
	"fmt"
	"os"

	dserrors "github.com/systmms/secretsync/internal/errors"
	"github.com/systmms/secretsync/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for one sync run.
//
// The three tag keys are constant for the whole run: every discovered
// secret is routed using the same keys.
type Config struct {
	Path   string
	Logger *logging.Logger

	// NamespaceTag is the key of the tag whose value lists the
	// destination namespaces (space separated).
	NamespaceTag string

	// SecretNameTag is the key of the tag whose value is the destination
	// Secret name.
	SecretNameTag string

	// FilenameTag is the key of the optional tag that switches a secret
	// into file-secret mode.
	FilenameTag string
}

// Definition represents the secretsync.yaml structure
type Definition struct {
	Version int `yaml:"version"`
	Tags    struct {
		Namespace  string `yaml:"namespace"`
		SecretName string `yaml:"secretName"`
		Filename   string `yaml:"filename"`
	} `yaml:"tags"`
}

// Load reads the optional config file and fills in tag keys that were
// not already set on the command line. Flags always win over the file.
// A missing file is not an error; the flags alone may fully configure a
// run.
func (c *Config) Load() error {
	if c.Path == "" {
		return nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return dserrors.UserError{
			Message:    fmt.Sprintf("Failed to read config file '%s'", c.Path),
			Suggestion: "Check the file exists and is readable, or omit --config",
			Err:        err,
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return dserrors.ConfigError{
			Field:   "config",
			Value:   c.Path,
			Message: fmt.Sprintf("invalid YAML: %v", err),
		}
	}

	if c.NamespaceTag == "" {
		c.NamespaceTag = def.Tags.Namespace
	}
	if c.SecretNameTag == "" {
		c.SecretNameTag = def.Tags.SecretName
	}
	if c.FilenameTag == "" {
		c.FilenameTag = def.Tags.Filename
	}

	return nil
}

// Validate checks that the run is fully configured
func (c *Config) Validate() error {
	if c.NamespaceTag == "" {
		return dserrors.ConfigError{
			Field:      "namespace-tag",
			Message:    "namespace tag key is required",
			Suggestion: "Pass --namespace-tag <tag-key> or set tags.namespace in the config file",
		}
	}
	if c.SecretNameTag == "" {
		return dserrors.ConfigError{
			Field:      "secret-name-tag",
			Message:    "secret name tag key is required",
			Suggestion: "Pass --secret-name-tag <tag-key> or set tags.secretName in the config file",
		}
	}
	if c.FilenameTag == "" {
		return dserrors.ConfigError{
			Field:      "filename-tag",
			Message:    "filename tag key is required",
			Suggestion: "Pass --filename-tag <tag-key> or set tags.filename in the config file",
		}
	}
	return nil
}
