package sync

import "fmt"

// DiscoveryError reports that listing tagged secrets failed. It is the
// only run-fatal error: nothing can be synced without an inventory.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("secret discovery failed: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// FetchError reports that one secret's value could not be retrieved.
// Scoped to that secret; the run continues.
type FetchError struct {
	SecretID string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch secret '%s': %v", e.SecretID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MissingTagError reports that a secret lacks one of the required
// routing tags and cannot be processed.
type MissingTagError struct {
	SecretID string
	TagKey   string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("secret '%s' has no tag with key '%s'", e.SecretID, e.TagKey)
}

// MalformedPayloadError reports that a secret's value is not a JSON
// object mapping field names to string values.
type MalformedPayloadError struct {
	SecretID string
	Err      error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("secret '%s' has a malformed payload: %v", e.SecretID, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// ApplyError reports that applying one secret into one namespace
// failed. Scoped to that (secret, namespace) pair; other namespaces of
// the same secret and other secrets are unaffected.
type ApplyError struct {
	SecretID  string
	Namespace string
	Name      string
	Err       error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to apply secret '%s' as %s/%s: %v", e.SecretID, e.Namespace, e.Name, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}
