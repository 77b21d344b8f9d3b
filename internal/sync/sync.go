// Package sync implements the tag-driven pipeline that turns tagged
// store secrets into destination Secret resources: discover, fetch,
// extract routing tags, transform the payload, apply per namespace.
package sync

import (
	"context"

	"github.com/systmms/secretsync/internal/config"
	"github.com/systmms/secretsync/internal/logging"
	"github.com/systmms/secretsync/internal/store"
)

// Store is the secret store surface the pipeline consumes
type Store interface {
	ListTaggedSecrets(ctx context.Context, tagKey string) ([]store.Descriptor, error)
	GetSecretValue(ctx context.Context, id string) (string, error)
}

// Applier is the cluster surface the pipeline consumes
type Applier interface {
	ApplySecret(ctx context.Context, namespace, name string, data map[string]string) error
}

// Summary counts the units of work of one run. A run with failures is
// still a completed run; operators inspect logs, not the exit code, to
// find partial failures.
type Summary struct {
	Discovered    int
	Synced        int
	Failed        int
	AppliesOK     int
	AppliesFailed int
}

// Syncer drives one best-effort batch run. It holds no state across
// secrets; every secret is processed from scratch off run-level
// configuration.
type Syncer struct {
	store   Store
	applier Applier
	cfg     *config.Config
	log     *logging.Logger
}

// New creates a Syncer. Both clients are long-lived handles owned by
// the caller and shared across all secrets of the run.
func New(st Store, applier Applier, cfg *config.Config) *Syncer {
	return &Syncer{
		store:   st,
		applier: applier,
		cfg:     cfg,
		log:     cfg.Logger,
	}
}

// Run discovers every secret tagged with the namespace tag key and
// applies each into its destination namespaces.
//
// Only discovery failure aborts the run. Every per-secret and
// per-namespace failure is logged and the loop moves on; one bad secret
// or one unreachable namespace never blocks the rest.
func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	descriptors, err := s.store.ListTaggedSecrets(ctx, s.cfg.NamespaceTag)
	if err != nil {
		return summary, &DiscoveryError{Err: err}
	}

	summary.Discovered = len(descriptors)
	s.log.Debug("Number of secrets retrieved: %d", len(descriptors))

	for _, descriptor := range descriptors {
		s.log.Info("Store secret: %s", descriptor.ID)

		if failedApplies, err := s.syncSecret(ctx, descriptor, &summary); err != nil {
			s.log.Error("Skipping secret '%s': %v", descriptor.ID, err)
			summary.Failed++
		} else if failedApplies > 0 {
			summary.Failed++
		} else {
			summary.Synced++
		}
	}

	return summary, nil
}

// syncSecret processes one descriptor. A returned error means the
// secret produced no applies at all; apply failures are reported
// through the returned count so sibling namespaces still proceed.
func (s *Syncer) syncSecret(ctx context.Context, descriptor store.Descriptor, summary *Summary) (failedApplies int, err error) {
	route, err := ExtractRoute(descriptor, s.cfg)
	if err != nil {
		return 0, err
	}

	raw, err := s.store.GetSecretValue(ctx, descriptor.ID)
	if err != nil {
		return 0, &FetchError{SecretID: descriptor.ID, Err: err}
	}

	payload, err := ParsePayload(descriptor.ID, raw)
	if err != nil {
		return 0, err
	}

	data := BuildData(payload, route)

	// Namespaces apply left to right, duplicates included; server-side
	// apply makes a repeated (namespace, name) pair converge.
	for _, namespace := range route.Namespaces {
		applyErr := s.applier.ApplySecret(ctx, namespace, route.Name, data)
		if applyErr != nil {
			s.log.Error("%v", &ApplyError{
				SecretID:  descriptor.ID,
				Namespace: namespace,
				Name:      route.Name,
				Err:       applyErr,
			})
			failedApplies++
			summary.AppliesFailed++
			continue
		}
		s.log.Info("Secret %s/%s updated", namespace, route.Name)
		summary.AppliesOK++
	}

	return failedApplies, nil
}
