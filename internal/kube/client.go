// Package kube applies destination Secret resources into cluster
// namespaces using server-side apply.
package kube

import (
	"context"
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// FieldManager is the identity under which this job owns applied
// fields. Repeated runs under the same manager converge instead of
// conflicting.
const FieldManager = "secretsync"

// Client is a long-lived handle to the destination cluster, created
// once per run and safe for reuse.
type Client struct {
	clientset kubernetes.Interface
}

// New builds a cluster client from the in-cluster service account when
// running inside a pod, falling back to the default kubeconfig loading
// rules otherwise.
func New() (*Client, error) {
	restCfg, err := rest.InClusterConfig()
	if err != nil {
		loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
		restCfg, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			loadingRules, &clientcmd.ConfigOverrides{},
		).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load cluster config: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewWithClientset wraps an existing clientset (for testing)
func NewWithClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// ApplySecret server-side-applies a v1/Secret with the given data map
// into a namespace. Data values must already be base64 encoded; the
// Secret wire format mandates base64-valued data fields.
//
// The apply is declarative and idempotent per (namespace, name): fields
// owned by other managers are left untouched, and repeating the same
// apply converges to the same destination state.
func (c *Client) ApplySecret(ctx context.Context, namespace, name string, data map[string]string) error {
	patch, err := json.Marshal(map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Secret",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": namespace,
		},
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal secret patch: %w", err)
	}

	force := true
	_, err = c.clientset.CoreV1().Secrets(namespace).Patch(ctx, name, types.ApplyPatchType, patch, metav1.PatchOptions{
		FieldManager: FieldManager,
		Force:        &force,
	})
	if err != nil {
		return fmt.Errorf("failed to apply secret %s/%s: %w", namespace, name, err)
	}

	return nil
}
