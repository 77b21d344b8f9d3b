// Package store wraps the AWS Secrets Manager API behind the two
// operations the sync pipeline needs: discovering tagged secrets and
// fetching a secret's raw payload.
package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerAPI defines the interface for AWS Secrets Manager operations
// This allows for mocking in tests
type SecretsManagerAPI interface {
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Tag is one key/value metadata pair attached to a secret. Tags carry
// routing configuration, never payload.
type Tag struct {
	Key   string
	Value string
}

// Descriptor is a store-side listing entry: the secret's identifier and
// its tags, without the secret value. The identifier is the store-side
// secret name and is unique within one discovery result.
type Descriptor struct {
	ID   string
	Tags []Tag
}

// Client is a long-lived handle to AWS Secrets Manager. It is created
// once per run and is safe for reuse across calls.
type Client struct {
	client   SecretsManagerAPI
	region   string
	endpoint string // Optional custom endpoint for LocalStack or testing

	staticAccessKeyID     string
	staticSecretAccessKey string
}

// Option is a functional option for configuring the store client
type Option func(*Client)

// WithAPI sets a custom Secrets Manager client (for testing)
func WithAPI(api SecretsManagerAPI) Option {
	return func(c *Client) {
		c.client = api
	}
}

// WithRegion overrides the region from the default AWS config chain
func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithEndpoint sets a custom endpoint (for LocalStack or testing)
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithStaticCredentials uses static credentials instead of the default
// chain (for LocalStack or testing)
func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(c *Client) {
		c.staticAccessKeyID = accessKeyID
		c.staticSecretAccessKey = secretAccessKey
	}
}

// New creates a new Secrets Manager client using the default AWS
// credential chain (env vars, shared config, IAM role)
func New(ctx context.Context, opts ...Option) (*Client, error) {
	c := &Client{}

	// Apply options (allows mock client injection)
	for _, opt := range opts {
		opt(c)
	}

	// If no client was provided via options, create real client
	if c.client == nil {
		var configOpts []func(*config.LoadOptions) error
		if c.region != "" {
			configOpts = append(configOpts, config.WithRegion(c.region))
		}
		if c.staticAccessKeyID != "" && c.staticSecretAccessKey != "" {
			configOpts = append(configOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(c.staticAccessKeyID, c.staticSecretAccessKey, ""),
			))
		}

		cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var clientOpts []func(*secretsmanager.Options)
		if c.endpoint != "" {
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = &c.endpoint
			})
		}
		c.client = secretsmanager.NewFromConfig(cfg, clientOpts...)
	}

	return c, nil
}

// ListTaggedSecrets returns a descriptor for every secret carrying a tag
// with the given key, following pagination until the store is exhausted.
// Any transport or auth error surfaces immediately; discovery has no
// per-item error isolation.
func (c *Client) ListTaggedSecrets(ctx context.Context, tagKey string) ([]Descriptor, error) {
	filter := types.Filter{
		Key:    types.FilterNameStringTypeTagKey,
		Values: []string{tagKey},
	}

	var descriptors []Descriptor
	var nextToken *string
	for {
		out, err := c.client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
			Filters:   []types.Filter{filter},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list secrets tagged with '%s': %w", tagKey, err)
		}

		for _, entry := range out.SecretList {
			descriptors = append(descriptors, toDescriptor(entry))
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return descriptors, nil
}

// GetSecretValue fetches the raw string payload of one secret in a
// single round trip. Binary secrets are returned as their byte string.
func (c *Client) GetSecretValue(ctx context.Context, id string) (string, error) {
	out, err := c.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get value of secret '%s': %w", id, err)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if out.SecretBinary != nil {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("secret '%s' has no value", id)
}

// toDescriptor flattens an SDK list entry, preserving tag order. The
// identifier is the secret name when present, falling back to the ARN.
func toDescriptor(entry types.SecretListEntry) Descriptor {
	d := Descriptor{}
	if entry.Name != nil {
		d.ID = *entry.Name
	} else if entry.ARN != nil {
		d.ID = *entry.ARN
	}
	for _, tag := range entry.Tags {
		t := Tag{}
		if tag.Key != nil {
			t.Key = *tag.Key
		}
		if tag.Value != nil {
			t.Value = *tag.Value
		}
		d.Tags = append(d.Tags, t)
	}
	return d
}
