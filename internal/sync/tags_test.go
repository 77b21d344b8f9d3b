package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/secretsync/internal/config"
	"github.com/systmms/secretsync/internal/store"
	"github.com/systmms/secretsync/internal/sync"
)

func routeConfig() *config.Config {
	return &config.Config{
		NamespaceTag:  "k8s/namespace",
		SecretNameTag: "k8s/secret-name",
		FilenameTag:   "k8s/filename",
	}
}

func TestExtractRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tags       []store.Tag
		want       sync.Route
		wantErrTag string
	}{
		{
			name: "name_and_single_namespace",
			tags: []store.Tag{
				{Key: "k8s/secret-name", Value: "db-creds"},
				{Key: "k8s/namespace", Value: "prod"},
			},
			want: sync.Route{Name: "db-creds", Namespaces: []string{"prod"}},
		},
		{
			name: "namespace_list_splits_on_spaces",
			tags: []store.Tag{
				{Key: "k8s/secret-name", Value: "db-creds"},
				{Key: "k8s/namespace", Value: "a b c"},
			},
			want: sync.Route{Name: "db-creds", Namespaces: []string{"a", "b", "c"}},
		},
		{
			name: "double_space_produces_empty_token",
			tags: []store.Tag{
				{Key: "k8s/secret-name", Value: "db-creds"},
				{Key: "k8s/namespace", Value: "a  b"},
			},
			want: sync.Route{Name: "db-creds", Namespaces: []string{"a", "", "b"}},
		},
		{
			name: "filename_tag_switches_file_mode",
			tags: []store.Tag{
				{Key: "k8s/secret-name", Value: "db-creds"},
				{Key: "k8s/namespace", Value: "prod"},
				{Key: "k8s/filename", Value: "env"},
			},
			want: sync.Route{
				Name:       "db-creds",
				Namespaces: []string{"prod"},
				Filename:   "env",
				FileMode:   true,
			},
		},
		{
			name: "unrelated_tags_ignored",
			tags: []store.Tag{
				{Key: "team", Value: "payments"},
				{Key: "k8s/secret-name", Value: "db-creds"},
				{Key: "k8s/namespace", Value: "prod"},
			},
			want: sync.Route{Name: "db-creds", Namespaces: []string{"prod"}},
		},
		{
			name: "missing_secret_name_tag",
			tags: []store.Tag{
				{Key: "k8s/namespace", Value: "prod"},
			},
			wantErrTag: "k8s/secret-name",
		},
		{
			name: "missing_namespace_tag",
			tags: []store.Tag{
				{Key: "k8s/secret-name", Value: "db-creds"},
			},
			wantErrTag: "k8s/namespace",
		},
		{
			name:       "no_tags_at_all",
			tags:       nil,
			wantErrTag: "k8s/secret-name",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			descriptor := store.Descriptor{ID: "app/secret", Tags: tt.tags}
			route, err := sync.ExtractRoute(descriptor, routeConfig())

			if tt.wantErrTag != "" {
				require.Error(t, err)
				var missing *sync.MissingTagError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "app/secret", missing.SecretID)
				assert.Equal(t, tt.wantErrTag, missing.TagKey)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, route)
		})
	}
}

func TestExtractRouteFirstTagWinsOnDuplicateKeys(t *testing.T) {
	t.Parallel()

	descriptor := store.Descriptor{
		ID: "app/secret",
		Tags: []store.Tag{
			{Key: "k8s/secret-name", Value: "first"},
			{Key: "k8s/secret-name", Value: "second"},
			{Key: "k8s/namespace", Value: "prod"},
		},
	}

	route, err := sync.ExtractRoute(descriptor, routeConfig())
	require.NoError(t, err)
	assert.Equal(t, "first", route.Name)
}
