package sync_test

import (
	"encoding/base64"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/secretsync/internal/sync"
)

func TestBuildDataFieldMapMode(t *testing.T) {
	t.Parallel()

	payload := map[string]string{
		"user": "a",
		"pass": "b",
		"url":  "postgres://db:5432",
	}

	data := sync.BuildData(payload, sync.Route{Name: "db-creds"})

	require.Len(t, data, len(payload))
	for key, encoded := range data {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err, "value of %q must be valid base64", key)
		assert.Equal(t, payload[key], string(decoded))
	}
}

func TestBuildDataFileSecretMode(t *testing.T) {
	t.Parallel()

	payload := map[string]string{
		"user": "a",
		"pass": "b",
	}
	route := sync.Route{Name: "db-creds", Filename: "env", FileMode: true}

	data := sync.BuildData(payload, route)

	require.Len(t, data, 1)
	blob, err := base64.StdEncoding.DecodeString(data["env"])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(blob), "\n"), "\n")
	sort.Strings(lines)
	assert.Equal(t, []string{"pass=b", "user=a"}, lines)
}

func TestBuildDataFileSecretModeIsDeterministic(t *testing.T) {
	t.Parallel()

	payload := map[string]string{"c": "3", "a": "1", "b": "2"}
	route := sync.Route{Filename: "app.env", FileMode: true}

	first := sync.BuildData(payload, route)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sync.BuildData(payload, route))
	}

	blob, err := base64.StdEncoding.DecodeString(first["app.env"])
	require.NoError(t, err)
	assert.Equal(t, "a=1\nb=2\nc=3\n", string(blob))
}

func TestBuildDataEmptyPayload(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sync.BuildData(map[string]string{}, sync.Route{}))

	data := sync.BuildData(map[string]string{}, sync.Route{Filename: "env", FileMode: true})
	require.Len(t, data, 1)
	blob, err := base64.StdEncoding.DecodeString(data["env"])
	require.NoError(t, err)
	assert.Empty(t, blob)
}

func TestBuildDataEncodesUTF8Bytes(t *testing.T) {
	t.Parallel()

	payload := map[string]string{"motd": "héllo wörld"}

	data := sync.BuildData(payload, sync.Route{})

	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("héllo wörld")), data["motd"])
}
