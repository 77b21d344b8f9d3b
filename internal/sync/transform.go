package sync

import (
	"encoding/base64"
	"sort"
	"strings"
)

// BuildData converts a flat payload into the destination data map.
// Values are always standard base64 with padding; the destination
// Secret format mandates base64-valued data fields.
//
// In file-secret mode every field collapses into one newline-delimited
// `key=value` blob stored under the filename. In field-map mode each
// value is encoded independently under its own key.
func BuildData(payload map[string]string, route Route) map[string]string {
	if route.FileMode {
		return fileSecretData(payload, route.Filename)
	}
	return fieldMapData(payload)
}

// fileSecretData renders the payload as `key=value` lines sorted by
// key, so the blob is stable across runs regardless of map order.
func fileSecretData(payload map[string]string, filename string) map[string]string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var blob strings.Builder
	for _, key := range keys {
		blob.WriteString(key)
		blob.WriteString("=")
		blob.WriteString(payload[key])
		blob.WriteString("\n")
	}

	return map[string]string{
		filename: base64.StdEncoding.EncodeToString([]byte(blob.String())),
	}
}

func fieldMapData(payload map[string]string) map[string]string {
	data := make(map[string]string, len(payload))
	for key, value := range payload {
		data[key] = base64.StdEncoding.EncodeToString([]byte(value))
	}
	return data
}
