package sync

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema is the shape every secret value must have: a JSON
// object whose values are all strings.
const payloadSchema = `{"type": "object", "additionalProperties": {"type": "string"}}`

var payloadSchemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// ParsePayload parses a secret's raw string value into its field map.
// Anything that is not a JSON object of strings yields a
// MalformedPayloadError scoped to that secret.
func ParsePayload(secretID, raw string) (map[string]string, error) {
	result, err := gojsonschema.Validate(payloadSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, &MalformedPayloadError{SecretID: secretID, Err: err}
	}

	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return nil, &MalformedPayloadError{
			SecretID: secretID,
			Err:      fmt.Errorf("schema validation failed: %s", strings.Join(messages, "; ")),
		}
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &MalformedPayloadError{SecretID: secretID, Err: err}
	}

	return payload, nil
}
