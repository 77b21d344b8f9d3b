package sync

import (
	"strings"

	"github.com/systmms/secretsync/internal/config"
	"github.com/systmms/secretsync/internal/store"
)

// Route is where one secret goes: its destination name, the namespaces
// it is applied into, and the optional filename that switches the
// payload into file-secret mode.
type Route struct {
	Name       string
	Namespaces []string
	Filename   string
	FileMode   bool
}

// ExtractRoute reads the routing tags of one descriptor using the tag
// keys configured for the run.
//
// The namespace tag value is split on single spaces, left to right.
// Consecutive spaces produce empty tokens which are passed through
// unchanged; nothing upstream normalizes the value, so neither do we.
// A missing filename tag is the normal field-map case, not an error.
func ExtractRoute(d store.Descriptor, cfg *config.Config) (Route, error) {
	name, ok := tagValue(d.Tags, cfg.SecretNameTag)
	if !ok {
		return Route{}, &MissingTagError{SecretID: d.ID, TagKey: cfg.SecretNameTag}
	}

	namespaceList, ok := tagValue(d.Tags, cfg.NamespaceTag)
	if !ok {
		return Route{}, &MissingTagError{SecretID: d.ID, TagKey: cfg.NamespaceTag}
	}

	route := Route{
		Name:       name,
		Namespaces: strings.Split(namespaceList, " "),
	}
	route.Filename, route.FileMode = tagValue(d.Tags, cfg.FilenameTag)

	return route, nil
}

// tagValue returns the value of the first tag with the given key. The
// store should never produce duplicate keys, but if it does, the first
// match in tag order wins.
func tagValue(tags []store.Tag, key string) (string, bool) {
	for _, tag := range tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}
