// Package nested walks decoded JSON documents by key path.
package nested

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyPath = errors.New("empty key path")

// KeyError reports the first key in a path that could not be resolved.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key not found: %q", e.Key)
}

// TypeError reports a resolved value whose type is not the one requested.
type TypeError struct {
	Path []string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value at %s is %T, want %s", strings.Join(e.Path, "."), e.Got, e.Want)
}

// Access follows path through m and returns the value at its end. The value
// is returned as stored: a path ending on an object yields the object.
//
// Traversal stops at the first key that is absent, or whose parent is not an
// object, and returns a *KeyError carrying that key.
func Access(m map[string]any, path ...string) (any, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	var current any = m
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, &KeyError{Key: key}
		}
		value, ok := obj[key]
		if !ok {
			return nil, &KeyError{Key: key}
		}
		current = value
	}

	return current, nil
}

// String is Access for paths that must end on a string.
func String(m map[string]any, path ...string) (string, error) {
	value, err := Access(m, path...)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &TypeError{Path: path, Want: "string", Got: value}
	}
	return s, nil
}

// Map is Access for paths that must end on an object.
func Map(m map[string]any, path ...string) (map[string]any, error) {
	value, err := Access(m, path...)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Want: "object", Got: value}
	}
	return obj, nil
}

// SplitPath turns "a.b.c" into a key path. Empty segments are dropped.
func SplitPath(s string) []string {
	var path []string
	for _, part := range strings.Split(s, ".") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}
