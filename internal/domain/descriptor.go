package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Descriptor is the parsed metadata.json object of a plugin.
type Descriptor map[string]any

// ParseDescriptor decodes a JSON object. Anything other than an object at the
// top level is rejected.
func ParseDescriptor(data []byte) (Descriptor, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("top-level value must be a JSON object")
	}
	return Descriptor(obj), nil
}

// Has reports whether key is present, including explicit nulls.
func (d Descriptor) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value of key if it is a JSON string.
func (d Descriptor) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// List returns the value of key if it is a JSON array.
func (d Descriptor) List(key string) ([]any, bool) {
	l, ok := d[key].([]any)
	return l, ok
}

// Display renders any descriptor value for messages.
func Display(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
