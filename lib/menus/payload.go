package menus

import (
	"strings"

	"github.com/antonholmquist/jason"
)

// objectList returns the first path that resolves to a non-empty array
// of objects. Missing keys, wrong types, and empty arrays all just move
// on to the next path; malformed payloads degrade to no products rather
// than errors.
func objectList(root *jason.Object, paths ...[]string) []*jason.Object {
	for _, path := range paths {
		list, err := root.GetObjectArray(path...)
		if err == nil && len(list) > 0 {
			return list
		}
	}
	return nil
}

// stringAt reads a string field, returning "" when it is absent or not
// a string.
func stringAt(obj *jason.Object, keys ...string) string {
	s, err := obj.GetString(keys...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// firstStringAt returns the first non-empty string among the given
// single-level keys.
func firstStringAt(obj *jason.Object, keys ...string) string {
	for _, key := range keys {
		if s := stringAt(obj, key); s != "" {
			return s
		}
	}
	return ""
}

// baseName strips the product-size suffix retailers append after a
// " - " separator, e.g. "Blue Dream - Flower 3.5g" -> "Blue Dream".
func baseName(productName string) string {
	name, _, _ := strings.Cut(productName, " - ")
	return strings.TrimSpace(name)
}

// usableName rejects empty and too-short strain names; anything under
// three characters is noise from malformed product rows.
func usableName(name string) bool {
	return len(name) >= 3
}
