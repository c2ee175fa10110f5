package document

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Raw is an undecoded JSON document.  It is never mutated once created.
type Raw []byte

// Root returns the parsed top-level value.
func (r Raw) Root() (result gjson.Result) {
	result = gjson.ParseBytes(r)
	return result
}

// IsObject reports whether the document is a JSON object.
func (r Raw) IsObject() (ok bool) {
	ok = len(bytes.TrimSpace(r)) > 0 && r.Root().IsObject()
	return ok
}

// Get returns the value at a gjson path.
func (r Raw) Get(path string) (result gjson.Result) {
	result = gjson.GetBytes(r, path)
	return result
}

// Field returns the direct child of an object without interpreting gjson path
// syntax, so keys containing dots or wildcards are looked up literally.
func Field(parent gjson.Result, key string) (result gjson.Result) {
	result = parent.Get(gjson.Escape(key))
	return result
}

// Keys returns the keys of an object in document order.
func Keys(obj gjson.Result) (keys []string) {
	keys = make([]string, 0)
	if !obj.IsObject() {
		return keys
	}
	obj.ForEach(func(key, _ gjson.Result) (next bool) {
		keys = append(keys, key.String())
		next = true
		return next
	})
	return keys
}

// Entry is a key/value pair of an object.
type Entry struct {
	Key   string
	Value gjson.Result
}

// Entries returns the members of an object in document order.
func Entries(obj gjson.Result) (entries []Entry) {
	entries = make([]Entry, 0)
	if !obj.IsObject() {
		return entries
	}
	obj.ForEach(func(key, value gjson.Result) (next bool) {
		entries = append(entries, Entry{Key: key.String(), Value: value})
		next = true
		return next
	})
	return entries
}

// Strings returns the string elements of an array, skipping anything else.
func Strings(arr gjson.Result) (values []string) {
	values = make([]string, 0)
	if !arr.IsArray() {
		return values
	}
	for _, item := range arr.Array() {
		if item.Type == gjson.String {
			values = append(values, item.Str)
		}
	}
	return values
}

// Text returns the value when it is a JSON string, otherwise "".
func Text(value gjson.Result) (text string) {
	if value.Type == gjson.String {
		text = value.Str
	}
	return text
}

// IsInteger reports whether the value is a JSON number without a fractional part.
func IsInteger(value gjson.Result) (ok bool) {
	if value.Type != gjson.Number {
		return ok
	}
	ok = value.Num == float64(int64(value.Num))
	return ok
}

// Present reports whether a value is set to something other than null, false,
// zero or the empty string.  It mirrors how the documents use truthiness for
// optional fields.
func Present(value gjson.Result) (ok bool) {
	switch value.Type {
	case gjson.Null, gjson.False:
		ok = false
	case gjson.String:
		ok = value.Str != ""
	case gjson.Number:
		ok = value.Num != 0
	default:
		ok = value.Exists()
	}
	return ok
}

// TypeName describes the JSON type of a value for messages.
func TypeName(value gjson.Result) (name string) {
	switch {
	case !value.Exists():
		name = "missing"
	case value.IsArray():
		name = "array"
	case value.IsObject():
		name = "object"
	case value.Type == gjson.String:
		name = "string"
	case value.Type == gjson.Number:
		name = "number"
	case value.Type == gjson.True, value.Type == gjson.False:
		name = "boolean"
	default:
		name = "null"
	}
	return name
}

// Compose builds the combined document the validator consumes from a separated
// profile and version-set pair: the profile members, plus `versions` and
// `version_config` taken from the version set.
func Compose(profile, versionSet Raw) (combined Raw, err error) {
	base := []byte(profile.Root().Raw)
	if !profile.IsObject() {
		base = []byte("{}")
	}

	sets := versionSet.Root()
	versions := sets.Get("versions")
	if versions.Exists() {
		base, err = sjson.SetRawBytes(base, "versions", []byte(versions.Raw))
		if err != nil {
			err = errors.Wrap(err, "failed to set versions")
			return combined, err
		}
	}

	config := sets.Get("config")
	if !config.Exists() {
		config = sets.Get("version_config")
	}
	if config.Exists() {
		base, err = sjson.SetRawBytes(base, "version_config", []byte(config.Raw))
		if err != nil {
			err = errors.Wrap(err, "failed to set version_config")
			return combined, err
		}
	}

	combined = Raw(base)
	return combined, err
}

// Parse turns file content into a Raw JSON document, converting YAML when the
// name carries a .yaml or .yml extension.
func Parse(name string, data []byte) (doc Raw, err error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		doc, err = FromYAML(data)
		if err != nil {
			err = errors.Wrapf(err, "failed to convert YAML document: %s", name)
		}
		return doc, err
	}

	if !gjson.ValidBytes(data) {
		err = errors.Errorf("invalid JSON document: %s", name)
		return doc, err
	}

	doc = Raw(data)
	return doc, err
}
