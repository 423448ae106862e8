package canvas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// FormStrategy selects how a request DTO is shaped on the wire. Every DTO
// uses exactly one strategy; endpoints needing another get an explicit
// per-DTO override instead of an ad hoc special case.
type FormStrategy string

const (
	// FormNested emits property[field] pairs, recursing into nested maps as
	// property[field][sub] and plain lists as property[field][]. This is the
	// default Canvas form convention.
	FormNested FormStrategy = "nested-brackets"

	// FormFlat emits bare field keys with [] suffixes for lists and no
	// property-name nesting. Used by the conversations endpoints.
	FormFlat FormStrategy = "flat-repeated"

	// FormJSON sends the DTO as a JSON body with no flattening.
	FormJSON FormStrategy = "json-body"
)

// FormField is one (name, contents) pair of a multipart form submission. The
// wire format is an ordered flat list, never a nested map, because the
// transport requires repeated-name encoding.
type FormField struct {
	Name     string
	Contents string
}

// FormEncoder is implemented by request DTOs that know their API property
// name and serialization strategy.
type FormEncoder interface {
	APIProperty() string
	Strategy() FormStrategy
}

// EncodeForm serializes a DTO to its flat multipart field list. The DTO is
// passed through its JSON struct tags first, which gives snake_case wire
// names, null suppression via omitempty, and RFC3339 time formatting; the
// resulting tree is then flattened recursively. Keys are emitted in sorted
// order so the output is deterministic.
func EncodeForm(dto FormEncoder) ([]FormField, error) {
	return EncodeFormValue(dto.APIProperty(), dto, dto.Strategy())
}

// EncodeFormValue serializes an arbitrary value under the given property name
// using the given strategy. FormJSON is not a flat encoding and is rejected
// here; callers wanting a JSON body pass the DTO to the transport directly.
func EncodeFormValue(property string, value interface{}, strategy FormStrategy) ([]FormField, error) {
	if strategy == FormJSON {
		return nil, fmt.Errorf("%w: json-body DTOs are sent unflattened", ErrUnsupportedFormStrategy)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshaling form value: %w", err)
	}

	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("form value must serialize to an object: %w", err)
	}

	fields := make([]FormField, 0, len(tree))

	for _, key := range sortedKeys(tree) {
		name := property + "[" + key + "]"
		if strategy == FormFlat {
			name = key
		}

		fields = append(fields, flattenValue(name, tree[key])...)
	}

	return fields, nil
}

// flattenValue recursively flattens one subtree. Maps append [subkey] per
// level; plain lists emit one repeated name[] entry per element; scalars emit
// a single pair. Nulls are dropped.
func flattenValue(name string, value interface{}) []FormField {
	switch typed := value.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		fields := make([]FormField, 0, len(typed))
		for _, key := range sortedKeys(typed) {
			fields = append(fields, flattenValue(name+"["+key+"]", typed[key])...)
		}

		return fields
	case []interface{}:
		fields := make([]FormField, 0, len(typed))
		for _, element := range typed {
			fields = append(fields, flattenValue(name+"[]", element)...)
		}

		return fields
	default:
		return []FormField{{Name: name, Contents: scalarString(typed)}}
	}
}

func scalarString(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		// json.Unmarshal decodes all numbers as float64; integers must not
		// pick up a fractional suffix on the wire.
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}

		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func sortedKeys(tree map[string]interface{}) []string {
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
