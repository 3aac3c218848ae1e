package types

import (
	"encoding/json"
	"fmt"
)

// Payload encodings. Historically the data column held either a JSON object
// keyed by field name or a JSON array; the array shape itself came in two
// flavors that were never formalized. Payload makes the variant explicit so
// consumers dispatch on a tag instead of re-sniffing shapes everywhere.
const (
	// EncodingObject is a single record: field name to value.
	EncodingObject = "object"
	// EncodingObjectArray is one stored row expanding to many records, one
	// JSON object per item.
	EncodingObjectArray = "object_array"
	// EncodingPositional is the deprecated array-of-scalars shape, aligned
	// to the owning definition's field order at time of writing. Supported
	// for reads and migration only; new rows must not use it.
	EncodingPositional = "positional"
)

// Payload is the polymorphic data column of a Registro. Exactly one of the
// variant accessors returns meaningful data, selected by Encoding.
// The zero value is an empty object payload.
type Payload struct {
	encoding   string
	object     map[string]any
	items      []map[string]any
	positional []any
}

// ObjectPayload wraps a field-name-keyed record.
func ObjectPayload(m map[string]any) Payload {
	return Payload{encoding: EncodingObject, object: m}
}

// ObjectArrayPayload wraps a multi-item row: one object per item.
func ObjectArrayPayload(items []map[string]any) Payload {
	return Payload{encoding: EncodingObjectArray, items: items}
}

// PositionalPayload wraps the deprecated positional-values shape.
func PositionalPayload(values []any) Payload {
	return Payload{encoding: EncodingPositional, positional: values}
}

// Encoding returns the variant tag, one of the Encoding constants.
func (p Payload) Encoding() string {
	if p.encoding == "" {
		return EncodingObject
	}
	return p.encoding
}

// IsArray reports whether the payload is either array encoding. This mirrors
// the shape test legacy consumers applied to the raw JSON.
func (p Payload) IsArray() bool {
	e := p.Encoding()
	return e == EncodingObjectArray || e == EncodingPositional
}

// Object returns the record map for object payloads, nil otherwise.
func (p Payload) Object() map[string]any {
	return p.object
}

// Items returns the per-item objects for object-array payloads.
func (p Payload) Items() []map[string]any {
	return p.items
}

// Positional returns the raw values for positional payloads.
func (p Payload) Positional() []any {
	return p.positional
}

// MarshalJSON writes the payload in its legacy wire shape: objects as JSON
// objects, both array encodings as JSON arrays. Round-trips byte-compatibly
// with rows written by earlier versions of the system.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.Encoding() {
	case EncodingObject:
		if p.object == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(p.object)
	case EncodingObjectArray:
		if p.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.items)
	case EncodingPositional:
		if p.positional == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.positional)
	default:
		return nil, fmt.Errorf("unknown payload encoding %q", p.encoding)
	}
}

// UnmarshalJSON recovers the variant tag from the wire shape. The shape test
// happens exactly once, here at the storage boundary: a JSON object is an
// object payload; an array whose elements are all objects is an object-array
// payload; any other array is positional. An empty array is an object-array
// with zero items, which flattens to zero records.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}
	switch v := raw.(type) {
	case map[string]any:
		*p = ObjectPayload(v)
		return nil
	case []any:
		items := make([]map[string]any, 0, len(v))
		for _, el := range v {
			m, ok := el.(map[string]any)
			if !ok {
				*p = PositionalPayload(v)
				return nil
			}
			items = append(items, m)
		}
		*p = ObjectArrayPayload(items)
		return nil
	case nil:
		*p = ObjectPayload(nil)
		return nil
	default:
		return fmt.Errorf("payload must be a JSON object or array, got %T", raw)
	}
}
