// Package mapping translates entity records between the backend's wire
// naming and the canonical naming used by gateway clients. Each entity is a
// declarative Table driving both directions.
package mapping

import (
	"strings"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// Record is an entity in canonical form.
type Record map[string]any

// Codec converts an enum-like field. Decode receives the raw wire value
// (nil when absent) and must return a canonical value; Encode is its
// inverse over canonical values.
type Codec struct {
	Decode func(wire any) any
	Encode func(canonical any) any
}

// Field pairs one canonical key with its wire key.
type Field struct {
	Canonical string
	// Wire may be a dotted path ("hoKhau.id") addressing a nested object.
	Wire string
	// Aliases are alternate wire paths read, in order, when Wire is absent.
	Aliases []string
	// WriteAliases also emits the value under every alias on the way out.
	WriteAliases bool
	Kind         Kind
	Codec        *Codec
	// Rules is a validator tag checked against the canonical value of
	// create and update payloads.
	Rules string
}

// Table is the complete field list of one entity.
type Table struct {
	Entity string
	Fields []Field
}

func (f Field) decode(v any, present bool) any {
	if f.Kind == KindEnum && f.Codec != nil {
		if !present {
			v = nil
		}
		return f.Codec.Decode(v)
	}
	if !present {
		return f.Kind.zero()
	}
	return coerce(f.Kind, v)
}

func (f Field) encode(v any) any {
	if f.Kind == KindEnum && f.Codec != nil {
		return f.Codec.Encode(v)
	}
	return coerce(f.Kind, v)
}

// ToCanonical maps a wire object to a canonical record. Every canonical
// field is present, defaulted when its wire source is missing; wire keys the
// table does not declare are dropped. raw is never modified. Anything other
// than a JSON object yields nil.
func (t *Table) ToCanonical(raw any) Record {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	out := make(Record, len(t.Fields))
	for _, f := range t.Fields {
		v, present := lookup(obj, f.Wire)
		for i := 0; !present && i < len(f.Aliases); i++ {
			v, present = lookup(obj, f.Aliases[i])
		}
		out[f.Canonical] = f.decode(v, present)
	}
	return out
}

// ToWire maps a canonical record to its wire object. Every declared field is
// emitted; missing canonical values are written as their defaults.
func (t *Table) ToWire(rec Record) map[string]any {
	out := make(map[string]any, len(t.Fields))
	for _, f := range t.Fields {
		v := f.encode(rec[f.Canonical])
		assign(out, f.Wire, v)
		if f.WriteAliases {
			for _, a := range f.Aliases {
				assign(out, a, v)
			}
		}
	}
	return out
}

// ToCanonicalList maps a wire collection. Both bare arrays and paged
// envelopes ({"content": [...]} or {"data": [...]}) are accepted; an empty
// body is an empty collection. Any other shape is domain.ErrUnexpectedShape.
// Items that are not objects are skipped.
func (t *Table) ToCanonicalList(raw any) ([]Record, error) {
	items, ok := asList(raw)
	if !ok {
		return nil, domain.ErrUnexpectedShape
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if rec := t.ToCanonical(item); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Field returns the declaration for a canonical key.
func (t *Table) Field(canonical string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Canonical == canonical {
			return f, true
		}
	}
	return Field{}, false
}

// Canonical lists the canonical keys in declaration order.
func (t *Table) Canonical() []string {
	keys := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		keys[i] = f.Canonical
	}
	return keys
}

// Wire returns the wire path of a canonical key, or "" when undeclared.
func (t *Table) Wire(canonical string) string {
	f, ok := t.Field(canonical)
	if !ok {
		return ""
	}
	return f.Wire
}

func asObject(raw any) (map[string]any, bool) {
	switch x := raw.(type) {
	case map[string]any:
		return x, x != nil
	case Record:
		return x, x != nil
	default:
		return nil, false
	}
}

func asList(raw any) ([]any, bool) {
	switch x := raw.(type) {
	case nil:
		return nil, true
	case []any:
		return x, true
	case []map[string]any:
		items := make([]any, len(x))
		for i, m := range x {
			items[i] = m
		}
		return items, true
	case map[string]any:
		for _, key := range []string{"content", "data"} {
			if inner, ok := x[key]; ok {
				if items, ok := inner.([]any); ok {
					return items, true
				}
			}
		}
	}
	return nil, false
}

// lookup reads a dotted path. A path through a null or non-object value is
// absent.
func lookup(obj map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := obj
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, v != nil
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// assign writes a dotted path, creating intermediate objects. A nil value on
// a nested path nulls the parent object instead, so a missing reference
// goes out as "hoKhau": null rather than {"id": null}.
func assign(obj map[string]any, path string, v any) {
	parts := strings.Split(path, ".")
	if len(parts) > 1 && v == nil {
		if _, exists := obj[parts[0]]; !exists {
			obj[parts[0]] = nil
		}
		return
	}
	cur := obj
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

// Normalize coerces a client-supplied canonical record into the table's
// schema: unknown keys dropped, missing keys defaulted, values typed.
func (t *Table) Normalize(rec Record) Record {
	return t.ToCanonical(t.ToWire(rec))
}

// AsSent returns normalized with every enum field the client supplied put
// back in its submitted spelling (trimmed, upper-cased), so validation rules
// see the input before the codec folds unknown values into a default.
func (t *Table) AsSent(input, normalized Record) Record {
	out := make(Record, len(normalized))
	for k, v := range normalized {
		out[k] = v
	}
	for _, f := range t.Fields {
		if f.Kind != KindEnum {
			continue
		}
		v, ok := input[f.Canonical]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr {
			v = strings.ToUpper(strings.TrimSpace(s))
		}
		out[f.Canonical] = v
	}
	return out
}

// Overlay returns a copy of base with every declared field present in patch
// replaced by the patch value. Undeclared patch keys are ignored.
func (t *Table) Overlay(base, patch Record) Record {
	out := make(Record, len(t.Fields))
	for k, v := range base {
		out[k] = v
	}
	for _, f := range t.Fields {
		if v, ok := patch[f.Canonical]; ok {
			out[f.Canonical] = v
		}
	}
	return out
}

// Sent keeps only the fields of normalized that the client supplied.
func (t *Table) Sent(input, normalized Record) Record {
	out := make(Record, len(input))
	for _, f := range t.Fields {
		if _, ok := input[f.Canonical]; ok {
			out[f.Canonical] = normalized[f.Canonical]
		}
	}
	return out
}
