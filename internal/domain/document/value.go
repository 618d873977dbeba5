package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the Value union.
type Kind int

const (
	// KindNull is a YAML null.
	KindNull Kind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating-point scalar.
	KindFloat
	// KindString is a string scalar.
	KindString
	// KindSequence is an ordered list of values.
	KindSequence
	// KindMapping is an ordered list of key/value entries.
	KindMapping
)

// Entry is one key/value pair of an ordered mapping.
type Entry struct {
	Key   string
	Value Value
}

// Value is an immutable tagged union covering every shape a document
// section can take: scalars, sequences, and order-preserving mappings.
// The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	seq     []Value
	entries []Entry
}

// Null creates a null value.
func Null() Value { return Value{kind: KindNull} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int creates an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float creates a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Sequence creates a sequence value.
func Sequence(vs ...Value) Value { return Value{kind: KindSequence, seq: vs} }

// Mapping creates an ordered mapping value.
func Mapping(entries ...Entry) Value { return Value{kind: KindMapping, entries: entries} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload. ok is false for non-string values.
func (v Value) AsString() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// Items returns the elements of a sequence value, nil otherwise.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Entries returns the entries of a mapping value, nil otherwise.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}
	return v.entries
}

// Get looks up a key in a mapping value.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// FromYAML converts a decoded yaml.Node tree into a Value.
// yaml.v3 keeps mapping entries in source order, which is what makes the
// stable section ordering of the HTTP responses possible.
func FromYAML(node *yaml.Node) (Value, error) {
	if node == nil {
		return Null(), nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAML(node.Content[0])

	case yaml.AliasNode:
		return FromYAML(node.Alias)

	case yaml.ScalarNode:
		return scalarFromYAML(node)

	case yaml.SequenceNode:
		items := make([]Value, len(node.Content))
		for i, child := range node.Content {
			v, err := FromYAML(child)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindSequence, seq: items}, nil

	case yaml.MappingNode:
		entries := make([]Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: non-scalar mapping key", keyNode.Line)
			}
			v, err := FromYAML(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: keyNode.Value, Value: v})
		}
		return Value{kind: KindMapping, entries: entries}, nil

	default:
		return Value{}, fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(node.Value))
		if err != nil {
			return Value{}, fmt.Errorf("line %d: bad bool %q: %w", node.Line, node.Value, err)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: bad int %q: %w", node.Line, node.Value, err)
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: bad float %q: %w", node.Line, node.Value, err)
		}
		return Float(f), nil
	default:
		// Timestamps, plain strings, and anything custom-tagged stay strings.
		return String(node.Value), nil
	}
}

// MarshalJSON renders the value with mapping entries in source order.
// The stdlib map type sorts keys, so mappings are encoded by hand; scalar
// leaves are delegated to encoding/json.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindSequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMapping:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(e.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			b, err := e.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// TrimTrailingNewlines walks the value and strips trailing newline runs
// from every string leaf, rebuilding containers along the way. Non-string
// leaves pass through unchanged.
func TrimTrailingNewlines(v Value) Value {
	switch v.kind {
	case KindString:
		return String(strings.TrimRight(v.s, "\n"))
	case KindSequence:
		items := make([]Value, len(v.seq))
		for i, item := range v.seq {
			items[i] = TrimTrailingNewlines(item)
		}
		return Value{kind: KindSequence, seq: items}
	case KindMapping:
		entries := make([]Entry, len(v.entries))
		for i, e := range v.entries {
			entries[i] = Entry{Key: e.Key, Value: TrimTrailingNewlines(e.Value)}
		}
		return Value{kind: KindMapping, entries: entries}
	default:
		return v
	}
}
