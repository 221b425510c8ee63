// Package payload models loosely-shaped JSON payloads as immutable trees and
// reconciles them against reference templates.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Node
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindMap
	KindSeq
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindSeq:
		return "sequence"
	default:
		return "null"
	}
}

// Node is one position of a payload tree. The zero value is a null node.
// Nodes are never mutated after construction.
type Node struct {
	kind   Kind
	scalar interface{}
	fields map[string]Node
	items  []Node
}

// Null returns a null node
func Null() Node {
	return Node{}
}

// Scalar wraps a string, bool or number. Numbers are normalised to json.Number.
func Scalar(v interface{}) Node {
	switch value := v.(type) {
	case nil:
		return Null()
	case json.Number:
		return Node{kind: KindScalar, scalar: value}
	case float64:
		return Node{kind: KindScalar, scalar: json.Number(strconv.FormatFloat(value, 'f', -1, 64))}
	case float32:
		return Node{kind: KindScalar, scalar: json.Number(strconv.FormatFloat(float64(value), 'f', -1, 32))}
	case int:
		return Node{kind: KindScalar, scalar: json.Number(strconv.FormatInt(int64(value), 10))}
	case int64:
		return Node{kind: KindScalar, scalar: json.Number(strconv.FormatInt(value, 10))}
	case int8, int16, int32:
		return Node{kind: KindScalar, scalar: json.Number(fmt.Sprint(value))}
	case uint, uint8, uint16, uint32, uint64:
		return Node{kind: KindScalar, scalar: json.Number(fmt.Sprint(value))}
	case string, bool:
		return Node{kind: KindScalar, scalar: value}
	default:
		return Node{kind: KindScalar, scalar: fmt.Sprint(value)}
	}
}

// Map builds a mapping node from a copy of fields
func Map(fields map[string]Node) Node {
	copied := make(map[string]Node, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return Node{kind: KindMap, fields: copied}
}

// Seq builds a sequence node from a copy of items
func Seq(items ...Node) Node {
	copied := make([]Node, len(items))
	copy(copied, items)
	return Node{kind: KindSeq, items: copied}
}

// Kind returns the variant of the node
func (n Node) Kind() Kind {
	return n.kind
}

// IsNull reports whether the node is null
func (n Node) IsNull() bool {
	return n.kind == KindNull
}

// Value returns the raw scalar, or nil for non-scalar nodes
func (n Node) Value() interface{} {
	if n.kind != KindScalar {
		return nil
	}
	return n.scalar
}

// Field returns the child stored under key; ok is false when the node is not a
// map or the key is absent.
func (n Node) Field(key string) (Node, bool) {
	if n.kind != KindMap {
		return Node{}, false
	}
	child, ok := n.fields[key]
	return child, ok
}

// Has reports whether a map node carries key, even when the value is null
func (n Node) Has(key string) bool {
	_, ok := n.Field(key)
	return ok
}

// Keys returns the sorted keys of a map node
func (n Node) Keys() []string {
	if n.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(n.fields))
	for key := range n.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of children of a map or sequence
func (n Node) Len() int {
	switch n.kind {
	case KindMap:
		return len(n.fields)
	case KindSeq:
		return len(n.items)
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence
func (n Node) Index(i int) (Node, bool) {
	if n.kind != KindSeq || i < 0 || i >= len(n.items) {
		return Node{}, false
	}
	return n.items[i], true
}

// Items returns a copy of the sequence elements
func (n Node) Items() []Node {
	if n.kind != KindSeq {
		return nil
	}
	items := make([]Node, len(n.items))
	copy(items, n.items)
	return items
}

// At walks nested map keys and returns a null node when any step is missing
func (n Node) At(keys ...string) Node {
	current := n
	for _, key := range keys {
		child, ok := current.Field(key)
		if !ok {
			return Null()
		}
		current = child
	}
	return current
}

// Float returns the numeric value of a scalar
func (n Node) Float() (float64, bool) {
	number, ok := n.scalar.(json.Number)
	if n.kind != KindScalar || !ok {
		return 0, false
	}
	f, err := number.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the integral value of a numeric scalar
func (n Node) Int() (int64, bool) {
	number, ok := n.scalar.(json.Number)
	if n.kind != KindScalar || !ok {
		return 0, false
	}
	if i, err := number.Int64(); err == nil {
		return i, true
	}
	f, err := number.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Text returns the value of a string scalar
func (n Node) Text() (string, bool) {
	s, ok := n.scalar.(string)
	if n.kind != KindScalar || !ok {
		return "", false
	}
	return s, true
}

// Bool returns the value of a boolean scalar
func (n Node) Bool() (bool, bool) {
	b, ok := n.scalar.(bool)
	if n.kind != KindScalar || !ok {
		return false, false
	}
	return b, true
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	switch n.kind {
	case KindMap:
		fields := make(map[string]Node, len(n.fields))
		for key, value := range n.fields {
			fields[key] = value.Clone()
		}
		return Node{kind: KindMap, fields: fields}
	case KindSeq:
		items := make([]Node, len(n.items))
		for i, item := range n.items {
			items[i] = item.Clone()
		}
		return Node{kind: KindSeq, items: items}
	default:
		return n
	}
}

// Equal reports deep structural and value equality
func (n Node) Equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindScalar:
		return n.scalar == other.scalar
	case KindMap:
		if len(n.fields) != len(other.fields) {
			return false
		}
		for key, value := range n.fields {
			otherValue, ok := other.fields[key]
			if !ok || !value.Equal(otherValue) {
				return false
			}
		}
		return true
	default:
		if len(n.items) != len(other.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	}
}

// Decode parses raw JSON into a Node
func Decode(raw []byte) (Node, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return Node{}, fmt.Errorf("decode payload: %w", err)
	}
	return FromValue(value), nil
}

// FromValue converts the output of encoding/json into a Node
func FromValue(value interface{}) Node {
	switch v := value.(type) {
	case map[string]interface{}:
		fields := make(map[string]Node, len(v))
		for key, child := range v {
			fields[key] = FromValue(child)
		}
		return Node{kind: KindMap, fields: fields}
	case []interface{}:
		items := make([]Node, len(v))
		for i, child := range v {
			items[i] = FromValue(child)
		}
		return Node{kind: KindSeq, items: items}
	default:
		return Scalar(v)
	}
}

// MarshalJSON implements json.Marshaler
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case KindScalar:
		return json.Marshal(n.scalar)
	case KindMap:
		return json.Marshal(n.fields)
	case KindSeq:
		return json.Marshal(n.items)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(raw []byte) error {
	decoded, err := Decode(raw)
	if err != nil {
		return err
	}
	*n = decoded
	return nil
}
