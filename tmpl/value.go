// Package tmpl implements the flat {{placeholder}} substitution used by quote
// templates and recipient blocks, together with the closed value type that
// carries user-supplied parameters.
package tmpl

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind enumerates the shapes a Value can take.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	// KindJSON holds a nested object or array kept as compact JSON text.
	KindJSON
)

// Value is a displayable parameter value: a string, a number, a boolean,
// null, or a nested JSON document.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Null returns the null value, which is also the zero Value.
func Null() Value {
	return Value{}
}

// JSON wraps compact JSON text of a nested object or array.
func JSON(text string) Value {
	return Value{kind: KindJSON, s: text}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// FromAny converts a value decoded by encoding/json, or a plain Go scalar.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	}
	data, err := json.Marshal(x)
	if err != nil {
		return Null()
	}
	return JSON(string(data))
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// String returns the display form substituted into templates. Null yields
// the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindJSON:
		return v.s
	case KindNumber:
		return formatNumber(v.n)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Literal returns the value as written in a parameters blob: strings as is,
// everything else in its JSON form.
func (v Value) Literal() string {
	switch v.kind {
	case KindString, KindJSON:
		return v.s
	case KindNull:
		return "null"
	}
	return v.String()
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// MarshalJSON encodes v in its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.n)
	case KindBool:
		return json.Marshal(v.b)
	case KindJSON:
		return []byte(v.s), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes any JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	*v = FromAny(x)
	return nil
}

// Data is the placeholder context of a render: the extension map from
// placeholder name to value.
type Data map[string]Value

// DataFromMap converts a decoded JSON object.
func DataFromMap(m map[string]any) Data {
	d := make(Data, len(m))
	for k, x := range m {
		d[k] = FromAny(x)
	}
	return d
}

// Merge returns a new Data with the entries of other layered over d.
func (d Data) Merge(other Data) Data {
	out := make(Data, len(d)+len(other))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Get returns the display form of key, or "" when absent.
func (d Data) Get(key string) string {
	return d[key].String()
}
