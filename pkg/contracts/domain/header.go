package domain

import "fmt"

// Value is a typed header field. The set of variants is closed: Text, Number,
// Integer, Flag and Range are the only implementations.
type Value interface {
	fmt.Stringer
	isValue()
}

// Text holds LABEL, PSTAT, TAG and NOTES fields.
type Text string

// Number holds QUANT and POTEN fields.
type Number float64

// Integer holds IQUANT and SELECTOR fields.
type Integer int64

// Flag holds TOGGLE fields.
type Flag bool

// Range holds TWOPARAM fields: an enable toggle plus a start/finish pair.
type Range struct {
	Enabled bool    `json:"enabled"`
	Start   float64 `json:"start"`
	Finish  float64 `json:"finish"`
}

func (Text) isValue()    {}
func (Number) isValue()  {}
func (Integer) isValue() {}
func (Flag) isValue()    {}
func (Range) isValue()   {}

func (v Text) String() string    { return string(v) }
func (v Number) String() string  { return fmt.Sprintf("%g", float64(v)) }
func (v Integer) String() string { return fmt.Sprintf("%d", int64(v)) }

func (v Flag) String() string {
	if v {
		return "T"
	}
	return "F"
}

func (v Range) String() string {
	return fmt.Sprintf("%s %g %g", Flag(v.Enabled), v.Start, v.Finish)
}

// KindOf names the variant of a header value, for logs and exports.
func KindOf(v Value) string {
	switch v.(type) {
	case Text:
		return "text"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Flag:
		return "flag"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Header is the experiment configuration block of a DTA file. Keys keep the
// order in which they were first seen in the file.
type Header struct {
	keys   []string
	values map[string]Value
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{values: make(map[string]Value)}
}

// Set stores v under key. A repeated key keeps its original position.
func (h *Header) Set(key string, v Value) {
	if _, exists := h.values[key]; !exists {
		h.keys = append(h.keys, key)
	}
	h.values[key] = v
}

// Get returns the raw value stored under key.
func (h *Header) Get(key string) (Value, bool) {
	if h == nil {
		return nil, false
	}
	v, ok := h.values[key]
	return v, ok
}

// Has reports whether key is present.
func (h *Header) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Keys returns the header keys in file order.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Len returns the number of keys.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// Text returns the string value of key. ok is false when the key is missing
// or holds another variant.
func (h *Header) Text(key string) (string, bool) {
	v, ok := h.Get(key)
	if !ok {
		return "", false
	}
	t, ok := v.(Text)
	return string(t), ok
}

// Number returns the floating point value of key. Integer fields are widened.
func (h *Header) Number(key string) (float64, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case Number:
		return float64(n), true
	case Integer:
		return float64(n), true
	default:
		return 0, false
	}
}

// Integer returns the integer value of key.
func (h *Header) Integer(key string) (int64, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(Integer)
	return int64(i), ok
}

// Flag returns the boolean value of key.
func (h *Header) Flag(key string) (bool, bool) {
	v, ok := h.Get(key)
	if !ok {
		return false, false
	}
	f, ok := v.(Flag)
	return bool(f), ok
}

// Range returns the TWOPARAM value of key.
func (h *Header) Range(key string) (Range, bool) {
	v, ok := h.Get(key)
	if !ok {
		return Range{}, false
	}
	r, ok := v.(Range)
	return r, ok
}
