package gunbroker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
)

// Value is a node of a parsed JSON document. The zero Value is JSON null.
type Value struct {
	v any
}

// Interface returns the underlying decoded value: map[string]any, []any,
// string, json.Number, bool or nil.
func (v Value) Interface() any { return v.v }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.v == nil }

// Get looks up key in a JSON object.
func (v Value) Get(key string) (Value, bool) {
	m, ok := v.v.(map[string]any)
	if !ok {
		return Value{}, false
	}
	child, ok := m[key]
	if !ok {
		return Value{}, false
	}
	return Value{v: child}, true
}

// GetNested walks a chain of object keys.
func (v Value) GetNested(keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Index returns the i-th element of a JSON array.
func (v Value) Index(i int) (Value, bool) {
	arr, ok := v.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Value{}, false
	}
	return Value{v: arr[i]}, true
}

// Len is the number of elements of an array or keys of an object, else 0.
func (v Value) Len() int {
	switch tv := v.v.(type) {
	case []any:
		return len(tv)
	case map[string]any:
		return len(tv)
	}
	return 0
}

// Keys returns the sorted keys of a JSON object.
func (v Value) Keys() []string {
	m, ok := v.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsString returns v if it is a JSON string.
func (v Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

// AsNumber returns v as a float64 if it is a JSON number.
func (v Value) AsNumber() (float64, bool) {
	n, ok := v.v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// AsInt returns v if it is a JSON number that fits an int64 exactly.
func (v Value) AsInt() (int64, bool) {
	n, ok := v.v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	return i, err == nil
}

// AsBool returns v if it is a JSON boolean.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// Response is the parsed JSON body of a successful call.
type Response struct {
	Value
	status int
	header http.Header
	raw    []byte
}

// newResponse parses body as exactly one JSON document. An empty body is
// JSON null.
func newResponse(status int, header http.Header, body []byte) (*Response, error) {
	r := &Response{status: status, header: header, raw: body}
	if len(bytes.TrimSpace(body)) == 0 {
		return r, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{StatusCode: status, Body: body, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{StatusCode: status, Body: body, Err: fmt.Errorf("trailing data after JSON document")}
	}
	r.Value = Value{v: doc}
	return r, nil
}

// StatusCode is the HTTP status the response arrived with.
func (r *Response) StatusCode() int { return r.status }

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header { return r.header.Clone() }

// Raw returns a copy of the undecoded body.
func (r *Response) Raw() []byte { return append([]byte(nil), r.raw...) }

// Decode unmarshals the body into out.
func (r *Response) Decode(out any) error {
	if len(bytes.TrimSpace(r.raw)) == 0 {
		return nil
	}
	return json.Unmarshal(r.raw, out)
}

// GetString looks up a string field of the top-level object.
func (r *Response) GetString(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetNumber looks up a numeric field of the top-level object.
func (r *Response) GetNumber(key string) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// GetInt looks up an integer field of the top-level object.
func (r *Response) GetInt(key string) (int64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// GetBool looks up a boolean field of the top-level object.
func (r *Response) GetBool(key string) (bool, bool) {
	v, ok := r.Get(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}
