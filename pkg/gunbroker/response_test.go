package gunbroker

import (
	"errors"
	"net/http"
	"testing"
)

func TestResponseTypedAccessors(t *testing.T) {
	resp, err := newResponse(200, nil, []byte(`{
		"test": "value",
		"price": 19.95,
		"itemID": 9007199254740993,
		"canOffer": true,
		"seller": {"username": "test-user", "rating": {"positive": 99}},
		"results": [{"id": 1}, {"id": 2}],
		"none": null
	}`))
	if err != nil {
		t.Fatalf("newResponse: %v", err)
	}

	if s, ok := resp.GetString("test"); !ok || s != "value" {
		t.Fatalf("GetString: %q %v", s, ok)
	}
	if _, ok := resp.GetString("price"); ok {
		t.Fatalf("GetString on a number should fail")
	}
	if f, ok := resp.GetNumber("price"); !ok || f != 19.95 {
		t.Fatalf("GetNumber: %v %v", f, ok)
	}
	if i, ok := resp.GetInt("itemID"); !ok || i != 9007199254740993 {
		t.Fatalf("GetInt lost precision: %v %v", i, ok)
	}
	if _, ok := resp.GetInt("price"); ok {
		t.Fatalf("GetInt on a fraction should fail")
	}
	if b, ok := resp.GetBool("canOffer"); !ok || !b {
		t.Fatalf("GetBool: %v %v", b, ok)
	}
	if _, ok := resp.GetString("missing"); ok {
		t.Fatalf("missing key should not be found")
	}

	rating, ok := resp.GetNested("seller", "rating", "positive")
	if !ok {
		t.Fatalf("GetNested did not find seller.rating.positive")
	}
	if n, _ := rating.AsInt(); n != 99 {
		t.Fatalf("unexpected rating %d", n)
	}
	if _, ok := resp.GetNested("seller", "missing", "positive"); ok {
		t.Fatalf("GetNested should fail on a missing segment")
	}

	results, _ := resp.Get("results")
	if results.Len() != 2 {
		t.Fatalf("unexpected results length %d", results.Len())
	}
	second, ok := results.Index(1)
	if !ok {
		t.Fatalf("Index(1) not found")
	}
	id, _ := second.Get("id")
	if n, _ := id.AsInt(); n != 2 {
		t.Fatalf("unexpected second id %d", n)
	}
	if _, ok := results.Index(2); ok {
		t.Fatalf("Index out of range should fail")
	}

	none, ok := resp.Get("none")
	if !ok || !none.IsNull() {
		t.Fatalf("explicit null should be found and null")
	}
}

func TestResponseTopLevelArray(t *testing.T) {
	resp, err := newResponse(200, nil, []byte(`["a","b"]`))
	if err != nil {
		t.Fatalf("newResponse: %v", err)
	}
	if resp.Len() != 2 {
		t.Fatalf("unexpected length %d", resp.Len())
	}
	if _, ok := resp.Get("a"); ok {
		t.Fatalf("key lookup on an array should fail")
	}
	first, _ := resp.Index(0)
	if s, _ := first.AsString(); s != "a" {
		t.Fatalf("unexpected first element %q", s)
	}
}

func TestResponseDecode(t *testing.T) {
	resp, err := newResponse(200, nil, []byte(`{"test":"value"}`))
	if err != nil {
		t.Fatalf("newResponse: %v", err)
	}
	var out struct {
		Test string `json:"test"`
	}
	if err := resp.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Test != "value" {
		t.Fatalf("unexpected decoded value %q", out.Test)
	}

	raw := resp.Raw()
	raw[0] = 'x'
	if resp.Raw()[0] != '{' {
		t.Fatalf("Raw must return a copy")
	}
}

func TestResponseInvalidJSON(t *testing.T) {
	_, err := newResponse(200, nil, []byte(`{"test":`))
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestResultStrict(t *testing.T) {
	ok := &Result{status: 200, response: &Response{status: 200}}
	if resp, err := Strict(ok, nil); err != nil || resp == nil {
		t.Fatalf("Strict on success: %v %v", resp, err)
	}

	failed := &Result{status: 503, err: &RequestError{StatusCode: 503}}
	if _, err := Strict(failed, nil); !errors.Is(err, ErrServer) {
		t.Fatalf("Strict on failure: expected ErrServer, got %v", err)
	}

	transport := &TransportError{Method: "GET", URL: "x", Err: errors.New("boom")}
	if _, err := Strict(nil, transport); !errors.Is(err, transport) {
		t.Fatalf("Strict should pass through transport errors")
	}
}

func TestResponseRejectsTrailingData(t *testing.T) {
	for _, body := range []string{`{"a":1}garbage`, `{"a":1}{"b":2}`, `[1] 2`} {
		_, err := newResponse(200, nil, []byte(body))
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("%q: expected *DecodeError, got %v", body, err)
		}
	}

	if _, err := newResponse(200, nil, []byte("{\"a\":1}\n  ")); err != nil {
		t.Fatalf("trailing whitespace should be accepted: %v", err)
	}
}

func TestResponseHeaderIsCopied(t *testing.T) {
	resp, err := newResponse(200, http.Header{"X-Request-Id": {"abc"}}, []byte(`{}`))
	if err != nil {
		t.Fatalf("newResponse: %v", err)
	}
	h := resp.Header()
	if h.Get("X-Request-Id") != "abc" {
		t.Fatalf("header not exposed: %v", h)
	}
	h.Set("X-Request-Id", "changed")
	if resp.Header().Get("X-Request-Id") != "abc" {
		t.Fatalf("Header must return a copy")
	}
}
