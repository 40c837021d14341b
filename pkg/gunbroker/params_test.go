package gunbroker

import (
	"strings"
	"testing"
)

func TestParamsQueryValues(t *testing.T) {
	p := Params{
		"SellerName": "test-user",
		"PageSize":   25,
		"Categories": []string{"851", "3022"},
		"Mixed":      []any{1, "two"},
		"Skipped":    nil,
		"Upload":     File{Reader: strings.NewReader("x")},
	}
	q := p.queryValues()

	if q.Get("SellerName") != "test-user" || q.Get("PageSize") != "25" {
		t.Fatalf("unexpected scalar values %v", q)
	}
	if got := q["Categories"]; len(got) != 2 || got[1] != "3022" {
		t.Fatalf("unexpected Categories %v", got)
	}
	if got := q["Mixed"]; len(got) != 2 || got[0] != "1" || got[1] != "two" {
		t.Fatalf("unexpected Mixed %v", got)
	}
	if _, ok := q["Skipped"]; ok {
		t.Fatalf("nil values should be skipped")
	}
	if _, ok := q["Upload"]; ok {
		t.Fatalf("files should not appear in the query string")
	}

	if Params(nil).queryValues() != nil {
		t.Fatalf("empty params should produce no query")
	}
}

func TestParamsMultipartSplitsFiles(t *testing.T) {
	p := Params{
		"title": "Rifle",
		"b":     &File{Reader: strings.NewReader("b")},
		"a":     File{Name: "a.png", ContentType: "image/png", Reader: strings.NewReader("a")},
	}
	form, files := p.multipart()

	if form.Get("title") != "Rifle" || len(form) != 1 {
		t.Fatalf("unexpected form %v", form)
	}
	if len(files) != 2 || files[0].Field != "a" || files[1].Field != "b" {
		t.Fatalf("unexpected files %+v", files)
	}
	if files[0].Name != "a.png" || files[0].ContentType != "image/png" {
		t.Fatalf("file metadata lost: %+v", files[0])
	}
	if files[1].Name != "b" {
		t.Fatalf("file name should default to the field, got %q", files[1].Name)
	}
}

func TestParamsJSONBody(t *testing.T) {
	body, ok := Params(nil).jsonBody().(map[string]any)
	if !ok || len(body) != 0 {
		t.Fatalf("nil params should encode as an empty object, got %#v", body)
	}
}
