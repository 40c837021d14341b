package gunbroker

import (
	"fmt"
	"io"
	"net/url"
	"sort"

	"github.com/samvad-hq/gunbroker/pkg/httpclient"
)

// Params carries request parameters. They become the query string for GET
// and DELETE, the JSON body for POST and PUT, and form fields for
// MultipartPost.
type Params map[string]any

// Headers are sent verbatim with the request.
type Headers map[string]string

// File is a multipart upload field. It is only meaningful as a Params value
// passed to MultipartPost.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// queryValues renders p as URL values. Slices produce repeated keys and nil
// values are skipped.
func (p Params) queryValues() url.Values {
	if len(p) == 0 {
		return nil
	}
	out := make(url.Values, len(p))
	for k, v := range p {
		switch tv := v.(type) {
		case nil:
		case File, *File:
		case string:
			out.Add(k, tv)
		case []string:
			for _, s := range tv {
				out.Add(k, s)
			}
		case []any:
			for _, s := range tv {
				out.Add(k, fmt.Sprint(s))
			}
		default:
			out.Add(k, fmt.Sprint(tv))
		}
	}
	return out
}

// multipart splits p into plain form fields and file parts. File parts are
// ordered by field name so requests are reproducible.
func (p Params) multipart() (url.Values, []httpclient.File) {
	var files []httpclient.File
	plain := make(Params, len(p))
	for k, v := range p {
		switch f := v.(type) {
		case File:
			files = append(files, toHTTPFile(k, f))
		case *File:
			if f != nil {
				files = append(files, toHTTPFile(k, *f))
			}
		default:
			plain[k] = v
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Field < files[j].Field })
	return plain.queryValues(), files
}

// jsonBody returns the value to encode as the request body. A nil map is
// sent as an empty object.
func (p Params) jsonBody() any {
	if p == nil {
		return map[string]any{}
	}
	return map[string]any(p)
}

func toHTTPFile(field string, f File) httpclient.File {
	name := f.Name
	if name == "" {
		name = field
	}
	return httpclient.File{
		Field:       field,
		Name:        name,
		ContentType: f.ContentType,
		Reader:      f.Reader,
	}
}
