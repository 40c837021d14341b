package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Payload is the params and headers of a request declared in a file.
type Payload struct {
	Params  map[string]any    `json:"params" yaml:"params"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// Load reads a payload from a YAML or JSON file.
func Load(path string) (*Payload, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("payload file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payload file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read payload file: %w", err)
	}

	p, err := parse(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	p.Headers = sanitizeHeaders(p.Headers)
	return &p, nil
}

// parse decodes raw with the decoder matching ext, or tries each decoder
// when the extension is unknown.
func parse(data []byte, ext string) (Payload, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	known := false
	for _, d := range decoders {
		if ext == d.ext {
			known = true
		}
	}

	var lastErr error
	for _, d := range decoders {
		if known && ext != d.ext {
			continue
		}
		var p Payload
		if err := d.fn(data, &p); err != nil {
			lastErr = fmt.Errorf("decode %s payload: %w", d.name, err)
			continue
		}
		return p, nil
	}

	if known && lastErr != nil {
		return Payload{}, lastErr
	}
	return Payload{}, errors.New("payload file format not recognized (expected YAML or JSON)")
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParsePairs parses "key=value" arguments. Values may contain '='; repeated
// keys keep the last value.
func ParsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid pair %q (expected key=value)", pair)
		}
		out[key] = val
	}
	return out, nil
}
