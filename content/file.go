package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads a Bundle from a YAML document using the CMS field names:
//
//	page:
//	  splash_phrase: ...
//	  clients:
//	    - name: Acme
//	services:
//	  - title: Design
//	settings:
//	  site_title: Co
type FileSource struct {
	Path string
}

// Fetch reads and parses the fixture. A missing file yields ErrNotFound.
func (f FileSource) Fetch(ctx context.Context) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}
	if f.Path == "" {
		return Bundle{}, ErrNotFound
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Bundle{}, ErrNotFound
		}
		return Bundle{}, err
	}
	b, err := ParseYAML(data)
	if err != nil {
		return Bundle{}, fmt.Errorf("content: parse %s: %w", f.Path, err)
	}
	return b, nil
}

// ParseYAML decodes a YAML fixture into a Bundle.
func ParseYAML(data []byte) (Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
