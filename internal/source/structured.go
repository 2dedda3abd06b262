package source

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/yamlutil"
)

// document is the shared YAML/TOML schema.
type document struct {
	Title       string     `yaml:"title" toml:"title"`
	Description string     `yaml:"description" toml:"description"`
	Code        []codeRow  `yaml:"code" toml:"code"`
	Images      []imageRow `yaml:"images" toml:"images"`
}

type codeRow struct {
	Lang string `yaml:"lang" toml:"lang"`
	Body string `yaml:"body" toml:"body"`
}

type imageRow struct {
	URL string `yaml:"url" toml:"url"`
	Alt string `yaml:"alt" toml:"alt"`
}

func decodeYAML(data []byte) (*File, error) {
	var doc document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc.toFile(), nil
	}
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return doc.toFile(), nil
}

func decodeTOML(data []byte) (*File, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return doc.toFile(), nil
}

func (d *document) toFile() *File {
	f := &File{title: d.Title, description: d.Description}
	for _, c := range d.Code {
		f.code = append(f.code, howto.CodeRow{Language: c.Lang, Body: c.Body})
	}
	for _, img := range d.Images {
		f.images = append(f.images, howto.ImageRow{URL: img.URL, Alt: img.Alt})
	}
	return f
}
