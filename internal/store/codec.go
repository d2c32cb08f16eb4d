package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the document version written by this package.
const FormatVersion = 1

// document is the on-disk shape of the history.
type document struct {
	Version    int      `toml:"version" yaml:"version"`
	Selections []string `toml:"selections" yaml:"selections"`
}

// codec encodes and decodes a document.
type codec interface {
	marshal(doc document) ([]byte, error)
	unmarshal(data []byte, doc *document) error
}

type tomlCodec struct{}

func (tomlCodec) marshal(doc document) ([]byte, error) { return toml.Marshal(doc) }
func (tomlCodec) unmarshal(data []byte, doc *document) error {
	return toml.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) marshal(doc document) ([]byte, error) { return yaml.Marshal(doc) }
func (yamlCodec) unmarshal(data []byte, doc *document) error {
	return yaml.Unmarshal(data, doc)
}

// codecFor selects a codec by file extension.
func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return tomlCodec{}, nil
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
