package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Document source formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFromPath picks a document format by file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported document type %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes and validates a document. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func Parse(data []byte, format string) (*Document, error) {
	var doc Document
	var err error
	switch strings.ToLower(format) {
	case FormatTOML:
		err = decodeTOML(data, &doc)
	case FormatYAML, "yml":
		err = decodeYAML(data, &doc)
	case FormatJSON:
		err = decodeJSON(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported document format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeTOML(data []byte, doc *Document) error {
	md, err := toml.Decode(string(data), doc)
	if err != nil {
		return invalid(err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, doc *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidConfig, "empty document")
		}
		return invalid(err, "parse yaml")
	}
	return nil
}

func decodeJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidConfig, "empty document")
		}
		return invalid(err, "parse json")
	}
	return nil
}
