package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/pkg/fileutil"
)

// Document is an arbitrarily nested configuration mapping: string keys,
// values are scalars, template strings, nested mappings, or sequences.
type Document = map[string]any

// Names of the three project configuration documents.
const (
	DocPaths  = "paths"
	DocParams = "params"
	DocFiles  = "files"
)

// LoadDocument loads the named document from <root>/<configDir>/<name>.yaml.
// A missing file is ErrConfigNotFound; malformed YAML is ErrConfigParse.
// An empty file yields an empty document.
func LoadDocument(root, configDir, name string) (Document, error) {
	path := filepath.Join(root, configDir, name+".yaml")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "stating %s", path)
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigParse, "%s: %v", path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// blockKeyOrder extracts the declaration order of the keys in the mapping at
// the named top-level block. Decoding into a Go map loses the order; the
// YAML node tree keeps it.
func blockKeyOrder(data []byte, block string) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != block {
			continue
		}
		mapping := doc.Content[i+1]
		if mapping.Kind != yaml.MappingNode {
			return nil
		}
		keys := make([]string, 0, len(mapping.Content)/2)
		for j := 0; j+1 < len(mapping.Content); j += 2 {
			keys = append(keys, mapping.Content[j].Value)
		}
		return keys
	}
	return nil
}
