package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/mender/internal/model"
)

// ErrSymbolMapFormat is returned for a symbol map file that cannot be interpreted.
var ErrSymbolMapFormat = errors.New("unsupported symbol map")

// symbolsKey is the optional top-level table that wraps the entries.
const symbolsKey = "symbols"

// LoadSymbolMap reads a rename table from a .yaml, .yml, .toml or .json file.
// Entry order in the file is preserved.
func LoadSymbolMap(path m.Path) ([]m.SymbolEntry, error) {
	// #nosec G304 - path is supplied on the command line
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read symbol map: %w", err)
	}

	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".yaml", ".yml":
		return ParseSymbolMapYAML(data)
	case ".toml":
		return ParseSymbolMapTOML(data)
	case ".json":
		return ParseSymbolMapJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrSymbolMapFormat, path)
	}
}

// ParseSymbolMapYAML accepts either a mapping of old to new names or a
// sequence of {old, new} entries, optionally nested under "symbols".
func ParseSymbolMapYAML(data []byte) ([]m.SymbolEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode symbol map: %w", err)
	}

	if len(doc.Content) == 0 {
		return []m.SymbolEntry{}, nil
	}

	node := doc.Content[0]
	if node.Kind == yaml.MappingNode && len(node.Content) == 2 && node.Content[0].Value == symbolsKey {
		node = node.Content[1]
	}

	switch node.Kind {
	case yaml.MappingNode:
		entries := make([]m.SymbolEntry, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: value for %q is not a string", ErrSymbolMapFormat, key.Value)
			}

			entries = append(entries, m.SymbolEntry{Old: key.Value, New: value.Value})
		}

		return entries, nil
	case yaml.SequenceNode:
		var entries []m.SymbolEntry
		if err := node.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode symbol entries: %w", err)
		}

		return entries, nil
	default:
		return nil, fmt.Errorf("%w: expected a mapping or a list", ErrSymbolMapFormat)
	}
}

// ParseSymbolMapTOML accepts top-level string keys or a [symbols] table.
func ParseSymbolMapTOML(data []byte) ([]m.SymbolEntry, error) {
	var raw map[string]any

	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("decode symbol map: %w", err)
	}

	entries := make([]m.SymbolEntry, 0, len(md.Keys()))

	for _, key := range md.Keys() {
		var value any

		switch {
		case len(key) == 1:
			value = raw[key[0]]
		case len(key) == 2 && key[0] == symbolsKey:
			table, _ := raw[symbolsKey].(map[string]any)
			value = table[key[1]]
		default:
			continue
		}

		switch v := value.(type) {
		case string:
			entries = append(entries, m.SymbolEntry{Old: key[len(key)-1], New: v})
		case map[string]any:
			if len(key) == 1 && key[0] == symbolsKey {
				continue
			}

			return nil, fmt.Errorf("%w: unexpected table %q", ErrSymbolMapFormat, key.String())
		default:
			return nil, fmt.Errorf("%w: value for %q is not a string", ErrSymbolMapFormat, key.String())
		}
	}

	return entries, nil
}

// ParseSymbolMapJSON accepts an object of old to new names, keeping key order.
func ParseSymbolMapJSON(data []byte) ([]m.SymbolEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	entries := make([]m.SymbolEntry, 0)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode symbol map: %w", err)
		}

		key, _ := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: value for %q is not a string", ErrSymbolMapFormat, key)
		}

		entries = append(entries, m.SymbolEntry{Old: key, New: value})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	return entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode symbol map: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("%w: expected %q", ErrSymbolMapFormat, want)
	}

	return nil
}
