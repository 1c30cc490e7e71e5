package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

const namespaceSeparator = `\`

// SymbolMap resolves old fully-qualified names to new ones. Exact entries win;
// otherwise the first key, in insertion order, that is a namespace prefix of
// the symbol has its prefix substituted. A symbol already inside the target
// namespace of its entry is left alone, so maps such as App\Old -> App\Old\Legacy
// rename once.
type SymbolMap struct {
	entries []m.SymbolEntry
	exact   map[string]string
}

// NewSymbolMap builds a SymbolMap. Leading backslashes are ignored; empty or
// duplicate keys are rejected.
func NewSymbolMap(entries []m.SymbolEntry) (*SymbolMap, error) {
	sm := &SymbolMap{exact: make(map[string]string, len(entries))}

	for _, entry := range entries {
		old := normalizeSymbol(entry.Old)
		if old == "" {
			return nil, fmt.Errorf("symbol map entry with empty key (new=%q)", entry.New)
		}

		if _, dup := sm.exact[old]; dup {
			return nil, fmt.Errorf("symbol %q mapped twice", old)
		}

		normalized := m.SymbolEntry{Old: old, New: normalizeSymbol(entry.New)}
		sm.exact[old] = normalized.New
		sm.entries = append(sm.entries, normalized)
	}

	return sm, nil
}

// Resolve implements rules.Resolver.
func (s *SymbolMap) Resolve(oldSymbol string) (string, bool) {
	symbol := normalizeSymbol(oldSymbol)
	if symbol == "" {
		return "", false
	}

	if renamed, ok := s.exact[symbol]; ok {
		return renamed, true
	}

	for _, entry := range s.entries {
		key := entry.Old

		if !strings.HasSuffix(key, namespaceSeparator) {
			key += namespaceSeparator
		}

		if !strings.HasPrefix(symbol, key) {
			continue
		}

		if within(symbol, entry.New) {
			return "", false
		}

		return strings.TrimSuffix(entry.New, namespaceSeparator) + symbol[len(key)-1:], true
	}

	return "", false
}

// within reports whether symbol is ns or lies inside it.
func within(symbol, ns string) bool {
	ns = strings.TrimSuffix(ns, namespaceSeparator)

	return symbol == ns || strings.HasPrefix(symbol, ns+namespaceSeparator)
}

// Entries returns the table in insertion order.
func (s *SymbolMap) Entries() []m.SymbolEntry {
	return append([]m.SymbolEntry(nil), s.entries...)
}

// Len returns the number of entries.
func (s *SymbolMap) Len() int {
	return len(s.entries)
}

func normalizeSymbol(symbol string) string {
	return strings.TrimPrefix(strings.TrimSpace(symbol), namespaceSeparator)
}
